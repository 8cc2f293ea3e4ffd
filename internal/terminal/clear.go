// Package terminal provides small helpers for cleaning up interactive
// terminal output, such as erasing a prompt after the user answered it.
package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ClearPreviousLines erases the lines a just-answered prompt occupied.
// textLength is the combined length of the prompt and the user's input;
// the helper works out how many screen lines that wrapped to at the
// current terminal width and clears them with ANSI escapes. Connection
// strings carry credentials, so the prompt must not stay on screen.
func ClearPreviousLines(textLength int) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	lines := (textLength + width - 1) / width
	if lines < 1 {
		lines = 1
	}

	// Enter left the cursor on a fresh line below the input; clear it too.
	lines++

	for i := 0; i < lines; i++ {
		fmt.Print("\r\x1b[2K")
		if i < lines-1 {
			fmt.Print("\x1b[1A")
		}
	}
}
