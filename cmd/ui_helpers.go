package cmd

import (
	"fmt"
	"io"
	"sync"
	"time"

	"atomicgo.dev/cursor"
)

// spinnerFrames is the frame set shared by every inline spinner in the CLI.
var spinnerFrames = []string{"-", "\\", "|", "/"}

// startInlineSpinner draws a rotating frame followed by text, redrawn in
// place on one line, with the terminal cursor hidden. The returned function
// stops the animation, blanks the line, and restores the cursor.
func startInlineSpinner(w io.Writer, text string) func() {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	cursor.Hide()
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		frame, drawn := 0, 0
		for {
			select {
			case <-done:
				// Blank exactly the width last drawn
				fmt.Fprintf(w, "\r%*s\r", drawn, "")
				return
			case <-ticker.C:
				line := spinnerFrames[frame%len(spinnerFrames)] + " " + text
				if len(line) > 2000 {
					line = line[:2000] // runaway text would wrap and stack lines
				}
				fmt.Fprintf(w, "\r%s", line)
				drawn = len(line)
				frame++
			}
		}
	}()
	return func() {
		close(done)
		wg.Wait()
		cursor.Show()
	}
}
