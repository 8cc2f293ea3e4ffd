// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"os"
)

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}

// Verbose reports whether QUERYSMITH_VERBOSE diagnostics are enabled.
func Verbose() bool {
	return os.Getenv("QUERYSMITH_VERBOSE") == "1"
}

// Debugf prints a masked [DEBUG] line when verbose mode is enabled.
func Debugf(module, format string, args ...any) {
	if !Verbose() {
		return
	}
	fmt.Printf("[DEBUG] %s: %s\n", module, Mask(fmt.Sprintf(format, args...)))
}
