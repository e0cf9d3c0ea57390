package cli

import (
	"fmt"
	"io"
)

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(w io.Writer, format string, args ...interface{}) {
	if quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(w, "OK: %s\n", msg)
	} else {
		fmt.Fprintf(w, "✓ %s\n", msg)
	}
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(w io.Writer, format string, args ...interface{}) {
	if quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(w, "INFO: %s\n", msg)
	} else {
		fmt.Fprintf(w, "ℹ %s\n", msg)
	}
}

// PrintError prints an error message, usually to stderr
func PrintError(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(w, "ERROR: %s\n", msg)
	} else {
		fmt.Fprintf(w, "✗ %s\n", msg)
	}
}

// Global flags (set from the root command)
var (
	quiet   bool
	noColor bool
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc bool) {
	quiet = q
	noColor = nc
}
