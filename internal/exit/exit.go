// Package exit pairs a terminal message with the process exit code.
//
// The tool's contract is all-or-nothing: a successful run writes the fully
// formatted result to stdout and exits 0. Every other path (errors, usage
// problems, help and version included) writes one message to stderr and
// exits 1.
package exit

import (
	"fmt"
	"io"
	"os"
)

// Result holds the stream, exit code and message for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the message to the configured stream.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success carries the formatted pipeline output to stdout with exit code 0.
func Success(output string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: 0,
		Message:  output,
	}
}

// Failure carries a diagnostic message to stderr with exit code 1.
func Failure(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: 1,
		Message:  message,
	}
}

// Failuref formats a diagnostic message.
func Failuref(format string, a ...any) *Result {
	return Failure(fmt.Sprintf(format, a...))
}
