package exit

import (
	"os"
	"strings"
	"testing"
)

func TestSuccess(t *testing.T) {
	t.Parallel()

	result := Success("[1,2,3]\n")

	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}
	if result.Output != os.Stdout {
		t.Error("Success() should write to stdout")
	}
	if result.Message != "[1,2,3]\n" {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestFailure(t *testing.T) {
	t.Parallel()

	result := Failure("jello:  Key does not exist: foo\n")

	if result.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", result.ExitCode)
	}
	if result.Output != os.Stderr {
		t.Error("Failure() should write to stderr")
	}
}

func TestFailuref(t *testing.T) {
	t.Parallel()

	result := Failuref("jello:  %v\n", "boom")

	if result.Message != "jello:  boom\n" {
		t.Errorf("Message = %q", result.Message)
	}
	if result.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", result.ExitCode)
	}
}

func TestPrint(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	result := &Result{Output: &buf, ExitCode: 0, Message: "done\n"}
	result.Print()

	if buf.String() != "done\n" {
		t.Errorf("Print() wrote %q, want %q", buf.String(), "done\n")
	}
}
