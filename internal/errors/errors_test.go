package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/miaomotion/internal/engine"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"failure", errors.New("disk full"), "Error: disk full"},
		{"rejection", engine.ErrInsufficientFood, "Rejected: rejected: insufficient food"},
		{"wrapped rejection", fmt.Errorf("feed: %w", engine.ErrInsufficientFood), "Rejected: feed: rejected: insufficient food"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("failed to load %s", "store"); got != "Error: failed to load store" {
		t.Errorf("Formatf = %q", got)
	}
}

func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("store unavailable"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("Fatal() exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(stderr.String(), "Error: store unavailable") {
		t.Errorf("Fatal() stderr = %q", stderr.String())
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
