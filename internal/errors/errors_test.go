package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

type hinted struct{ msg, hint string }

func (h hinted) Error() string { return h.msg }
func (h hinted) Hint() string  { return h.hint }

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("no time slots configured"),
			expected: "Error: no time slots configured",
		},
		{
			name:     "hinted error",
			err:      hinted{msg: "ramp rate too high", hint: "lower weekly hours"},
			expected: "Error: ramp rate too high\n  hint: lower weekly hours",
		},
		{
			name:     "wrapped hinted error",
			err:      fmt.Errorf("generate plan: %w", hinted{msg: "ramp rate too high", hint: "lower weekly hours"}),
			expected: "Error: generate plan: ramp rate too high\n  hint: lower weekly hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestHintFor(t *testing.T) {
	if got := HintFor(errors.New("plain")); got != "" {
		t.Errorf("HintFor(plain) = %q, want empty", got)
	}
	if got := HintFor(hinted{msg: "x", hint: "y"}); got != "y" {
		t.Errorf("HintFor(hinted) = %q, want %q", got, "y")
	}
}

func TestWithHint(t *testing.T) {
	if WithHint(nil, "ignored") != nil {
		t.Error("WithHint(nil) should stay nil")
	}

	base := errors.New("storage not initialized")
	err := fmt.Errorf("load: %w", WithHint(base, "run 'training28 init'"))
	if !errors.Is(err, base) {
		t.Error("hinted error should unwrap to its cause")
	}
	if got := Format(err); got != "Error: load: storage not initialized\n  hint: run 'training28 init'" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []interface{}
		expected string
	}{
		{
			name:     "simple message",
			format:   "something went wrong",
			expected: "Error: something went wrong",
		},
		{
			name:     "formatted message",
			format:   "athlete %s has no FTP or LTHR",
			args:     []interface{}{"default"},
			expected: "Error: athlete default has no FTP or LTHR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Formatf(tt.format, tt.args...); got != tt.expected {
				t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, got, tt.expected)
			}
		})
	}
}

// TestFatal runs Fatal in a helper process since it exits.
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
