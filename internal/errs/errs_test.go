package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	cause := errors.New("disk fell over")
	err := New(IndexError, cause, "load index")

	if got := CodeOf(err); got != IndexError {
		t.Fatalf("CodeOf: expected %q, got %q", IndexError, got)
	}

	wrapped := fmt.Errorf("bootstrap: %w", err)
	if got := CodeOf(wrapped); got != IndexError {
		t.Fatalf("CodeOf(wrapped): expected %q, got %q", IndexError, got)
	}

	if got := CodeOf(cause); got != "" {
		t.Fatalf("CodeOf(plain error): expected empty code, got %q", got)
	}

	if !errors.Is(err, err) {
		t.Fatalf("errors.Is should hold for identical error")
	}
	if errors.Unwrap(err) != cause {
		t.Fatalf("Unwrap should return the original cause")
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("boom")
	err := New(BuildError, cause, "build index")
	if got, want := err.Error(), "build index: boom"; got != want {
		t.Fatalf("Error(): got %q, want %q", got, want)
	}

	bare := New(ConfigError, nil, "no data file")
	if got, want := bare.Error(), "no data file"; got != want {
		t.Fatalf("Error(): got %q, want %q", got, want)
	}
}
