package export

import (
	"errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("chrome not found")
	err := &Error{Message: "failed to print preview", Cause: cause}
	if got := err.Error(); got != "export error: failed to print preview: chrome not found" {
		t.Errorf("unexpected message: %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}

	bare := &Error{Message: "no preview URL"}
	if got := bare.Error(); got != "export error: no preview URL" {
		t.Errorf("unexpected message: %q", got)
	}
}
