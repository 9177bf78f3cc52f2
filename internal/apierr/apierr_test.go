package apierr

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{InvalidArgument("bad"), 400},
		{Unauthorized("no"), 401},
		{NotFound("missing"), 404},
		{Conflict("dup"), 409},
		{Internal("boom", nil), 500},
	}

	for _, tt := range tests {
		if got := tt.err.StatusCode(); got != tt.want {
			t.Errorf("%q StatusCode() = %d, want %d", tt.err.Message, got, tt.want)
		}
	}
}

func TestFrom_PassesThroughTypedErrors(t *testing.T) {
	orig := NotFound("Video not found")
	wrapped := fmt.Errorf("fetch: %w", orig)

	got := From(wrapped)
	if got.Kind != KindNotFound {
		t.Errorf("Kind = %v, want KindNotFound", got.Kind)
	}
	if got.Message != "Video not found" {
		t.Errorf("Message = %q", got.Message)
	}
}

func TestFrom_WrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection refused")

	got := From(cause)
	if got.Kind != KindInternal {
		t.Errorf("Kind = %v, want KindInternal", got.Kind)
	}
	if got.Message != "Something went wrong" {
		t.Errorf("Message = %q, internal detail must not leak", got.Message)
	}
	if !errors.Is(got, cause) {
		t.Error("cause should be preserved for logs")
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", Conflict("exists"))

	if !IsKind(err, KindConflict) {
		t.Error("IsKind should see through wrapping")
	}
	if IsKind(err, KindNotFound) {
		t.Error("IsKind matched the wrong kind")
	}
	if IsKind(errors.New("plain"), KindConflict) {
		t.Error("IsKind matched an untyped error")
	}
}
