package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusForAppErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("taken"), http.StatusConflict},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{Forbidden("not allowed"), http.StatusForbidden},
		{New(http.StatusTeapot, "short and stout"), http.StatusTeapot},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Fatalf("Status(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestUnknownErrorsAreMasked(t *testing.T) {
	err := errors.New("connection reset by peer")

	if got := Status(err); got != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unknown error, got %d", got)
	}
	if msg := Message(err); msg == err.Error() {
		t.Fatal("internal error detail must not leak to the client")
	}
}

func TestStatusUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("claim failed: %w", Conflict("stock gone"))

	if got := Status(wrapped); got != http.StatusConflict {
		t.Fatalf("expected 409 through wrapping, got %d", got)
	}
	if msg := Message(wrapped); msg != "stock gone" {
		t.Fatalf("expected original message, got %q", msg)
	}
}
