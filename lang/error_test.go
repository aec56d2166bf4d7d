package lang

import (
	"errors"
	"log/slog"
	"testing"
)

func TestErrorSentinelIdentity(t *testing.T) {
	derived := ErrDivideByZero.
		Msgf("division of %d by zero", 4).
		With(slog.Int("lhs", 4)).
		at(moduleInterp, 3, 7)

	if !errors.Is(derived, ErrDivideByZero) {
		t.Fatal("derived error does not match its sentinel")
	}

	if errors.Is(derived, ErrEmptyList) {
		t.Fatal("derived error matches an unrelated sentinel")
	}
}

func TestErrorWrapChain(t *testing.T) {
	cause := errors.New("socket closed")
	wrapped := ErrFunctionFailed.Wrap(cause)

	if !errors.Is(wrapped, ErrFunctionFailed) {
		t.Fatal("wrapped error lost sentinel identity")
	}

	if !errors.Is(wrapped, cause) {
		t.Fatal("wrapped error lost its cause")
	}
}

func TestErrorEnvelopes(t *testing.T) {
	located := ErrEmptyList.at(moduleInterp, 2, 5)

	want := "[Module:Interp,Location:(2,5)]:\nlist should not be empty\n"
	if got := located.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	flat := ErrUnterminatedExpr.at(moduleExpander, 0, 0)

	want = "[Module:TextProcessor]:the expression needs to be ended with \"`\""
	if got := flat.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	if got := ErrEmptyList.Error(); got != "list should not be empty" {
		t.Fatalf("bare Error() = %q", got)
	}
}

func TestErrorImmutability(t *testing.T) {
	before := ErrBadNumber.Error()

	_ = ErrBadNumber.Msgf("other message").With(slog.Int("n", 1))

	if got := ErrBadNumber.Error(); got != before {
		t.Fatalf("sentinel mutated: %q", got)
	}
}
