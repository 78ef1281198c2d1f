package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOfWalksWrappedChains(t *testing.T) {
	base := New(Conflict, "username already taken")
	wrapped := fmt.Errorf("create user: %w", base)

	if KindOf(wrapped) != Conflict {
		t.Fatalf("expected Conflict through fmt wrapping, got %v", KindOf(wrapped))
	}
	if MessageOf(wrapped) != "username already taken" {
		t.Fatalf("unexpected message: %q", MessageOf(wrapped))
	}
	if !IsKind(wrapped, Conflict) || IsKind(wrapped, NotFound) {
		t.Fatalf("IsKind misclassified the chain")
	}
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	plain := errors.New("connection reset")
	if KindOf(plain) != Internal {
		t.Fatalf("expected Internal for unclassified error, got %v", KindOf(plain))
	}
	if MessageOf(plain) != "internal server error" {
		t.Fatalf("expected generic message, got %q", MessageOf(plain))
	}
	if KindOf(nil) != Internal {
		t.Fatalf("expected Internal for nil error")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("no rows")
	wrapped := Wrap(NotFound, "video not found", cause)

	if !errors.Is(wrapped, cause) {
		t.Fatalf("expected cause preserved in the chain")
	}
	if wrapped.Error() != "video not found: no rows" {
		t.Fatalf("unexpected Error() output: %q", wrapped.Error())
	}
}
