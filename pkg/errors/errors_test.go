package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapWithCode(cause, "PERSISTENCE", "save post")

	if got := err.Error(); got != "save post: connection refused" {
		t.Fatalf("unexpected message %q", got)
	}
	if !Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if GetCode(err) != "PERSISTENCE" {
		t.Fatalf("expected PERSISTENCE, got %q", GetCode(err))
	}
}

func TestGetCodeSkipsUncodedWrappers(t *testing.T) {
	inner := NewWithCode("FETCH", "upstream returned 502")
	outer := Wrap(fmt.Errorf("item 3: %w", inner), "batch")

	if GetCode(outer) != "FETCH" {
		t.Fatalf("expected FETCH, got %q", GetCode(outer))
	}
	if GetCode(errors.New("plain")) != "" {
		t.Fatal("plain errors carry no code")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "x") != nil || WrapWithCode(nil, "C", "x") != nil {
		t.Fatal("wrapping nil must return nil")
	}
}

func TestHasCode(t *testing.T) {
	err := WrapWithCode(New("boom"), "FETCH", "fetch post")
	if !HasCode(err, "FETCH") || HasCode(err, "PERSISTENCE") || HasCode(New("x"), "") {
		t.Fatal("HasCode mismatch")
	}
}
