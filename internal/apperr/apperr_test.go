package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantOK   bool
	}{
		{"invalid", Invalid("bad input"), KindInvalid, true},
		{"not_found", NotFound("user 7 not found"), KindNotFound, true},
		{"conflict", Conflict("email already in use"), KindConflict, true},
		{"wrapped", fmt.Errorf("create user: %w", Conflict("email already in use")), KindConflict, true},
		{"unclassified", errors.New("connection refused"), 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			kind, ok := KindOf(tt.err)
			if ok != tt.wantOK {
				t.Fatalf("KindOf() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && kind != tt.wantKind {
				t.Errorf("KindOf() kind = %v, want %v", kind, tt.wantKind)
			}
		})
	}
}

func TestKindPredicates(t *testing.T) {
	t.Parallel()

	if !IsInvalid(Invalid("x")) {
		t.Error("IsInvalid should match a validation error")
	}
	if !IsNotFound(NotFoundf("task %d not found", 3)) {
		t.Error("IsNotFound should match a not-found error")
	}
	if !IsConflict(Conflict("x")) {
		t.Error("IsConflict should match a conflict error")
	}
	if IsConflict(Invalid("x")) {
		t.Error("IsConflict should not match a validation error")
	}
	if IsNotFound(errors.New("boom")) {
		t.Error("IsNotFound should not match an unclassified error")
	}
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := NotFoundf("user %d not found", 42)
	if err.Error() != "user 42 not found" {
		t.Errorf("Error() = %q, want %q", err.Error(), "user 42 not found")
	}
	if err.Kind() != KindNotFound {
		t.Errorf("Kind() = %v, want %v", err.Kind(), KindNotFound)
	}
}
