package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_AddKeepsFirstMessage(t *testing.T) {
	ve := &ValidationError{}
	ve.Add("email", "is required")
	ve.Add("email", "must be a valid email address")

	if ve.Fields["email"] != "is required" {
		t.Errorf("Fields[email] = %q, want the first message kept", ve.Fields["email"])
	}
}

func TestValidationError_Error(t *testing.T) {
	ve := &ValidationError{}
	if ve.Error() != "validation failed" {
		t.Errorf("empty Error() = %q", ve.Error())
	}

	ve.Add("password", "is required")
	ve.Add("email", "is required")
	want := "validation failed: email: is required; password: is required"
	if ve.Error() != want {
		t.Errorf("Error() = %q, want fields sorted: %q", ve.Error(), want)
	}
}

func TestAsValidationError(t *testing.T) {
	ve := NewValidationError("email", "is required")

	if got, ok := AsValidationError(ve); !ok || got != ve {
		t.Errorf("AsValidationError() = (%v, %v), want the error back", got, ok)
	}
	if got, ok := AsValidationError(fmt.Errorf("wrap: %w", ve)); !ok || got != ve {
		t.Errorf("AsValidationError(wrapped) = (%v, %v), want unwrapped", got, ok)
	}
	if _, ok := AsValidationError(errors.New("other")); ok {
		t.Error("AsValidationError() = true for a plain error")
	}
	if _, ok := AsValidationError(nil); ok {
		t.Error("AsValidationError(nil) = true")
	}
}
