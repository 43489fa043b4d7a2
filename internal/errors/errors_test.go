package errors

import (
	stderrors "errors"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	err := NewExitError(New("something broke"), ExitSystem)
	if err.Error() != "something broke" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestExitError_NilErr(t *testing.T) {
	err := NewChildExitError(42)
	if err.Code != 42 {
		t.Errorf("Code = %d, want 42", err.Code)
	}
	if err.Err != nil {
		t.Errorf("Err = %v, want nil", err.Err)
	}
	if err.Error() != "exit code 42" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestExitError_Unwrap(t *testing.T) {
	underlying := ErrProfileNotFound
	wrapped := NewUserError(Wrapf(underlying, "%q", "claude-3-sonnet"), "run aidp list")

	if !stderrors.Is(wrapped, ErrProfileNotFound) {
		t.Error("errors.Is failed to find the sentinel through ExitError")
	}
}

func TestExitError_As(t *testing.T) {
	var exitErr *ExitError

	err := Wrap(NewUserError(New("bad input"), "fix it"), "outer context")
	if !stderrors.As(err, &exitErr) {
		t.Fatal("errors.As failed to extract *ExitError")
	}
	if exitErr.Code != ExitUser {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitUser)
	}
	if exitErr.Suggestion != "fix it" {
		t.Errorf("Suggestion = %q", exitErr.Suggestion)
	}
}

func TestNewSystemError(t *testing.T) {
	err := NewSystemError(New("disk full"), "free some space")
	if err.Code != ExitSystem {
		t.Errorf("Code = %d, want %d", err.Code, ExitSystem)
	}
}
