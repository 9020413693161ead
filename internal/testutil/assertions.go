package testutil

import (
	"errors"
	"testing"

	apperrors "spendtrack/internal/errors"
)

// AssertAppError fails the test unless err wraps the expected AppError.
func AssertAppError(t *testing.T, err error, expected *apperrors.AppError) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error %q, got nil", expected.Code)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError %q, got %T: %v", expected.Code, err, err)
	}
	if appErr.Code != expected.Code {
		t.Fatalf("expected error code %q, got %q (%v)", expected.Code, appErr.Code, err)
	}
}

// AssertNoError fails the test if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
