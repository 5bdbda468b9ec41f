package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WithError(t *testing.T) {
	baseErr := errors.New("connection reset")
	appErr := ErrFetchFailed.WithError(baseErr)

	if appErr.Err != baseErr {
		t.Errorf("Expected underlying error to be %v, got %v", baseErr, appErr.Err)
	}

	if appErr.Type != TypeVCS {
		t.Errorf("Expected type %s, got %s", TypeVCS, appErr.Type)
	}

	if ErrFetchFailed.Err != nil {
		t.Error("WithError must not mutate the sentinel")
	}
}

func TestAppError_WithContext(t *testing.T) {
	appErr := ErrPRNotFound.WithContext("owner", "foo").WithContext("pr_number", 42)

	if appErr.Context["owner"] != "foo" {
		t.Errorf("Expected owner context 'foo', got %v", appErr.Context["owner"])
	}

	if appErr.Context["pr_number"] != 42 {
		t.Errorf("Expected pr_number context 42, got %v", appErr.Context["pr_number"])
	}

	if len(ErrPRNotFound.Context) != 0 {
		t.Error("WithContext must not mutate the sentinel")
	}
}

func TestAppError_Error_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		contains []string
	}{
		{
			name: "Simple error without underlying error",
			err:  ErrRateLimited,
			contains: []string{
				"VCS",
				"rate limit exceeded",
			},
		},
		{
			name: "Error with underlying error",
			err:  ErrFetchFailed.WithError(errors.New("502 Bad Gateway")),
			contains: []string{
				"VCS",
				"failed to fetch PR data",
				"502 Bad Gateway",
			},
		},
		{
			name: "Error with detail context",
			err: ErrInvalidReference.
				WithContext("url", "https://example.com").
				WithContext("detail", "missing /pull/ segment"),
			contains: []string{
				"VALIDATION",
				"invalid GitHub PR URL",
				"missing /pull/ segment",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				assert.Contains(t, msg, want)
			}
		})
	}
}

func TestAppError_Is(t *testing.T) {
	t.Run("refined sentinel still matches its base", func(t *testing.T) {
		err := ErrRateLimited.WithContext("retry_after", "60").WithError(errors.New("403"))
		assert.True(t, errors.Is(err, ErrRateLimited))
		assert.False(t, errors.Is(err, ErrPRNotFound))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("scoring foo/bar#1: %w", ErrPRNotFound.WithContext("owner", "foo"))
		assert.True(t, errors.Is(err, ErrPRNotFound))
	})

	t.Run("errors.As exposes the AppError", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", ErrTokenInvalid)
		var appErr *AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, TypeVCS, appErr.Type)
	})
}

func TestShouldFallback(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", ErrRateLimited.WithContext("operation", "get PR"), true},
		{"transient failure", ErrFetchFailed.WithError(errors.New("timeout")), true},
		{"not found", ErrPRNotFound, false},
		{"invalid token", ErrTokenInvalid, false},
		{"invalid reference", ErrInvalidReference, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldFallback(tt.err))
		})
	}
}
