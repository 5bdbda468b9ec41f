package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeValidation    ErrorType = "VALIDATION"
	TypeVCS           ErrorType = "VCS"
	TypeScoring       ErrorType = "SCORING"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if detail, ok := e.Context["detail"].(string); ok && detail != "" {
			msg += fmt.Sprintf(" - %s", detail)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same sentinel as e. Sentinels refined with
// WithContext or WithError keep matching their base value.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Validation errors
var (
	ErrInvalidReference = NewAppError(TypeValidation, "invalid GitHub PR URL", nil).
				WithSuggestion("Expected: https://github.com/owner/repo/pull/123")

	ErrScoreOutOfRange = NewAppError(TypeValidation, "score must be between 0 and 100", nil)

	ErrInvalidBounty = NewAppError(TypeValidation, "bounty amount must not be negative", nil)
)

// Configuration errors
var (
	ErrConfigInvalid = NewAppError(TypeConfiguration, "configuration is invalid", nil).
				WithSuggestion("Check MAX_FILES_TO_ANALYZE, GITHUB_API_TIMEOUT and PRSCORE_CACHE_TTL")

	ErrConfigLoad = NewAppError(TypeConfiguration, "failed to load configuration", nil).
			WithSuggestion("Verify the YAML file passed with --config is readable")
)

// GitHub/VCS specific errors
var (
	ErrPRNotFound = NewAppError(TypeVCS, "PR not found. It may be private or deleted", nil).
			WithSuggestion("Check the PR URL and that the repository is public or your token can read it")

	ErrRateLimited = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
			WithSuggestion("Wait a few minutes or set GITHUB_ACCESS_TOKEN for higher limits")

	ErrFetchFailed = NewAppError(TypeVCS, "failed to fetch PR data from GitHub API", nil)

	ErrCIUnavailable = NewAppError(TypeVCS, "could not fetch CI status", nil)

	ErrTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
			WithSuggestion("Generate a new token at: https://github.com/settings/tokens\nThen export GITHUB_ACCESS_TOKEN")
)

// Internal errors
var (
	ErrCache   = NewAppError(TypeInternal, "result cache failure", nil)
	ErrHistory = NewAppError(TypeInternal, "scoring history failure", nil)
)

// ShouldFallback reports whether err is an upstream failure that degrades to
// fallback scoring instead of failing the request.
func ShouldFallback(err error) bool {
	return stderrors.Is(err, ErrRateLimited) || stderrors.Is(err, ErrFetchFailed)
}
