package github

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/go-github/v80/github"

	domainErrors "github.com/sourcepay/prscore/internal/errors"
	"github.com/sourcepay/prscore/internal/models"
)

// classifyError maps a go-github failure onto the domain sentinels. A
// cancelled caller context is returned as is so it never triggers fallback.
func classifyError(ctx context.Context, err error, resp *github.Response, operation string, ref models.PullRequestRef) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	withRef := func(e *domainErrors.AppError) *domainErrors.AppError {
		e = e.WithContext("operation", operation)
		if ref.Valid() {
			e = e.WithContext("repo", ref.Owner+"/"+ref.Repo).WithContext("pr_number", ref.Number)
		}
		return e
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return withRef(domainErrors.ErrRateLimited).
			WithContext("reset", rateErr.Rate.Reset.Time).
			WithError(err)
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		e := withRef(domainErrors.ErrRateLimited)
		if abuseErr.RetryAfter != nil {
			e = e.WithContext("retry_after", abuseErr.RetryAfter.String())
		}
		return e.WithError(err)
	}

	if resp != nil && resp.Response != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return withRef(domainErrors.ErrTokenInvalid).WithError(err)
		case http.StatusNotFound:
			return withRef(domainErrors.ErrPRNotFound).WithError(err)
		case http.StatusTooManyRequests:
			return withRef(domainErrors.ErrRateLimited).
				WithContext("retry_after", resp.Header.Get("Retry-After")).
				WithError(err)
		case http.StatusForbidden:
			if isRateLimitResponse(err, resp) {
				return withRef(domainErrors.ErrRateLimited).
					WithContext("reset", resp.Header.Get("X-RateLimit-Reset")).
					WithError(err)
			}
		}
	}

	return withRef(domainErrors.ErrFetchFailed).WithError(err)
}

func isRateLimitResponse(err error, resp *github.Response) bool {
	if resp.Header.Get("X-RateLimit-Remaining") == "0" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "rate limit")
}
