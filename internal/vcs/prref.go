package vcs

import (
	"strconv"
	"strings"

	domainErrors "github.com/sourcepay/prscore/internal/errors"
	"github.com/sourcepay/prscore/internal/models"
	"github.com/sourcepay/prscore/internal/regex"
)

// ParsePullRequestURL extracts owner, repo and number from the first
// github.com/<owner>/<repo>/pull/<n> occurrence in raw. It returns false when
// there is none or the number is not a positive int.
func ParsePullRequestURL(raw string) (models.PullRequestRef, bool) {
	m := regex.PullRequestURL.FindStringSubmatch(raw)
	if m == nil {
		return models.PullRequestRef{}, false
	}

	n, err := strconv.Atoi(m[3])
	if err != nil || n <= 0 {
		return models.PullRequestRef{}, false
	}

	return models.PullRequestRef{Owner: m[1], Repo: m[2], Number: n}, true
}

// ValidateSubmissionURL accepts only the canonical form
// https://github.com/<owner>/<repo>/pull/<n> with nothing around it.
func ValidateSubmissionURL(raw string) error {
	if !regex.PullRequestSubmitURL.MatchString(raw) {
		return domainErrors.ErrInvalidReference.
			WithContext("url", raw).
			WithContext("detail", submissionDetail(raw))
	}
	return nil
}

// ParseSubmissionURL validates raw as given, then parses it. Surrounding
// whitespace is rejected.
func ParseSubmissionURL(raw string) (models.PullRequestRef, error) {
	if err := ValidateSubmissionURL(raw); err != nil {
		return models.PullRequestRef{}, err
	}

	ref, ok := ParsePullRequestURL(raw)
	if !ok {
		return models.PullRequestRef{}, domainErrors.ErrInvalidReference.
			WithContext("url", raw).
			WithContext("detail", "pull request number must be positive")
	}
	return ref, nil
}

func submissionDetail(raw string) string {
	switch {
	case raw == "":
		return "empty URL"
	case !strings.HasPrefix(raw, "https://"):
		return "URL must start with https://"
	case !strings.Contains(raw, "/pull/"):
		return "URL must point to a pull request"
	default:
		return "unexpected characters around the pull request URL"
	}
}
