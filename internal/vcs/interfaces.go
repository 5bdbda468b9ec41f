package vcs

import (
	"context"

	"github.com/sourcepay/prscore/internal/models"
)

// PullRequestData is everything the scoring engine needs about one pull request.
type PullRequestData struct {
	Details models.PRDetails
	Files   []models.FileChange
	Checks  []models.CICheck
}

// PRFetcher defines the read-only operations against a code host.
type PRFetcher interface {
	// GetPRDetails gets the metadata of a pull request.
	GetPRDetails(ctx context.Context, ref models.PullRequestRef) (models.PRDetails, error)
	// ListPRFiles gets the changed files, truncated to the configured maximum.
	ListPRFiles(ctx context.Context, ref models.PullRequestRef) ([]models.FileChange, error)
	// ListCIChecks gets the check runs of a commit. Failures yield an empty list.
	ListCIChecks(ctx context.Context, ref models.PullRequestRef, sha string) []models.CICheck
	// FetchPullRequest gets details, files and checks in one call.
	FetchPullRequest(ctx context.Context, ref models.PullRequestRef) (*PullRequestData, error)
	// GetRateLimit gets the remaining API quota.
	GetRateLimit(ctx context.Context) (models.RateLimit, error)
}
