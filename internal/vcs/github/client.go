package github

import (
	"context"
	"net/http"
	"time"

	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/sourcepay/prscore/internal/logger"
	"github.com/sourcepay/prscore/internal/models"
	"github.com/sourcepay/prscore/internal/vcs"
)

var _ vcs.PRFetcher = (*GitHubClient)(nil)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxFiles = 50

	// maxPerPage is the largest page GitHub serves for list endpoints.
	maxPerPage = 100
)

type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
}

type ChecksService interface {
	ListCheckRunsForRef(ctx context.Context, owner, repo, ref string, opts *github.ListCheckRunsOptions) (*github.ListCheckRunsResults, *github.Response, error)
}

type RateLimitService interface {
	Get(ctx context.Context) (*github.RateLimits, *github.Response, error)
}

// GitHubClient reads pull request data from the GitHub REST API. It holds no
// per-request state and is safe for concurrent use.
type GitHubClient struct {
	prService        PullRequestsService
	checksService    ChecksService
	rateLimitService RateLimitService
	maxFiles         int
	now              func() time.Time
}

func NewGitHubClient(ctx context.Context, token string, timeout time.Duration, maxFiles int) *GitHubClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		logger.Info(ctx, "github API initialized with authentication")
	} else {
		logger.Info(ctx, "github API initialized without authentication, rate limits apply")
	}
	httpClient.Timeout = timeout

	client := github.NewClient(httpClient)
	return NewGitHubClientWithServices(client.PullRequests, client.Checks, client.RateLimit, maxFiles)
}

func NewGitHubClientWithServices(
	prService PullRequestsService,
	checksService ChecksService,
	rateLimitService RateLimitService,
	maxFiles int,
) *GitHubClient {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	return &GitHubClient{
		prService:        prService,
		checksService:    checksService,
		rateLimitService: rateLimitService,
		maxFiles:         maxFiles,
		now:              time.Now,
	}
}

func (ghc *GitHubClient) GetPRDetails(ctx context.Context, ref models.PullRequestRef) (models.PRDetails, error) {
	log := logger.FromContext(ctx)

	log.Debug("fetching github pull request",
		"owner", ref.Owner,
		"repo", ref.Repo,
		"pr_number", ref.Number)

	pr, resp, err := ghc.prService.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		log.Debug("failed to fetch github PR",
			"error", err,
			"owner", ref.Owner,
			"repo", ref.Repo,
			"pr_number", ref.Number)
		return models.PRDetails{}, classifyError(ctx, err, resp, "get PR", ref)
	}

	details := toPRDetails(pr)

	log.Debug("github PR fetched successfully",
		"pr_number", details.Number,
		"title", details.Title,
		"changed_files", details.ChangedFiles,
		"head_sha", details.HeadSHA)

	return details, nil
}

// ListPRFiles pages through the changed files until maxFiles entries are
// collected or GitHub has no more pages.
func (ghc *GitHubClient) ListPRFiles(ctx context.Context, ref models.PullRequestRef) ([]models.FileChange, error) {
	log := logger.FromContext(ctx)

	opts := &github.ListOptions{PerPage: min(ghc.maxFiles, maxPerPage)}
	files := make([]models.FileChange, 0, opts.PerPage)

	for {
		page, resp, err := ghc.prService.ListFiles(ctx, ref.Owner, ref.Repo, ref.Number, opts)
		if err != nil {
			return nil, classifyError(ctx, err, resp, "list PR files", ref)
		}

		for _, f := range page {
			files = append(files, toFileChange(f))
		}

		if len(files) >= ghc.maxFiles || resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if len(files) > ghc.maxFiles {
		files = files[:ghc.maxFiles]
	}

	log.Debug("github PR files fetched",
		"pr_number", ref.Number,
		"files", len(files),
		"max_files", ghc.maxFiles)

	return files, nil
}

// ListCIChecks returns the check runs of sha. CI status is optional for
// scoring: any failure is logged and yields an empty list.
func (ghc *GitHubClient) ListCIChecks(ctx context.Context, ref models.PullRequestRef, sha string) []models.CICheck {
	log := logger.FromContext(ctx)

	if sha == "" {
		return []models.CICheck{}
	}

	opts := &github.ListCheckRunsOptions{ListOptions: github.ListOptions{PerPage: maxPerPage}}
	result, resp, err := ghc.checksService.ListCheckRunsForRef(ctx, ref.Owner, ref.Repo, sha, opts)
	if err != nil {
		status := 0
		if resp != nil && resp.Response != nil {
			status = resp.StatusCode
		}
		log.Warn("could not fetch CI status",
			"error", err,
			"pr", ref.String(),
			"sha", sha,
			"status_code", status)
		return []models.CICheck{}
	}

	if result == nil {
		return []models.CICheck{}
	}

	checks := make([]models.CICheck, 0, len(result.CheckRuns))
	for _, run := range result.CheckRuns {
		checks = append(checks, toCICheck(run))
	}

	log.Debug("github check runs fetched",
		"pr_number", ref.Number,
		"count", len(checks),
		"total", result.GetTotal())

	return checks
}

// FetchPullRequest fetches details and files concurrently, then the check
// runs of the head commit. Either of the first two failing fails the call.
func (ghc *GitHubClient) FetchPullRequest(ctx context.Context, ref models.PullRequestRef) (*vcs.PullRequestData, error) {
	start := ghc.now()

	var (
		details models.PRDetails
		files   []models.FileChange
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details, err = ghc.GetPRDetails(gctx, ref)
		return err
	})
	g.Go(func() error {
		var err error
		files, err = ghc.ListPRFiles(gctx, ref)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	checks := ghc.ListCIChecks(ctx, ref, details.HeadSHA)

	logger.Info(ctx, "pull request data fetched",
		"pr", ref.String(),
		"files", len(files),
		"checks", len(checks),
		"duration_ms", ghc.now().Sub(start).Milliseconds())

	return &vcs.PullRequestData{
		Details: details,
		Files:   files,
		Checks:  checks,
	}, nil
}

// GetRateLimit reports the core API quota. On failure it returns a
// placeholder of 0 remaining out of 5000, resetting in an hour, with the error.
func (ghc *GitHubClient) GetRateLimit(ctx context.Context) (models.RateLimit, error) {
	limits, resp, err := ghc.rateLimitService.Get(ctx)
	if err != nil {
		logger.Error(ctx, "failed to check rate limit", err)
		return models.RateLimit{
			Limit:     5000,
			Remaining: 0,
			Reset:     ghc.now().Add(time.Hour),
		}, classifyError(ctx, err, resp, "get rate limit", models.PullRequestRef{})
	}

	core := limits.GetCore()
	return models.RateLimit{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     core.Reset.Time,
	}, nil
}

// unknownAuthor stands in for pull requests whose user is missing, e.g. a
// deleted account.
const unknownAuthor = "unknown"

func toPRDetails(pr *github.PullRequest) models.PRDetails {
	author := pr.GetUser().GetLogin()
	if author == "" {
		author = unknownAuthor
	}

	return models.PRDetails{
		Number:       pr.GetNumber(),
		Title:        pr.GetTitle(),
		Body:         pr.Body,
		State:        pr.GetState(),
		Merged:       pr.GetMerged(),
		Mergeable:    pr.Mergeable,
		Additions:    pr.GetAdditions(),
		Deletions:    pr.GetDeletions(),
		ChangedFiles: pr.GetChangedFiles(),
		Commits:      pr.GetCommits(),
		CreatedAt:    pr.GetCreatedAt().Time,
		UpdatedAt:    pr.GetUpdatedAt().Time,
		AuthorLogin:  author,
		AuthorID:     pr.GetUser().GetID(),
		HeadRef:      pr.GetHead().GetRef(),
		HeadSHA:      pr.GetHead().GetSHA(),
	}
}

func toFileChange(f *github.CommitFile) models.FileChange {
	return models.FileChange{
		Filename:  f.GetFilename(),
		Status:    models.FileStatus(f.GetStatus()),
		Additions: f.GetAdditions(),
		Deletions: f.GetDeletions(),
		Changes:   f.GetChanges(),
		Patch:     f.Patch,
	}
}

func toCICheck(run *github.CheckRun) models.CICheck {
	check := models.CICheck{
		Name:       run.GetName(),
		Status:     run.GetStatus(),
		Conclusion: run.Conclusion,
	}
	if run.StartedAt != nil {
		t := run.StartedAt.Time
		check.StartedAt = &t
	}
	if run.CompletedAt != nil {
		t := run.CompletedAt.Time
		check.CompletedAt = &t
	}
	return check
}
