package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/sourcepay/prscore/internal/errors"
	"github.com/sourcepay/prscore/internal/history"
	"github.com/sourcepay/prscore/internal/logger"
	"github.com/sourcepay/prscore/internal/models"
	"github.com/sourcepay/prscore/internal/scoring"
	"github.com/sourcepay/prscore/internal/vcs"
)

// resultCache defines the methods needed by ContributionService to reuse results.
type resultCache interface {
	Get(ref models.PullRequestRef, headSHA string) (*models.ScoreResult, bool, error)
	Set(ref models.PullRequestRef, headSHA string, result models.ScoreResult) error
}

// historyRecorder defines the methods needed by ContributionService to log runs.
type historyRecorder interface {
	Save(ctx context.Context, record history.Record) error
}

type ContributionService struct {
	fetcher vcs.PRFetcher
	cache   resultCache
	history historyRecorder
	now     func() time.Time
	newID   func() string
}

type ContributionOption func(*ContributionService)

func WithFetcher(f vcs.PRFetcher) ContributionOption {
	return func(s *ContributionService) {
		s.fetcher = f
	}
}

func WithResultCache(c resultCache) ContributionOption {
	return func(s *ContributionService) {
		s.cache = c
	}
}

func WithHistory(h historyRecorder) ContributionOption {
	return func(s *ContributionService) {
		s.history = h
	}
}

func WithClock(now func() time.Time) ContributionOption {
	return func(s *ContributionService) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) ContributionOption {
	return func(s *ContributionService) {
		s.newID = newID
	}
}

func NewContributionService(opts ...ContributionOption) *ContributionService {
	s := &ContributionService{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type ScoreOptions struct {
	SkipCache bool
}

// ScoreOutcome is a scored pull request plus how the score was obtained.
type ScoreOutcome struct {
	RunID    string
	Ref      models.PullRequestRef
	Result   models.ScoreResult
	CacheHit bool
	Duration time.Duration
}

// ScorePullRequest scores the pull request at rawURL. Rate limiting and
// transient upstream failures degrade to fallback scoring; every other error,
// including cancellation, is returned.
func (s *ContributionService) ScorePullRequest(ctx context.Context, rawURL string, opts ScoreOptions) (*ScoreOutcome, error) {
	ref, ok := vcs.ParsePullRequestURL(rawURL)
	if !ok {
		return nil, domainErrors.ErrInvalidReference.WithContext("url", rawURL)
	}

	outcome := &ScoreOutcome{RunID: s.newID(), Ref: ref}
	ctx = logger.With(ctx, "run_id", outcome.RunID, "pr", ref.String())
	log := logger.FromContext(ctx)
	start := s.now()

	log.Info("scoring pull request")

	result, cacheHit, err := s.score(ctx, ref, opts)
	if err != nil {
		return nil, err
	}
	outcome.Result = result
	outcome.CacheHit = cacheHit

	outcome.Duration = s.now().Sub(start)

	log.Info("pull request scored",
		"score", outcome.Result.Score,
		"fallback", outcome.Result.Fallback,
		"cache_hit", outcome.CacheHit,
		"duration_ms", outcome.Duration.Milliseconds())

	s.record(ctx, outcome)

	return outcome, nil
}

// score fetches and scores ref. With a cache the head commit is read first
// so a result is only reused for the exact commit it was computed on.
func (s *ContributionService) score(ctx context.Context, ref models.PullRequestRef, opts ScoreOptions) (models.ScoreResult, bool, error) {
	if s.fetcher == nil {
		return models.ScoreResult{}, false, domainErrors.ErrConfigInvalid.
			WithContext("detail", "no pull request fetcher configured")
	}

	var (
		data *vcs.PullRequestData
		err  error
	)
	if s.cache != nil && !opts.SkipCache {
		var details models.PRDetails
		details, err = s.fetcher.GetPRDetails(ctx, ref)
		if err == nil {
			if cached, hit := s.lookup(ctx, ref, details.HeadSHA); hit {
				return *cached, true, nil
			}
			data, err = s.fetchRest(ctx, ref, details)
		}
	} else {
		data, err = s.fetcher.FetchPullRequest(ctx, ref)
	}
	if err != nil {
		result, fbErr := s.fallback(ctx, ref, err)
		return result, false, fbErr
	}

	logger.Debug(ctx, "pull request data fetched",
		"files", len(data.Files),
		"checks", len(data.Checks),
		"head_sha", data.Details.HeadSHA)

	result := scoring.Score(data.Details, data.Files, data.Checks)
	s.store(ctx, ref, data.Details.HeadSHA, result)
	return result, false, nil
}

func (s *ContributionService) fetchRest(ctx context.Context, ref models.PullRequestRef, details models.PRDetails) (*vcs.PullRequestData, error) {
	files, err := s.fetcher.ListPRFiles(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &vcs.PullRequestData{
		Details: details,
		Files:   files,
		Checks:  s.fetcher.ListCIChecks(ctx, ref, details.HeadSHA),
	}, nil
}

// fallback turns a fetch error into a fallback score seeded by the PR number,
// or returns it when it must not be masked.
func (s *ContributionService) fallback(ctx context.Context, ref models.PullRequestRef, err error) (models.ScoreResult, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return models.ScoreResult{}, ctxErr
	}
	if !domainErrors.ShouldFallback(err) {
		logger.Error(ctx, "failed to fetch pull request", err)
		return models.ScoreResult{}, err
	}
	logger.Warn(ctx, "GitHub unavailable, using fallback scoring", "error", err)
	return scoring.Fallback(ref.Number), nil
}

func (s *ContributionService) lookup(ctx context.Context, ref models.PullRequestRef, headSHA string) (*models.ScoreResult, bool) {
	cached, hit, err := s.cache.Get(ref, headSHA)
	if err != nil {
		logger.Warn(ctx, "cache lookup failed", "error", err)
		return nil, false
	}
	if hit {
		logger.Debug(ctx, "score served from cache", "head_sha", headSHA)
	}
	return cached, hit
}

func (s *ContributionService) store(ctx context.Context, ref models.PullRequestRef, headSHA string, result models.ScoreResult) {
	if s.cache == nil || result.Fallback {
		return
	}
	if err := s.cache.Set(ref, headSHA, result); err != nil {
		logger.Warn(ctx, "could not cache score", "error", err)
	}
}

func (s *ContributionService) record(ctx context.Context, outcome *ScoreOutcome) {
	if s.history == nil {
		return
	}

	err := s.history.Save(ctx, history.Record{
		ID:         outcome.RunID,
		Timestamp:  s.now(),
		PR:         outcome.Ref.String(),
		Score:      outcome.Result.Score,
		Fallback:   outcome.Result.Fallback,
		CacheHit:   outcome.CacheHit,
		DurationMs: outcome.Duration.Milliseconds(),
	})
	if err != nil {
		logger.Warn(ctx, "could not record scoring run", "error", err)
	}
}

// ValidatePullRequest checks that rawURL is a canonical pull request URL and
// that the pull request can be read.
func (s *ContributionService) ValidatePullRequest(ctx context.Context, rawURL string) (*models.PRDetails, error) {
	ref, err := vcs.ParseSubmissionURL(rawURL)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, ref)
}

// PullRequestDetails fetches the metadata of the pull request at rawURL.
func (s *ContributionService) PullRequestDetails(ctx context.Context, rawURL string) (*models.PRDetails, error) {
	ref, ok := vcs.ParsePullRequestURL(rawURL)
	if !ok {
		return nil, domainErrors.ErrInvalidReference.WithContext("url", rawURL)
	}
	return s.details(ctx, ref)
}

func (s *ContributionService) details(ctx context.Context, ref models.PullRequestRef) (*models.PRDetails, error) {
	if s.fetcher == nil {
		return nil, domainErrors.ErrConfigInvalid.
			WithContext("detail", "no pull request fetcher configured")
	}

	details, err := s.fetcher.GetPRDetails(ctx, ref)
	if err != nil {
		logger.Error(ctx, "failed to get pull request details", err, "pr", ref.String())
		return nil, err
	}
	return &details, nil
}

// RateLimit reports the remaining upstream quota. On failure the placeholder
// returned by the fetcher is passed through together with the error.
func (s *ContributionService) RateLimit(ctx context.Context) (models.RateLimit, error) {
	if s.fetcher == nil {
		return models.RateLimit{}, domainErrors.ErrConfigInvalid.
			WithContext("detail", "no pull request fetcher configured")
	}
	return s.fetcher.GetRateLimit(ctx)
}
