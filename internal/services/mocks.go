package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sourcepay/prscore/internal/history"
	"github.com/sourcepay/prscore/internal/models"
	"github.com/sourcepay/prscore/internal/vcs"
)

type (
	MockFetcher struct {
		mock.Mock
	}

	MockResultCache struct {
		mock.Mock
	}

	MockHistory struct {
		mock.Mock
	}
)

func (m *MockFetcher) GetPRDetails(ctx context.Context, ref models.PullRequestRef) (models.PRDetails, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(models.PRDetails), args.Error(1)
}

func (m *MockFetcher) ListPRFiles(ctx context.Context, ref models.PullRequestRef) ([]models.FileChange, error) {
	args := m.Called(ctx, ref)
	var files []models.FileChange
	if args.Get(0) != nil {
		files = args.Get(0).([]models.FileChange)
	}
	return files, args.Error(1)
}

func (m *MockFetcher) ListCIChecks(ctx context.Context, ref models.PullRequestRef, sha string) []models.CICheck {
	args := m.Called(ctx, ref, sha)
	if args.Get(0) == nil {
		return []models.CICheck{}
	}
	return args.Get(0).([]models.CICheck)
}

func (m *MockFetcher) FetchPullRequest(ctx context.Context, ref models.PullRequestRef) (*vcs.PullRequestData, error) {
	args := m.Called(ctx, ref)
	var data *vcs.PullRequestData
	if args.Get(0) != nil {
		data = args.Get(0).(*vcs.PullRequestData)
	}
	return data, args.Error(1)
}

func (m *MockFetcher) GetRateLimit(ctx context.Context) (models.RateLimit, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.RateLimit), args.Error(1)
}

func (m *MockResultCache) Get(ref models.PullRequestRef, headSHA string) (*models.ScoreResult, bool, error) {
	args := m.Called(ref, headSHA)
	var result *models.ScoreResult
	if args.Get(0) != nil {
		result = args.Get(0).(*models.ScoreResult)
	}
	return result, args.Bool(1), args.Error(2)
}

func (m *MockResultCache) Set(ref models.PullRequestRef, headSHA string, result models.ScoreResult) error {
	args := m.Called(ref, headSHA, result)
	return args.Error(0)
}

func (m *MockHistory) Save(ctx context.Context, record history.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
