package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockPRService struct {
	mock.Mock
}

func (m *MockPRService) Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	var pr *github.PullRequest
	if args.Get(0) != nil {
		pr = args.Get(0).(*github.PullRequest)
	}
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return pr, resp, args.Error(2)
}

func (m *MockPRService) ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error) {
	// Page is mutated by the caller between requests; match on a copy.
	var snapshot *github.ListOptions
	if opts != nil {
		o := *opts
		snapshot = &o
	}
	args := m.Called(ctx, owner, repo, number, snapshot)
	var files []*github.CommitFile
	if args.Get(0) != nil {
		files = args.Get(0).([]*github.CommitFile)
	}
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return files, resp, args.Error(2)
}

type MockChecksService struct {
	mock.Mock
}

func (m *MockChecksService) ListCheckRunsForRef(ctx context.Context, owner, repo, ref string, opts *github.ListCheckRunsOptions) (*github.ListCheckRunsResults, *github.Response, error) {
	args := m.Called(ctx, owner, repo, ref, opts)
	var result *github.ListCheckRunsResults
	if args.Get(0) != nil {
		result = args.Get(0).(*github.ListCheckRunsResults)
	}
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return result, resp, args.Error(2)
}

type MockRateLimitService struct {
	mock.Mock
}

func (m *MockRateLimitService) Get(ctx context.Context) (*github.RateLimits, *github.Response, error) {
	args := m.Called(ctx)
	var limits *github.RateLimits
	if args.Get(0) != nil {
		limits = args.Get(0).(*github.RateLimits)
	}
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return limits, resp, args.Error(2)
}
