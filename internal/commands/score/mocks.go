package score

import (
	"context"

	"github.com/sourcepay/prscore/internal/services"
	"github.com/stretchr/testify/mock"
)

type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) ScorePullRequest(ctx context.Context, rawURL string, opts services.ScoreOptions) (*services.ScoreOutcome, error) {
	args := m.Called(ctx, rawURL, opts)
	var outcome *services.ScoreOutcome
	if args.Get(0) != nil {
		outcome = args.Get(0).(*services.ScoreOutcome)
	}
	return outcome, args.Error(1)
}
