package validate

import (
	"context"

	"github.com/sourcepay/prscore/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) ValidatePullRequest(ctx context.Context, rawURL string) (*models.PRDetails, error) {
	args := m.Called(ctx, rawURL)
	var details *models.PRDetails
	if args.Get(0) != nil {
		details = args.Get(0).(*models.PRDetails)
	}
	return details, args.Error(1)
}
