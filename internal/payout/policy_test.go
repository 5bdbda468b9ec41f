package payout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/sourcepay/prscore/internal/errors"
)

func TestEvaluate(t *testing.T) {
	t.Run("should approve and pay proportionally", func(t *testing.T) {
		// Act
		d, err := Evaluate(100, 75)

		// Assert
		require.NoError(t, err)
		assert.True(t, d.Approved)
		assert.Equal(t, 75.00, d.Payout)
		assert.Equal(t, ContributionApproved, d.ContributionStatus)
		assert.Equal(t, TaskCompleted, d.TaskStatus)
		assert.Equal(t, StatusPending, d.PayoutStatus)
		assert.Equal(t, 7, d.ReputationGain)
		assert.Equal(t, "🎉 Contribution approved with score 75/100! Payout of 75.00 MUSD is being processed.", d.Message())
	})

	t.Run("should reject below the threshold", func(t *testing.T) {
		d, err := Evaluate(100, 59)

		require.NoError(t, err)
		assert.False(t, d.Approved)
		assert.Zero(t, d.Payout)
		assert.Equal(t, ContributionRejected, d.ContributionStatus)
		assert.Equal(t, TaskDisputed, d.TaskStatus)
		assert.Empty(t, d.PayoutStatus)
		assert.Zero(t, d.ReputationGain)
		assert.Equal(t, "❌ Contribution scored 59/100. Score must be 60+ for approval. Please improve and resubmit.", d.Message())
	})

	t.Run("should approve exactly at the threshold", func(t *testing.T) {
		d, err := Evaluate(250, ApprovalThreshold)

		require.NoError(t, err)
		assert.True(t, d.Approved)
		assert.Equal(t, 150.0, d.Payout)
		assert.Equal(t, 6, d.ReputationGain)
	})

	t.Run("should round payout to cents", func(t *testing.T) {
		d, err := Evaluate(33.33, 67)

		require.NoError(t, err)
		assert.Equal(t, 22.33, d.Payout)
	})

	t.Run("should not create a payout for a zero bounty", func(t *testing.T) {
		d, err := Evaluate(0, 100)

		require.NoError(t, err)
		assert.True(t, d.Approved)
		assert.Zero(t, d.Payout)
		assert.Empty(t, d.PayoutStatus)
		assert.Equal(t, 10, d.ReputationGain)
	})

	t.Run("should reject scores outside 0-100", func(t *testing.T) {
		for _, score := range []int{-1, 101} {
			_, err := Evaluate(100, score)
			assert.ErrorIs(t, err, domainErrors.ErrScoreOutOfRange)
		}
	})

	t.Run("should reject invalid bounties", func(t *testing.T) {
		for _, bounty := range []float64{-5, math.NaN(), math.Inf(1)} {
			_, err := Evaluate(bounty, 80)
			assert.ErrorIs(t, err, domainErrors.ErrInvalidBounty)
		}
	})
}

func TestEvaluate_PayoutNeverExceedsBounty(t *testing.T) {
	for score := 0; score <= 100; score++ {
		d, err := Evaluate(1234.56, score)
		require.NoError(t, err)
		assert.LessOrEqual(t, d.Payout, 1234.56)
		assert.Equal(t, score >= ApprovalThreshold, d.Approved)
	}
}
