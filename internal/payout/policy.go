// Package payout decides what happens to a scored contribution: approval,
// the share of the bounty paid out and the resulting task state. It never
// moves funds.
package payout

import (
	"fmt"
	"math"

	domainErrors "github.com/sourcepay/prscore/internal/errors"
)

// ApprovalThreshold is the lowest score that gets a contribution approved.
const ApprovalThreshold = 60

type TaskStatus string

const (
	TaskOpen       TaskStatus = "OPEN"
	TaskAssigned   TaskStatus = "ASSIGNED"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskSubmitted  TaskStatus = "SUBMITTED"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskDisputed   TaskStatus = "DISPUTED"
)

type ContributionStatus string

const (
	ContributionPending  ContributionStatus = "PENDING"
	ContributionApproved ContributionStatus = "APPROVED"
	ContributionRejected ContributionStatus = "REJECTED"
	ContributionDisputed ContributionStatus = "DISPUTED"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// Decision is the outcome of applying the policy to one scored contribution.
type Decision struct {
	Score              int                `json:"score" yaml:"score"`
	Bounty             float64            `json:"bounty" yaml:"bounty"`
	Approved           bool               `json:"approved" yaml:"approved"`
	Payout             float64            `json:"payout" yaml:"payout"`
	ContributionStatus ContributionStatus `json:"contributionStatus" yaml:"contribution_status"`
	TaskStatus         TaskStatus         `json:"taskStatus" yaml:"task_status"`
	// PayoutStatus is empty when nothing is paid.
	PayoutStatus   Status `json:"payoutStatus,omitempty" yaml:"payout_status,omitempty"`
	ReputationGain int    `json:"reputationGain" yaml:"reputation_gain"`
}

// Evaluate applies the approval threshold to score and sizes the payout as
// the same fraction of bounty, rounded to cents.
func Evaluate(bounty float64, score int) (Decision, error) {
	if score < 0 || score > 100 {
		return Decision{}, domainErrors.ErrScoreOutOfRange.WithContext("score", score)
	}
	if bounty < 0 || math.IsNaN(bounty) || math.IsInf(bounty, 0) {
		return Decision{}, domainErrors.ErrInvalidBounty.WithContext("bounty", bounty)
	}

	if score < ApprovalThreshold {
		return Decision{
			Score:              score,
			Bounty:             bounty,
			ContributionStatus: ContributionRejected,
			TaskStatus:         TaskDisputed,
		}, nil
	}

	d := Decision{
		Score:              score,
		Bounty:             bounty,
		Approved:           true,
		Payout:             round2(bounty * float64(score) / 100),
		ContributionStatus: ContributionApproved,
		TaskStatus:         TaskCompleted,
		ReputationGain:     score / 10,
	}
	if d.Payout > 0 {
		d.PayoutStatus = StatusPending
	}
	return d, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Message is the text shown to the contributor.
func (d Decision) Message() string {
	if d.Approved {
		return fmt.Sprintf("🎉 Contribution approved with score %d/100! Payout of %.2f MUSD is being processed.", d.Score, d.Payout)
	}
	return fmt.Sprintf("❌ Contribution scored %d/100. Score must be %d+ for approval. Please improve and resubmit.", d.Score, ApprovalThreshold)
}
