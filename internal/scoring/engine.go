// Package scoring turns pull request data into a 0-100 contribution score.
// Every threshold and weight in this package is part of the scoring contract:
// changing one changes scores already paid out against.
package scoring

import (
	"math"

	"github.com/sourcepay/prscore/internal/models"
)

// CIFailurePenalty is subtracted from the combined score when any check run
// did not succeed.
const CIFailurePenalty = 25

const (
	weightCodeQuality   = 0.30
	weightTestCoverage  = 0.20
	weightDocumentation = 0.15
	weightPRDescription = 0.15
	weightCodeStyle     = 0.10
	weightImpact        = 0.10
)

// Combine returns the floored weighted sum of the sub-scores.
func Combine(b models.ScoreBreakdown) int {
	// Conversions keep each product rounded so no FMA changes the floor.
	sum := float64(float64(b.CodeQuality)*weightCodeQuality) +
		float64(float64(b.TestCoverage)*weightTestCoverage) +
		float64(float64(b.Documentation)*weightDocumentation) +
		float64(float64(b.PRDescription)*weightPRDescription) +
		float64(float64(b.CodeStyle)*weightCodeStyle) +
		float64(float64(b.Impact)*weightImpact)
	return int(math.Floor(sum))
}

// Dimension is one weighted sub-score, keyed like the breakdown's YAML field.
type Dimension struct {
	Key    string
	Score  int
	Weight float64
}

// Dimensions lists the sub-scores of b in weight order.
func Dimensions(b models.ScoreBreakdown) []Dimension {
	return []Dimension{
		{Key: "code_quality", Score: b.CodeQuality, Weight: weightCodeQuality},
		{Key: "test_coverage", Score: b.TestCoverage, Weight: weightTestCoverage},
		{Key: "documentation", Score: b.Documentation, Weight: weightDocumentation},
		{Key: "pr_description", Score: b.PRDescription, Weight: weightPRDescription},
		{Key: "code_style", Score: b.CodeStyle, Weight: weightCodeStyle},
		{Key: "impact", Score: b.Impact, Weight: weightImpact},
	}
}

// TestsPassed is true when there are no checks or all of them succeeded.
// Pending checks count as not passed.
func TestsPassed(checks []models.CICheck) bool {
	for _, c := range checks {
		if !c.Succeeded() {
			return false
		}
	}
	return true
}

// Breakdown computes the six dimension scores.
func Breakdown(pr models.PRDetails, files []models.FileChange, checks []models.CICheck) models.ScoreBreakdown {
	return models.ScoreBreakdown{
		CodeQuality:   CodeQuality(files, pr),
		TestCoverage:  TestCoverage(files),
		Documentation: Documentation(files, pr),
		PRDescription: PRDescription(pr),
		CodeStyle:     CodeStyle(files, checks),
		Impact:        Impact(pr, files),
	}
}

// Score is the full analysis of one pull request. It never fails.
func Score(pr models.PRDetails, files []models.FileChange, checks []models.CICheck) models.ScoreResult {
	breakdown := Breakdown(pr, files, checks)
	passed := TestsPassed(checks)

	total := Combine(breakdown)
	if len(checks) > 0 && !passed {
		total = max(0, total-CIFailurePenalty)
	}

	return models.ScoreResult{
		Score: total,
		Feedback: RenderFeedback(FeedbackInput{
			Score:       total,
			Breakdown:   breakdown,
			PR:          pr,
			Files:       files,
			Checks:      checks,
			TestsPassed: passed,
		}),
		Breakdown: breakdown,
		Metadata: &models.ScoreMetadata{
			FilesChanged: pr.ChangedFiles,
			Additions:    pr.Additions,
			Deletions:    pr.Deletions,
			TestsPassed:  passed,
			HasTests:     breakdown.TestCoverage > 50,
		},
	}
}
