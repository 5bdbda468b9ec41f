package scoring

import (
	"fmt"
	"math"

	"github.com/sourcepay/prscore/internal/models"
)

// Fallback estimates a score when pull request data is unavailable. Sub-scores
// are pseudo-random but fully determined by the PR number, so repositories
// sharing a number share a fallback score. Metadata is left nil.
func Fallback(prNumber int) models.ScoreResult {
	seed := float64(prNumber)
	pick := func(lo, hi int, offset float64) int {
		x := math.Sin(seed+offset) * 10000
		return int(math.Floor((x-math.Floor(x))*float64(hi-lo+1))) + lo
	}

	breakdown := models.ScoreBreakdown{
		CodeQuality:   pick(70, 100, 1),
		TestCoverage:  pick(60, 95, 2),
		Documentation: pick(65, 95, 3),
		PRDescription: pick(75, 100, 4),
		CodeStyle:     pick(80, 100, 5),
		Impact:        pick(70, 100, 6),
	}
	total := Combine(breakdown)

	return models.ScoreResult{
		Score:     total,
		Feedback:  fallbackFeedback(total),
		Breakdown: breakdown,
		Fallback:  true,
	}
}

func fallbackFeedback(score int) string {
	return "⚠️ **Note:** GitHub API was unavailable. Using fallback scoring.\n\n" +
		fmt.Sprintf("**Overall Score: %d/100** (estimated)\n\n", score) +
		"Please note this score is based on heuristics, not actual code analysis."
}
