package scoring

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcepay/prscore/internal/models"
)

func minimalFixPR() (models.PRDetails, []models.FileChange) {
	pr := models.PRDetails{
		Number:       12,
		Title:        "fix",
		Body:         body(""),
		Additions:    10,
		Deletions:    2,
		ChangedFiles: 3,
		Commits:      2,
		HeadSHA:      "abc123",
	}
	files := []models.FileChange{
		file("src/main.go", 6, 2),
		file("src/util.go", 2, 0),
		file("src/handler.go", 2, 0),
	}
	return pr, files
}

func TestScore_MinimalPullRequest(t *testing.T) {
	// Arrange
	pr, files := minimalFixPR()

	// Act
	result := Score(pr, files, nil)

	// Assert
	assert.Equal(t, models.ScoreBreakdown{
		CodeQuality:   100,
		TestCoverage:  40,
		Documentation: 50,
		PRDescription: 30,
		CodeStyle:     85,
		Impact:        60,
	}, result.Breakdown)
	assert.Equal(t, 64, result.Score)
	assert.LessOrEqual(t, result.Score, 69, "should be Acceptable or below")
	assert.False(t, result.Fallback)

	require.NotNil(t, result.Metadata)
	assert.Equal(t, models.ScoreMetadata{
		FilesChanged: 3,
		Additions:    10,
		Deletions:    2,
		TestsPassed:  true,
		HasTests:     false,
	}, *result.Metadata)
}

func TestScore_WellTestedPullRequest(t *testing.T) {
	// Arrange
	pr := models.PRDetails{
		Number:       12,
		Title:        "fix",
		Body:         body(strings.Repeat("d", 289) + " Closes #12"),
		Additions:    70,
		Deletions:    2,
		ChangedFiles: 6,
		Commits:      2,
	}
	files := []models.FileChange{
		file("src/app.ts", 6, 2),
		file("src/util.ts", 2, 0),
		file("src/handler.ts", 2, 0),
		file("src/app.test.ts", 30, 0),
		file("src/util.test.ts", 25, 0),
		file("README.md", 5, 0),
	}
	checks := []models.CICheck{check("build", "success"), check("lint", "success")}

	// Act
	result := Score(pr, files, checks)

	// Assert
	assert.Equal(t, models.ScoreBreakdown{
		CodeQuality:   96,
		TestCoverage:  90,
		Documentation: 90,
		PRDescription: 60,
		CodeStyle:     100,
		Impact:        70,
	}, result.Breakdown)
	assert.Equal(t, 86, result.Score)
	assert.Greater(t, result.Score, 80)
	assert.True(t, result.Metadata.TestsPassed)
	assert.True(t, result.Metadata.HasTests)
}

func TestScore_FailingChecksCostExactlyThePenalty(t *testing.T) {
	pr, files := minimalFixPR()

	passing := Score(pr, files, []models.CICheck{check("build", "success")})

	t.Run("failure", func(t *testing.T) {
		failing := Score(pr, files, []models.CICheck{check("build", "failure")})
		assert.Equal(t, passing.Breakdown, failing.Breakdown)
		assert.Equal(t, passing.Score-CIFailurePenalty, failing.Score)
		assert.False(t, failing.Metadata.TestsPassed)
	})

	t.Run("pending counts as not passed", func(t *testing.T) {
		pending := Score(pr, files, []models.CICheck{check("build", "success"), check("e2e", "")})
		assert.Equal(t, passing.Score-CIFailurePenalty, pending.Score)
	})

	t.Run("score is never negative", func(t *testing.T) {
		breakdown := models.ScoreBreakdown{}
		assert.Equal(t, 0, Combine(breakdown))

		empty := Score(models.PRDetails{Title: "x"}, nil, []models.CICheck{check("build", "failure")})
		assert.GreaterOrEqual(t, empty.Score, 0)
	})
}

func TestCombine(t *testing.T) {
	t.Run("all hundreds", func(t *testing.T) {
		assert.Equal(t, 100, Combine(models.ScoreBreakdown{CodeQuality: 100, TestCoverage: 100, Documentation: 100, PRDescription: 100, CodeStyle: 100, Impact: 100}))
	})

	t.Run("weights are applied per dimension", func(t *testing.T) {
		assert.Equal(t, 30, Combine(models.ScoreBreakdown{CodeQuality: 100}))
		assert.Equal(t, 20, Combine(models.ScoreBreakdown{TestCoverage: 100}))
		assert.Equal(t, 15, Combine(models.ScoreBreakdown{Documentation: 100}))
		assert.Equal(t, 15, Combine(models.ScoreBreakdown{PRDescription: 100}))
		assert.Equal(t, 10, Combine(models.ScoreBreakdown{CodeStyle: 100}))
		assert.Equal(t, 10, Combine(models.ScoreBreakdown{Impact: 100}))
	})

	t.Run("result is floored", func(t *testing.T) {
		assert.Equal(t, 64, Combine(models.ScoreBreakdown{CodeQuality: 100, TestCoverage: 40, Documentation: 50, PRDescription: 30, CodeStyle: 85, Impact: 60}))
	})

	t.Run("monotonic in every dimension", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(7, 11))
		for i := 0; i < 500; i++ {
			b := randomBreakdown(rng)
			base := Combine(b)
			for dim := 0; dim < 6; dim++ {
				raised := b
				bump(&raised, dim)
				assert.GreaterOrEqual(t, Combine(raised), base, "dimension %d of %+v", dim, b)
			}
		}
	})
}

func TestDimensions(t *testing.T) {
	dims := Dimensions(models.ScoreBreakdown{CodeQuality: 100, TestCoverage: 40, Documentation: 50, PRDescription: 30, CodeStyle: 85, Impact: 60})

	require.Len(t, dims, 6)
	assert.Equal(t, Dimension{Key: "code_quality", Score: 100, Weight: 0.30}, dims[0])
	assert.Equal(t, Dimension{Key: "impact", Score: 60, Weight: 0.10}, dims[5])

	var total float64
	for _, d := range dims {
		total += d.Weight
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func randomBreakdown(rng *rand.Rand) models.ScoreBreakdown {
	return models.ScoreBreakdown{
		CodeQuality:   rng.IntN(101),
		TestCoverage:  rng.IntN(101),
		Documentation: rng.IntN(101),
		PRDescription: rng.IntN(101),
		CodeStyle:     rng.IntN(101),
		Impact:        rng.IntN(101),
	}
}

func bump(b *models.ScoreBreakdown, dim int) {
	fields := []*int{&b.CodeQuality, &b.TestCoverage, &b.Documentation, &b.PRDescription, &b.CodeStyle, &b.Impact}
	*fields[dim] = min(100, *fields[dim]+1)
}

func TestScore_StaysWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	names := []string{
		"src/app.ts", "src/app.test.ts", "README.md", "package-lock.json", "contracts/Bounty.sol",
		"docs/guide.md", "dist/app.min.js", "internal/api/handler.go", "__tests__/x.js", "Makefile",
	}
	conclusions := []string{"success", "failure", "", "neutral"}

	for i := 0; i < 300; i++ {
		n := rng.IntN(40)
		files := make([]models.FileChange, n)
		for j := range files {
			files[j] = file(names[rng.IntN(len(names))], rng.IntN(800), rng.IntN(800))
		}
		checks := make([]models.CICheck, rng.IntN(4))
		for j := range checks {
			checks[j] = check([]string{"lint", "build", "format"}[rng.IntN(3)], conclusions[rng.IntN(len(conclusions))])
		}
		pr := models.PRDetails{
			Title:        strings.Repeat("t", rng.IntN(120)),
			Body:         body(strings.Repeat("#", rng.IntN(400))),
			Additions:    rng.IntN(2000),
			Deletions:    rng.IntN(2000),
			ChangedFiles: n,
			Commits:      rng.IntN(30),
		}

		result := Score(pr, files, checks)

		for _, v := range []int{
			result.Score,
			result.Breakdown.CodeQuality, result.Breakdown.TestCoverage, result.Breakdown.Documentation,
			result.Breakdown.PRDescription, result.Breakdown.CodeStyle, result.Breakdown.Impact,
		} {
			require.GreaterOrEqual(t, v, 0)
			require.LessOrEqual(t, v, 100)
		}
	}
}

func TestScore_IsDeterministic(t *testing.T) {
	pr, files := minimalFixPR()
	checks := []models.CICheck{check("lint", "failure")}

	assert.Equal(t, Score(pr, files, checks), Score(pr, files, checks))
}

func TestTestsPassed(t *testing.T) {
	assert.True(t, TestsPassed(nil))
	assert.True(t, TestsPassed([]models.CICheck{check("a", "success")}))
	assert.False(t, TestsPassed([]models.CICheck{check("a", "success"), check("b", "skipped")}))
	assert.False(t, TestsPassed([]models.CICheck{check("a", "")}))
}

func TestFallback(t *testing.T) {
	t.Run("same number gives the same result", func(t *testing.T) {
		assert.Equal(t, Fallback(42), Fallback(42))
	})

	t.Run("different numbers give different estimates", func(t *testing.T) {
		assert.NotEqual(t, Fallback(1).Breakdown, Fallback(42).Breakdown)
	})

	t.Run("sub-scores stay in their ranges", func(t *testing.T) {
		for n := 1; n <= 2000; n++ {
			r := Fallback(n)
			b := r.Breakdown
			require.True(t, b.CodeQuality >= 70 && b.CodeQuality <= 100, "pr %d: %+v", n, b)
			require.True(t, b.TestCoverage >= 60 && b.TestCoverage <= 95, "pr %d: %+v", n, b)
			require.True(t, b.Documentation >= 65 && b.Documentation <= 95, "pr %d: %+v", n, b)
			require.True(t, b.PRDescription >= 75 && b.PRDescription <= 100, "pr %d: %+v", n, b)
			require.True(t, b.CodeStyle >= 80 && b.CodeStyle <= 100, "pr %d: %+v", n, b)
			require.True(t, b.Impact >= 70 && b.Impact <= 100, "pr %d: %+v", n, b)
			require.Equal(t, Combine(b), r.Score)
		}
	})

	t.Run("flags the result and omits metadata", func(t *testing.T) {
		r := Fallback(7)
		assert.True(t, r.Fallback)
		assert.Nil(t, r.Metadata)
		assert.True(t, strings.HasPrefix(r.Feedback, "⚠️ **Note:** GitHub API was unavailable. Using fallback scoring."))
		assert.Contains(t, r.Feedback, fmt.Sprintf("**Overall Score: %d/100** (estimated)", r.Score))
		assert.True(t, strings.HasSuffix(r.Feedback, "not actual code analysis."))
	})
}
