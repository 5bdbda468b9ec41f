package scoring

import (
	"fmt"
	"strings"

	"github.com/sourcepay/prscore/internal/models"
)

type Band string

const (
	BandExcellent        Band = "excellent"
	BandGreat            Band = "great"
	BandGood             Band = "good"
	BandAcceptable       Band = "acceptable"
	BandNeedsImprovement Band = "needs_improvement"
)

// maxListedFiles caps the per-file lines in the feedback.
const maxListedFiles = 10

func BandOf(score int) Band {
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 80:
		return BandGreat
	case score >= 70:
		return BandGood
	case score >= 60:
		return BandAcceptable
	default:
		return BandNeedsImprovement
	}
}

// Headline is the one-line assessment printed under the overall score.
func (b Band) Headline() string {
	switch b {
	case BandExcellent:
		return "🌟 **Excellent work!** This is a high-quality contribution."
	case BandGreat:
		return "✅ **Great job!** This is a solid contribution with minor areas for improvement."
	case BandGood:
		return "👍 **Good work!** This contribution meets the quality standards."
	case BandAcceptable:
		return "⚠️ **Acceptable.** This contribution has some areas that need attention."
	default:
		return "❌ **Needs Improvement.** This contribution requires significant revisions."
	}
}

type FeedbackInput struct {
	Score       int
	Breakdown   models.ScoreBreakdown
	PR          models.PRDetails
	Files       []models.FileChange
	Checks      []models.CICheck
	TestsPassed bool
}

// tier picks the sentence matching a sub-score: >= high, >= 70, or below.
func tier(score, high int, top, mid, low string) string {
	switch {
	case score >= high:
		return top
	case score >= 70:
		return mid
	default:
		return low
	}
}

// RenderFeedback builds the markdown report for a scored pull request.
func RenderFeedback(in FeedbackInput) string {
	var sb strings.Builder
	b := in.Breakdown

	fmt.Fprintf(&sb, "**Overall Score: %d/100**\n\n", in.Score)
	sb.WriteString(BandOf(in.Score).Headline())
	sb.WriteString("\n\n**Detailed Breakdown:**\n\n")

	codeFiles := filterFiles(in.Files, func(name string) bool { return !strings.Contains(name, "package-lock") })
	fmt.Fprintf(&sb, "- **Code Quality (%d/100)**: Changed %d code files with %d additions and %d deletions. %s\n",
		b.CodeQuality, len(codeFiles), in.PR.Additions, in.PR.Deletions,
		tier(b.CodeQuality, 85,
			"Excellent code structure and best practices followed.",
			"Good code quality with some room for optimization.",
			"Code quality could be improved with better structure and practices."))

	testFiles := filterFiles(in.Files, mentionsTests)
	fmt.Fprintf(&sb, "- **Test Coverage (%d/100)**: Found %d test file(s). %s\n",
		b.TestCoverage, len(testFiles),
		tier(b.TestCoverage, 85,
			"Comprehensive test coverage for new features.",
			"Adequate test coverage, consider adding edge cases.",
			"Test coverage is insufficient. Please add more tests."))

	docFiles := filterFiles(in.Files, isDocFile)
	fmt.Fprintf(&sb, "- **Documentation (%d/100)**: PR description: %d chars. Updated %d documentation file(s). %s\n",
		b.Documentation, textLen(in.PR.BodyText()), len(docFiles),
		tier(b.Documentation, 85,
			"Well-documented code with clear comments and README updates.",
			"Documentation is present but could be more comprehensive.",
			"Documentation is lacking. Please add comments and update docs."))

	fmt.Fprintf(&sb, "- **PR Description (%d/100)**: Title: \"%s\". %s\n",
		b.PRDescription, in.PR.Title,
		tier(b.PRDescription, 85,
			"Clear and detailed PR description explaining changes.",
			"Good PR description, could include more context.",
			"PR description needs more detail about what was changed and why."))

	fmt.Fprintf(&sb, "- **Code Style (%d/100)**: ", b.CodeStyle)
	if hasLintCheck(in.Checks) {
		status := "failed ✗"
		if in.TestsPassed {
			status = "passed ✓"
		}
		fmt.Fprintf(&sb, "CI linting checks: %s. ", status)
	}
	sb.WriteString(tier(b.CodeStyle, 85,
		"Excellent adherence to project coding standards.",
		"Mostly follows code style guidelines.",
		"Code style inconsistencies detected. Please follow project guidelines."))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "- **Impact (%d/100)**: %d total line changes across %d files. %s\n",
		b.Impact, in.PR.Additions+in.PR.Deletions, in.PR.ChangedFiles,
		tier(b.Impact, 85,
			"Significant positive impact on the project.",
			"Good contribution with measurable impact.",
			"Limited impact. Consider addressing more critical issues."))

	if len(in.Checks) > 0 {
		fmt.Fprintf(&sb, "\n**CI/CD Checks:** %d check(s) run.\n", len(in.Checks))
		for _, c := range in.Checks {
			icon := "❌"
			if c.Succeeded() {
				icon = "✅"
			}
			fmt.Fprintf(&sb, "  %s %s: %s\n", icon, c.Name, c.ConclusionText())
		}
	}

	sb.WriteString("\n**Recommendations:**\n")
	improvements := recommendations(in, len(testFiles))
	if len(improvements) == 0 {
		improvements = []string{"Keep up the excellent work!"}
	}
	for _, item := range improvements {
		fmt.Fprintf(&sb, "- %s\n", item)
	}

	sb.WriteString("\n**Files Analyzed:**\n")
	for i, f := range in.Files {
		if i == maxListedFiles {
			break
		}
		fmt.Fprintf(&sb, "- %s (+%d/-%d)\n", f.Filename, f.Additions, f.Deletions)
	}
	if len(in.Files) > maxListedFiles {
		fmt.Fprintf(&sb, "- ... and %d more files\n", len(in.Files)-maxListedFiles)
	}

	return sb.String()
}

func recommendations(in FeedbackInput, testFiles int) []string {
	var out []string
	b := in.Breakdown

	if b.CodeQuality < 80 {
		out = append(out, "Refactor complex functions and reduce file sizes")
	}
	if b.TestCoverage < 80 {
		out = append(out, fmt.Sprintf("Add more unit tests (found %d test file(s))", testFiles))
	}
	if b.Documentation < 80 {
		out = append(out, "Improve code documentation and PR description")
	}
	if b.PRDescription < 80 {
		out = append(out, "Enhance PR description with more context")
	}
	if b.CodeStyle < 85 {
		out = append(out, "Follow style guidelines and fix linting issues")
	}
	if !in.TestsPassed && len(in.Checks) > 0 {
		out = append(out, "Fix failing CI/CD checks before merging")
	}
	return out
}

func hasLintCheck(checks []models.CICheck) bool {
	for _, c := range checks {
		if strings.Contains(strings.ToLower(c.Name), "lint") {
			return true
		}
	}
	return false
}
