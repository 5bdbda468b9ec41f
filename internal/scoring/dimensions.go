package scoring

import (
	"strings"
	"unicode/utf8"

	"github.com/sourcepay/prscore/internal/models"
	"github.com/sourcepay/prscore/internal/regex"
)

func clamp(score int) int {
	return max(0, min(100, score))
}

func textLen(s string) int {
	return utf8.RuneCountInString(s)
}

// CodeQuality rewards a high share of real code files, small focused PRs and
// tidy commit counts.
func CodeQuality(files []models.FileChange, pr models.PRDetails) int {
	score := 70

	codeFiles := filterFiles(files, isCodeFile)
	if len(codeFiles) > 0 {
		ratio := float64(len(codeFiles)) / float64(max(len(files), 1))
		score += int(ratio * 20)
	}

	if pr.ChangedFiles > 30 {
		score -= 15
	} else if pr.ChangedFiles > 15 {
		score -= 5
	}

	if pr.Commits >= 1 && pr.Commits <= 5 {
		score += 10
	} else if pr.Commits > 20 {
		score -= 10
	}

	if anyFile(codeFiles, func(f models.FileChange) bool { return f.Additions > 500 }) {
		score -= 10
	}

	return clamp(score)
}

func TestCoverage(files []models.FileChange) int {
	testFiles := filterFiles(files, isTestFile)
	if len(testFiles) == 0 {
		return 40
	}

	score := 70

	sourceFiles := filterFiles(files, isSourceFile)
	if len(sourceFiles) > 0 {
		ratio := float64(len(testFiles)) / float64(len(sourceFiles))
		switch {
		case ratio >= 1:
			score = 95
		case ratio >= 0.5:
			score = 85
		case ratio >= 0.3:
			score = 75
		}
	}

	testAdditions := 0
	for _, f := range testFiles {
		testAdditions += f.Additions
	}
	if float64(testAdditions)/float64(len(testFiles)) > 20 {
		score += 5
	}

	return clamp(score)
}

func Documentation(files []models.FileChange, pr models.PRDetails) int {
	score := 50

	if anyFile(files, func(f models.FileChange) bool { return isDocFile(f.Filename) }) {
		score += 25
	}

	bodyLen := textLen(pr.BodyText())
	if bodyLen > 200 {
		score += 15
	} else if bodyLen > 50 {
		score += 5
	}

	if anyFile(files, func(f models.FileChange) bool { return hasCommentMarker(f.PatchText()) }) {
		score += 10
	}

	return clamp(score)
}

func PRDescription(pr models.PRDetails) int {
	score := 50

	titleLen := textLen(pr.Title)
	if titleLen >= 20 && titleLen <= 100 {
		score += 15
	} else if titleLen < 10 {
		score -= 10
	}

	if regex.ConventionalTitle.MatchString(pr.Title) {
		score += 10
	}

	body := pr.BodyText()
	bodyLen := textLen(body)
	switch {
	case bodyLen > 300:
		score += 20
	case bodyLen > 150:
		score += 15
	case bodyLen > 50:
		score += 5
	default:
		score -= 10
	}

	if strings.Contains(body, "#") || strings.Contains(body, "closes") {
		score += 5
	}

	return clamp(score)
}

// CodeStyle trusts lint/style/format check runs when present and rewards
// changes confined to a few file types.
func CodeStyle(files []models.FileChange, checks []models.CICheck) int {
	score := 80

	var styleChecks []models.CICheck
	for _, c := range checks {
		if isStyleCheck(c.Name) {
			styleChecks = append(styleChecks, c)
		}
	}
	if len(styleChecks) > 0 {
		if TestsPassed(styleChecks) {
			score = 95
		} else {
			score = 60
		}
	}

	extensions := make(map[string]struct{}, len(files))
	for _, f := range files {
		extensions[extension(f.Filename)] = struct{}{}
	}
	if len(extensions) <= 3 {
		score += 5
	}

	return clamp(score)
}

func Impact(pr models.PRDetails, files []models.FileChange) int {
	score := 60

	total := pr.Additions + pr.Deletions
	switch {
	case total > 500:
		score += 20
	case total > 200:
		score += 15
	case total > 50:
		score += 10
	case total < 10:
		score -= 10
	}

	if anyFile(files, func(f models.FileChange) bool { return isCriticalPath(f.Filename) }) {
		score += 10
	}

	additions, deletions := float64(pr.Additions), float64(pr.Deletions)
	balance := min(additions/max(deletions, 1), deletions/max(additions, 1))
	if balance > 0.5 {
		score += 10
	}

	return clamp(score)
}
