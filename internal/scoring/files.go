package scoring

import (
	"strings"

	"github.com/sourcepay/prscore/internal/models"
)

// isCodeFile excludes lockfiles, minified bundles, JSON and markdown.
func isCodeFile(name string) bool {
	return !strings.Contains(name, "package-lock.json") &&
		!strings.Contains(name, "yarn.lock") &&
		!strings.Contains(name, ".min.") &&
		!strings.HasSuffix(name, ".json") &&
		!strings.HasSuffix(name, ".md")
}

func isTestFile(name string) bool {
	return strings.Contains(name, ".test.") ||
		strings.Contains(name, ".spec.") ||
		strings.Contains(name, "__tests__") ||
		strings.Contains(name, "/test/") ||
		strings.Contains(name, "/tests/")
}

// mentionsTests is the looser match used when reporting test counts.
func mentionsTests(name string) bool {
	return strings.Contains(name, "test") ||
		strings.Contains(name, "spec") ||
		strings.Contains(name, "__tests__")
}

var sourceExtensions = []string{".ts", ".js", ".tsx", ".jsx", ".sol"}

func isSourceFile(name string) bool {
	if strings.Contains(name, "test") || strings.Contains(name, "spec") {
		return false
	}
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func isDocFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "readme") ||
		strings.Contains(lower, "doc") ||
		strings.HasSuffix(name, ".md")
}

var commentMarkers = []string{"//", "/*", "#", `"""`}

func hasCommentMarker(patch string) bool {
	for _, marker := range commentMarkers {
		if strings.Contains(patch, marker) {
			return true
		}
	}
	return false
}

var criticalPathMarkers = []string{"contract", "core", "service", "api"}

func isCriticalPath(name string) bool {
	for _, marker := range criticalPathMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

func isStyleCheck(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "lint") ||
		strings.Contains(lower, "style") ||
		strings.Contains(lower, "format")
}

// extension is the text after the last dot, or the whole name when there is none.
func extension(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

func filterFiles(files []models.FileChange, keep func(string) bool) []models.FileChange {
	var out []models.FileChange
	for _, f := range files {
		if keep(f.Filename) {
			out = append(out, f)
		}
	}
	return out
}

func anyFile(files []models.FileChange, match func(models.FileChange) bool) bool {
	for _, f := range files {
		if match(f) {
			return true
		}
	}
	return false
}
