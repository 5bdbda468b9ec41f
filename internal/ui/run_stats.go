package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/sourcepay/prscore/internal/i18n"
)

// PrintRunStats prints how a score was obtained.
func PrintRunStats(w io.Writer, runID string, cacheHit, fallback bool, duration time.Duration, t *i18n.Translations) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	if fallback {
		_, _ = yellow.Fprintf(w, "⚠️  %s\n", t.GetMessage("score.fallback_notice", 0, nil))
	}
	if cacheHit {
		_, _ = green.Fprintf(w, "✓ %s\n", t.GetMessage("score.cache_hit", 0, nil))
	}
	_, _ = fmt.Fprintln(w, Dim.Sprintf("run %s · %s", runID, duration.Round(time.Millisecond)))
}
