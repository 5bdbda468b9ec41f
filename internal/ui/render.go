package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"

	"github.com/sourcepay/prscore/internal/history"
	"github.com/sourcepay/prscore/internal/i18n"
	"github.com/sourcepay/prscore/internal/models"
	"github.com/sourcepay/prscore/internal/payout"
	"github.com/sourcepay/prscore/internal/scoring"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, true
	case "":
		return FormatText, true
	default:
		return "", false
	}
}

// WriteStructured encodes v as indented JSON or YAML.
func WriteStructured(w io.Writer, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not structured", format)
	}
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 80:
		return color.New(color.FgGreen)
	case score >= payout.ApprovalThreshold:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// PrintBreakdownTable renders the six sub-scores with their weights.
func PrintBreakdownTable(w io.Writer, b models.ScoreBreakdown, t *i18n.Translations) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{
		t.GetMessage("table.dimension", 0, nil),
		t.GetMessage("table.score", 0, nil),
		t.GetMessage("table.weight", 0, nil),
	})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, d := range scoring.Dimensions(b) {
		data = append(data, []string{
			t.GetMessage("dimension."+d.Key, 0, nil),
			scoreColor(d.Score).Sprint(strconv.Itoa(d.Score)),
			fmt.Sprintf("%.0f%%", d.Weight*100),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// PrintHistoryTable renders records in the order given.
func PrintHistoryTable(w io.Writer, records []history.Record, t *i18n.Translations) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{
		t.GetMessage("table.when", 0, nil),
		t.GetMessage("table.pr", 0, nil),
		t.GetMessage("table.score", 0, nil),
		t.GetMessage("table.fallback", 0, nil),
		t.GetMessage("table.cache", 0, nil),
		t.GetMessage("table.duration", 0, nil),
	})

	mark := func(b bool) string {
		if b {
			return "✓"
		}
		return ""
	}

	var data [][]string
	for _, r := range records {
		data = append(data, []string{
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			r.PR,
			scoreColor(r.Score).Sprint(strconv.Itoa(r.Score)),
			mark(r.Fallback),
			mark(r.CacheHit),
			(time.Duration(r.DurationMs) * time.Millisecond).String(),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func PrintHistorySummary(w io.Writer, summary history.Summary, t *i18n.Translations) {
	_, _ = fmt.Fprintf(w, "%s %s\n", StatsEmoji, t.GetMessage("history.summary", summary.Count, map[string]interface{}{
		"Count":   summary.Count,
		"Average": fmt.Sprintf("%.1f", summary.AverageScore),
		"Rate":    fmt.Sprintf("%.0f", summary.ApprovalRate),
	}))
}

func PrintDecision(w io.Writer, d payout.Decision, t *i18n.Translations) {
	_, _ = fmt.Fprintln(w, d.Message())
	PrintKeyValue(w, t.GetMessage("label.payout", 0, nil), fmt.Sprintf("%.2f / %.2f", d.Payout, d.Bounty))
	PrintKeyValue(w, t.GetMessage("label.contribution_status", 0, nil), string(d.ContributionStatus))
	PrintKeyValue(w, t.GetMessage("label.task_status", 0, nil), string(d.TaskStatus))
	if d.PayoutStatus != "" {
		PrintKeyValue(w, t.GetMessage("label.payout_status", 0, nil), string(d.PayoutStatus))
	}
	PrintKeyValue(w, t.GetMessage("label.reputation", 0, nil), strconv.Itoa(d.ReputationGain))
}

func PrintPRDetails(w io.Writer, d models.PRDetails, t *i18n.Translations) {
	PrintKeyValue(w, t.GetMessage("label.title", 0, nil), d.Title)
	PrintKeyValue(w, t.GetMessage("label.author", 0, nil), d.AuthorLogin)
	PrintKeyValue(w, t.GetMessage("label.state", 0, nil), d.State)
	PrintKeyValue(w, t.GetMessage("label.files", 0, nil), strconv.Itoa(d.ChangedFiles))
	PrintKeyValue(w, t.GetMessage("label.head", 0, nil), d.HeadSHA)
}

func PrintRateLimit(w io.Writer, rl models.RateLimit, t *i18n.Translations) {
	PrintKeyValue(w, t.GetMessage("label.limit", 0, nil), strconv.Itoa(rl.Limit))
	PrintKeyValue(w, t.GetMessage("label.remaining", 0, nil), strconv.Itoa(rl.Remaining))
	PrintKeyValue(w, t.GetMessage("label.reset", 0, nil), rl.Reset.Local().Format(time.RFC1123))
}
