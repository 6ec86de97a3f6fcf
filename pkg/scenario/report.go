package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Render writes a terminal report of summary to w.
func Render(w io.Writer, summary *Summary) error {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("pagecheck · %s", summary.Engine)))
	b.WriteString("\n\n")

	for _, r := range summary.Results {
		line := fmt.Sprintf("%s %s", statusIcon(r.Status), r.Name)
		b.WriteString(statusStyle(r.Status).Render(line))
		if r.Status != StatusSkipped {
			b.WriteString(fmt.Sprintf(" (%s)", r.Duration.Round(time.Millisecond)))
		}
		b.WriteString("\n")

		if r.Error != "" {
			b.WriteString(detailStyle.Render(r.Error))
			b.WriteString("\n")
		}
		for _, a := range r.Artifacts {
			b.WriteString(detailStyle.Render("→ " + a))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(summary.String()))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ReportWriter writes run reports into a results directory.
type ReportWriter struct {
	outputDir string
}

// NewReportWriter creates a report writer for dir.
func NewReportWriter(dir string) *ReportWriter {
	return &ReportWriter{outputDir: dir}
}

// WriteAll writes report.json and summary.md.
func (w *ReportWriter) WriteAll(summary *Summary) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := w.WriteJSON(summary); err != nil {
		return err
	}
	return w.WriteMarkdown(summary)
}

// WriteJSON writes the summary as JSON to report.json.
func (w *ReportWriter) WriteJSON(summary *Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	path := filepath.Join(w.outputDir, "report.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write report JSON: %w", err)
	}
	return nil
}

// WriteMarkdown writes a human-readable summary to summary.md.
func (w *ReportWriter) WriteMarkdown(summary *Summary) error {
	var md strings.Builder

	md.WriteString("# pagecheck run summary\n\n")
	if summary.RunID != "" {
		md.WriteString(fmt.Sprintf("**Run:** %s\n\n", summary.RunID))
	}
	md.WriteString(fmt.Sprintf("**Engine:** %s\n\n", summary.Engine))
	md.WriteString(fmt.Sprintf("**Started:** %s\n\n", summary.StartedAt.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Duration:** %s\n\n", summary.Duration.Round(time.Millisecond)))

	md.WriteString("## Scenarios\n\n")
	md.WriteString("| Scenario | Status | Duration |\n")
	md.WriteString("|---|---|---|\n")
	for _, r := range summary.Results {
		icon := "✅"
		switch r.Status {
		case StatusFailed:
			icon = "❌"
		case StatusSkipped:
			icon = "⏭️"
		}
		md.WriteString(fmt.Sprintf("| %s | %s %s | %s |\n", r.Name, icon, r.Status, r.Duration.Round(time.Millisecond)))
	}
	md.WriteString("\n")

	var failures []Result
	for _, r := range summary.Results {
		if r.Status == StatusFailed {
			failures = append(failures, r)
		}
	}
	if len(failures) > 0 {
		md.WriteString("## Failures\n\n")
		for _, r := range failures {
			md.WriteString(fmt.Sprintf("### %s\n\n", r.Name))
			md.WriteString(fmt.Sprintf("**Kind:** %s\n\n", r.Kind))
			md.WriteString(fmt.Sprintf("```\n%s\n```\n\n", r.Error))
			for _, a := range r.Artifacts {
				md.WriteString(fmt.Sprintf("- `%s`\n", a))
			}
			md.WriteString("\n")
		}
	}

	md.WriteString("## Totals\n\n")
	md.WriteString(fmt.Sprintf("- **Passed:** %d\n", summary.Passed()))
	md.WriteString(fmt.Sprintf("- **Failed:** %d\n", summary.Failed()))
	md.WriteString(fmt.Sprintf("- **Skipped:** %d\n", summary.Skipped()))

	path := filepath.Join(w.outputDir, "summary.md")
	if err := os.WriteFile(path, []byte(md.String()), 0600); err != nil {
		return fmt.Errorf("failed to write summary markdown: %w", err)
	}
	return nil
}
