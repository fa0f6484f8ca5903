package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var statusStyles = map[string]lipgloss.Style{
	"pass": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	"warn": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
	"fail": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
}

// TextFormatter prints one pass/warn/fail line per document followed by its
// findings, then a summary line.
type TextFormatter struct {
	// Color styles the status column for a terminal.
	Color bool
}

// NewTextFormatter creates a new TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format renders the Report as plain text.
func (f *TextFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	for _, res := range report.Results {
		fmt.Fprintf(&b, "%s %s\n", f.status(res.Status()), label(res.Category, res.Name, res.Path))
		for _, finding := range res.Findings {
			fmt.Fprintf(&b, "     %-7s %-20s %s\n", finding.Severity, finding.Rule, finding.Message)
		}
	}
	for _, msg := range report.IOErrors {
		fmt.Fprintf(&b, "ERR  %s\n", msg)
	}

	s := report.Summary
	fmt.Fprintf(&b, "\n%d %s: %d passed, %d with warnings, %d failed (%d %s, %d %s)\n",
		s.Documents, plural(s.Documents, "document", "documents"),
		s.Passed, s.Warned, s.Failed,
		s.Errors, plural(s.Errors, "error", "errors"),
		s.Warnings, plural(s.Warnings, "warning", "warnings"))

	return []byte(b.String()), nil
}

func (f *TextFormatter) status(s string) string {
	text := fmt.Sprintf("%-4s", strings.ToUpper(s))
	if !f.Color {
		return text
	}
	return statusStyles[s].Render(text)
}

func label(category, name, path string) string {
	if category != "" && name != "" {
		return category + "/" + name
	}
	return path
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
