package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter outputs a Report as a Markdown table per document,
// suitable for pull request comments.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format renders the Report as Markdown.
func (f *MarkdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("## Skill validation\n\n")
	s := report.Summary
	status := "passed"
	if !s.OK {
		status = "failed"
	}
	fmt.Fprintf(&b, "**%s**: %d %s, %d %s, %d %s\n",
		status,
		s.Documents, plural(s.Documents, "document", "documents"),
		s.Errors, plural(s.Errors, "error", "errors"),
		s.Warnings, plural(s.Warnings, "warning", "warnings"))

	for _, res := range report.Results {
		if len(res.Findings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n### %s (%s)\n\n", label(res.Category, res.Name, res.Path), res.Status())
		b.WriteString("| Severity | Rule | Message |\n|---|---|---|\n")
		for _, finding := range res.Findings {
			fmt.Fprintf(&b, "| %s | `%s` | %s |\n", finding.Severity, finding.Rule, strings.ReplaceAll(finding.Message, "|", "\\|"))
		}
	}

	if len(report.IOErrors) > 0 {
		b.WriteString("\n### Unreadable documents\n\n")
		for _, msg := range report.IOErrors {
			fmt.Fprintf(&b, "- %s\n", msg)
		}
	}

	return []byte(b.String()), nil
}
