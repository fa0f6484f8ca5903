package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/julianshen/skillbox/internal/skills"
)

// MarkdownRenderer wraps Glamour for rendering skill documents to styled
// terminal output.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a MarkdownRenderer with the given Glamour
// standard style ("dark", "light", "notty", ...) and word wrap width.
func NewMarkdownRenderer(style string, width int) (*MarkdownRenderer, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating glamour renderer: %w", err)
	}
	return &MarkdownRenderer{renderer: r}, nil
}

// Render processes markdown text into styled terminal output.
func (m *MarkdownRenderer) Render(md string) (string, error) {
	if md == "" {
		return "", nil
	}
	if m.renderer == nil {
		return md, nil
	}
	return m.renderer.Render(md)
}

// SkillMarkdown lays out a record's metadata as a heading and table ahead of
// the document body.
func SkillMarkdown(rec skills.Record, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s/%s\n\n", rec.Category, rec.Name)
	if rec.Description != "" {
		fmt.Fprintf(&b, "> %s\n\n", rec.Description)
	}

	b.WriteString("| Field | Value |\n|---|---|\n")
	row := func(k, v string) {
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(&b, "| %s | %s |\n", k, strings.ReplaceAll(v, "|", "\\|"))
	}
	row("version", rec.Version)
	row("scope", rec.Scope)
	if rec.SourcePath != "" {
		row("source", rec.SourcePath)
	}

	if body = strings.TrimSpace(body); body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSkill renders SkillMarkdown through a MarkdownRenderer.
func (m *MarkdownRenderer) RenderSkill(rec skills.Record, body string) (string, error) {
	return m.Render(SkillMarkdown(rec, body))
}
