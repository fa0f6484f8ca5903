// Package scaffold writes new skill documents from the canonical template.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianshen/skillbox/internal/frontmatter"
	"github.com/julianshen/skillbox/internal/logger"
	"github.com/julianshen/skillbox/internal/skills"
	"github.com/julianshen/skillbox/internal/validate"
)

// DefaultVersion is the version stamped on new skills.
const DefaultVersion = "1.0.0"

// ErrInvalidVersion reports a version that is not MAJOR.MINOR.PATCH.
var ErrInvalidVersion = errors.New("version must be MAJOR.MINOR.PATCH")

// documentTemplate is the SKILL.md written for a new skill. Placeholders are
// {{name}}, {{category}}, {{title}}, {{description}}, {{trigger}}, and
// {{version}}.
const documentTemplate = `---
name: {{name}}
description: >
  {{description}}
  Trigger: When {{trigger}}.
version: {{version}}
scope: {{category}}
---

# {{title}}

{{description}}

## When to Use

Trigger: When {{trigger}}.

## Instructions

1. Describe the first step the assistant should take.
2. List the conventions to follow.
3. Note anything to avoid.

## Examples

Add a short, concrete example here.
`

// Fields are the user-supplied parts of a new document.
type Fields struct {
	// Description says what the skill does. Defaults to "Guidance for <title>."
	Description string
	// Trigger completes "Trigger: When ...". Defaults to "working with <title>".
	Trigger string
	// Version must be MAJOR.MINOR.PATCH. Defaults to DefaultVersion.
	Version string
	// Overwrite permits replacing an existing document.
	Overwrite bool
}

// Result describes a created skill.
type Result struct {
	Record skills.Record
	Path   string
	// Validation holds the findings for the new document. Errors here do
	// not undo the write.
	Validation validate.Result
	// Published is set when the registry artifact was refreshed.
	Published bool
	// PublishErr is the refresh failure, if any.
	PublishErr error
}

// Scaffolder creates skills under a skills root.
type Scaffolder struct {
	root         string
	registryPath string
	validator    *validate.Validator
}

// New creates a Scaffolder for root. When registryPath is non-empty every
// Create refreshes that registry artifact. A nil validator uses the default
// options.
func New(root, registryPath string, validator *validate.Validator) *Scaffolder {
	if validator == nil {
		validator = validate.New(validate.DefaultOptions())
	}
	return &Scaffolder{root: root, registryPath: registryPath, validator: validator}
}

// Categories lists the existing categories under the root.
func (s *Scaffolder) Categories() []string {
	var categories []string
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			categories = append(categories, e.Name())
		}
	}
	return categories
}

// Create writes <root>/<category>/<name>/SKILL.md, validates it, and
// refreshes the registry. It fails with skills.ErrInvalidName before touching
// the filesystem and with skills.ErrAlreadyExists when a document is already
// present and fields.Overwrite is false.
func (s *Scaffolder) Create(ctx context.Context, category, name string, fields Fields) (*Result, error) {
	if err := skills.ValidateName(category); err != nil {
		return nil, fmt.Errorf("category: %w", err)
	}
	if err := skills.ValidateName(name); err != nil {
		return nil, fmt.Errorf("skill: %w", err)
	}
	if fields.Version != "" && !skills.IsSemVer(fields.Version) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, fields.Version)
	}

	dir := filepath.Join(s.root, category, name)
	path := filepath.Join(dir, skills.DocumentFile)
	if _, err := os.Stat(path); err == nil && !fields.Overwrite {
		return nil, fmt.Errorf("%s/%s: %w", category, name, skills.ErrAlreadyExists)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", skills.ErrIOFailure, err)
	}

	text := Render(category, name, fields)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating skill directory: %w", skills.ErrIOFailure, err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %w", skills.ErrIOFailure, skills.DocumentFile, err)
	}

	doc, err := frontmatter.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing generated document: %w", err)
	}
	rec := skills.NewRecord(category, path, doc)
	res := &Result{
		Record:     rec,
		Path:       path,
		Validation: s.validator.Check(rec, text),
	}

	log := logger.G(ctx).WithField("skill", rec.Key())
	if s.registryPath != "" {
		if _, err := skills.Publish(skills.NewScanner(s.root), s.registryPath); err != nil {
			log.WithError(err).Warn("registry refresh failed")
			res.PublishErr = err
		} else {
			res.Published = true
		}
	}
	log.WithField("path", path).Info("skill created")
	return res, nil
}

// Render fills the document template. Multi-line input is collapsed onto a
// single line so it stays inside the folded description block.
func Render(category, name string, fields Fields) string {
	title := Title(name)

	description := oneLine(fields.Description)
	if description == "" {
		description = "Guidance for " + title + "."
	}
	version := strings.TrimSpace(fields.Version)
	if version == "" {
		version = DefaultVersion
	}
	trigger := triggerCondition(fields.Trigger)
	if trigger == "" {
		trigger = "working with " + title
	}

	return strings.NewReplacer(
		"{{name}}", name,
		"{{category}}", category,
		"{{title}}", title,
		"{{description}}", description,
		"{{trigger}}", trigger,
		"{{version}}", version,
	).Replace(documentTemplate)
}

// Title turns "rn-animations" into "Rn Animations".
func Title(name string) string {
	words := strings.Split(name, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// triggerCondition strips what the template already supplies: a leading
// "Trigger:", a leading "when", and a trailing period.
func triggerCondition(s string) string {
	s = oneLine(s)
	if len(s) >= 8 && strings.EqualFold(s[:8], "trigger:") {
		s = strings.TrimSpace(s[8:])
	}
	if len(s) >= 5 && strings.EqualFold(s[:5], "when ") {
		s = strings.TrimSpace(s[5:])
	}
	return strings.TrimRight(s, ". ")
}
