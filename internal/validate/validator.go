// Package validate checks skill documents against the frontmatter and naming
// contract the registry and installer rely on.
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"

	"github.com/julianshen/skillbox/internal/frontmatter"
	"github.com/julianshen/skillbox/internal/skills"
)

// DefaultMinDescriptionLength is the description floor used when no
// configuration overrides it.
const DefaultMinDescriptionLength = 40

var (
	triggerPhrase  = regexp.MustCompile(`(?i)\b(trigger|use when|when (the )?user)`)
	triggerHeading = regexp.MustCompile(`(?im)^\s*(#{1,6}\s*)?(trigger:|when to use\b)`)
	sectionHeading = regexp.MustCompile(`(?m)^##\s+\S`)
)

// Options tunes rule thresholds.
type Options struct {
	// MinDescriptionLength is the shortest description, in characters, that
	// does not raise a description-length warning.
	MinDescriptionLength int
	// StrictScope turns a scope/category mismatch into an error.
	StrictScope bool
}

// DefaultOptions returns the thresholds used by the CLI when no config is set.
func DefaultOptions() Options {
	return Options{MinDescriptionLength: DefaultMinDescriptionLength}
}

// Validator applies the rule set to skill documents.
type Validator struct {
	opts Options
}

// New creates a Validator. A non-positive MinDescriptionLength falls back to
// DefaultMinDescriptionLength.
func New(opts Options) *Validator {
	if opts.MinDescriptionLength <= 0 {
		opts.MinDescriptionLength = DefaultMinDescriptionLength
	}
	return &Validator{opts: opts}
}

// Check evaluates every rule against text, the raw document behind rec.
// Field presence is decided from text itself, so a record whose name was
// filled in from its directory still reports the missing field.
func (v *Validator) Check(rec skills.Record, text string) Result {
	res := Result{Path: rec.SourcePath, Category: rec.Category, Name: rec.Name}
	add := func(rule string, sev Severity, format string, args ...any) {
		res.Findings = append(res.Findings, Finding{Rule: rule, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	doc, _ := frontmatter.Parse(text)
	if doc == nil {
		doc = &frontmatter.Document{Fields: map[string]string{}}
	}

	if !frontmatter.HasOpening(text) {
		add(RuleDelimiterStart, SeverityError, "first line must be %q", frontmatter.Delimiter)
	}
	if !frontmatter.HasClosing(text) {
		add(RuleDelimiterClose, SeverityError, "frontmatter is not closed by a %q line", frontmatter.Delimiter)
	}

	name, hasName := doc.Get(skills.FieldName)
	name = strings.TrimSpace(name)
	switch {
	case !hasName || name == "":
		add(RuleNameFormat, SeverityError, "name is missing")
	default:
		if err := skills.ValidateName(name); err != nil {
			add(RuleNameFormat, SeverityError, "%v", err)
		}
		if folder := rec.Folder(); folder != "" && name != folder {
			add(RuleNameFolderMatch, SeverityError, "name %q does not match folder %q", name, folder)
		}
	}

	desc, hasDesc := doc.Get(skills.FieldDescription)
	desc = strings.TrimSpace(desc)
	if !hasDesc || desc == "" {
		add(RuleDescriptionPresent, SeverityError, "description is missing")
	} else if n := utf8.RuneCountInString(desc); n < v.opts.MinDescriptionLength {
		add(RuleDescriptionLength, SeverityWarning, "description is %d characters, expected at least %d", n, v.opts.MinDescriptionLength)
	}
	if !triggerPhrase.MatchString(desc) && !triggerHeading.MatchString(doc.Body) {
		add(RuleDescriptionTrigger, SeverityWarning, "description should say when to use the skill (e.g. \"Use when ...\")")
	}

	scope, hasScope := doc.Get(skills.FieldScope)
	scope = strings.TrimSpace(scope)
	switch {
	case !hasScope || scope == "":
		add(RuleScopeMatch, SeverityWarning, "scope is missing, add \"scope: %s\"", rec.Category)
	case scope != rec.Category:
		sev := SeverityWarning
		if v.opts.StrictScope {
			sev = SeverityError
		}
		add(RuleScopeMatch, sev, "scope %q does not match category %q", scope, rec.Category)
	}

	version, hasVersion := doc.Get(skills.FieldVersion)
	version = strings.TrimSpace(version)
	switch {
	case !hasVersion || version == "":
		add(RuleVersionFormat, SeverityWarning, "version is missing")
	case !skills.IsSemVer(version):
		add(RuleVersionFormat, SeverityWarning, "version %q is not MAJOR.MINOR.PATCH", version)
	}

	if !sectionHeading.MatchString(sectionsSource(doc, text)) {
		add(RuleHasSections, SeverityWarning, "document has no \"## \" sections")
	}

	return res
}

// sectionsSource is the body when the frontmatter parsed cleanly, otherwise
// the whole text.
func sectionsSource(doc *frontmatter.Document, text string) string {
	if doc.BodyLine > 0 {
		return doc.Body
	}
	return text
}

// CheckFile validates the document at path, deriving category and folder
// from the two enclosing directories. Read failures wrap skills.ErrIOFailure.
func (v *Validator) CheckFile(path string) (Result, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	category := filepath.Base(filepath.Dir(filepath.Dir(path)))
	return v.checkEntry(category, path)
}

func (v *Validator) checkEntry(category, path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Category: category}, fmt.Errorf("%w: %w", skills.ErrIOFailure, err)
	}
	text := string(data)

	doc, _ := frontmatter.Parse(text)
	rec := skills.NewRecord(category, path, doc)
	return v.Check(rec, text), nil
}

// CheckTree validates every skill document under root, malformed ones
// included. Unreadable documents are skipped and returned together as a
// multierror; the results of every readable document are still returned.
func (v *Validator) CheckTree(root string) ([]Result, error) {
	var (
		results []Result
		errs    *multierror.Error
	)
	scanner := skills.NewScanner(root)
	for entry := range scanner.Entries() {
		res, err := v.checkEntry(entry.Category, entry.Path)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		results = append(results, res)
	}
	if err := scanner.Err(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return results, errs.ErrorOrNil()
}
