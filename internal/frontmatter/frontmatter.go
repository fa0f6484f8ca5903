// Package frontmatter extracts the metadata header of a SKILL.md document.
//
// The header is a flat subset of YAML: a "---" line, one "key: value" pair per
// line, then a closing "---" line. A value may be a folded block scalar
// (">" or "|") whose indented continuation lines are joined into a single
// space-separated string. Nested structures are not interpreted.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes the metadata block.
const Delimiter = "---"

var (
	// ErrMalformedDocument is the parent of every delimiter failure.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrMissingOpening means line 1 is not the opening delimiter.
	ErrMissingOpening = fmt.Errorf("%w: first line is not %q", ErrMalformedDocument, Delimiter)
	// ErrMissingClosing means the block never closes before end of file.
	ErrMissingClosing = fmt.Errorf("%w: no closing %q line", ErrMalformedDocument, Delimiter)
)

// Document is a parsed SKILL.md file.
type Document struct {
	// Fields maps every declared key to its value, unknown keys included.
	Fields map[string]string
	// Keys lists the declared keys in first-seen order.
	Keys []string
	// Body is everything after the closing delimiter.
	Body string
	// BodyLine is the 1-based line number where Body starts, 0 if there is no body.
	BodyLine int
}

// Get returns the value of key and whether it was declared.
func (d *Document) Get(key string) (string, bool) {
	v, ok := d.Fields[key]
	return v, ok
}

func (d *Document) set(key, value string) {
	if _, exists := d.Fields[key]; !exists {
		d.Keys = append(d.Keys, key)
	}
	d.Fields[key] = value
}

// Parse extracts the metadata block from raw.
//
// When the opening delimiter is missing Parse returns ErrMissingOpening and a
// nil Document. When the closing delimiter is missing it returns
// ErrMissingClosing together with a Document holding every field read up to
// the end of the text, so callers can build a best-effort record.
func Parse(raw string) (*Document, error) {
	text := strings.TrimPrefix(strings.ReplaceAll(raw, "\r\n", "\n"), "\ufeff")
	lines := strings.Split(text, "\n")

	if !isDelimiter(lines[0]) {
		return nil, ErrMissingOpening
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if isDelimiter(lines[i]) {
			closing = i
			break
		}
	}

	doc := &Document{Fields: make(map[string]string)}
	if closing < 0 {
		doc.parseBlock(lines[1:])
		return doc, ErrMissingClosing
	}

	doc.parseBlock(lines[1:closing])
	if closing+1 < len(lines) {
		doc.Body = strings.Join(lines[closing+1:], "\n")
		doc.BodyLine = closing + 2
	}
	return doc, nil
}

// HasOpening reports whether the first line of raw is the opening delimiter.
func HasOpening(raw string) bool {
	first, _, _ := strings.Cut(strings.TrimPrefix(raw, "\ufeff"), "\n")
	return isDelimiter(first)
}

// HasClosing reports whether a delimiter line appears anywhere after line 1.
func HasClosing(raw string) bool {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	for _, line := range lines[1:] {
		if isDelimiter(line) {
			return true
		}
	}
	return false
}

func (d *Document) parseBlock(block []string) {
	for i := 0; i < len(block); i++ {
		line := block[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || isIndented(line) {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		value = strings.TrimSpace(value)

		if !isBlockScalar(value) {
			d.set(key, unquote(value))
			continue
		}

		var parts []string
		for i+1 < len(block) {
			next := block[i+1]
			if strings.TrimSpace(next) != "" && !isIndented(next) {
				break
			}
			parts = append(parts, next)
			i++
		}
		d.set(key, strings.Join(strings.Fields(strings.Join(parts, " ")), " "))
	}
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == Delimiter
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

func isBlockScalar(value string) bool {
	switch value {
	case ">", ">-", ">+", "|", "|-", "|+":
		return true
	}
	return false
}

// unquote applies YAML scalar rules to quoted values and leaves plain values alone.
func unquote(value string) string {
	if len(value) < 2 || (value[0] != '"' && value[0] != '\'') {
		return value
	}
	var s string
	if err := yaml.Unmarshal([]byte(value), &s); err != nil {
		return value
	}
	return s
}
