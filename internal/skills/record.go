package skills

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/julianshen/skillbox/internal/frontmatter"
)

const (
	// DocumentFile is the file name every skill directory must contain.
	DocumentFile = "SKILL.md"
	// MaxNameLength bounds skill and category names.
	MaxNameLength = 64
)

// NamePattern enforces lowercase letters, digits, and internal hyphens.
// Leading, trailing, and doubled hyphens are rejected.
var NamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Frontmatter keys with a dedicated Record field.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldVersion     = "version"
	FieldScope       = "scope"
)

// Record is one discoverable skill.
type Record struct {
	Category    string
	Name        string
	Description string
	Version     string
	Scope       string

	// SourcePath is the local document path or its remote URL. It is never
	// published; consumers rebuild it from Category and Name.
	SourcePath string

	// Extra holds frontmatter keys without a dedicated field.
	Extra map[string]string
}

// Key returns the registry uniqueness key "category/name".
func (r Record) Key() string {
	return r.Category + "/" + r.Name
}

// Folder returns the name of the directory holding the document, falling
// back to Name when the record has no local path.
func (r Record) Folder() string {
	if r.SourcePath == "" || strings.Contains(r.SourcePath, "://") {
		return r.Name
	}
	return filepath.Base(filepath.Dir(r.SourcePath))
}

// ValidateName returns ErrInvalidName if name does not match NamePattern or
// is longer than MaxNameLength.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidName, name, MaxNameLength)
	}
	if !NamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q must contain only lowercase letters, digits, and single hyphens", ErrInvalidName, name)
	}
	return nil
}

// NewRecord builds a Record from a parsed document found at path inside
// category. When the document declares no name the directory name is used,
// which keeps installs addressable; the validator still reports the gap.
func NewRecord(category, path string, doc *frontmatter.Document) Record {
	rec := Record{
		Category:   category,
		SourcePath: path,
	}
	if doc == nil {
		rec.Name = filepath.Base(filepath.Dir(path))
		return rec
	}

	for _, key := range doc.Keys {
		value := doc.Fields[key]
		switch key {
		case FieldName:
			rec.Name = value
		case FieldDescription:
			rec.Description = value
		case FieldVersion:
			rec.Version = value
		case FieldScope:
			rec.Scope = value
		default:
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[key] = value
		}
	}
	if rec.Name == "" {
		rec.Name = filepath.Base(filepath.Dir(path))
	}
	return rec
}
