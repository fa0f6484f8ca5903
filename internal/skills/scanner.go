package skills

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/julianshen/skillbox/internal/frontmatter"
)

// Entry is a skill directory that contains a SKILL.md document.
type Entry struct {
	Category string
	// Dir is the skill directory name.
	Dir string
	// Path is the document path.
	Path string
}

// ScanError describes one document that could not be turned into a Record.
type ScanError struct {
	Entry Entry
	Err   error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s/%s: %v", e.Entry.Category, e.Entry.Dir, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// Scanner walks a root laid out as <root>/<category>/<skill>/SKILL.md.
//
// Categories and skills are visited in lexicographic order so two scans of
// an unchanged tree produce identical output. Per-document failures never
// stop a scan; they are collected and exposed through Err once iteration
// finishes.
type Scanner struct {
	root string
	errs *multierror.Error
}

// NewScanner creates a Scanner rooted at root.
func NewScanner(root string) *Scanner {
	return &Scanner{root: root}
}

// Root returns the directory being scanned.
func (s *Scanner) Root() string { return s.root }

// Entries yields every skill directory holding a SKILL.md, without reading
// the documents. A root that cannot be listed is recorded in Err.
func (s *Scanner) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		categories, err := readDirs(s.root)
		if err != nil {
			s.errs = multierror.Append(s.errs, fmt.Errorf("%w: scan %q: %w", ErrIOFailure, s.root, err))
			return
		}

		for _, category := range categories {
			categoryDir := filepath.Join(s.root, category)
			names, err := readDirs(categoryDir)
			if err != nil {
				s.errs = multierror.Append(s.errs, fmt.Errorf("%w: scan category %q: %w", ErrIOFailure, category, err))
				continue
			}

			for _, name := range names {
				docPath := filepath.Join(categoryDir, name, DocumentFile)
				info, err := os.Stat(docPath)
				if err != nil || info.IsDir() {
					continue
				}
				if !yield(Entry{Category: category, Dir: name, Path: docPath}) {
					return
				}
			}
		}
	}
}

// Records lazily yields one Record per parseable document. Each call
// rescans the tree and resets the error collection.
func (s *Scanner) Records() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		s.errs = nil
		for entry := range s.Entries() {
			rec, err := loadRecord(entry)
			if err != nil {
				s.errs = multierror.Append(s.errs, &ScanError{Entry: entry, Err: err})
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// Scan collects Records into a slice.
func (s *Scanner) Scan() []Record {
	var records []Record
	for rec := range s.Records() {
		records = append(records, rec)
	}
	return records
}

// Err returns the failures collected by the last iteration, or nil.
func (s *Scanner) Err() error {
	return s.errs.ErrorOrNil()
}

func loadRecord(entry Entry) (Record, error) {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return Record{}, fmt.Errorf("%w: read %s: %w", ErrIOFailure, DocumentFile, err)
	}
	doc, err := frontmatter.Parse(string(data))
	if err != nil {
		return Record{}, err
	}
	return NewRecord(entry.Category, entry.Path, doc), nil
}

// readDirs lists the visible subdirectories of dir, sorted by name.
// Symlinked directories are followed.
func readDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		if info.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
