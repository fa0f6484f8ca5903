package skills

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// RegistryFile is the published registry artifact name.
const RegistryFile = "registry.json"

// registryDocument is the wire shape of registry.json.
type registryDocument struct {
	Skills []registryEntry `json:"skills"`
}

type registryEntry struct {
	Tech        string `json:"tech"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Marshal serializes records into a registry document. Only category, name,
// and description are published; descriptions are never truncated here.
func Marshal(records []Record) ([]byte, error) {
	doc := registryDocument{Skills: make([]registryEntry, 0, len(records))}
	for _, r := range records {
		doc.Skills = append(doc.Skills, registryEntry{
			Tech:        r.Category,
			Name:        r.Name,
			Description: r.Description,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode registry: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a registry document. Key order, whitespace, and unknown
// keys are tolerated; anything other than an object whose "skills" array
// holds objects with string "tech" and "name" fails with ErrRegistryCorrupt.
// A missing or empty description is accepted.
func Unmarshal(data []byte) ([]Record, error) {
	var doc struct {
		Skills []json.RawMessage `json:"skills"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistryCorrupt, err)
	}
	if doc.Skills == nil {
		return nil, fmt.Errorf("%w: missing \"skills\" list", ErrRegistryCorrupt)
	}

	records := make([]Record, 0, len(doc.Skills))
	for i, raw := range doc.Skills {
		var entry struct {
			Tech        *string `json:"tech"`
			Name        *string `json:"name"`
			Description *string `json:"description"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("%w: skills[%d]: %w", ErrRegistryCorrupt, i, err)
		}
		if entry.Tech == nil || *entry.Tech == "" {
			return nil, fmt.Errorf("%w: skills[%d]: missing \"tech\"", ErrRegistryCorrupt, i)
		}
		if entry.Name == nil || *entry.Name == "" {
			return nil, fmt.Errorf("%w: skills[%d]: missing \"name\"", ErrRegistryCorrupt, i)
		}

		rec := Record{Category: *entry.Tech, Name: *entry.Name}
		if entry.Description != nil {
			rec.Description = *entry.Description
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadRegistryFile loads and decodes a registry artifact from disk.
func ReadRegistryFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read registry: %w", ErrIOFailure, err)
	}
	return Unmarshal(data)
}

// WriteRegistryFile serializes records to path, replacing it atomically.
func WriteRegistryFile(path string, records []Record) error {
	data, err := Marshal(records)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".registry-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp registry: %w", ErrIOFailure, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write registry: %w", ErrIOFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close registry: %w", ErrIOFailure, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: chmod registry: %w", ErrIOFailure, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: replace registry: %w", ErrIOFailure, err)
	}
	return nil
}

// Publish scans the scanner's root and writes the registry artifact to path.
// Documents that fail to parse are left out; inspect scanner.Err afterwards.
func Publish(scanner *Scanner, path string) ([]Record, error) {
	records := scanner.Scan()
	if err := WriteRegistryFile(path, records); err != nil {
		return nil, err
	}
	return records, nil
}

// Registry is a read-only, loaded set of records.
type Registry struct {
	records []Record
	index   map[string]int
}

// NewRegistry indexes records by category/name. A later duplicate replaces
// the earlier record in place.
func NewRegistry(records []Record) *Registry {
	r := &Registry{index: make(map[string]int, len(records))}
	for _, rec := range records {
		if i, ok := r.index[rec.Key()]; ok {
			r.records[i] = rec
			continue
		}
		r.index[rec.Key()] = len(r.records)
		r.records = append(r.records, rec)
	}
	return r
}

// Len returns the number of distinct records.
func (r *Registry) Len() int { return len(r.records) }

// Records returns a copy of all records in load order.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Categories returns the distinct categories, sorted.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, rec := range r.records {
		if !seen[rec.Category] {
			seen[rec.Category] = true
			categories = append(categories, rec.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// InCategory returns the records of one category in load order.
func (r *Registry) InCategory(category string) []Record {
	var out []Record
	for _, rec := range r.records {
		if rec.Category == category {
			out = append(out, rec)
		}
	}
	return out
}

// Lookup finds a record by category and name.
func (r *Registry) Lookup(category, name string) (Record, bool) {
	i, ok := r.index[category+"/"+name]
	if !ok {
		return Record{}, false
	}
	return r.records[i], true
}
