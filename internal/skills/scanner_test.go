package skills

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/skillbox/internal/frontmatter"
)

func TestScannerYieldsSortedRecords(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "angular", "ng-b", skillDoc("ng-b", "B skill. Use when testing."))
	writeSkill(t, root, "angular", "ng-a", skillDoc("ng-a", "A skill. Use when testing."))

	records := NewScanner(root).Scan()
	require.Len(t, records, 2)
	assert.Equal(t, "angular", records[0].Category)
	assert.Equal(t, "ng-a", records[0].Name)
	assert.Equal(t, "angular", records[1].Category)
	assert.Equal(t, "ng-b", records[1].Name)
	assert.Equal(t, filepath.Join(root, "angular", "ng-a", DocumentFile), records[0].SourcePath)
}

func TestScannerOrdersCategoriesLexicographically(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "vue", "pinia", skillDoc("pinia", "Stores."))
	writeSkill(t, root, "angular", "ng-a", skillDoc("ng-a", "Angular."))
	writeSkill(t, root, "react", "hooks", skillDoc("hooks", "Hooks."))

	var keys []string
	for rec := range NewScanner(root).Records() {
		keys = append(keys, rec.Key())
	}
	assert.Equal(t, []string{"angular/ng-a", "react/hooks", "vue/pinia"}, keys)
}

func TestScannerIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "go", "errors", skillDoc("errors", "Errors."))
	writeSkill(t, root, "go", "testing", skillDoc("testing", "Tests."))
	writeSkill(t, root, "rust", "ownership", skillDoc("ownership", "Borrowing."))

	s := NewScanner(root)
	assert.Equal(t, s.Scan(), s.Scan())
}

func TestScannerSkipsDirectoriesWithoutDocument(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "react", "hooks", skillDoc("hooks", "Hooks."))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "react", "wip"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "react", "README.md"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "objects"), 0o755))
	writeSkill(t, root, ".hidden", "secret", skillDoc("secret", "Hidden."))

	s := NewScanner(root)
	records := s.Scan()
	require.Len(t, records, 1)
	assert.Equal(t, "hooks", records[0].Name)
	assert.NoError(t, s.Err())
}

func TestScannerCollectsMalformedDocuments(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "react", "broken", "name: broken\n")
	writeSkill(t, root, "react", "hooks", skillDoc("hooks", "Hooks."))
	writeSkill(t, root, "react", "unclosed", "---\nname: unclosed\n")

	s := NewScanner(root)
	records := s.Scan()
	require.Len(t, records, 1)
	assert.Equal(t, "hooks", records[0].Name)

	err := s.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, frontmatter.ErrMissingOpening)
	assert.ErrorIs(t, err, frontmatter.ErrMissingClosing)

	var scanErr *ScanError
	require.True(t, errors.As(err, &scanErr))
	assert.Equal(t, "react", scanErr.Entry.Category)
}

func TestScannerResetsErrorsPerScan(t *testing.T) {
	root := t.TempDir()
	path := writeSkill(t, root, "react", "broken", "oops")

	s := NewScanner(root)
	s.Scan()
	require.Error(t, s.Err())

	require.NoError(t, os.WriteFile(path, []byte(skillDoc("broken", "Fixed.")), 0o644))
	records := s.Scan()
	require.Len(t, records, 1)
	assert.NoError(t, s.Err())
}

func TestScannerMissingRoot(t *testing.T) {
	s := NewScanner(filepath.Join(t.TempDir(), "nope"))
	assert.Empty(t, s.Scan())
	assert.ErrorIs(t, s.Err(), ErrIOFailure)
}

func TestScannerStopsEarly(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "a", "one", skillDoc("one", "One."))
	writeSkill(t, root, "a", "two", skillDoc("two", "Two."))

	count := 0
	for range NewScanner(root).Records() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestScannerFollowsSymlinkedSkill(t *testing.T) {
	root := t.TempDir()
	external := t.TempDir()
	writeSkill(t, external, "shared", "linked", skillDoc("linked", "Linked."))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tools"), 0o755))
	if err := os.Symlink(filepath.Join(external, "shared", "linked"), filepath.Join(root, "tools", "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	records := NewScanner(root).Scan()
	require.Len(t, records, 1)
	assert.Equal(t, "tools/linked", records[0].Key())
}
