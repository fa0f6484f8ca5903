package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/skillbox/internal/frontmatter"
	"github.com/julianshen/skillbox/internal/skills"
	"github.com/julianshen/skillbox/internal/validate"
)

func TestRenderProducesParseableDocument(t *testing.T) {
	text := Render("react-native", "rn-animations", Fields{
		Description: "Animate React Native views\n  with Reanimated.",
		Trigger:     "When the user asks about gestures.",
	})

	doc, err := frontmatter.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "rn-animations", doc.Fields["name"])
	assert.Equal(t, "react-native", doc.Fields["scope"])
	assert.Equal(t, DefaultVersion, doc.Fields["version"])
	assert.Equal(t,
		"Animate React Native views with Reanimated. Trigger: When the user asks about gestures.",
		doc.Fields["description"])
	assert.Contains(t, doc.Body, "# Rn Animations")
	assert.Contains(t, doc.Body, "## When to Use")
}

func TestRenderDefaults(t *testing.T) {
	doc, err := frontmatter.Parse(Render("go", "error-wrapping", Fields{}))
	require.NoError(t, err)
	assert.Equal(t, "Guidance for Error Wrapping. Trigger: When working with Error Wrapping.", doc.Fields["description"])
}

func TestRenderedDocumentsHaveNoValidationErrors(t *testing.T) {
	v := validate.New(validate.DefaultOptions())
	cases := []struct {
		category, name string
		fields         Fields
	}{
		{"react-native", "rn-animations", Fields{Description: "Animate views.", Trigger: "animating"}},
		{"go", "errors", Fields{}},
		{"a", "b", Fields{Description: "x: y # not a comment", Trigger: "Trigger: when asked."}},
		{"vue3", "pinia-stores", Fields{Description: "Stores.\n\nMore text.", Trigger: "state"}},
	}
	for _, c := range cases {
		t.Run(c.category+"/"+c.name, func(t *testing.T) {
			path := filepath.Join("skills", c.category, c.name, skills.DocumentFile)
			text := Render(c.category, c.name, c.fields)
			doc, err := frontmatter.Parse(text)
			require.NoError(t, err)

			res := v.Check(skills.NewRecord(c.category, path, doc), text)
			assert.Zero(t, res.Errors(), "findings: %+v", res.Findings)
			assert.False(t, res.Has(validate.RuleDescriptionTrigger))
			assert.False(t, res.Has(validate.RuleHasSections))
			assert.False(t, res.Has(validate.RuleVersionFormat))
			assert.False(t, res.Has(validate.RuleScopeMatch))
		})
	}
}

func TestCreate(t *testing.T) {
	root := t.TempDir()
	registry := filepath.Join(t.TempDir(), skills.RegistryFile)

	res, err := New(root, registry, nil).Create(context.Background(), "react-native", "rn-animations", Fields{
		Description: "Animate React Native views with Reanimated and gesture handler.",
		Trigger:     "the user asks about animations",
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "react-native", "rn-animations", skills.DocumentFile), res.Path)
	assert.Equal(t, "rn-animations", res.Record.Name)
	assert.Equal(t, "react-native", res.Record.Scope)
	assert.Zero(t, res.Validation.Errors())
	assert.True(t, res.Published)
	assert.NoError(t, res.PublishErr)

	records, err := skills.ReadRegistryFile(registry)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "react-native", records[0].Category)
	assert.Equal(t, "rn-animations", records[0].Name)
}

func TestCreateInvalidName(t *testing.T) {
	root := t.TempDir()
	s := New(root, "", nil)

	_, err := s.Create(context.Background(), "react-native", "Rn_Animations", Fields{})
	assert.ErrorIs(t, err, skills.ErrInvalidName)

	_, err = s.Create(context.Background(), "React Native", "rn-animations", Fields{})
	assert.ErrorIs(t, err, skills.ErrInvalidName)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing is written for an invalid name")
}

func TestCreateAlreadyExists(t *testing.T) {
	root := t.TempDir()
	s := New(root, "", nil)

	_, err := s.Create(context.Background(), "go", "errors", Fields{Description: "first"})
	require.NoError(t, err)

	_, err = s.Create(context.Background(), "go", "errors", Fields{Description: "second"})
	assert.ErrorIs(t, err, skills.ErrAlreadyExists)

	res, err := s.Create(context.Background(), "go", "errors", Fields{Description: "second", Overwrite: true})
	require.NoError(t, err)
	assert.Contains(t, res.Record.Description, "second")
}

func TestCreateVersion(t *testing.T) {
	s := New(t.TempDir(), "", nil)

	_, err := s.Create(context.Background(), "go", "errors", Fields{Version: "v1"})
	assert.ErrorIs(t, err, ErrInvalidVersion)

	res, err := s.Create(context.Background(), "go", "errors", Fields{Version: "2.3.4"})
	require.NoError(t, err)
	assert.Equal(t, "2.3.4", res.Record.Version)
	assert.False(t, res.Validation.Has(validate.RuleVersionFormat))
}

func TestCreateWithoutRegistry(t *testing.T) {
	res, err := New(t.TempDir(), "", nil).Create(context.Background(), "go", "errors", Fields{})
	require.NoError(t, err)
	assert.False(t, res.Published)
}

func TestCreateReportsPublishFailure(t *testing.T) {
	registry := filepath.Join(t.TempDir(), "missing-dir", skills.RegistryFile)
	res, err := New(t.TempDir(), registry, nil).Create(context.Background(), "go", "errors", Fields{})
	require.NoError(t, err, "the document is still created")
	assert.False(t, res.Published)
	assert.ErrorIs(t, res.PublishErr, skills.ErrIOFailure)
}

func TestCategories(t *testing.T) {
	root := t.TempDir()
	s := New(root, "", nil)
	assert.Empty(t, s.Categories())

	_, err := s.Create(context.Background(), "vue", "pinia", Fields{})
	require.NoError(t, err)
	_, err = s.Create(context.Background(), "angular", "forms", Fields{})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	assert.Equal(t, []string{"angular", "vue"}, s.Categories())
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Rn Animations", Title("rn-animations"))
	assert.Equal(t, "Go", Title("go"))
	assert.Equal(t, "Vue3 Router", Title("vue3-router"))
}
