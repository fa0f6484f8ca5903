package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/skillbox/internal/frontmatter"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"simple", "react", true},
		{"hyphenated", "rn-animations", true},
		{"digits", "vue3-router", true},
		{"uppercase", "Rn_Animations", false},
		{"underscore", "rn_animations", false},
		{"leading hyphen", "-react", false},
		{"trailing hyphen", "react-", false},
		{"double hyphen", "react--native", false},
		{"empty", "", false},
		{"too long", strings.Repeat("a", MaxNameLength+1), false},
		{"max length", strings.Repeat("a", MaxNameLength), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestNewRecordMapsFields(t *testing.T) {
	doc, err := frontmatter.Parse("---\nname: ng-forms\ndescription: Forms. Use when building forms.\nversion: 1.2.0\nscope: angular\nauthor: team\n---\n")
	require.NoError(t, err)

	rec := NewRecord("angular", "/skills/angular/ng-forms/SKILL.md", doc)
	assert.Equal(t, "angular", rec.Category)
	assert.Equal(t, "ng-forms", rec.Name)
	assert.Equal(t, "Forms. Use when building forms.", rec.Description)
	assert.Equal(t, "1.2.0", rec.Version)
	assert.Equal(t, "angular", rec.Scope)
	assert.Equal(t, map[string]string{"author": "team"}, rec.Extra)
	assert.Equal(t, "angular/ng-forms", rec.Key())
	assert.Equal(t, "ng-forms", rec.Folder())
}

func TestNewRecordFallsBackToDirectoryName(t *testing.T) {
	doc, err := frontmatter.Parse("---\ndescription: No name here\n---\n")
	require.NoError(t, err)

	rec := NewRecord("vue", "/skills/vue/vue-router/SKILL.md", doc)
	assert.Equal(t, "vue-router", rec.Name)
}

func TestRecordFolderForRemoteSource(t *testing.T) {
	rec := Record{Category: "vue", Name: "pinia", SourcePath: "https://example.com/skills/vue/pinia/SKILL.md"}
	assert.Equal(t, "pinia", rec.Folder())
}
