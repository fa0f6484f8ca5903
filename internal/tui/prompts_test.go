package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaffoldFormAsksEverything(t *testing.T) {
	f := NewScaffoldForm([]string{"react", "vue"}, ScaffoldAnswers{})
	require.NotNil(t, f.Form())
	assert.Equal(t, 3, f.GroupCount())

	a := f.Answers()
	assert.Equal(t, "react", a.Category, "first existing category is preselected")
}

func TestScaffoldFormWithoutExistingCategories(t *testing.T) {
	f := NewScaffoldForm(nil, ScaffoldAnswers{})
	assert.Equal(t, 2, f.GroupCount())
	assert.Empty(t, f.Answers().Category)
}

func TestScaffoldFormSkipsPresetFields(t *testing.T) {
	f := NewScaffoldForm([]string{"react"}, ScaffoldAnswers{Category: "react", Name: "hooks"})
	assert.Equal(t, 1, f.GroupCount())

	full := NewScaffoldForm([]string{"react"}, ScaffoldAnswers{
		Category:    "react",
		Name:        "hooks",
		Description: " Hooks. ",
		Trigger:     "writing hooks",
	})
	assert.Zero(t, full.GroupCount())
	assert.Nil(t, full.Form())

	a, err := full.Run()
	require.NoError(t, err)
	assert.Equal(t, ScaffoldAnswers{Category: "react", Name: "hooks", Description: "Hooks.", Trigger: "writing hooks"}, a)
}

func TestScaffoldFormNewCategoryChoice(t *testing.T) {
	f := NewScaffoldForm([]string{"react"}, ScaffoldAnswers{})
	f.choice = NewCategoryOption
	f.answers.Category = "svelte"
	assert.Equal(t, "svelte", f.Answers().Category)
}

func TestHuhPrompterImplementsPrompter(t *testing.T) {
	var _ Prompter = HuhPrompter{}
}
