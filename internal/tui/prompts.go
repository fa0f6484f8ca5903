package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianshen/skillbox/internal/skills"
)

// NewCategoryOption is the category choice that reveals a free-text input.
const NewCategoryOption = "+ new category"

// ScaffoldAnswers holds the details collected for a new skill.
type ScaffoldAnswers struct {
	Category    string
	Name        string
	Description string
	Trigger     string
}

// ScaffoldForm wraps a Huh form asking for whatever ScaffoldAnswers the
// caller did not already provide.
type ScaffoldForm struct {
	form    *huh.Form
	answers ScaffoldAnswers
	choice  string
	groups  int
}

// NewScaffoldForm builds the form. Existing categories are offered as a
// select list alongside NewCategoryOption; fields already set in preset are
// not asked again.
func NewScaffoldForm(categories []string, preset ScaffoldAnswers) *ScaffoldForm {
	f := &ScaffoldForm{answers: preset}
	var groups []*huh.Group

	if preset.Category == "" {
		if len(categories) > 0 {
			opts := make([]huh.Option[string], 0, len(categories)+1)
			for _, c := range categories {
				opts = append(opts, huh.NewOption(c, c))
			}
			opts = append(opts, huh.NewOption(NewCategoryOption, NewCategoryOption))
			f.choice = categories[0]

			groups = append(groups, huh.NewGroup(
				huh.NewSelect[string]().
					Title("Category").
					Options(opts...).
					Value(&f.choice),
			))
		} else {
			f.choice = NewCategoryOption
		}

		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("New category").
				Placeholder("react-native").
				Validate(skills.ValidateName).
				Value(&f.answers.Category),
		).WithHideFunc(func() bool { return f.choice != NewCategoryOption }))
	}

	var details []huh.Field
	if preset.Name == "" {
		details = append(details, huh.NewInput().
			Title("Skill name").
			Placeholder("rn-animations").
			Validate(skills.ValidateName).
			Value(&f.answers.Name))
	}
	if preset.Description == "" {
		details = append(details, huh.NewInput().
			Title("Description").
			Description("What the skill does, in one sentence").
			Value(&f.answers.Description))
	}
	if preset.Trigger == "" {
		details = append(details, huh.NewInput().
			Title("Trigger condition").
			Description("Completes \"Trigger: When ...\"").
			Placeholder("the user asks about animations").
			Value(&f.answers.Trigger))
	}
	if len(details) > 0 {
		groups = append(groups, huh.NewGroup(details...))
	}

	f.groups = len(groups)
	if f.groups > 0 {
		f.form = huh.NewForm(groups...)
	}
	return f
}

// GroupCount returns the number of form groups.
func (f *ScaffoldForm) GroupCount() int { return f.groups }

// Form returns the underlying huh.Form, or nil when nothing needs asking.
func (f *ScaffoldForm) Form() *huh.Form { return f.form }

// Answers returns the collected values with the category choice resolved.
func (f *ScaffoldForm) Answers() ScaffoldAnswers {
	a := f.answers
	if a.Category == "" && f.choice != NewCategoryOption {
		a.Category = f.choice
	}
	a.Category = strings.TrimSpace(a.Category)
	a.Name = strings.TrimSpace(a.Name)
	a.Description = strings.TrimSpace(a.Description)
	a.Trigger = strings.TrimSpace(a.Trigger)
	return a
}

// Run shows the form and returns the answers. Aborting maps to
// ErrInterrupted.
func (f *ScaffoldForm) Run() (ScaffoldAnswers, error) {
	if f.form != nil {
		if err := f.form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return ScaffoldAnswers{}, ErrInterrupted
			}
			return ScaffoldAnswers{}, err
		}
	}
	return f.Answers(), nil
}

// Prompter asks the questions the install and new commands need when they
// run interactively.
type Prompter interface {
	Scaffold(categories []string, preset ScaffoldAnswers) (ScaffoldAnswers, error)
	Destination(def string) (string, error)
	Confirm(title string, def bool) (bool, error)
}

// HuhPrompter implements Prompter with Huh forms.
type HuhPrompter struct{}

// Scaffold runs a ScaffoldForm.
func (HuhPrompter) Scaffold(categories []string, preset ScaffoldAnswers) (ScaffoldAnswers, error) {
	return NewScaffoldForm(categories, preset).Run()
}

// Destination asks where skills should be installed, defaulting to def.
func (HuhPrompter) Destination(def string) (string, error) {
	value := def
	err := huh.NewInput().
		Title("Install into").
		Value(&value).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrInterrupted
		}
		return "", err
	}
	if strings.TrimSpace(value) == "" {
		return def, nil
	}
	return strings.TrimSpace(value), nil
}

// Confirm asks a yes/no question.
func (HuhPrompter) Confirm(title string, def bool) (bool, error) {
	value := def
	err := huh.NewConfirm().
		Title(title).
		Value(&value).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrInterrupted
		}
		return false, err
	}
	return value, nil
}
