package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/skillbox/internal/install"
	"github.com/julianshen/skillbox/internal/tui"
)

// isolate points the commands at an empty config and restores the global
// hooks afterwards.
func isolate(t *testing.T) {
	t.Helper()
	prevConfig, prevLevel, prevFormat := configPath, logLevel, logFormat
	prevInteractive, prevSelector, prevPrompter := isInteractive, newSelector, newPrompter
	t.Cleanup(func() {
		configPath, logLevel, logFormat = prevConfig, prevLevel, prevFormat
		isInteractive, newSelector, newPrompter = prevInteractive, prevSelector, prevPrompter
	})

	configPath = filepath.Join(t.TempDir(), "config.toml")
	logLevel, logFormat = "", ""
	isInteractive = func() bool { return false }
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return buf.String(), err
}

// writeSkill writes a document that passes every rule.
func writeSkill(t *testing.T, root, category, name string) string {
	t.Helper()
	dir := filepath.Join(root, category, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	doc := "---\n" +
		"name: " + name + "\n" +
		"description: >\n" +
		"  Conventions for " + name + " in " + category + " projects.\n" +
		"  Trigger: When the user works on " + name + ".\n" +
		"version: 1.2.0\n" +
		"scope: " + category + "\n" +
		"---\n\n# " + name + "\n\n## Instructions\n\nDo the thing.\n"
	path := filepath.Join(dir, "SKILL.md")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

// skillsTree builds <tmp>/skills with two categories.
func skillsTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "skills")
	writeSkill(t, root, "angular", "ng-a")
	writeSkill(t, root, "angular", "ng-b")
	writeSkill(t, root, "react", "hooks")
	return root
}

type fakeSelector struct {
	replies [][]int
	titles  []string
}

func (f *fakeSelector) Select(_ context.Context, title string, _ []tui.Item, _ tui.Mode) ([]int, error) {
	f.titles = append(f.titles, title)
	if len(f.replies) == 0 {
		return nil, nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

type fakePrompter struct {
	scaffold    tui.ScaffoldAnswers
	destination string
	err         error

	categories []string
	preset     tui.ScaffoldAnswers
	askedDest  string
}

func (f *fakePrompter) Scaffold(categories []string, preset tui.ScaffoldAnswers) (tui.ScaffoldAnswers, error) {
	f.categories, f.preset = categories, preset
	return f.scaffold, f.err
}

func (f *fakePrompter) Destination(def string) (string, error) {
	f.askedDest = def
	return f.destination, f.err
}

func (f *fakePrompter) Confirm(string, bool) (bool, error) {
	return true, f.err
}

// interactive installs the fakes as the terminal hooks.
func interactive(sel *fakeSelector, p *fakePrompter) {
	isInteractive = func() bool { return true }
	newSelector = func() install.Selector { return sel }
	newPrompter = func() tui.Prompter { return p }
}
