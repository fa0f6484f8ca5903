package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/skillbox/internal/install"
)

func TestListCommandEmpty(t *testing.T) {
	isolate(t)
	dest := t.TempDir()

	out, err := execute(t, listCmd(), "--dest", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "No skills installed in "+dest)
}

func TestListAndRemoveCommands(t *testing.T) {
	isolate(t)
	root := skillsTree(t)
	dest := t.TempDir()
	_, err := execute(t, installCmd(), "angular", "--all", "--root", root, "--dest", dest)
	require.NoError(t, err)

	out, err := execute(t, listCmd(), "--dest", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "ng-a")
	assert.Contains(t, out, "ng-b")
	assert.Contains(t, out, "1.2.0")
	assert.Contains(t, out, "local")

	out, err = execute(t, removeCmd(), "ng-a", "--dest", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed ng-a")

	_, err = os.Lstat(filepath.Join(dest, "ng-a"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "angular", "ng-a", "SKILL.md"))
	assert.NoError(t, err, "removing a link keeps the source")

	states, err := install.Installed(dest)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "ng-b", states[0].Name)
}

func TestRemoveCommandCollectsFailures(t *testing.T) {
	isolate(t)
	root := skillsTree(t)
	dest := t.TempDir()
	_, err := execute(t, installCmd(), "react", "hooks", "--root", root, "--dest", dest)
	require.NoError(t, err)

	out, err := execute(t, removeCmd(), "ghost", "hooks", "--dest", dest)
	assert.ErrorIs(t, err, install.ErrNotInstalled)
	assert.Contains(t, out, "Removed hooks")
}
