package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/skillbox/internal/skills"
)

func TestRegistryBuild(t *testing.T) {
	isolate(t)
	root := skillsTree(t)
	path := filepath.Join(filepath.Dir(root), "registry.json")

	out, err := execute(t, registryCmd(), "build", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 3 skills to "+path)

	records, err := skills.ReadRegistryFile(path)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "angular", records[0].Category)
	assert.Equal(t, "ng-a", records[0].Name)
}

func TestRegistryBuildOutputFlag(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.json")

	_, err := execute(t, registryCmd(), "build", "--root", skillsTree(t), "--output", path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRegistryBuildCheck(t *testing.T) {
	isolate(t)
	root := skillsTree(t)

	_, err := execute(t, registryCmd(), "build", "--root", root, "--check")
	assert.ErrorContains(t, err, "out of date", "no file yet")

	_, err = execute(t, registryCmd(), "build", "--root", root)
	require.NoError(t, err)

	out, err := execute(t, registryCmd(), "build", "--root", root, "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "is up to date")

	writeSkill(t, root, "vue", "pinia")
	_, err = execute(t, registryCmd(), "build", "--root", root, "--check")
	var ee *exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 1, ee.code)
}

func TestRegistryBuildMissingRoot(t *testing.T) {
	isolate(t)
	_, err := execute(t, registryCmd(), "build", "--root", filepath.Join(t.TempDir(), "skills"))
	assert.ErrorIs(t, err, skills.ErrRegistryUnavailable)
}

func TestRegistryList(t *testing.T) {
	isolate(t)
	root := skillsTree(t)

	out, err := execute(t, registryCmd(), "list", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "ng-a")
	assert.Contains(t, out, "hooks")
	assert.Contains(t, out, "Conventions for hooks in react projects.")

	out, err = execute(t, registryCmd(), "list", "react", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "hooks")
	assert.NotContains(t, out, "ng-a")

	out, err = execute(t, registryCmd(), "list", "svelte", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "No skills found.")
}
