package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, root, category, dir, content string) string {
	t.Helper()
	skillDir := filepath.Join(root, category, dir)
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	path := filepath.Join(skillDir, DocumentFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func skillDoc(name, description string) string {
	return "---\nname: " + name + "\ndescription: " + description + "\n---\n\n## Instructions\n"
}
