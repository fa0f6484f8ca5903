package skills_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/skillbox/internal/skills"
	"github.com/julianshen/skillbox/internal/validate"
)

func TestLibraryValidates(t *testing.T) {
	results, err := validate.New(validate.DefaultOptions()).CheckTree(".")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, res := range results {
		t.Run(res.Category+"/"+res.Name, func(t *testing.T) {
			assert.Empty(t, res.Findings)
		})
	}
}

func TestPublishedRegistryIsCurrent(t *testing.T) {
	scanner := skills.NewScanner(".")
	want, err := skills.Marshal(scanner.Scan())
	require.NoError(t, err)
	require.NoError(t, scanner.Err())

	have, err := os.ReadFile("../registry.json")
	require.NoError(t, err)
	assert.Equal(t, string(want), string(have), "run: skillbox registry build --root skills")
}
