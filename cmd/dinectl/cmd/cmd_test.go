package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"dinedecide/internal/core/recipe"
	"dinedecide/internal/core/source"
	"dinedecide/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "output.json")
	require.NoError(t, source.WriteFile(path, []common.Recipe{
		{
			ID: "1", Title: "Tomato Soup", ReadyInMinutes: 30,
			Cuisines:  []string{"Italian"},
			DishTypes: []string{"dinner"},
			ExtendedIngredients: []common.Ingredient{
				{Name: "tomato", Original: "2 tomatoes"},
			},
		},
		{
			ID: "2", Title: "Beef Tacos", ReadyInMinutes: 20,
			Cuisines:  []string{"Mexican"},
			DishTypes: []string{"lunch"},
			ExtendedIngredients: []common.Ingredient{
				{Name: "beef", Original: "beef"},
				{Name: "tortilla", Original: "tortilla"},
			},
		},
	}))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CORPUS_SOURCE", "file")
	t.Setenv("STORAGE_DRIVER", "memory")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestFilterCommand(t *testing.T) {
	path := writeCorpus(t)

	out := run(t, "filter", "--corpus", path, "--cuisine", "mexican")
	assert.Contains(t, out, "Beef Tacos")
	assert.NotContains(t, out, "Tomato Soup")
	assert.Contains(t, out, "filter: 1 matched, 1 shown")
}

func TestFilterCommandJSON(t *testing.T) {
	path := writeCorpus(t)

	out := run(t, "filter", "--corpus", path, "-q", "tomato", "--json")
	var res recipe.Results
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, recipe.ModeSearch, res.Mode)
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, common.RecipeID("1"), res.Recipes[0].ID)
}

func TestFilterCommandRejectsUnknownLabel(t *testing.T) {
	path := writeCorpus(t)

	_, err := execute(t, "filter", "--corpus", path, "--diet", "carnivore")
	assert.Error(t, err)
}

func TestCommandsDoNotShareFlagState(t *testing.T) {
	path := writeCorpus(t)

	out := run(t, "filter", "--corpus", path, "--cuisine", "mexican", "-q", "beef", "--json")
	assert.Contains(t, out, "Beef Tacos")

	out = run(t, "filter", "--corpus", path)
	assert.Contains(t, out, "Beef Tacos")
	assert.Contains(t, out, "Tomato Soup")
	assert.Contains(t, out, "filter: 2 matched, 2 shown")

	run(t, "suggest", "--corpus", path, "--ingredients", "tor")
	out = run(t, "suggest", "--corpus", path, "Beef")
	assert.Contains(t, strings.Split(strings.TrimSpace(out), "\n"), "Beef Tacos")
}

func TestSuggestCommand(t *testing.T) {
	path := writeCorpus(t)

	out := run(t, "suggest", "--corpus", path, "tom")
	assert.Contains(t, strings.Split(strings.TrimSpace(out), "\n"), "Tomato Soup")

	out = run(t, "suggest", "--corpus", path, "--ingredients", "beef, tor")
	assert.Contains(t, out, "tortilla")
}
