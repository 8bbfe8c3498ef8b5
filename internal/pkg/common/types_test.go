package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeIDUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want RecipeID
	}{
		{`1`, "1"},
		{`"1"`, "1"},
		{`1.0`, "1"},
		{`1e0`, "1"},
		{`-12.00`, "-12"},
		{`1.5`, "1.5"},
		{`"abc"`, "abc"},
		{`null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var id RecipeID
			require.NoError(t, json.Unmarshal([]byte(tt.in), &id))
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestRecipeIDUnmarshalRejectsGarbage(t *testing.T) {
	var id RecipeID
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestRecipeIDMarshal(t *testing.T) {
	out, err := json.Marshal([]RecipeID{"1", "abc", "007"})
	require.NoError(t, err)
	assert.JSONEq(t, `[1,"abc","007"]`, string(out))
}

func TestIDSetNilSafe(t *testing.T) {
	var s IDSet
	assert.False(t, s.Has("1"))
}
