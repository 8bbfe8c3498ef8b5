package recipe

import (
	"fmt"
	"testing"

	"dinedecide/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestSuggestTitlesThenIngredients(t *testing.T) {
	svc := NewSuggestionService(NewIndex([]common.Recipe{
		{ID: "1", Title: "Tomato Soup", ExtendedIngredients: []common.Ingredient{{Name: "tomato"}, {Name: "onion"}}},
		{ID: "2", Title: "Green Salad", ExtendedIngredients: []common.Ingredient{{Name: "cherry tomato"}, {Name: "tomatillo"}}},
	}))

	assert.Equal(t, []string{"Tomato Soup", "tomatillo", "tomato"}, svc.Suggest(" TOMA "))
	// 食材用前綴比對，"cherry tomato" 不應出現
	assert.NotContains(t, svc.Suggest("tomato"), "cherry tomato")
	assert.Equal(t, []string{"Green Salad"}, svc.Suggest("salad"))
}

func TestSuggestEmptyFragment(t *testing.T) {
	svc := NewSuggestionService(NewIndex(exampleCorpus()))
	assert.Nil(t, svc.Suggest(""))
	assert.Nil(t, svc.Suggest("   "))
}

func TestSuggestCapAndDedup(t *testing.T) {
	var corpus []common.Recipe
	for i := 0; i < 8; i++ {
		corpus = append(corpus, common.Recipe{
			ID:    common.RecipeID(fmt.Sprint(i)),
			Title: "Pasta Bake",
			ExtendedIngredients: []common.Ingredient{
				{Name: fmt.Sprintf("pasta %d", i)},
			},
		})
	}
	corpus = append(corpus, common.Recipe{ID: "x", Title: "pasta 1"})
	svc := NewSuggestionService(NewIndex(corpus))

	got := svc.Suggest("pasta")

	assert.LessOrEqual(t, len(got), MaxSuggestions)
	assert.Len(t, got, MaxSuggestions)
	assert.Equal(t, "Pasta Bake", got[0])
	assert.Equal(t, "pasta 1", got[1])
	seen := map[string]bool{}
	for _, s := range got {
		assert.False(t, seen[s], "duplicate %q", s)
		seen[s] = true
	}
}

func TestSuggestIngredientsUsesLastSegment(t *testing.T) {
	svc := NewSuggestionService(NewIndex([]common.Recipe{
		{ID: "1", Title: "Onion Rings", ExtendedIngredients: []common.Ingredient{{Name: "onion"}, {Name: "olive oil"}, {Name: "garlic"}}},
	}))

	assert.Equal(t, []string{"olive oil", "onion"}, svc.SuggestIngredients("garlic, O"))
	assert.Nil(t, svc.SuggestIngredients("garlic, "))
	assert.Nil(t, svc.SuggestIngredients(""))
	assert.Empty(t, svc.SuggestIngredients("rings"), "titles are not offered for ingredient fields")
}

func TestCompleteIngredients(t *testing.T) {
	assert.Equal(t, "onion", CompleteIngredients("on", "onion"))
	assert.Equal(t, "garlic, olive oil", CompleteIngredients("garlic, ol", "olive oil"))
	assert.Equal(t, "garlic, olive oil", CompleteIngredients("garlic,ol", "olive oil"))
}
