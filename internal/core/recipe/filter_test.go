package recipe

import (
	"testing"

	"dinedecide/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(corpus []common.Recipe) *Engine {
	return NewEngine(NewIndex(corpus), NewSelector(seeded(42)))
}

func TestFilterNoFacetsReturnsFirstPageInOrder(t *testing.T) {
	e := newTestEngine(bulkCorpus(20))

	res := e.Filter(Criteria{}, common.NewIDSet("2", "5"))

	require.Len(t, res.Recipes, PageSize)
	assert.Equal(t, 18, res.Matched)
	assert.Equal(t, ModeFilter, res.Mode)
	assert.Equal(t,
		[]common.RecipeID{"1", "3", "4", "6", "7", "8", "9", "10", "11", "12", "13", "14"},
		ids(res.Recipes))
}

func TestFilterExamples(t *testing.T) {
	e := newTestEngine(exampleCorpus())

	tests := []struct {
		name     string
		criteria Criteria
		want     []common.RecipeID
	}{
		{"cuisine italian", Criteria{Cuisine: "Italian"}, []common.RecipeID{"1"}},
		{"include tomato and onion", Criteria{IncludeIngredients: "tomato,onion"}, []common.RecipeID{"1"}},
		{"exclude beef", Criteria{ExcludeIngredients: "beef"}, []common.RecipeID{"1"}},
		{"lunch", Criteria{MealType: Lunch}, []common.RecipeID{"2"}},
		{"no match", Criteria{Cuisine: "Greek"}, []common.RecipeID{}},
		{"include and exclude conflict", Criteria{IncludeIngredients: "beef", ExcludeIngredients: "tortilla"}, []common.RecipeID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Filter(tt.criteria, nil)
			assert.NotNil(t, res.Recipes)
			assert.Equal(t, tt.want, ids(res.Recipes))
		})
	}
}

func TestDislikedNeverReturned(t *testing.T) {
	corpus := bulkCorpus(30)
	disliked := common.NewIDSet("1", "3", "15", "30")
	e := newTestEngine(corpus)

	outputs := [][]common.Recipe{
		e.Filter(Criteria{}, disliked).Recipes,
		e.Filter(Criteria{MealType: Dinner, IncludeIngredients: "salt"}, disliked).Recipes,
		e.Filter(Criteria{Surprise: true}, disliked).Recipes,
		e.Surprise(disliked).Recipes,
	}
	search, err := e.Search("dish", Criteria{}, disliked)
	require.NoError(t, err)
	outputs = append(outputs, search.Recipes)

	for _, out := range outputs {
		for _, r := range out {
			assert.False(t, disliked.Has(r.ID), "disliked %s returned", r.ID)
		}
	}
	for i := 0; i < 50; i++ {
		r, ok := e.Pick(disliked)
		require.True(t, ok)
		assert.False(t, disliked.Has(r.ID))
	}
}

func TestSurpriseIgnoresFacets(t *testing.T) {
	e := newTestEngine(exampleCorpus())

	res := e.Filter(Criteria{Surprise: true, Cuisine: "Greek", IncludeIngredients: "caviar"}, common.NewIDSet("1"))

	assert.Equal(t, ModeSurprise, res.Mode)
	assert.Equal(t, []common.RecipeID{"2"}, ids(res.Recipes))
}

func TestSurpriseIsTruncatedPermutation(t *testing.T) {
	e := newTestEngine(bulkCorpus(40))

	res := e.Surprise(nil)

	require.Len(t, res.Recipes, PageSize)
	assert.Equal(t, 40, res.Matched)
	seen := map[common.RecipeID]bool{}
	for _, r := range res.Recipes {
		assert.False(t, seen[r.ID], "duplicate %s", r.ID)
		seen[r.ID] = true
	}
}

func TestSearchComposesWithFacets(t *testing.T) {
	corpus := append(exampleCorpus(), common.Recipe{
		ID:                  "3",
		Title:               "Tomato Salsa",
		Cuisines:            []string{"Mexican"},
		DishTypes:           []string{"side dish"},
		ExtendedIngredients: []common.Ingredient{ing("tomato"), ing("chili")},
	})
	e := newTestEngine(corpus)

	res, err := e.Search("  tomato ", Criteria{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []common.RecipeID{"1", "3"}, ids(res.Recipes))
	assert.Equal(t, ModeSearch, res.Mode)

	res, err = e.Search("tomato", Criteria{Cuisine: "Mexican"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []common.RecipeID{"3"}, ids(res.Recipes))

	res, err = e.Search("tomato", Criteria{ExcludeIngredients: "chili"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []common.RecipeID{"1"}, ids(res.Recipes))

	res, err = e.Search("beef", Criteria{Surprise: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, ModeSearch, res.Mode)
	assert.Equal(t, []common.RecipeID{"2"}, ids(res.Recipes))
}

func TestFilterWithQueryUsesSearch(t *testing.T) {
	e := newTestEngine(exampleCorpus())

	res := e.Filter(Criteria{Query: " beef "}, nil)
	assert.Equal(t, ModeSearch, res.Mode)
	assert.Equal(t, []common.RecipeID{"2"}, ids(res.Recipes))

	res = e.Filter(Criteria{Query: "beef", Cuisine: "Italian"}, nil)
	assert.Equal(t, ModeSearch, res.Mode)
	assert.Empty(t, res.Recipes)

	res = e.Filter(Criteria{Query: "tomato", Surprise: true}, nil)
	assert.Equal(t, ModeSearch, res.Mode)
	assert.Equal(t, []common.RecipeID{"1"}, ids(res.Recipes))

	res = e.Filter(Criteria{Query: "beef"}, common.NewIDSet("2"))
	assert.Empty(t, res.Recipes)

	res = e.Filter(Criteria{Query: "   "}, nil)
	assert.Equal(t, ModeFilter, res.Mode)
	assert.Len(t, res.Recipes, 2)
}

func TestSearchEmptyQuery(t *testing.T) {
	e := newTestEngine(exampleCorpus())

	_, err := e.Search("   ", Criteria{}, nil)

	require.Error(t, err)
	assert.True(t, IsEmptyQuery(err))
	assert.True(t, common.IsValidationError(err))
}

func TestCriteriaNormalize(t *testing.T) {
	c, err := Criteria{MealType: "dinner", Cuisine: "ITALIAN", Diet: "gluten free"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Dinner, c.MealType)
	assert.Equal(t, Cuisine("Italian"), c.Cuisine)
	assert.Equal(t, Diet("Gluten Free"), c.Diet)

	_, err = Criteria{Cuisine: "Martian"}.Normalize()
	assert.True(t, common.IsValidationError(err))
	assert.Error(t, Criteria{MealType: "Supper"}.Validate())
	assert.NoError(t, Criteria{}.Validate())
}

func TestFromPanel(t *testing.T) {
	assert.True(t, FromPanel(Criteria{}).Surprise)
	assert.True(t, FromPanel(Criteria{Diet: "Vegan", MealType: Lunch}).Surprise)
	assert.False(t, FromPanel(Criteria{IncludeIngredients: "egg"}).Surprise)
	assert.False(t, FromPanel(Criteria{Cuisine: "Thai"}).Surprise)
}
