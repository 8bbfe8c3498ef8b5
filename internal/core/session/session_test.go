package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"dinedecide/internal/core/collection"
	"dinedecide/internal/core/recipe"
	"dinedecide/internal/infrastructure/kv"
	"dinedecide/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	recipes []common.Recipe
	err     error
}

func (s staticSource) Load(context.Context) ([]common.Recipe, error) {
	return s.recipes, s.err
}

func exampleCorpus() []common.Recipe {
	return []common.Recipe{
		{
			ID: "1", Title: "Tomato Soup",
			Cuisines:  []string{"Italian"},
			DishTypes: []string{"dinner"},
			ExtendedIngredients: []common.Ingredient{
				{Name: "tomato", Original: "2 tomatoes"},
				{Name: "onion", Original: "1 onion"},
			},
		},
		{
			ID: "2", Title: "Beef Tacos",
			Cuisines:  []string{"Mexican"},
			DishTypes: []string{"lunch"},
			ExtendedIngredients: []common.Ingredient{
				{Name: "beef", Original: "beef"},
				{Name: "tortilla", Original: "tortilla"},
			},
		},
	}
}

func newTestSession(t *testing.T, corpus []common.Recipe) *Session {
	t.Helper()
	store := collection.NewStore(kv.NewMemoryStore())
	require.NoError(t, store.Load(context.Background()))
	s := New(store, rand.New(rand.NewPCG(1, 2)))
	if corpus != nil {
		s.LoadCorpus(corpus)
	}
	return s
}

func TestNewSessionIsEmpty(t *testing.T) {
	s := newTestSession(t, nil)

	assert.NotEmpty(t, s.ID)
	assert.False(t, s.Loaded())
	assert.Zero(t, s.CorpusSize())
	assert.Nil(t, s.LastResults())

	_, ok := s.Recommendation()
	assert.False(t, ok)
}

func TestLastResultsDistinguishesEmptyFromUnsearched(t *testing.T) {
	s := newTestSession(t, exampleCorpus())
	assert.Nil(t, s.LastResults())

	res, err := s.Filter(recipe.Criteria{Cuisine: "greek"})
	require.NoError(t, err)
	assert.Empty(t, res.Recipes)

	last := s.LastResults()
	require.NotNil(t, last)
	assert.NotNil(t, last.Recipes)
	assert.Empty(t, last.Recipes)
}

func TestFilterValidatesLabels(t *testing.T) {
	s := newTestSession(t, exampleCorpus())

	_, err := s.Filter(recipe.Criteria{Diet: "carnivore"})
	assert.True(t, common.IsValidationError(err))

	res, err := s.Filter(recipe.Criteria{Cuisine: "italian"})
	require.NoError(t, err)
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, common.RecipeID("1"), res.Recipes[0].ID)
}

func TestApplyPanelFallsBackToSurprise(t *testing.T) {
	s := newTestSession(t, exampleCorpus())

	res, err := s.ApplyPanel(recipe.Criteria{Diet: "Vegan"})
	require.NoError(t, err)
	assert.Equal(t, recipe.ModeSurprise, res.Mode)
	assert.Len(t, res.Recipes, 2)

	res, err = s.ApplyPanel(recipe.Criteria{IncludeIngredients: "beef"})
	require.NoError(t, err)
	assert.Equal(t, recipe.ModeFilter, res.Mode)
	assert.Len(t, res.Recipes, 1)
}

func TestDislikeAppliesToEveryOutput(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, exampleCorpus())
	require.NoError(t, s.Dislike(ctx, "1"))

	res, err := s.Filter(recipe.Criteria{})
	require.NoError(t, err)
	assert.Len(t, res.Recipes, 1)

	_, err = s.Search("tomato", recipe.Criteria{})
	require.NoError(t, err)
	assert.Empty(t, s.LastResults().Recipes)

	for i := 0; i < 10; i++ {
		assert.Equal(t, common.RecipeID("2"), s.Surprise().Recipes[0].ID)
		r, ok := s.RerollRecommendation()
		require.True(t, ok)
		assert.Equal(t, common.RecipeID("2"), r.ID)
	}
}

func TestRecommendationCachedUntilReload(t *testing.T) {
	ctx := context.Background()
	corpus := make([]common.Recipe, 50)
	for i := range corpus {
		corpus[i] = common.Recipe{ID: common.RecipeID(fmt.Sprint(i + 1)), Title: fmt.Sprintf("Dish %d", i+1)}
	}
	s := newTestSession(t, corpus)

	first, ok := s.Recommendation()
	require.True(t, ok)
	for i := 0; i < 20; i++ {
		again, ok := s.Recommendation()
		require.True(t, ok)
		assert.Equal(t, first.ID, again.ID)
	}

	require.NoError(t, s.Reload(ctx, staticSource{recipes: exampleCorpus()}))
	after, ok := s.Recommendation()
	require.True(t, ok)
	assert.Contains(t, []common.RecipeID{"1", "2"}, after.ID)
}

func TestRecommendationRedrawnWhenDisliked(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, exampleCorpus())

	first, ok := s.Recommendation()
	require.True(t, ok)
	require.NoError(t, s.Dislike(ctx, first.ID))

	next, ok := s.Recommendation()
	require.True(t, ok)
	assert.NotEqual(t, first.ID, next.ID)

	require.NoError(t, s.Dislike(ctx, next.ID))
	_, ok = s.Recommendation()
	assert.False(t, ok, "empty pool yields no recommendation")
}

func TestReloadFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, exampleCorpus())

	err := s.Reload(ctx, staticSource{err: errors.New("network down")})

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCorpusUnavailable)
	assert.Equal(t, 2, s.CorpusSize())
	assert.True(t, s.Loaded())
}

func TestViewAddsRecent(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, exampleCorpus())

	r, err := s.View(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Beef Tacos", r.Title)
	_, err = s.View(ctx, "1")
	require.NoError(t, err)
	_, err = s.View(ctx, "2")
	require.NoError(t, err)

	recent := s.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, common.RecipeID("2"), recent[0].ID)

	_, err = s.View(ctx, "404")
	assert.ErrorIs(t, err, common.ErrRecipeNotFound)
}

func TestFavoriteSurvivesReload(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, exampleCorpus())

	added, err := s.ToggleFavorite(ctx, "1")
	require.NoError(t, err)
	assert.True(t, added)

	s.LoadCorpus(exampleCorpus()[1:])
	require.Len(t, s.Favorites(), 1)
	assert.Equal(t, "Tomato Soup", s.Favorites()[0].Title)

	// 已不在資料中的收藏仍可取消
	added, err = s.ToggleFavorite(ctx, "1")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, s.Favorites())

	_, err = s.ToggleFavorite(ctx, "1")
	assert.ErrorIs(t, err, common.ErrRecipeNotFound)
}

func TestSuggestFollowsCorpus(t *testing.T) {
	s := newTestSession(t, exampleCorpus())

	assert.Equal(t, []string{"Beef Tacos", "beef"}, s.Suggest("bee"))
	assert.Equal(t, []string{"tomato", "tortilla"}, s.SuggestIngredients("onion, to"))

	s.LoadCorpus(nil)
	assert.Empty(t, s.Suggest("bee"))
}

func TestRatePassThrough(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, exampleCorpus())

	require.NoError(t, s.Rate(ctx, "2", 4))
	require.NoError(t, s.Rate(ctx, "2", 5))
	assert.Equal(t, map[string]int{"2": 5}, s.Ratings())
	assert.ErrorIs(t, s.Rate(ctx, "2", 9), collection.ErrInvalidRating)
}
