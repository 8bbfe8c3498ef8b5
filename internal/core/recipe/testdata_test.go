package recipe

import (
	"fmt"
	"math/rand/v2"

	"dinedecide/internal/pkg/common"
)

func ing(original string) common.Ingredient {
	return common.Ingredient{Original: original}
}

// exampleCorpus 兩道食譜的範例資料
func exampleCorpus() []common.Recipe {
	return []common.Recipe{
		{
			ID:                  "1",
			Title:               "Tomato Soup",
			Cuisines:            []string{"Italian"},
			DishTypes:           []string{"dinner"},
			ExtendedIngredients: []common.Ingredient{ing("2 tomatoes"), ing("1 onion")},
		},
		{
			ID:                  "2",
			Title:               "Beef Tacos",
			Cuisines:            []string{"Mexican"},
			DishTypes:           []string{"lunch"},
			ExtendedIngredients: []common.Ingredient{ing("beef"), ing("tortilla")},
		},
	}
}

// bulkCorpus n 道簡單食譜，id 為 1..n
func bulkCorpus(n int) []common.Recipe {
	out := make([]common.Recipe, n)
	for i := range out {
		out[i] = common.Recipe{
			ID:        common.RecipeID(fmt.Sprint(i + 1)),
			Title:     fmt.Sprintf("Dish %d", i+1),
			DishTypes: []string{"main course"},
			ExtendedIngredients: []common.Ingredient{
				ing("salt"),
				ing(fmt.Sprintf("item%d", i+1)),
			},
		}
	}
	return out
}

func ids(recipes []common.Recipe) []common.RecipeID {
	out := make([]common.RecipeID, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
