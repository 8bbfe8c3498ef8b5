package recipe

import (
	"strings"

	recipeService "dinedecide/internal/core/recipe"
	"dinedecide/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// criteriaFromQuery 由查詢參數組出篩選條件，標籤於 Session 中驗證
func criteriaFromQuery(c *gin.Context) recipeService.Criteria {
	return recipeService.Criteria{
		MealType:           recipeService.MealType(c.Query("mealType")),
		Cuisine:            recipeService.Cuisine(c.Query("cuisine")),
		Diet:               recipeService.Diet(c.Query("diet")),
		IncludeIngredients: c.Query("include"),
		ExcludeIngredients: c.Query("exclude"),
	}
}

// recipeIDParam 取得路徑中的食譜 id
func recipeIDParam(c *gin.Context) (common.RecipeID, bool) {
	id := strings.TrimSpace(c.Param("id"))
	return common.RecipeID(id), id != ""
}

// suggestionsResponse 自動完成回應
type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

func newSuggestionsResponse(list []string) suggestionsResponse {
	if list == nil {
		list = []string{}
	}
	return suggestionsResponse{Suggestions: list}
}
