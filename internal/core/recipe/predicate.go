package recipe

import (
	"strings"

	"dinedecide/internal/pkg/common"
)

// Predicate 單一食譜的判斷條件
type Predicate func(r common.Recipe) bool

// ParseIngredientTerms 將逗號分隔的食材文字轉為小寫詞彙，忽略空白項
func ParseIngredientTerms(csv string) []string {
	var terms []string
	for _, part := range strings.Split(csv, ",") {
		t := strings.ToLower(strings.TrimSpace(part))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// IngredientText 食譜所有食材描述（original 優先，否則 name）小寫後以空白串接
func IngredientText(r common.Recipe) string {
	parts := make([]string, 0, len(r.ExtendedIngredients))
	for _, ing := range r.ExtendedIngredients {
		s := ing.Original
		if s == "" {
			s = ing.Name
		}
		parts = append(parts, strings.ToLower(s))
	}
	return strings.Join(parts, " ")
}

func containsFold(list []string, want string) bool {
	for _, v := range list {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

// NotDisliked 食譜不在不喜歡清單中
func NotDisliked(r common.Recipe, disliked common.IDSet) bool {
	return !disliked.Has(r.ID)
}

// MatchesMealType 依 dishTypes 對照表判斷餐別，未選擇時一律成立
func MatchesMealType(r common.Recipe, m MealType) bool {
	if m == "" {
		return true
	}
	want, ok := mealDishTypes[m]
	if !ok {
		return true
	}
	for _, dt := range r.DishTypes {
		if containsFold(want, dt) {
			return true
		}
	}
	return false
}

// MatchesCuisine 菜系比對（不分大小寫）
func MatchesCuisine(r common.Recipe, c Cuisine) bool {
	if c == "" {
		return true
	}
	return containsFold(r.Cuisines, string(c))
}

// MatchesDiet 飲食限制比對（不分大小寫）
func MatchesDiet(r common.Recipe, d Diet) bool {
	if d == "" {
		return true
	}
	return containsFold(r.Diets, string(d))
}

// MatchesAllIncluded 每個詞都必須出現在食材文字中
func MatchesAllIncluded(r common.Recipe, includeCSV string) bool {
	terms := ParseIngredientTerms(includeCSV)
	if len(terms) == 0 {
		return true
	}
	text := IngredientText(r)
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}

// MatchesNoneExcluded 任何詞都不能出現在食材文字中
func MatchesNoneExcluded(r common.Recipe, excludeCSV string) bool {
	terms := ParseIngredientTerms(excludeCSV)
	if len(terms) == 0 {
		return true
	}
	text := IngredientText(r)
	for _, t := range terms {
		if strings.Contains(text, t) {
			return false
		}
	}
	return true
}

// MatchesText 標題或食材文字包含查詢字串（不分大小寫）
func MatchesText(r common.Recipe, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.Title), q) {
		return true
	}
	return strings.Contains(IngredientText(r), q)
}

// facetPredicates 依條件組合 facet 判斷，順序與短路一致
func facetPredicates(c Criteria, disliked common.IDSet) []Predicate {
	return []Predicate{
		func(r common.Recipe) bool { return NotDisliked(r, disliked) },
		func(r common.Recipe) bool { return MatchesMealType(r, c.MealType) },
		func(r common.Recipe) bool { return MatchesCuisine(r, c.Cuisine) },
		func(r common.Recipe) bool { return MatchesDiet(r, c.Diet) },
		func(r common.Recipe) bool { return MatchesAllIncluded(r, c.IncludeIngredients) },
		func(r common.Recipe) bool { return MatchesNoneExcluded(r, c.ExcludeIngredients) },
	}
}

// All 所有條件皆成立
func All(preds ...Predicate) Predicate {
	return func(r common.Recipe) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}
