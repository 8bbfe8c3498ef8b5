package recipe

import (
	"fmt"
	"strings"

	"dinedecide/internal/pkg/common"
)

// PageSize 每次篩選回傳的最大筆數
const PageSize = 12

// MealType 餐別，零值表示未選擇
type MealType string

// Cuisine 菜系，零值表示未選擇
type Cuisine string

// Diet 飲食限制，零值表示未選擇
type Diet string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
)

// MealTypes 可選的餐別
var MealTypes = []MealType{Breakfast, Lunch, Dinner}

// Cuisines 可選的菜系
var Cuisines = []Cuisine{"Italian", "Mexican", "Chinese", "Indian", "Japanese", "Thai", "French", "Greek"}

// Diets 可選的飲食限制
var Diets = []Diet{"Vegetarian", "Vegan", "Gluten Free", "Dairy Free", "Ketogenic", "Paleo"}

// mealDishTypes 餐別對應的 dishTypes；午餐與晚餐共用 main course / main dish
var mealDishTypes = map[MealType][]string{
	Breakfast: {"breakfast", "brunch", "morning meal"},
	Lunch:     {"lunch", "main course", "main dish"},
	Dinner:    {"dinner", "main course", "main dish"},
}

// ParseMealType 解析餐別標籤（不分大小寫），空字串回傳零值
func ParseMealType(label string) (MealType, error) {
	for _, m := range MealTypes {
		if strings.EqualFold(strings.TrimSpace(label), string(m)) {
			return m, nil
		}
	}
	if strings.TrimSpace(label) == "" {
		return "", nil
	}
	return "", common.NewValidationError(fmt.Sprintf("unknown meal type %q", label))
}

// ParseCuisine 解析菜系標籤（不分大小寫），空字串回傳零值
func ParseCuisine(label string) (Cuisine, error) {
	for _, c := range Cuisines {
		if strings.EqualFold(strings.TrimSpace(label), string(c)) {
			return c, nil
		}
	}
	if strings.TrimSpace(label) == "" {
		return "", nil
	}
	return "", common.NewValidationError(fmt.Sprintf("unknown cuisine %q", label))
}

// ParseDiet 解析飲食限制標籤（不分大小寫），空字串回傳零值
func ParseDiet(label string) (Diet, error) {
	for _, d := range Diets {
		if strings.EqualFold(strings.TrimSpace(label), string(d)) {
			return d, nil
		}
	}
	if strings.TrimSpace(label) == "" {
		return "", nil
	}
	return "", common.NewValidationError(fmt.Sprintf("unknown diet %q", label))
}

// Criteria 篩選條件；每個 facet 只有單一值
type Criteria struct {
	MealType           MealType `json:"mealType,omitempty"`
	Cuisine            Cuisine  `json:"cuisine,omitempty"`
	Diet               Diet     `json:"diet,omitempty"`
	IncludeIngredients string   `json:"includeIngredients,omitempty"`
	ExcludeIngredients string   `json:"excludeIngredients,omitempty"`
	Query              string   `json:"query,omitempty"`
	Surprise           bool     `json:"surprise,omitempty"`
}

// Validate 檢查所有 facet 標籤都在可選範圍內
func (c Criteria) Validate() error {
	if _, err := ParseMealType(string(c.MealType)); err != nil {
		return err
	}
	if _, err := ParseCuisine(string(c.Cuisine)); err != nil {
		return err
	}
	if _, err := ParseDiet(string(c.Diet)); err != nil {
		return err
	}
	return nil
}

// Normalize 將標籤轉為標準寫法，並回傳驗證錯誤
func (c Criteria) Normalize() (Criteria, error) {
	var err error
	if c.MealType, err = ParseMealType(string(c.MealType)); err != nil {
		return c, err
	}
	if c.Cuisine, err = ParseCuisine(string(c.Cuisine)); err != nil {
		return c, err
	}
	if c.Diet, err = ParseDiet(string(c.Diet)); err != nil {
		return c, err
	}
	return c, nil
}

// FromPanel 依篩選面板的套用規則決定模式：
// 有填入食材或選了菜系就一般篩選，兩者都空則進入 surprise
func FromPanel(c Criteria) Criteria {
	c.Surprise = strings.TrimSpace(c.IncludeIngredients) == "" && c.Cuisine == ""
	return c
}
