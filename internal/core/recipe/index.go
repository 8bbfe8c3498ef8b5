package recipe

import (
	"sort"
	"strings"

	"dinedecide/internal/pkg/common"
)

// Index 食譜索引；建立後不可變，重新載入時整個替換
type Index struct {
	recipes     []common.Recipe
	byID        map[string]common.Recipe
	ingredients []string
}

// NewIndex 由原始食譜列表建立索引
// 重複 id 以後出現者為準；食材詞彙小寫、去空白、去重並排序
func NewIndex(recipes []common.Recipe) *Index {
	idx := &Index{
		recipes: make([]common.Recipe, len(recipes)),
		byID:    make(map[string]common.Recipe, len(recipes)),
	}
	copy(idx.recipes, recipes)

	vocab := make(map[string]struct{})
	for _, r := range recipes {
		idx.byID[r.ID.String()] = r

		for _, ing := range r.ExtendedIngredients {
			name := ing.Name
			if name == "" {
				name = ing.Original
			}
			name = strings.TrimSpace(strings.ToLower(name))
			if name == "" {
				continue
			}
			vocab[name] = struct{}{}
		}
	}

	idx.ingredients = make([]string, 0, len(vocab))
	for name := range vocab {
		idx.ingredients = append(idx.ingredients, name)
	}
	sort.Strings(idx.ingredients)

	return idx
}

// Len 食譜總數
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.recipes)
}

// Recipes 依載入順序回傳食譜（副本）
func (idx *Index) Recipes() []common.Recipe {
	if idx == nil {
		return nil
	}
	out := make([]common.Recipe, len(idx.recipes))
	copy(out, idx.recipes)
	return out
}

// Get 以 id 查詢食譜
func (idx *Index) Get(id common.RecipeID) (common.Recipe, bool) {
	if idx == nil {
		return common.Recipe{}, false
	}
	r, ok := idx.byID[id.String()]
	return r, ok
}

// Ingredients 排序後的食材詞彙（副本）
func (idx *Index) Ingredients() []string {
	if idx == nil {
		return nil
	}
	out := make([]string, len(idx.ingredients))
	copy(out, idx.ingredients)
	return out
}
