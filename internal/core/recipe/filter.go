package recipe

import (
	"errors"
	"strings"

	"dinedecide/internal/pkg/common"

	"go.uber.org/zap"
)

// Mode 結果的產生方式
type Mode string

const (
	ModeFilter   Mode = "filter"
	ModeSearch   Mode = "search"
	ModeSurprise Mode = "surprise"
)

// ErrEmptyQuery 查詢字串為空
var ErrEmptyQuery = common.NewValidationError("query is empty")

// Results 篩選結果；Recipes 最多 PageSize 筆，Matched 為截斷前的符合數
type Results struct {
	Recipes []common.Recipe `json:"recipes"`
	Matched int             `json:"matched"`
	Mode    Mode            `json:"mode"`
}

// Engine 篩選引擎
type Engine struct {
	index    *Index
	selector *Selector
	pageSize int
}

// NewEngine 創建篩選引擎
func NewEngine(index *Index, selector *Selector) *Engine {
	if index == nil {
		index = NewIndex(nil)
	}
	if selector == nil {
		selector = NewSelector(nil)
	}
	return &Engine{
		index:    index,
		selector: selector,
		pageSize: PageSize,
	}
}

// Index 取得引擎使用的索引
func (e *Engine) Index() *Index {
	return e.index
}

// collect 依原順序收集符合的食譜並截斷
func (e *Engine) collect(match Predicate, mode Mode) Results {
	res := Results{Recipes: []common.Recipe{}, Mode: mode}
	for _, r := range e.index.recipes {
		if !match(r) {
			continue
		}
		res.Matched++
		if len(res.Recipes) < e.pageSize {
			res.Recipes = append(res.Recipes, r)
		}
	}
	return res
}

// Filter 依條件篩選；有 Query 時改走文字查詢（忽略 Surprise），
// Surprise 時忽略所有 facet，改為隨機排列
func (e *Engine) Filter(c Criteria, disliked common.IDSet) Results {
	if q := strings.TrimSpace(c.Query); q != "" {
		// q 非空，Search 不會回傳錯誤
		res, _ := e.Search(q, c, disliked)
		return res
	}
	if c.Surprise {
		return e.Surprise(disliked)
	}

	res := e.collect(All(facetPredicates(c, disliked)...), ModeFilter)

	common.LogDebug("篩選完成",
		zap.String("meal_type", string(c.MealType)),
		zap.String("cuisine", string(c.Cuisine)),
		zap.String("diet", string(c.Diet)),
		zap.Int("matched", res.Matched),
		zap.Int("returned", len(res.Recipes)),
	)
	return res
}

// Search 文字查詢：先比對標題或食材，再套用目前的 facet 條件
func (e *Engine) Search(query string, c Criteria, disliked common.IDSet) (Results, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Results{}, ErrEmptyQuery
	}

	preds := append([]Predicate{func(r common.Recipe) bool { return MatchesText(r, q) }}, facetPredicates(c, disliked)...)
	res := e.collect(All(preds...), ModeSearch)

	common.LogDebug("查詢完成",
		zap.String("query", q),
		zap.Int("matched", res.Matched),
		zap.Int("returned", len(res.Recipes)),
	)
	return res, nil
}

// Surprise 排除不喜歡後隨機排列整個資料集，取前 PageSize 筆
func (e *Engine) Surprise(disliked common.IDSet) Results {
	list := e.selector.Shuffle(e.index.recipes, disliked, 0)
	res := Results{Recipes: list, Matched: len(list), Mode: ModeSurprise}
	if len(res.Recipes) > e.pageSize {
		res.Recipes = res.Recipes[:e.pageSize]
	}
	return res
}

// Pick 隨機抽出一道推薦
func (e *Engine) Pick(disliked common.IDSet) (common.Recipe, bool) {
	return e.selector.Pick(e.index.recipes, disliked)
}

// IsEmptyQuery 判斷錯誤是否為空查詢
func IsEmptyQuery(err error) bool {
	return errors.Is(err, ErrEmptyQuery)
}
