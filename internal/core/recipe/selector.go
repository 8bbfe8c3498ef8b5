package recipe

import (
	"math/rand/v2"

	"dinedecide/internal/pkg/common"
)

// RandSource 隨機來源；*rand.Rand 即符合此介面，測試時可注入固定種子
type RandSource interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Selector 隨機推薦與 surprise 洗牌
type Selector struct {
	rnd RandSource
}

// NewSelector 創建推薦選擇器，rnd 為 nil 時使用未固定種子的 PCG
func NewSelector(rnd RandSource) *Selector {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{rnd: rnd}
}

// pool 排除不喜歡的食譜，保留原順序
func pool(recipes []common.Recipe, disliked common.IDSet) []common.Recipe {
	out := make([]common.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if NotDisliked(r, disliked) {
			out = append(out, r)
		}
	}
	return out
}

// Shuffle 對排除不喜歡後的食譜做均勻隨機排列，limit <= 0 表示不截斷
func (s *Selector) Shuffle(recipes []common.Recipe, disliked common.IDSet, limit int) []common.Recipe {
	list := pool(recipes, disliked)
	s.rnd.Shuffle(len(list), func(i, j int) {
		list[i], list[j] = list[j], list[i]
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}

// Pick 從排除不喜歡後的食譜中均勻抽出一道；候選為空時回傳 false
func (s *Selector) Pick(recipes []common.Recipe, disliked common.IDSet) (common.Recipe, bool) {
	list := pool(recipes, disliked)
	if len(list) == 0 {
		return common.Recipe{}, false
	}
	return list[s.rnd.IntN(len(list))], true
}
