// Package session 組合食譜索引、篩選引擎與使用者集合，代表一個使用者的操作狀態。
package session

import (
	"context"
	"sync"
	"time"

	"dinedecide/internal/core/collection"
	"dinedecide/internal/core/recipe"
	"dinedecide/internal/core/source"
	"dinedecide/internal/pkg/common"

	"go.uber.org/zap"
)

// Session 使用者的操作狀態；所有方法都可並行呼叫
type Session struct {
	ID string

	mu          sync.Mutex
	selector    *recipe.Selector
	engine      *recipe.Engine
	suggestions *recipe.SuggestionService
	store       *collection.Store

	loaded         bool
	loadedAt       time.Time
	recommendation *common.Recipe
	last           *recipe.Results
}

// New 創建空的 Session；rnd 為 nil 時使用隨機種子
func New(store *collection.Store, rnd recipe.RandSource) *Session {
	selector := recipe.NewSelector(rnd)
	index := recipe.NewIndex(nil)
	return &Session{
		ID:          common.GenerateUUID(),
		selector:    selector,
		engine:      recipe.NewEngine(index, selector),
		suggestions: recipe.NewSuggestionService(index),
		store:       store,
	}
}

// Reload 從資料來源重新載入；失敗時保留原本的資料
func (s *Session) Reload(ctx context.Context, src source.Source) error {
	start := time.Now()
	recipes, err := src.Load(ctx)
	if err != nil {
		common.LogError("食譜資料載入失敗",
			zap.String("session", s.ID),
			zap.Error(err),
		)
		return common.ErrCorpusUnavailable.Wrap(err)
	}

	s.LoadCorpus(recipes)
	common.LogInfo("食譜資料已載入",
		zap.String("session", s.ID),
		zap.Int("count", len(recipes)),
		zap.Duration("耗時", time.Since(start)),
	)
	return nil
}

// LoadCorpus 以記憶體中的食譜取代目前資料，並清除已抽出的推薦
func (s *Session) LoadCorpus(recipes []common.Recipe) {
	index := recipe.NewIndex(recipes)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine = recipe.NewEngine(index, s.selector)
	s.suggestions = recipe.NewSuggestionService(index)
	s.loaded = true
	s.loadedAt = time.Now()
	s.recommendation = nil
}

// Loaded 是否已成功載入過資料
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// CorpusSize 目前食譜數量
func (s *Session) CorpusSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Index().Len()
}

// LoadedAt 最近一次載入時間
func (s *Session) LoadedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedAt
}

func (s *Session) remember(res recipe.Results) recipe.Results {
	s.last = &res
	return res
}

// Filter 依條件篩選，標籤不合法時回傳驗證錯誤
func (s *Session) Filter(c recipe.Criteria) (recipe.Results, error) {
	c, err := c.Normalize()
	if err != nil {
		return recipe.Results{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remember(s.engine.Filter(c, s.store.Disliked())), nil
}

// ApplyPanel 篩選面板的套用：沒有食材也沒有菜系時改為 surprise
func (s *Session) ApplyPanel(c recipe.Criteria) (recipe.Results, error) {
	return s.Filter(recipe.FromPanel(c))
}

// Search 文字查詢並套用目前的 facet 條件
func (s *Session) Search(query string, c recipe.Criteria) (recipe.Results, error) {
	c, err := c.Normalize()
	if err != nil {
		return recipe.Results{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.engine.Search(query, c, s.store.Disliked())
	if err != nil {
		return recipe.Results{}, err
	}
	return s.remember(res), nil
}

// Surprise 隨機排列整個資料集（排除不喜歡）
func (s *Session) Surprise() recipe.Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remember(s.engine.Surprise(s.store.Disliked()))
}

// LastResults 最近一次結果；尚未查詢時為 nil
func (s *Session) LastResults() *recipe.Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	res := *s.last
	return &res
}

// Suggest 搜尋框自動完成
func (s *Session) Suggest(fragment string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggestions.Suggest(fragment)
}

// SuggestIngredients 食材欄位自動完成
func (s *Session) SuggestIngredients(input string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggestions.SuggestIngredients(input)
}

// Recommendation 首頁推薦；同一份資料只抽一次，抽中的食譜後來被標為不喜歡時重抽
func (s *Session) Recommendation() (common.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recommendation != nil && !s.store.Disliked().Has(s.recommendation.ID) {
		return *s.recommendation, true
	}
	return s.drawLocked()
}

// RerollRecommendation 重新抽一道推薦
func (s *Session) RerollRecommendation() (common.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawLocked()
}

func (s *Session) drawLocked() (common.Recipe, bool) {
	r, ok := s.engine.Pick(s.store.Disliked())
	if !ok {
		s.recommendation = nil
		return common.Recipe{}, false
	}
	s.recommendation = &r
	common.LogDebug("推薦已抽出",
		zap.String("session", s.ID),
		zap.String("recipe", r.ID.String()),
	)
	return r, true
}

// Recipe 以 id 查詢食譜
func (s *Session) Recipe(id common.RecipeID) (common.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Index().Get(id)
}

// View 開啟食譜詳細內容並加入最近瀏覽
func (s *Session) View(ctx context.Context, id common.RecipeID) (common.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.engine.Index().Get(id)
	if !ok {
		return common.Recipe{}, common.ErrRecipeNotFound
	}
	if err := s.store.AddRecent(ctx, r); err != nil {
		return r, err
	}
	return r, nil
}

// lookupLocked 先找目前資料，找不到時使用收藏中的快照
func (s *Session) lookupLocked(id common.RecipeID) (common.Recipe, bool) {
	if r, ok := s.engine.Index().Get(id); ok {
		return r, true
	}
	for _, r := range s.store.Favorites() {
		if r.ID == id {
			return r, true
		}
	}
	return common.Recipe{}, false
}

// ToggleFavorite 切換收藏，回傳切換後是否為收藏
func (s *Session) ToggleFavorite(ctx context.Context, id common.RecipeID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.lookupLocked(id)
	if !ok {
		return false, common.ErrRecipeNotFound
	}
	return s.store.ToggleFavorite(ctx, r)
}

// Rate 評分
func (s *Session) Rate(ctx context.Context, id common.RecipeID, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Rate(ctx, id, value)
}

// Dislike 標為不喜歡
func (s *Session) Dislike(ctx context.Context, id common.RecipeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Dislike(ctx, id)
}

// Undislike 取消不喜歡
func (s *Session) Undislike(ctx context.Context, id common.RecipeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Undislike(ctx, id)
}

// ToggleDislike 切換不喜歡
func (s *Session) ToggleDislike(ctx context.Context, id common.RecipeID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ToggleDislike(ctx, id)
}

// Favorites 收藏
func (s *Session) Favorites() []common.Recipe { return s.store.Favorites() }

// Recent 最近瀏覽
func (s *Session) Recent() []common.Recipe { return s.store.Recent() }

// Ratings 評分
func (s *Session) Ratings() map[string]int { return s.store.Ratings() }

// DislikedIDs 不喜歡清單
func (s *Session) DislikedIDs() []common.RecipeID { return s.store.DislikedIDs() }
