// Package collection 管理使用者的收藏、最近瀏覽、評分與不喜歡清單，
// 每次變更後將整份集合寫回 kv.Store。
package collection

import (
	"context"
	"fmt"
	"sync"

	"dinedecide/internal/infrastructure/kv"
	"dinedecide/internal/pkg/common"

	"go.uber.org/zap"
)

// 持久化使用的鍵
const (
	KeyFavorites = "favorites"
	KeyDisliked  = "disliked"
	KeyRecent    = "recent"
	KeyRatings   = "ratings"
)

// RecentLimit 最近瀏覽保留筆數
const RecentLimit = 12

// 評分範圍
const (
	MinRating = 1
	MaxRating = 5
)

// ErrInvalidRating 評分超出 1–5
var ErrInvalidRating = common.NewValidationError(fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating))

// Store 使用者集合
type Store struct {
	kv kv.Store

	mu        sync.RWMutex
	favorites []common.Recipe
	recent    []common.Recipe
	disliked  []common.RecipeID
	ratings   map[string]int
}

// NewStore 創建空的集合，需呼叫 Load 讀取已保存的資料
func NewStore(store kv.Store) *Store {
	return &Store{
		kv:      store,
		ratings: make(map[string]int),
	}
}

// Load 讀取四個集合；鍵不存在視為空集合，內容格式錯誤時記錄警告並清空
func (s *Store) Load(ctx context.Context) error {
	favorites, err := loadKey[[]common.Recipe](ctx, s.kv, KeyFavorites)
	if err != nil {
		return err
	}
	recent, err := loadKey[[]common.Recipe](ctx, s.kv, KeyRecent)
	if err != nil {
		return err
	}
	disliked, err := loadKey[[]common.RecipeID](ctx, s.kv, KeyDisliked)
	if err != nil {
		return err
	}
	ratings, err := loadKey[map[string]int](ctx, s.kv, KeyRatings)
	if err != nil {
		return err
	}
	if ratings == nil {
		ratings = make(map[string]int)
	}
	favorites = dedupeRecipes(favorites)
	recent = dedupeRecipes(recent)
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}

	s.mu.Lock()
	s.favorites = favorites
	s.recent = recent
	s.disliked = dedupeIDs(disliked)
	s.ratings = ratings
	s.mu.Unlock()

	common.LogDebug("集合已載入",
		zap.Int("favorites", len(favorites)),
		zap.Int("recent", len(recent)),
		zap.Int("disliked", len(disliked)),
		zap.Int("ratings", len(ratings)),
	)
	return nil
}

// loadKey 讀取並解析單一鍵；格式錯誤時回傳零值
func loadKey[T any](ctx context.Context, store kv.Store, key string) (T, error) {
	var zero T
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return zero, common.ErrPersistence.Wrap(fmt.Errorf("load %s: %w", key, err))
	}
	if !ok || raw == "" {
		return zero, nil
	}
	var v T
	if err := common.ParseJSON(raw, &v); err != nil {
		common.LogWarn("集合資料格式錯誤，改用空集合",
			zap.String("key", key),
			zap.Error(err),
		)
		return zero, nil
	}
	return v, nil
}

func dedupeIDs(ids []common.RecipeID) []common.RecipeID {
	seen := make(common.IDSet, len(ids))
	out := make([]common.RecipeID, 0, len(ids))
	for _, id := range ids {
		if seen.Has(id) {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// dedupeRecipes 依 id 去重，保留第一次出現者
func dedupeRecipes(list []common.Recipe) []common.Recipe {
	seen := make(common.IDSet, len(list))
	out := make([]common.Recipe, 0, len(list))
	for _, r := range list {
		if seen.Has(r.ID) {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// persist 將集合整份寫回；呼叫時必須持有寫鎖
func (s *Store) persist(ctx context.Context, key string, value any) error {
	data, err := common.ToJSON(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		common.LogError("集合寫入失敗",
			zap.String("key", key),
			zap.Error(err),
		)
		return common.ErrPersistence.Wrap(err)
	}
	return nil
}

func indexOf(list []common.Recipe, id common.RecipeID) int {
	for i, r := range list {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// ToggleFavorite 已收藏則移除，否則加到最前面；回傳是否為新增
func (s *Store) ToggleFavorite(ctx context.Context, r common.Recipe) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := false
	if i := indexOf(s.favorites, r.ID); i >= 0 {
		s.favorites = append(s.favorites[:i:i], s.favorites[i+1:]...)
	} else {
		s.favorites = append([]common.Recipe{r.Clone()}, s.favorites...)
		added = true
	}
	return added, s.persist(ctx, KeyFavorites, nonNilRecipes(s.favorites))
}

// AddRecent 移除同 id 的舊紀錄後加到最前面，保留最多 RecentLimit 筆
func (s *Store) AddRecent(ctx context.Context, r common.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]common.Recipe, 0, RecentLimit)
	next = append(next, r.Clone())
	for _, existing := range s.recent {
		if existing.ID == r.ID {
			continue
		}
		if len(next) == RecentLimit {
			break
		}
		next = append(next, existing)
	}
	s.recent = next
	return s.persist(ctx, KeyRecent, s.recent)
}

// Rate 設定評分（1–5），超出範圍回傳 ErrInvalidRating 且不做任何變更
func (s *Store) Rate(ctx context.Context, id common.RecipeID, value int) error {
	if value < MinRating || value > MaxRating {
		return ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ratings[id.String()] = value
	return s.persist(ctx, KeyRatings, s.ratings)
}

// Dislike 加入不喜歡清單；已存在時不變更也不寫入
func (s *Store) Dislike(ctx context.Context, id common.RecipeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dislikeLocked(ctx, id)
}

// Undislike 從不喜歡清單移除；不存在時不變更也不寫入
func (s *Store) Undislike(ctx context.Context, id common.RecipeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.undislikeLocked(ctx, id)
	return err
}

// ToggleDislike 切換不喜歡狀態，回傳切換後是否為不喜歡
func (s *Store) ToggleDislike(ctx context.Context, id common.RecipeID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.undislikeLocked(ctx, id)
	if removed {
		return false, err
	}
	return true, s.dislikeLocked(ctx, id)
}

func (s *Store) dislikeLocked(ctx context.Context, id common.RecipeID) error {
	for _, existing := range s.disliked {
		if existing == id {
			return nil
		}
	}
	s.disliked = append(s.disliked, id)
	return s.persist(ctx, KeyDisliked, s.disliked)
}

func (s *Store) undislikeLocked(ctx context.Context, id common.RecipeID) (bool, error) {
	for i, existing := range s.disliked {
		if existing == id {
			s.disliked = append(s.disliked[:i:i], s.disliked[i+1:]...)
			return true, s.persist(ctx, KeyDisliked, s.disliked)
		}
	}
	return false, nil
}

func nonNilRecipes(list []common.Recipe) []common.Recipe {
	if list == nil {
		return []common.Recipe{}
	}
	return list
}

func copyRecipes(list []common.Recipe) []common.Recipe {
	out := make([]common.Recipe, len(list))
	for i, r := range list {
		out[i] = r.Clone()
	}
	return out
}

// Favorites 收藏（最新在前）
func (s *Store) Favorites() []common.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRecipes(s.favorites)
}

// Recent 最近瀏覽（最新在前）
func (s *Store) Recent() []common.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRecipes(s.recent)
}

// Disliked 不喜歡的 id 集合
func (s *Store) Disliked() common.IDSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return common.NewIDSet(s.disliked...)
}

// DislikedIDs 不喜歡的 id，依加入順序
func (s *Store) DislikedIDs() []common.RecipeID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]common.RecipeID{}, s.disliked...)
}

// Ratings 所有評分
func (s *Store) Ratings() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.ratings))
	for k, v := range s.ratings {
		out[k] = v
	}
	return out
}

// Rating 單一食譜的評分
func (s *Store) Rating(id common.RecipeID) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.ratings[id.String()]
	return v, ok
}

// IsFavorite 是否已收藏
func (s *Store) IsFavorite(id common.RecipeID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.favorites, id) >= 0
}
