package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// RecipeID 食譜識別碼，資料來源可能是整數或字串
type RecipeID string

// String 回傳標準字串鍵
func (id RecipeID) String() string {
	return string(id)
}

// isInteger 判斷 id 是否為整數字面值（可還原為 JSON 數字）
func (id RecipeID) isInteger() bool {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

// MarshalJSON 整數 id 以數字輸出，其餘以字串輸出
func (id RecipeID) MarshalJSON() ([]byte, error) {
	if id.isInteger() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON 接受 JSON 數字或字串
func (id *RecipeID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecipeID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid recipe id %s: %w", string(data), err)
	}
	*id = canonicalNumber(n)
	return nil
}

// canonicalNumber 整數值（含 1.0、1e0 寫法）統一為十進位整數字串
func canonicalNumber(n json.Number) RecipeID {
	if i, err := n.Int64(); err == nil {
		return RecipeID(strconv.FormatInt(i, 10))
	}
	f, err := n.Float64()
	if err == nil && f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return RecipeID(strconv.FormatInt(int64(f), 10))
	}
	return RecipeID(n.String())
}

// Ingredient 食材
type Ingredient struct {
	ID       int     `json:"id,omitempty"`
	Name     string  `json:"name,omitempty"`
	Original string  `json:"original,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Aisle    string  `json:"aisle,omitempty"`
}

// Recipe 食譜（欄位名稱與 Spoonacular recipe information 一致）
type Recipe struct {
	ID                  RecipeID     `json:"id"`
	Title               string       `json:"title"`
	Image               string       `json:"image,omitempty"`
	ReadyInMinutes      int          `json:"readyInMinutes,omitempty"`
	Servings            int          `json:"servings,omitempty"`
	Cuisines            []string     `json:"cuisines,omitempty"`
	Diets               []string     `json:"diets,omitempty"`
	DishTypes           []string     `json:"dishTypes,omitempty"`
	ExtendedIngredients []Ingredient `json:"extendedIngredients,omitempty"`
	Summary             string       `json:"summary,omitempty"`
	Instructions        string       `json:"instructions,omitempty"`
	SourceURL           string       `json:"sourceUrl,omitempty"`
	HealthScore         float64      `json:"healthScore,omitempty"`
}

// Clone 複製食譜，切片不與原本共用
func (r Recipe) Clone() Recipe {
	c := r
	c.Cuisines = append([]string(nil), r.Cuisines...)
	c.Diets = append([]string(nil), r.Diets...)
	c.DishTypes = append([]string(nil), r.DishTypes...)
	c.ExtendedIngredients = append([]Ingredient(nil), r.ExtendedIngredients...)
	return c
}

// IDSet 食譜 id 集合
type IDSet map[RecipeID]struct{}

// NewIDSet 由 id 列表建立集合
func NewIDSet(ids ...RecipeID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has 檢查 id 是否存在，nil 集合視為空集合
func (s IDSet) Has(id RecipeID) bool {
	if s == nil {
		return false
	}
	_, ok := s[id]
	return ok
}
