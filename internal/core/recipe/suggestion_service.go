package recipe

import (
	"strings"
)

// MaxSuggestions 自動完成最多回傳筆數
const MaxSuggestions = 8

// SuggestionService 自動完成建議
type SuggestionService struct {
	index *Index
	limit int
}

// NewSuggestionService 創建新的自動完成服務
func NewSuggestionService(index *Index) *SuggestionService {
	if index == nil {
		index = NewIndex(nil)
	}
	return &SuggestionService{
		index: index,
		limit: MaxSuggestions,
	}
}

// Suggest 標題以子字串比對，食材詞彙以前綴比對；合併、去重後最多 8 筆
func (s *SuggestionService) Suggest(fragment string) []string {
	v := strings.ToLower(strings.TrimSpace(fragment))
	if v == "" {
		return nil
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, s.limit)
	add := func(candidate string) bool {
		if _, dup := seen[candidate]; dup {
			return len(out) < s.limit
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
		return len(out) < s.limit
	}

	for _, r := range s.index.recipes {
		if r.Title == "" || !strings.Contains(strings.ToLower(r.Title), v) {
			continue
		}
		if !add(r.Title) {
			return out
		}
	}
	for _, ing := range s.index.ingredients {
		if !strings.HasPrefix(ing, v) {
			continue
		}
		if !add(ing) {
			return out
		}
	}
	return out
}

// lastSegment 取出逗號分隔輸入的最後一段
func lastSegment(input string) string {
	parts := strings.Split(input, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}

// SuggestIngredients 食材欄位的自動完成：只比對最後一段的食材前綴
func (s *SuggestionService) SuggestIngredients(input string) []string {
	v := lastSegment(input)
	if v == "" {
		return nil
	}

	out := make([]string, 0, s.limit)
	for _, ing := range s.index.ingredients {
		if strings.HasPrefix(ing, v) {
			out = append(out, ing)
			if len(out) == s.limit {
				break
			}
		}
	}
	return out
}

// CompleteIngredients 以選中的建議取代輸入的最後一段
func CompleteIngredients(input, suggestion string) string {
	parts := strings.Split(input, ",")
	parts[len(parts)-1] = " " + suggestion
	return strings.TrimPrefix(strings.Join(parts, ","), " ")
}
