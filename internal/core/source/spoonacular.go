package source

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"dinedecide/internal/core/cache"
	"dinedecide/internal/core/queue"
	"dinedecide/internal/infrastructure/config"
	"dinedecide/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const infoCacheNamespace = "spoonacular:info"

// SearchParams complexSearch 查詢條件；空字串的欄位不送出
type SearchParams struct {
	Query        string
	Cuisine      string
	Diet         string
	Intolerances string
	Number       int
	Offset       int
}

// SpoonacularSource 透過 Spoonacular API 取得食譜
type SpoonacularSource struct {
	client *resty.Client
	params SearchParams
	cache  *cache.CacheManager
	pool   *queue.Pool
}

var _ Source = (*SpoonacularSource)(nil)

// NewSpoonacularSource 創建 Spoonacular 來源；cm 為 nil 時不緩存
func NewSpoonacularSource(cfg config.SpoonacularConfig, cm *cache.CacheManager) *SpoonacularSource {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetQueryParam("apiKey", cfg.APIKey).
		SetHeader("Accept", "application/json")

	return &SpoonacularSource{
		client: client,
		params: SearchParams{
			Query:        cfg.Query,
			Cuisine:      cfg.Cuisine,
			Diet:         cfg.Diet,
			Intolerances: cfg.Intolerances,
			Number:       cfg.Number,
			Offset:       cfg.Offset,
		},
		cache: cm,
		pool:  queue.NewPool(cfg.Workers),
	}
}

// WithParams 回傳使用其他查詢條件的來源，共用同一個 client 與緩存
func (s *SpoonacularSource) WithParams(p SearchParams) *SpoonacularSource {
	c := *s
	c.params = p
	return &c
}

// Load 先搜尋 id，再由工作池取得完整資訊；結果維持搜尋順序，單筆失敗記錄後略過
func (s *SpoonacularSource) Load(ctx context.Context) ([]common.Recipe, error) {
	ids, err := s.Search(ctx, s.params)
	if err != nil {
		return nil, err
	}

	fetched := make([]common.Recipe, len(ids))
	tasks := make([]queue.Task, len(ids))
	for i, id := range ids {
		tasks[i] = func(ctx context.Context) error {
			r, err := s.Information(ctx, id)
			if err != nil {
				return err
			}
			fetched[i] = r
			return nil
		}
	}
	errs := s.pool.Run(ctx, tasks)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recipes := make([]common.Recipe, 0, len(ids))
	for i, err := range errs {
		if err != nil {
			common.LogWarn("取得食譜資訊失敗", zap.String("id", ids[i].String()), zap.Error(err))
			continue
		}
		recipes = append(recipes, fetched[i])
	}

	status := s.pool.GetStatus()
	common.LogInfo("Spoonacular 食譜已取得",
		zap.Int("搜尋結果", len(ids)),
		zap.Int("成功", len(recipes)),
		zap.Int("workers", status.Workers),
	)
	return recipes, nil
}

// Search 呼叫 complexSearch，回傳結果 id
func (s *SpoonacularSource) Search(ctx context.Context, p SearchParams) ([]common.RecipeID, error) {
	query := map[string]string{}
	for k, v := range map[string]string{
		"query":        p.Query,
		"cuisine":      p.Cuisine,
		"diet":         p.Diet,
		"intolerances": p.Intolerances,
	} {
		if v != "" {
			query[k] = v
		}
	}
	if p.Number > 0 {
		query["number"] = strconv.Itoa(p.Number)
	}
	query["offset"] = strconv.Itoa(p.Offset)

	var result struct {
		Results []struct {
			ID common.RecipeID `json:"id"`
		} `json:"results"`
	}

	start := time.Now()
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get("/recipes/complexSearch")
	if err = checkResponse(resp, err); err == nil {
		err = common.ParseJSONBytes(resp.Body(), &result)
	}
	common.LogRemoteCall("/recipes/complexSearch", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("spoonacular search: %w", err)
	}

	ids := make([]common.RecipeID, 0, len(result.Results))
	for _, r := range result.Results {
		if r.ID != "" {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

// Information 取得單筆食譜完整資訊，回應內容會被緩存
func (s *SpoonacularSource) Information(ctx context.Context, id common.RecipeID) (common.Recipe, error) {
	var r common.Recipe

	body, err := s.cache.Get(ctx, infoCacheNamespace, id.String())
	if err != nil {
		endpoint := fmt.Sprintf("/recipes/%s/information", id)
		start := time.Now()
		resp, reqErr := s.client.R().
			SetContext(ctx).
			SetPathParam("id", id.String()).
			Get("/recipes/{id}/information")
		reqErr = checkResponse(resp, reqErr)
		common.LogRemoteCall(endpoint, time.Since(start), reqErr)
		if reqErr != nil {
			return r, fmt.Errorf("spoonacular information %s: %w", id, reqErr)
		}

		body = resp.String()
		if err := s.cache.Set(ctx, infoCacheNamespace, id.String(), body); err != nil {
			common.LogWarn("緩存食譜資訊失敗", zap.String("id", id.String()), zap.Error(err))
		}
	}

	if err := common.ParseJSON(body, &r); err != nil {
		return r, fmt.Errorf("parse information %s: %w", id, err)
	}
	return r, nil
}

// checkResponse 將傳輸錯誤與非 200 狀態統一為 error
func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
