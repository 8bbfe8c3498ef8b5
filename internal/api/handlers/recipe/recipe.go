package recipe

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"dinedecide/internal/api/handlers"
	recipeService "dinedecide/internal/core/recipe"
	"dinedecide/internal/core/session"
	"dinedecide/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜查詢處理器
type Handler struct {
	session *session.Session
}

// NewHandler 創建食譜處理器
func NewHandler(s *session.Session) *Handler {
	return &Handler{session: s}
}

// recommendationResponse 首頁推薦；資料為空時 recipe 為 null
type recommendationResponse struct {
	Recipe *common.Recipe `json:"recipe"`
}

// HandleFilter 依條件篩選
// 加上 ?panel=true 時套用篩選面板規則（沒有食材也沒有菜系時改為 surprise）
func (h *Handler) HandleFilter(c *gin.Context) {
	var req recipeService.Criteria
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		common.LogDebug("請求格式無效",
			zap.Error(err),
			zap.String("request_id", handlers.RequestID(c)),
		)
		handlers.RespondBadRequest(c, "Invalid request format")
		return
	}

	var (
		res recipeService.Results
		err error
	)
	if panel, _ := strconv.ParseBool(c.Query("panel")); panel {
		res, err = h.session.ApplyPanel(req)
	} else {
		res, err = h.session.Filter(req)
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// HandleSearch 文字查詢，可同時帶入 facet 參數
func (h *Handler) HandleSearch(c *gin.Context) {
	res, err := h.session.Search(c.Query("q"), criteriaFromQuery(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleSurprise 隨機排列整個資料集
func (h *Handler) HandleSurprise(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Surprise())
}

// HandleLastResults 最近一次結果；尚未查詢時回傳 204
func (h *Handler) HandleLastResults(c *gin.Context) {
	last := h.session.LastResults()
	if last == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, last)
}

// HandleSuggest 搜尋框自動完成
func (h *Handler) HandleSuggest(c *gin.Context) {
	c.JSON(http.StatusOK, newSuggestionsResponse(h.session.Suggest(c.Query("q"))))
}

// HandleSuggestIngredients 食材欄位自動完成
func (h *Handler) HandleSuggestIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, newSuggestionsResponse(h.session.SuggestIngredients(c.Query("q"))))
}

// HandleRecommendation 首頁推薦
func (h *Handler) HandleRecommendation(c *gin.Context) {
	r, ok := h.session.Recommendation()
	if !ok {
		c.JSON(http.StatusOK, recommendationResponse{})
		return
	}
	c.JSON(http.StatusOK, recommendationResponse{Recipe: &r})
}

// HandleReroll 重新抽推薦
func (h *Handler) HandleReroll(c *gin.Context) {
	r, ok := h.session.RerollRecommendation()
	if !ok {
		c.JSON(http.StatusOK, recommendationResponse{})
		return
	}
	c.JSON(http.StatusOK, recommendationResponse{Recipe: &r})
}

// HandleGetRecipe 食譜詳細內容，並記錄為最近瀏覽
func (h *Handler) HandleGetRecipe(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		handlers.RespondBadRequest(c, "recipe id is required")
		return
	}

	r, err := h.session.View(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, common.ErrPersistence) {
			handlers.RespondError(c, err)
			return
		}
		// 最近瀏覽寫入失敗不影響顯示
		common.LogWarn("最近瀏覽寫入失敗",
			zap.String("recipe", id.String()),
			zap.String("request_id", handlers.RequestID(c)),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusOK, r)
}
