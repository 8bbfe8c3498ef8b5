package collection

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"dinedecide/internal/api/handlers"
	"dinedecide/internal/core/session"
	"dinedecide/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 使用者集合處理器
type Handler struct {
	session *session.Session
}

// NewHandler 創建集合處理器
func NewHandler(s *session.Session) *Handler {
	return &Handler{session: s}
}

// RateRequest 評分請求
type RateRequest struct {
	Rating *int `json:"rating" binding:"required"`
}

func idParam(c *gin.Context) (common.RecipeID, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		handlers.RespondBadRequest(c, "recipe id is required")
		return "", false
	}
	return common.RecipeID(id), true
}

// HandleFavorites 收藏列表
func (h *Handler) HandleFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"favorites": h.session.Favorites()})
}

// HandleToggleFavorite 切換收藏
func (h *Handler) HandleToggleFavorite(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	favorite, err := h.session.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	common.LogInfo("收藏已切換",
		zap.String("recipe", id.String()),
		zap.Bool("favorite", favorite),
		zap.String("request_id", handlers.RequestID(c)),
	)
	c.JSON(http.StatusOK, gin.H{"id": id, "favorite": favorite})
}

// HandleRecent 最近瀏覽
func (h *Handler) HandleRecent(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"recent": h.session.Recent()})
}

// HandleRatings 所有評分
func (h *Handler) HandleRatings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ratings": h.session.Ratings()})
}

// HandleRate 設定評分（1–5）
func (h *Handler) HandleRate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			handlers.RespondBadRequest(c, "rating is required")
			return
		}
		handlers.RespondBadRequest(c, "Invalid request format")
		return
	}

	if err := h.session.Rate(c.Request.Context(), id, *req.Rating); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "rating": *req.Rating})
}

// HandleDisliked 不喜歡清單
func (h *Handler) HandleDisliked(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"disliked": h.session.DislikedIDs()})
}

// HandleDislike 標為不喜歡
func (h *Handler) HandleDislike(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.session.Dislike(c.Request.Context(), id); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "disliked": true})
}

// HandleUndislike 取消不喜歡
func (h *Handler) HandleUndislike(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.session.Undislike(c.Request.Context(), id); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "disliked": false})
}

// HandleToggleDislike 切換不喜歡
func (h *Handler) HandleToggleDislike(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	disliked, err := h.session.ToggleDislike(c.Request.Context(), id)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "disliked": disliked})
}
