package admin

import (
	"net/http"
	"time"

	"dinedecide/internal/api/handlers"
	"dinedecide/internal/core/session"
	"dinedecide/internal/core/source"

	"github.com/gin-gonic/gin"
)

// Handler 管理用處理器
type Handler struct {
	session *session.Session
	source  source.Source
}

// NewHandler 創建管理處理器
func NewHandler(s *session.Session, src source.Source) *Handler {
	return &Handler{session: s, source: src}
}

// HandleReload 從設定的來源重新載入食譜資料；失敗時保留原本的資料
func (h *Handler) HandleReload(c *gin.Context) {
	if err := h.session.Reload(c.Request.Context(), h.source); err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "reloaded",
		"count":     h.session.CorpusSize(),
		"loaded_at": h.session.LoadedAt().Format(time.RFC3339),
	})
}
