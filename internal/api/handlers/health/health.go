package health

import (
	"net/http"
	"runtime"
	"time"

	"dinedecide/internal/api/handlers"
	"dinedecide/internal/core/cache"
	"dinedecide/internal/infrastructure/config"
	"dinedecide/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Corpus    *CorpusStatus          `json:"corpus,omitempty"`
	Cache     *cache.Stats           `json:"cache,omitempty"`
}

// CorpusStatus 食譜資料狀態
type CorpusStatus struct {
	Loaded   bool      `json:"loaded"`
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
	Session  string    `json:"session"`
}

// Handler 健康檢查處理器
type Handler struct {
	config *config.Config
	cache  *cache.CacheManager
}

// NewHandler 創建健康檢查處理器；cm 可為 nil
func NewHandler(cfg *config.Config, cm *cache.CacheManager) *Handler {
	return &Handler{config: cfg, cache: cm}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if s, ok := handlers.SessionFrom(c); ok {
		response.Corpus = &CorpusStatus{
			Loaded:   s.Loaded(),
			Count:    s.CorpusSize(),
			LoadedAt: s.LoadedAt(),
			Session:  s.ID,
		}
	}
	if h.cache != nil {
		stats := h.cache.GetStats()
		response.Cache = &stats
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 食譜資料載入後才算就緒
func (h *Handler) ReadinessCheck(c *gin.Context) {
	s, ok := handlers.SessionFrom(c)
	if !ok || !s.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"count":  s.CorpusSize(),
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
