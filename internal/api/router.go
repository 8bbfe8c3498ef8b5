package api

import (
	"net/http"
	"time"

	"dinedecide/internal/api/handlers/admin"
	collectionHandler "dinedecide/internal/api/handlers/collection"
	"dinedecide/internal/api/handlers/health"
	recipeHandler "dinedecide/internal/api/handlers/recipe"
	"dinedecide/internal/api/middleware"
	"dinedecide/internal/core/cache"
	"dinedecide/internal/core/session"
	"dinedecide/internal/core/source"
	"dinedecide/internal/infrastructure/config"
	"dinedecide/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由；src 為 nil 時不註冊 /admin/reload
func SetupRouter(cfg *config.Config, sess *session.Session, src source.Source, cm *cache.CacheManager) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())

	origins := cfg.Server.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	router.Use(middleware.InjectSession(sess))

	router.NoRoute(func(c *gin.Context) {
		common.WriteErrorResponse(c.Writer, http.StatusNotFound, common.ErrCodeNotFound, "route not found")
	})
	router.NoMethod(func(c *gin.Context) {
		common.WriteErrorResponse(c.Writer, http.StatusMethodNotAllowed, common.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, cm)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	api := router.Group("/api/v1")
	{
		recipes := recipeHandler.NewHandler(sess)
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("/filter", recipes.HandleFilter)
			recipeGroup.GET("/search", recipes.HandleSearch)
			recipeGroup.POST("/surprise", recipes.HandleSurprise)
			recipeGroup.GET("/results", recipes.HandleLastResults)
			recipeGroup.GET("/suggest", recipes.HandleSuggest)
			recipeGroup.GET("/suggest/ingredients", recipes.HandleSuggestIngredients)
			recipeGroup.GET("/recommendation", recipes.HandleRecommendation)
			recipeGroup.POST("/recommendation/reroll", recipes.HandleReroll)
			recipeGroup.GET("/:id", recipes.HandleGetRecipe)
		}

		collections := collectionHandler.NewHandler(sess)
		collectionGroup := api.Group("/collections")
		{
			collectionGroup.GET("/favorites", collections.HandleFavorites)
			collectionGroup.POST("/favorites/:id/toggle", collections.HandleToggleFavorite)
			collectionGroup.GET("/recent", collections.HandleRecent)
			collectionGroup.GET("/ratings", collections.HandleRatings)
			collectionGroup.PUT("/ratings/:id", collections.HandleRate)
			collectionGroup.GET("/disliked", collections.HandleDisliked)
			collectionGroup.PUT("/disliked/:id", collections.HandleDislike)
			collectionGroup.DELETE("/disliked/:id", collections.HandleUndislike)
			collectionGroup.POST("/disliked/:id/toggle", collections.HandleToggleDislike)
		}

		if src != nil {
			api.POST("/admin/reload",
				middleware.Deduplication(cfg.DedupWindow),
				admin.NewHandler(sess, src).HandleReload,
			)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.String("session", sess.ID),
		zap.Bool("cache_enabled", cm != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("reload_dedup_window", cfg.DedupWindow),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
