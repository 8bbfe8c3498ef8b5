package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinedecide/internal/api"
	"dinedecide/internal/core/cache"
	"dinedecide/internal/core/collection"
	"dinedecide/internal/core/session"
	"dinedecide/internal/core/source"
	"dinedecide/internal/infrastructure/config"
	"dinedecide/internal/infrastructure/kv"
	"dinedecide/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.App.LogDir); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("corpus_source", cfg.Corpus.Source),
		zap.String("corpus_path", cfg.Corpus.Path),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("spoonacular_api_key", config.MaskAPIKey(cfg.Spoonacular.APIKey)),
	)

	ctx := context.Background()

	// 收藏資料儲存
	store, err := kv.New(ctx, cfg.Storage)
	if err != nil {
		common.LogFatal("Failed to open storage", zap.Error(err))
	}
	defer store.Close()

	collections := collection.NewStore(store)
	if err := collections.Load(ctx); err != nil {
		common.LogFatal("Failed to load collections", zap.Error(err))
	}

	// 初始化快取，停用時為 nil
	cacheManager := cache.NewManager(cfg.Cache)
	defer cacheManager.Close()

	src, err := source.New(cfg, cacheManager)
	if err != nil {
		common.LogFatal("Failed to create corpus source", zap.Error(err))
	}

	sess := session.New(collections, nil)
	// 載入失敗時仍啟動服務，/ready 回報未就緒，可透過 /admin/reload 重試
	if err := sess.Reload(ctx, src); err != nil {
		common.LogWarn("Starting without corpus", zap.Error(err))
	}

	router := api.SetupRouter(cfg, sess, src, cacheManager)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("name", cfg.App.Name),
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}
