// Package source 載入食譜資料：本機 JSON 檔或 Spoonacular API。
package source

import (
	"context"
	"fmt"

	"dinedecide/internal/core/cache"
	"dinedecide/internal/infrastructure/config"
	"dinedecide/internal/pkg/common"
)

// Source 食譜資料來源
type Source interface {
	Load(ctx context.Context) ([]common.Recipe, error)
}

// New 依設定建立資料來源
func New(cfg *config.Config, cm *cache.CacheManager) (Source, error) {
	switch cfg.Corpus.Source {
	case config.SourceFile:
		return NewFileSource(cfg.Corpus.Path), nil
	case config.SourceSpoonacular:
		return NewSpoonacularSource(cfg.Spoonacular, cm), nil
	default:
		return nil, fmt.Errorf("unknown corpus source %q", cfg.Corpus.Source)
	}
}
