package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	Corpus      CorpusConfig      `mapstructure:"corpus"`
	Spoonacular SpoonacularConfig `mapstructure:"spoonacular"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Cache       CacheConfig       `mapstructure:"cache"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	DedupWindow time.Duration     `mapstructure:"dedup_window"` // /admin/reload 去重時間窗，0 停用
	LogLevel    string            `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	LogDir  string `mapstructure:"log_dir"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	AllowOrigins   []string      `mapstructure:"allow_origins"`
}

// 食譜資料來源
const (
	SourceFile        = "file"
	SourceSpoonacular = "spoonacular"
)

// CorpusConfig 食譜資料設定
type CorpusConfig struct {
	Source string `mapstructure:"source"` // file | spoonacular
	Path   string `mapstructure:"path"`
}

// SpoonacularConfig Spoonacular API 設定
type SpoonacularConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Number       int           `mapstructure:"number"`
	Offset       int           `mapstructure:"offset"`
	Query        string        `mapstructure:"query"`
	Cuisine      string        `mapstructure:"cuisine"`
	Diet         string        `mapstructure:"diet"`
	Intolerances string        `mapstructure:"intolerances"`
	Workers      int           `mapstructure:"workers"` // 同時取得食譜資訊的數量
}

// 收藏資料儲存方式
const (
	DriverMemory = "memory"
	DriverBolt   = "bolt"
	DriverRedis  = "redis"
)

// StorageConfig 收藏資料儲存設定
type StorageConfig struct {
	Driver        string `mapstructure:"driver"` // memory | bolt | redis
	BoltPath      string `mapstructure:"bolt_path"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	Namespace     string `mapstructure:"namespace"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件，不存在時直接使用環境變數
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	// 設定預設值
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	bindings := map[string]string{
		"server.port":         "PORT",
		"corpus.source":       "CORPUS_SOURCE",
		"corpus.path":         "CORPUS_PATH",
		"spoonacular.api_key": "SPOONACULAR_API_KEY",
		"spoonacular.number":  "SPOONACULAR_NUMBER",
		"spoonacular.query":   "SPOONACULAR_QUERY",
		"spoonacular.workers": "SPOONACULAR_WORKERS",
		"storage.driver":      "STORAGE_DRIVER",
		"storage.bolt_path":   "BOLT_PATH",
		"storage.redis_addr":  "REDIS_ADDR",
		"cache.enabled":       "CACHE_ENABLED",
		"rate_limit.enabled":  "RATE_LIMIT_ENABLED",
		"rate_limit.requests": "RATE_LIMIT_REQUESTS",
		"rate_limit.window":   "RATE_LIMIT_WINDOW",
		"dedup_window":        "DEDUP_WINDOW",
		"log_level":           "LOG_LEVEL",
		"app.log_dir":         "LOG_DIR",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.log_dir", "")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "dinedecide")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "10s")
	v.SetDefault("server.max_body_bytes", 1<<20) // 1MB
	v.SetDefault("server.allow_origins", []string{"*"})

	// 食譜資料
	v.SetDefault("corpus.source", SourceFile)
	v.SetDefault("corpus.path", "output.json")

	// Spoonacular
	v.SetDefault("spoonacular.base_url", "https://api.spoonacular.com")
	v.SetDefault("spoonacular.api_key", "")
	v.SetDefault("spoonacular.timeout", "15s")
	v.SetDefault("spoonacular.number", 100)
	v.SetDefault("spoonacular.offset", 0)
	v.SetDefault("spoonacular.query", "")
	v.SetDefault("spoonacular.cuisine", "")
	v.SetDefault("spoonacular.diet", "")
	v.SetDefault("spoonacular.intolerances", "")
	v.SetDefault("spoonacular.workers", 4)

	// 收藏儲存
	v.SetDefault("storage.driver", DriverBolt)
	v.SetDefault("storage.bolt_path", "dinedecide.db")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.namespace", "dinedecide")

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", config.Server.Port)
	}

	// 驗證資料來源
	switch config.Corpus.Source {
	case SourceFile:
		if config.Corpus.Path == "" {
			return fmt.Errorf("corpus path is required")
		}
	case SourceSpoonacular:
		if config.Spoonacular.APIKey == "" {
			return fmt.Errorf("spoonacular api key is required")
		}
		if config.Spoonacular.Number <= 0 {
			return fmt.Errorf("invalid spoonacular number")
		}
		if config.Spoonacular.Workers < 0 {
			return fmt.Errorf("invalid spoonacular workers")
		}
	default:
		return fmt.Errorf("unknown corpus source %q", config.Corpus.Source)
	}

	// 驗證儲存設定
	switch config.Storage.Driver {
	case DriverMemory:
	case DriverBolt:
		if config.Storage.BoltPath == "" {
			return fmt.Errorf("bolt path is required")
		}
	case DriverRedis:
		if config.Storage.RedisAddr == "" {
			return fmt.Errorf("redis addr is required")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	if config.RateLimit.Enabled && (config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit")
	}

	return nil
}
