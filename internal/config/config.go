// internal/config/config.go
package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Driver      string `mapstructure:"driver"` // postgres | sqlite
	URL         string `mapstructure:"url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type AppConfig struct {
	ReviewLimit             int    `mapstructure:"review_limit"`
	LastMissedRetentionDays int    `mapstructure:"last_missed_retention_days"`
	PruneAt                 string `mapstructure:"prune_at"` // HH:MM (UTC)
}

type AuthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type JWTConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Prefix  string `mapstructure:"prefix"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
	// Endpoint が空なら標準出力に書き出す
	Endpoint string `mapstructure:"endpoint"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	App      AppConfig      `mapstructure:"app"`
	Auth     AuthConfig     `mapstructure:"auth"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

// デフォルト設定値
const (
	DefaultServerPort              = ":8080"
	DefaultDatabaseDriver          = "postgres"
	DefaultLogLevel                = "info"
	DefaultAppReviewLimit          = 100
	DefaultLastMissedRetentionDays = 30
	DefaultPruneAt                 = "03:00"
	DefaultRedisPrefix             = "trainer:last_missed"
	DefaultTracingServiceName      = "vocab-trainer"
	DefaultTracingSampleRatio      = 0.1
)

var Cfg Config

// LoadConfig は path (と カレントディレクトリ) の config.yaml と APP_ 環境変数から設定を読み込みます
func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// 例: APP_DATABASE_URL -> database.url
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("auth.enabled", "AUTH_ENABLED")
	v.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	v.BindEnv("database.url", "DATABASE_URL", "APP_DATABASE_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Warn("Config file not found. Using default settings or environment variables if available.")
		} else {
			slog.Error("Error reading config file", slog.Any("error", err))
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("Error unmarshalling config", slog.Any("error", err))
		return err
	}

	// Auth.Enabled は未設定なら有効
	if !v.IsSet("auth.enabled") {
		slog.Info("Auth enabled flag not set, defaulting to true (enabled)")
		cfg.Auth.Enabled = true
	}
	ApplyDefaults(&cfg)
	Cfg = cfg

	slog.Info("Config loaded successfully",
		slog.String("port", Cfg.Server.Port),
		slog.String("db_driver", Cfg.Database.Driver),
		slog.Int("review_limit", Cfg.App.ReviewLimit),
		slog.Bool("auth_enabled", Cfg.Auth.Enabled),
		slog.Bool("redis_enabled", Cfg.Redis.Enabled),
	)
	return nil
}

// ApplyDefaults は未設定の値を埋めます (テストでも使う)
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DefaultDatabaseDriver
	}
	if cfg.Database.URL == "" {
		slog.Warn("Database URL is not set in config.")
	}
	if cfg.App.ReviewLimit <= 0 {
		cfg.App.ReviewLimit = DefaultAppReviewLimit
	}
	if cfg.App.LastMissedRetentionDays <= 0 {
		cfg.App.LastMissedRetentionDays = DefaultLastMissedRetentionDays
	}
	if cfg.App.PruneAt == "" {
		cfg.App.PruneAt = DefaultPruneAt
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = DefaultRedisPrefix
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Tracing.SampleRatio <= 0 || cfg.Tracing.SampleRatio > 1 {
		cfg.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
}
