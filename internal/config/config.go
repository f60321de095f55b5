package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the bestsellers service
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	Redis   RedisConfig   `mapstructure:"redis"`
	NATS    NATSConfig    `mapstructure:"nats"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	Sentry  SentryConfig  `mapstructure:"sentry"`
	HTTP    HTTPConfig    `mapstructure:"http"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

// DatasetConfig holds the dataset store and conversion source locations
type DatasetConfig struct {
	// Path is the sqlite file holding the converted dataset.
	Path string `mapstructure:"path"`
	// SourceFile is the spreadsheet export read by the conversion utility.
	SourceFile string `mapstructure:"source_file"`
	// CacheTTL bounds how long aggregated summaries stay in Redis.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// RedisConfig holds Redis cache configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// JWTConfig holds JWT configuration for the admin endpoints
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// SentryConfig holds Sentry error tracking configuration
type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
	Release     string `mapstructure:"release"`
}

// HTTPConfig holds HTTP surface configuration
type HTTPConfig struct {
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Automatically load environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("") // No prefix, read exact variable names

	// Bind specific environment variables
	_ = v.BindEnv("app.name", "APP_NAME")
	_ = v.BindEnv("app.env", "APP_ENV")
	_ = v.BindEnv("app.port", "APP_PORT")

	_ = v.BindEnv("dataset.path", "DATASET_PATH")
	_ = v.BindEnv("dataset.source_file", "DATASET_SOURCE_FILE")
	_ = v.BindEnv("dataset.cache_ttl", "DATASET_CACHE_TTL")

	_ = v.BindEnv("nats.url", "NATS_URL")

	// Redis
	_ = v.BindEnv("redis.host", "REDIS_HOST")
	_ = v.BindEnv("redis.port", "REDIS_PORT")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")

	_ = v.BindEnv("jwt.secret", "JWT_SECRET")

	_ = v.BindEnv("sentry.dsn", "SENTRY_DSN")
	_ = v.BindEnv("sentry.environment", "APP_ENV")
	_ = v.BindEnv("sentry.release", "APP_VERSION")

	_ = v.BindEnv("http.allowed_origins", "ALLOWED_ORIGINS")

	// Set defaults
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "service-bestsellers")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8011")

	// Dataset
	v.SetDefault("dataset.path", "noon_data.db")
	v.SetDefault("dataset.source_file", "Noon_Master_Output_Full.xlsx")
	v.SetDefault("dataset.cache_ttl", 10*time.Minute)

	// NATS is optional; empty disables auto-refresh
	v.SetDefault("nats.url", "")

	// Redis
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Sentry
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.release", "1.0.0")

	// HTTP
	v.SetDefault("http.allowed_origins", "http://localhost:3000,http://localhost:3001")
}
