// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// OneWeek is the default lifetime of cached analysis responses, in seconds.
const OneWeek = 7 * 24 * 60 * 60

func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	// base config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// environment overlay, optional
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return unmarshal(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	// Enable ENV override like STORE_BACKEND or LANGUAGE_API_KEY
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Booleans cannot be defaulted after unmarshal.
	v.SetDefault("cache.enabled", true)
	v.SetDefault("tracing.enabled", false)

	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the first location that has one.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars replaces ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.Language.APIKey == "" {
		if val := os.Getenv("GOOGLE_API_KEY"); val != "" {
			cfg.Language.APIKey = val
		}
	}
	if cfg.Language.CredentialsFile == "" {
		if val := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); val != "" {
			cfg.Language.CredentialsFile = val
		}
	}

	if cfg.Store.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Store.Postgres.User = val
		}
	}
	if cfg.Store.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Store.Postgres.Password = val
		}
	}

	if cfg.Cache.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDR"); val != "" {
			cfg.Cache.Redis.Address = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "nlp-dashboard"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8050"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}

	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendSQLite
	}
	if cfg.Store.Postgres.Port == 0 {
		cfg.Store.Postgres.Port = 5432
	}
	if cfg.Store.Postgres.MaxConnections == 0 {
		cfg.Store.Postgres.MaxConnections = 25
	}
	if cfg.Store.Postgres.MaxIdle == 0 {
		cfg.Store.Postgres.MaxIdle = 5
	}
	if cfg.Store.Postgres.SSLMode == "" {
		cfg.Store.Postgres.SSLMode = "disable"
	}
	if cfg.Store.SQLite.Path == "" {
		cfg.Store.SQLite.Path = "articles.db"
	}
	if cfg.Store.Elasticsearch.URL == "" && len(cfg.Store.Elasticsearch.Addresses) > 0 {
		cfg.Store.Elasticsearch.URL = cfg.Store.Elasticsearch.Addresses[0]
	}
	if len(cfg.Store.Elasticsearch.Addresses) == 0 && cfg.Store.Elasticsearch.URL != "" {
		cfg.Store.Elasticsearch.Addresses = []string{cfg.Store.Elasticsearch.URL}
	}
	if cfg.Store.Elasticsearch.Index == "" {
		cfg.Store.Elasticsearch.Index = "articles"
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = OneWeek
	}
	if cfg.Cache.Prefix == "" {
		cfg.Cache.Prefix = "nlp"
	}

	if cfg.Language.Timeout == 0 {
		cfg.Language.Timeout = 30000
	}

	if cfg.Dashboard.Title == "" {
		cfg.Dashboard.Title = "nlp-mvp"
	}
	if cfg.Dashboard.RequestTimeout == 0 {
		cfg.Dashboard.RequestTimeout = 60000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = 1
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	switch cfg.Store.Backend {
	case BackendPostgres:
		if cfg.Store.Postgres.Host == "" {
			return fmt.Errorf("store.postgres.host is required")
		}
		if cfg.Store.Postgres.Database == "" {
			return fmt.Errorf("store.postgres.database is required")
		}
		if cfg.Store.Postgres.User == "" {
			return fmt.Errorf("store.postgres.user is required")
		}
	case BackendSQLite:
		if cfg.Store.SQLite.Path == "" {
			return fmt.Errorf("store.sqlite.path is required")
		}
	case BackendElasticsearch:
		if len(cfg.Store.Elasticsearch.Addresses) == 0 {
			return fmt.Errorf("store.elasticsearch.addresses or url is required")
		}
	default:
		return fmt.Errorf("store.backend %q is not supported", cfg.Store.Backend)
	}

	if cfg.Cache.Enabled && cfg.Cache.Redis.Address == "" {
		return fmt.Errorf("cache.redis.address is required when cache is enabled")
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}

	if cfg.Tracing.Enabled && cfg.Tracing.CollectorEndpoint == "" {
		return fmt.Errorf("tracing.collector_endpoint is required when tracing is enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
