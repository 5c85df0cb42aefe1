package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Env              string
	ListenAddr       string
	RedisAddr        string
	CacheTTL         time.Duration
	CacheMaxEntries  int
	RateLimitCap     int
	RateLimitWindow  time.Duration
	BatchConcurrency int
	OpenAIAPIKey     string
	OpenAIURL        string
	OpenAIModel      string
}

func Default() Config {
	return Config{
		Env:              "development",
		ListenAddr:       ":8080",
		CacheTTL:         24 * time.Hour,
		CacheMaxEntries:  10_000,
		RateLimitCap:     30,
		RateLimitWindow:  time.Minute,
		BatchConcurrency: 8,
	}
}

// Load reads .env (if present), then the TOML file named by ARCO_CONFIG
// (if set), then environment variables. Later sources win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("ARCO_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.Env = getenv("APP_ENV", cfg.Env)
	cfg.ListenAddr = getenv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.RedisAddr = getenv("REDIS_ADDR", cfg.RedisAddr)
	cfg.OpenAIAPIKey = getenv("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.OpenAIURL = getenv("OPENAI_URL", cfg.OpenAIURL)
	cfg.OpenAIModel = getenv("OPENAI_MODEL", cfg.OpenAIModel)

	var err error
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", cfg.CacheTTL); err != nil {
		return cfg, err
	}
	if cfg.RateLimitWindow, err = getenvDuration("RATE_LIMIT_WINDOW", cfg.RateLimitWindow); err != nil {
		return cfg, err
	}
	if cfg.RateLimitCap, err = getenvInt("RATE_LIMIT_CAPACITY", cfg.RateLimitCap); err != nil {
		return cfg, err
	}
	if cfg.BatchConcurrency, err = getenvInt("BATCH_CONCURRENCY", cfg.BatchConcurrency); err != nil {
		return cfg, err
	}
	if cfg.CacheMaxEntries, err = getenvInt("CACHE_MAX_ENTRIES", cfg.CacheMaxEntries); err != nil {
		return cfg, err
	}

	return cfg, cfg.validate()
}

// fileConfig mirrors Config for TOML; durations are written as strings
// such as "90s" or "24h".
type fileConfig struct {
	Env              *string `toml:"env"`
	ListenAddr       *string `toml:"listen_addr"`
	RedisAddr        *string `toml:"redis_addr"`
	CacheTTL         *string `toml:"cache_ttl"`
	CacheMaxEntries  *int    `toml:"cache_max_entries"`
	RateLimitCap     *int    `toml:"rate_limit_capacity"`
	RateLimitWindow  *string `toml:"rate_limit_window"`
	BatchConcurrency *int    `toml:"batch_concurrency"`
	OpenAIURL        *string `toml:"openai_url"`
	OpenAIModel      *string `toml:"openai_model"`
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var file fileConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.Env, file.Env)
	setString(&cfg.ListenAddr, file.ListenAddr)
	setString(&cfg.RedisAddr, file.RedisAddr)
	setString(&cfg.OpenAIURL, file.OpenAIURL)
	setString(&cfg.OpenAIModel, file.OpenAIModel)
	if file.RateLimitCap != nil {
		cfg.RateLimitCap = *file.RateLimitCap
	}
	if file.BatchConcurrency != nil {
		cfg.BatchConcurrency = *file.BatchConcurrency
	}
	if file.CacheMaxEntries != nil {
		cfg.CacheMaxEntries = *file.CacheMaxEntries
	}
	if file.CacheTTL != nil {
		if cfg.CacheTTL, err = time.ParseDuration(*file.CacheTTL); err != nil {
			return fmt.Errorf("config cache_ttl: %w", err)
		}
	}
	if file.RateLimitWindow != nil {
		if cfg.RateLimitWindow, err = time.ParseDuration(*file.RateLimitWindow); err != nil {
			return fmt.Errorf("config rate_limit_window: %w", err)
		}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func (c Config) validate() error {
	if c.ListenAddr == "" {
		return errors.New("LISTEN_ADDR must not be empty")
	}
	if c.RateLimitCap < 1 {
		return fmt.Errorf("RATE_LIMIT_CAPACITY must be positive, got %d", c.RateLimitCap)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimitWindow)
	}
	if c.BatchConcurrency < 1 {
		return fmt.Errorf("BATCH_CONCURRENCY must be positive, got %d", c.BatchConcurrency)
	}
	if c.CacheMaxEntries < 1 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be positive, got %d", c.CacheMaxEntries)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
