// Package config loads service configuration from resu.yaml, RESU_* environment
// variables and the conventional GEMINI_API_KEY / DATABASE_URL / REDIS_URL.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonathan/resu/internal/llm"
)

// EnvPrefix prefixes every environment override, e.g. RESU_SERVER_ADDR
const EnvPrefix = "RESU"

// Config is the full service configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Profile  ProfileConfig  `mapstructure:"profile"`
	Log      LogConfig      `mapstructure:"log"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// CORSOrigin enables CORS for one origin, e.g. a local frontend dev server
	CORSOrigin string `mapstructure:"cors_origin"`
}

// ProfileConfig locates the master profile
type ProfileConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig configures zap
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LLMConfig configures the Completion Service
type LLMConfig struct {
	APIKey     string `mapstructure:"api_key"`
	FastModel  string `mapstructure:"fast_model"`
	SmartModel string `mapstructure:"smart_model"`
}

// PipelineConfig configures the orchestrator
type PipelineConfig struct {
	StepTimeout time.Duration `mapstructure:"step_timeout"`
}

// DatabaseConfig configures PostgreSQL. An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig configures the shared lease. An empty URL selects the local lease.
type RedisConfig struct {
	URL      string        `mapstructure:"url"`
	LeaseKey string        `mapstructure:"lease_key"`
	LeaseTTL time.Duration `mapstructure:"lease_ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":3001")
	v.SetDefault("server.read_timeout", 30*time.Second)
	// Confirm makes two completion calls; keep writes open long enough
	v.SetDefault("server.write_timeout", 5*time.Minute)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_origin", "")
	v.SetDefault("profile.path", "data/profile.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.fast_model", "")
	v.SetDefault("llm.smart_model", "")
	v.SetDefault("pipeline.step_timeout", 120*time.Second)
	v.SetDefault("database.url", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.lease_key", "resu:generation:lease")
	v.SetDefault("redis.lease_ttl", 10*time.Minute)
}

// LoadDotEnv loads .env from the working directory if present
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load reads configuration. An explicit path must exist; otherwise resu.yaml is
// looked up in the working directory and is optional. Environment variables
// override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range map[string][]string{
		"llm.api_key":  {"RESU_LLM_API_KEY", "GEMINI_API_KEY"},
		"database.url": {"RESU_DATABASE_URL", "DATABASE_URL"},
		"redis.url":    {"RESU_REDIS_URL", "REDIS_URL"},
	} {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("resu")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read resu.yaml: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values.
// The API key is not required here since read-only commands run without it.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("config error: 'server.addr' must not be empty")
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("config error: 'log.format' must be console or json, got %q", c.Log.Format)
	}
	if c.Pipeline.StepTimeout <= 0 {
		return fmt.Errorf("config error: 'pipeline.step_timeout' must be positive")
	}
	if c.Profile.Path == "" {
		return fmt.Errorf("config error: 'profile.path' must not be empty")
	}
	// A Confirm holds the lease for up to three bounded phases
	if c.Redis.URL != "" && c.Redis.LeaseTTL < 3*c.Pipeline.StepTimeout {
		return fmt.Errorf("config error: 'redis.lease_ttl' (%s) must be at least 3x 'pipeline.step_timeout' (%s)",
			c.Redis.LeaseTTL, c.Pipeline.StepTimeout)
	}
	return nil
}

// RequireAPIKey reports a missing Completion Service key
func (c *Config) RequireAPIKey() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set; add it to .env or the environment")
	}
	return nil
}

// LLMConfig returns the provider configuration with any model overrides applied
func (c *Config) LLMConfig() *llm.Config {
	return llm.DefaultConfig().
		WithModel(llm.TierFast, c.LLM.FastModel).
		WithModel(llm.TierSmart, c.LLM.SmartModel)
}
