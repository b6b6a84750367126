// Package config loads the moderation configuration: the standards and
// metric table, aggregation policy, analyzer settings and limiter
// settings. A loaded Config is immutable; reload constructs a new one
// and swaps it through a Store.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Engine    EngineConfig              `mapstructure:"engine"`
	Standards []StandardConfig          `mapstructure:"standards"`
	Policy    PolicyConfig              `mapstructure:"policy"`
	Analyzers map[string]AnalyzerConfig `mapstructure:"analyzers"`
	Provider  ProviderConfig            `mapstructure:"provider"`
	RateLimit RateLimitConfig           `mapstructure:"rate_limit"`
}

type EngineConfig struct {
	MaxConcurrentEvaluations int    `mapstructure:"max_concurrent_evaluations"`
	OverallTimeout           string `mapstructure:"overall_timeout"`
}

type StandardConfig struct {
	Name    string         `mapstructure:"name"`
	Enabled bool           `mapstructure:"enabled"`
	Metrics []MetricConfig `mapstructure:"metrics"`
}

type MetricConfig struct {
	ID       string `mapstructure:"id"`
	Enabled  bool   `mapstructure:"enabled"`
	Severity string `mapstructure:"severity"` // optional base-severity override
}

type PolicyConfig struct {
	CompoundHighStandards int      `mapstructure:"compound_high_standards"`
	MediumVolumeThreshold int      `mapstructure:"medium_volume_threshold"`
	MediumHideStandards   []string `mapstructure:"medium_hide_standards"`
}

type AnalyzerConfig struct {
	Enabled  bool                   `mapstructure:"enabled"`
	Settings map[string]interface{} `mapstructure:"settings"`
}

type ProviderConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ProviderID string `mapstructure:"provider_id"`
	URL        string `mapstructure:"url"`
	APIKey     string `mapstructure:"api_key"`
}

type RateLimitConfig struct {
	Mode              string `mapstructure:"mode"` // memory or redis
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
	RequestsPerHour   int    `mapstructure:"requests_per_hour"`
	BurstSize         int    `mapstructure:"burst_size"`
	Limit             int    `mapstructure:"limit"`
	Window            string `mapstructure:"window"`
	RedisAddr         string `mapstructure:"redis_addr"`
	RedisPassword     string `mapstructure:"redis_password"`
	RedisDB           int    `mapstructure:"redis_db"`
}

// Load reads config.yaml from the given path (plus ./config and the
// working directory) and returns a fresh, immutable Config. Environment
// variables override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No file is fine: defaults plus environment variables.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.max_concurrent_evaluations", 16)
	v.SetDefault("engine.overall_timeout", "5s")
	v.SetDefault("policy.compound_high_standards", 2)
	v.SetDefault("policy.medium_volume_threshold", 3)
	v.SetDefault("policy.medium_hide_standards", []string{"spam", "safety"})
	v.SetDefault("rate_limit.mode", "memory")
	v.SetDefault("rate_limit.requests_per_minute", 60)
	v.SetDefault("rate_limit.requests_per_hour", 1000)
	v.SetDefault("rate_limit.burst_size", 10)
	v.SetDefault("rate_limit.limit", 60)
	v.SetDefault("rate_limit.window", "1m")
}

func validate(cfg *Config) error {
	if cfg.Engine.MaxConcurrentEvaluations <= 0 {
		return fmt.Errorf("engine.max_concurrent_evaluations must be positive")
	}
	if cfg.Policy.CompoundHighStandards < 2 {
		return fmt.Errorf("policy.compound_high_standards must be at least 2")
	}
	if cfg.Policy.MediumVolumeThreshold < 2 {
		return fmt.Errorf("policy.medium_volume_threshold must be at least 2")
	}
	if cfg.RateLimit.Mode != "memory" && cfg.RateLimit.Mode != "redis" {
		return fmt.Errorf("rate_limit.mode must be memory or redis")
	}
	if cfg.Provider.Enabled && cfg.Provider.URL == "" {
		return fmt.Errorf("provider.url is required when the provider is enabled")
	}
	return nil
}
