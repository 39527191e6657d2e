package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Store      StoreConfig      `mapstructure:"store"`
	Scrape     ScrapeConfig     `mapstructure:"scrape"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type ScrapeConfig struct {
	// WaitTimeout bounds how long the extractor waits for the provider
	// section to become visible.
	WaitTimeout time.Duration `mapstructure:"wait_timeout"`
	// NavigationTimeout bounds a single page load.
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout"`
	// RequestsPerMinute paces page fetches between models.
	RequestsPerMinute float64 `mapstructure:"requests_per_minute"`
}

type OpenRouterConfig struct {
	// SiteURL is the root the model detail pages hang off of.
	SiteURL string `mapstructure:"site_url"`
	// APIURL is the aggregator's own data API, used by the seed command.
	APIURL string `mapstructure:"api_url"`
	// APIKey is resolved from the environment, never from the config file.
	APIKey string `mapstructure:"-"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Default Values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("store.path", "models.json")
	v.SetDefault("scrape.wait_timeout", 5*time.Second)
	v.SetDefault("scrape.navigation_timeout", 30*time.Second)
	v.SetDefault("scrape.requests_per_minute", 30.0)
	v.SetDefault("openrouter.site_url", "https://openrouter.ai")
	v.SetDefault("openrouter.api_url", "https://openrouter.ai/api/v1")
	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("tracing.enabled", false)

	// Environment Variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")

	return &cfg, nil
}
