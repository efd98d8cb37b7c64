package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the CLI configuration loaded from environment variables
// and an optional .env file. The library itself only consumes the base
// URL; the remaining knobs tune how the CLI constructs its client.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BGPStuffURL           string        `mapstructure:"bgpstuff_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	RateLimit             int           `mapstructure:"rate_limit"`
	RateWindowSeconds     int64         `mapstructure:"rate_window"`
	RateWindow            time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "bgpstuff-go")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("bgpstuff_url", "https://bgpstuff.net")
	v.SetDefault("request_timeout", 15) // seconds
	v.SetDefault("rate_limit", 30)      // requests per window
	v.SetDefault("rate_window", 60)     // seconds

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.BGPStuffURL == "" {
		return nil, fmt.Errorf("bgpstuff_url must not be empty")
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.RateLimit <= 0 {
		return nil, fmt.Errorf("invalid rate_limit (must be positive)")
	}
	if cfg.RateWindowSeconds <= 0 {
		return nil, fmt.Errorf("invalid rate_window (must be positive seconds)")
	}
	cfg.RateWindow = time.Duration(cfg.RateWindowSeconds) * time.Second

	return &cfg, nil
}
