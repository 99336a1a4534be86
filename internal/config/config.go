package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all service settings.
type Config struct {
	Addr            string        `koanf:"addr"`
	LogLevel        string        `koanf:"log_level"`
	LogFormat       string        `koanf:"log_format"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Socrata / NYC Open Data.
	SocrataBaseURL   string        `koanf:"socrata_base_url"`
	SocrataAppToken  string        `koanf:"socrata_app_token"`
	SourceTimeout    time.Duration `koanf:"source_timeout"`
	PortfolioTimeout time.Duration `koanf:"portfolio_timeout"`

	// Review store.
	ReviewsDBPath string `koanf:"reviews_db_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:             ":8080",
		LogLevel:         "info",
		LogFormat:        "json",
		ShutdownTimeout:  10 * time.Second,
		SocrataBaseURL:   "https://data.cityofnewyork.us/resource",
		SourceTimeout:    12 * time.Second,
		PortfolioTimeout: 8 * time.Second,
		ReviewsDBPath:    "reviews.db",
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Precedence (low -> high):
//  1. defaults
//  2. file (YAML) if VIMNYC_CONFIG is set
//  3. env (prefix VIMNYC_, e.g. VIMNYC_ADDR, VIMNYC_SOURCE_TIMEOUT)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("VIMNYC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("VIMNYC_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "vimnyc_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.SourceTimeout <= 0 {
		return nil, errors.New("source_timeout must be positive")
	}
	if cfg.PortfolioTimeout <= 0 {
		return nil, errors.New("portfolio_timeout must be positive")
	}
	return &cfg, nil
}
