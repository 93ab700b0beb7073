package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration.
type Config struct {
	Viewport  ViewportConfig
	Network   NetworkConfig
	Security  SecurityConfig
	Downloads DownloadConfig
	Logging   LogConfig
}

// ViewportConfig holds window and rendering dimensions.
type ViewportConfig struct {
	Width         int `envconfig:"VIEWPORT_WIDTH" default:"800"`
	Height        int `envconfig:"VIEWPORT_HEIGHT" default:"600"`
	MaxImageWidth int `envconfig:"MAX_IMAGE_WIDTH" default:"800"`
}

// NetworkConfig holds fetch timeouts and request identity.
type NetworkConfig struct {
	PageTimeout       time.Duration `envconfig:"PAGE_TIMEOUT" default:"10s"`
	StylesheetTimeout time.Duration `envconfig:"STYLESHEET_TIMEOUT" default:"5s"`
	ImageTimeout      time.Duration `envconfig:"IMAGE_TIMEOUT" default:"7s"`
	BlocklistTimeout  time.Duration `envconfig:"BLOCKLIST_TIMEOUT" default:"4s"`
	UserAgent         string        `envconfig:"USER_AGENT" default:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"`
	SearchURL         string        `envconfig:"SEARCH_URL" default:"https://duckduckgo.com/lite/"`
}

// SecurityConfig controls blocklist population at startup.
type SecurityConfig struct {
	BlocklistEnabled bool     `envconfig:"BLOCKLIST_ENABLED" default:"true"`
	BlocklistSources []string `envconfig:"BLOCKLIST_SOURCES" default:"https://someonewhocares.org/hosts/zero/hosts,https://raw.githubusercontent.com/StevenBlack/hosts/master/hosts,https://phishing.army/download/phishing_army_blocklist.txt,https://mirror.cedia.org.ec/malwaredomains/justdomains,https://urlhaus.abuse.ch/downloads/text/"`
}

// DownloadConfig holds the download sink settings.
type DownloadConfig struct {
	Dir string `envconfig:"DOWNLOAD_DIR" default:"~/Downloads/Sentinel"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("sentinel", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or falls back to
// defaults when the environment is unusable.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		cfg = &Config{}
		envconfig.Process("sentinel_defaults_only", cfg)
	}
	return cfg
}
