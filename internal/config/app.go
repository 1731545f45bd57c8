package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/board-search/pkg/history"
)

const (
	EnvAppBasePath = "APP_BASE_PATH"
	EnvAppHistory  = "APP_HISTORY"
)

// reservedPrefixes are mounted beside the portal and cannot host it.
var reservedPrefixes = []string{"/api", "/healthz", "/readyz"}

// AppConfig configures where and how the portal routes are served.
type AppConfig struct {
	BasePath string       `toml:"base_path"`
	History  history.Mode `toml:"history"`
}

// Strategy returns the navigation-history strategy for the configured mode.
func (c *AppConfig) Strategy() (history.Strategy, error) {
	return history.Parse(c.History, c.BasePath)
}

// Finalize applies defaults, environment overrides and validation.
func (c *AppConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	c.BasePath = history.NormalizeBase(c.BasePath)
	return c.validate()
}

// Merge applies the non-zero values of overlay.
func (c *AppConfig) Merge(overlay *AppConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.History != "" {
		c.History = overlay.History
	}
}

func (c *AppConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/"
	}
	if c.History == "" {
		c.History = history.ModeWeb
	}
}

func (c *AppConfig) loadEnv() {
	if v := os.Getenv(EnvAppBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAppHistory); v != "" {
		c.History = history.Mode(v)
	}
}

func (c *AppConfig) validate() error {
	switch c.History {
	case history.ModeWeb, history.ModeHash:
	default:
		return fmt.Errorf("invalid history mode: %q (must be web or hash)", c.History)
	}
	for _, p := range reservedPrefixes {
		if c.BasePath == p || strings.HasPrefix(c.BasePath, p+"/") {
			return fmt.Errorf("base_path %q conflicts with %s", c.BasePath, p)
		}
	}
	return nil
}
