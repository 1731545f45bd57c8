package search

import (
	"fmt"
	"os"
	"strconv"
)

// Config bounds result and suggestion counts.
type Config struct {
	DefaultLimit   int `toml:"default_limit"`
	MaxLimit       int `toml:"max_limit"`
	MaxSuggestions int `toml:"max_suggestions"`
}

// Env names the environment variables read by Finalize.
type Env struct {
	DefaultLimit   string
	MaxLimit       string
	MaxSuggestions string
}

// Clamp maps a requested limit into [1, MaxLimit]; limit <= 0 selects
// DefaultLimit.
func (c *Config) Clamp(limit int) int {
	if limit <= 0 {
		return c.DefaultLimit
	}
	return min(limit, c.MaxLimit)
}

// SuggestionsEnabled reports whether max_suggestions is positive.
func (c *Config) SuggestionsEnabled() bool {
	return c.MaxSuggestions > 0
}

// Finalize applies defaults, then environment overrides, then validates.
// A negative max_suggestions disables suggestions. An unset default_limit
// never exceeds max_limit; the two conflict only when both are set.
func (c *Config) Finalize(env *Env) error {
	implicit := c.DefaultLimit == 0
	c.loadDefaults()
	if env != nil && c.loadEnv(env) {
		implicit = false
	}
	if implicit {
		c.DefaultLimit = max(1, min(c.DefaultLimit, c.MaxLimit))
	}
	return c.validate()
}

// Merge copies every non-zero field of overlay onto c.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultLimit != 0 {
		c.DefaultLimit = overlay.DefaultLimit
	}
	if overlay.MaxLimit != 0 {
		c.MaxLimit = overlay.MaxLimit
	}
	if overlay.MaxSuggestions != 0 {
		c.MaxSuggestions = overlay.MaxSuggestions
	}
}

func (c *Config) loadDefaults() {
	if c.DefaultLimit == 0 {
		c.DefaultLimit = DefaultLimit
	}
	if c.MaxLimit == 0 {
		c.MaxLimit = 50
	}
	if c.MaxSuggestions == 0 {
		c.MaxSuggestions = DefaultSuggestions
	}
}

// loadEnv reports whether default_limit came from the environment.
func (c *Config) loadEnv(env *Env) bool {
	set := envInt(&c.DefaultLimit, env.DefaultLimit)
	envInt(&c.MaxLimit, env.MaxLimit)
	envInt(&c.MaxSuggestions, env.MaxSuggestions)
	return set
}

func (c *Config) validate() error {
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive: %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) below default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	return nil
}

func envInt(dst *int, key string) bool {
	if key == "" {
		return false
	}
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
			return true
		}
	}
	return false
}
