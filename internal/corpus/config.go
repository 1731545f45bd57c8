package corpus

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

const (
	SourceFilesystem = "filesystem"
	SourcePostgres   = "postgres"
)

// Config selects and tunes the document source.
type Config struct {
	Source          string `toml:"source"`
	PagesDir        string `toml:"pages_dir"`
	MaxDocumentSize string `toml:"max_document_size"`
}

// Env names the environment variables read by Finalize.
type Env struct {
	Source          string
	PagesDir        string
	MaxDocumentSize string
}

// MaxDocumentBytes returns max_document_size in bytes.
func (c *Config) MaxDocumentBytes() int64 {
	n, _ := units.FromHumanSize(c.MaxDocumentSize)
	return n
}

// Finalize applies defaults, then environment overrides, then validates.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge copies every non-empty field of overlay onto c.
func (c *Config) Merge(overlay *Config) {
	if overlay.Source != "" {
		c.Source = overlay.Source
	}
	if overlay.PagesDir != "" {
		c.PagesDir = overlay.PagesDir
	}
	if overlay.MaxDocumentSize != "" {
		c.MaxDocumentSize = overlay.MaxDocumentSize
	}
}

func (c *Config) loadDefaults() {
	if c.Source == "" {
		c.Source = SourceFilesystem
	}
	if c.PagesDir == "" {
		c.PagesDir = "pages"
	}
	if c.MaxDocumentSize == "" {
		c.MaxDocumentSize = "1MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Source != "" {
		if v := os.Getenv(env.Source); v != "" {
			c.Source = v
		}
	}
	if env.PagesDir != "" {
		if v := os.Getenv(env.PagesDir); v != "" {
			c.PagesDir = v
		}
	}
	if env.MaxDocumentSize != "" {
		if v := os.Getenv(env.MaxDocumentSize); v != "" {
			c.MaxDocumentSize = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Source {
	case SourceFilesystem, SourcePostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, c.Source)
	}
	n, err := units.FromHumanSize(c.MaxDocumentSize)
	if err != nil {
		return fmt.Errorf("invalid max_document_size: %w", err)
	}
	if n <= 0 {
		return fmt.Errorf("max_document_size must be positive")
	}
	return nil
}
