package openapi

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config controls the published API document.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	// Path is the route, relative to the API base path, that serves the document.
	Path     string `toml:"path"`
	Disabled bool   `toml:"disabled"`
}

// ConfigEnv names the environment variables read by Finalize.
type ConfigEnv struct {
	Title       string
	Description string
	Path        string
	Disabled    string
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "Supply Chain Catalogue API"
	}
	if c.Description == "" {
		c.Description = "Product catalogue with tracking history and tamper-evident record hashes."
	}
	if c.Path == "" {
		c.Path = "/openapi.json"
	}
	if env != nil {
		c.loadEnv(env)
	}
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("openapi path must start with /: %q", c.Path)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay. Disabled always applies.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	c.Disabled = overlay.Disabled
}

func (c *Config) loadEnv(env *ConfigEnv) {
	for name, dst := range map[string]*string{
		env.Title:       &c.Title,
		env.Description: &c.Description,
		env.Path:        &c.Path,
	} {
		if name == "" {
			continue
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	if env.Disabled != "" {
		if v, err := strconv.ParseBool(os.Getenv(env.Disabled)); err == nil {
			c.Disabled = v
		}
	}
}
