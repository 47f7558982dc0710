package tracking

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config controls tracking URL resolution and artifact rendering.
type Config struct {
	BaseURL         string `toml:"base_url"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	Scheme          string `toml:"scheme"`
	URLTemplate     string `toml:"url_template"`
	ErrorCorrection string `toml:"error_correction"`
	ModuleSize      int    `toml:"module_size"`
	Border          int    `toml:"border"`
	QRDir           string `toml:"qr_dir"`
	Workers         int    `toml:"workers"`
	MaxAttempts     int    `toml:"max_attempts"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	BaseURL         string
	Host            string
	Port            string
	Scheme          string
	URLTemplate     string
	ErrorCorrection string
	QRDir           string
	Workers         string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.Scheme != "" {
		c.Scheme = overlay.Scheme
	}
	if overlay.URLTemplate != "" {
		c.URLTemplate = overlay.URLTemplate
	}
	if overlay.ErrorCorrection != "" {
		c.ErrorCorrection = overlay.ErrorCorrection
	}
	if overlay.ModuleSize != 0 {
		c.ModuleSize = overlay.ModuleSize
	}
	if overlay.Border != 0 {
		c.Border = overlay.Border
	}
	if overlay.QRDir != "" {
		c.QRDir = overlay.QRDir
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.MaxAttempts != 0 {
		c.MaxAttempts = overlay.MaxAttempts
	}
}

func (c *Config) loadDefaults() {
	if c.Port == 0 {
		c.Port = 5173
	}
	if c.Scheme == "" {
		c.Scheme = "http"
	}
	if c.URLTemplate == "" {
		c.URLTemplate = DefaultURLTemplate
	}
	if c.ErrorCorrection == "" {
		c.ErrorCorrection = "medium"
	}
	if c.ModuleSize == 0 {
		c.ModuleSize = 6
	}
	if c.Border == 0 {
		c.Border = 2
	}
	if c.QRDir == "" {
		c.QRDir = "qr"
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}
}

func (c *Config) loadEnv(env *Env) {
	str := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	str(env.BaseURL, &c.BaseURL)
	str(env.Host, &c.Host)
	num(env.Port, &c.Port)
	str(env.Scheme, &c.Scheme)
	str(env.URLTemplate, &c.URLTemplate)
	str(env.ErrorCorrection, &c.ErrorCorrection)
	str(env.QRDir, &c.QRDir)
	num(env.Workers, &c.Workers)
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if !strings.Contains(c.URLTemplate, "{base}") || !strings.Contains(c.URLTemplate, "{id}") {
		return fmt.Errorf("url_template must contain {base} and {id}: %q", c.URLTemplate)
	}
	if _, err := ParseLevel(c.ErrorCorrection); err != nil {
		return err
	}
	if c.ModuleSize < 1 {
		return fmt.Errorf("module_size must be positive")
	}
	if c.Border < 0 {
		return fmt.Errorf("border must not be negative")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be positive")
	}
	return nil
}
