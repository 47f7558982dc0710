// Package config loads the service and CLI configuration: a base TOML file,
// an optional environment overlay, a .env file and SCM_* variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/pipeline"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/storage"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/tracking"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"

	EnvSCMEnv             = "SCM_ENV"
	EnvSCMShutdownTimeout = "SCM_SHUTDOWN_TIMEOUT"
	EnvSCMVersion         = "SCM_VERSION"
)

var storageEnv = &storage.Env{
	Provider:         "SCM_STORAGE_PROVIDER",
	Root:             "SCM_STORAGE_ROOT",
	ContainerName:    "SCM_STORAGE_CONTAINER_NAME",
	ConnectionString: "SCM_STORAGE_CONNECTION_STRING",
}

var pipelineEnv = &pipeline.Env{
	InputPath:   "SCM_PIPELINE_INPUT_PATH",
	RandomSeed:  "SCM_PIPELINE_RANDOM_SEED",
	NEstimators: "SCM_PIPELINE_N_ESTIMATORS",
	MaxDepth:    "SCM_PIPELINE_MAX_DEPTH",
	IngestYear:  "SCM_PIPELINE_INGEST_YEAR",
	SampleLimit: "SCM_PIPELINE_SAMPLE_LIMIT",
	ModelFile:   "SCM_PIPELINE_MODEL_FILE",
}

var trackingEnv = &tracking.Env{
	BaseURL:         "SCM_TRACKING_BASE_URL",
	Host:            "SCM_TRACKING_HOST",
	Port:            "SCM_TRACKING_PORT",
	Scheme:          "SCM_TRACKING_SCHEME",
	URLTemplate:     "SCM_TRACKING_URL_TEMPLATE",
	ErrorCorrection: "SCM_TRACKING_ERROR_CORRECTION",
	QRDir:           "SCM_TRACKING_QR_DIR",
	Workers:         "SCM_TRACKING_WORKERS",
}

// Config is the root configuration shared by the server and the scm CLI.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	API             APIConfig       `toml:"api"`
	Store           StoreConfig     `toml:"store"`
	Storage         storage.Config  `toml:"storage"`
	Pipeline        pipeline.Config `toml:"pipeline"`
	Tracking        tracking.Config `toml:"tracking"`
	Logging         LoggingConfig   `toml:"logging"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the SCM_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvSCMEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	return finish(cfg)
}

// LoadFile is Load with an explicit base file, which must exist.
func LoadFile(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Store.Merge(&overlay.Store)
	c.Storage.Merge(&overlay.Storage)
	c.Pipeline.Merge(&overlay.Pipeline)
	c.Tracking.Merge(&overlay.Tracking)
	c.Logging.Merge(&overlay.Logging)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Store.Finalize(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Pipeline.Finalize(pipelineEnv); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.Tracking.Finalize(trackingEnv); err != nil {
		return fmt.Errorf("tracking: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvSCMShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvSCMVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv populates unset environment variables from path. Variables
// already present in the process environment win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func overlayPath() string {
	if env := os.Getenv(EnvSCMEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
