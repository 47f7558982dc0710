package pipeline

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/classifier"
)

// Config controls ingestion and training.
type Config struct {
	InputPath   string `toml:"input_path"`
	RandomSeed  uint64 `toml:"random_seed"`
	NEstimators int    `toml:"n_estimators"`
	MaxDepth    int    `toml:"max_depth"`
	IngestYear  int    `toml:"ingest_year"`
	SampleLimit int    `toml:"sample_limit"`
	ModelFile   string `toml:"model_file"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	InputPath   string
	RandomSeed  string
	NEstimators string
	MaxDepth    string
	IngestYear  string
	SampleLimit string
	ModelFile   string
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
	if overlay.InputPath != "" {
		c.InputPath = overlay.InputPath
	}
	if overlay.RandomSeed != 0 {
		c.RandomSeed = overlay.RandomSeed
	}
	if overlay.NEstimators != 0 {
		c.NEstimators = overlay.NEstimators
	}
	if overlay.MaxDepth != 0 {
		c.MaxDepth = overlay.MaxDepth
	}
	if overlay.IngestYear != 0 {
		c.IngestYear = overlay.IngestYear
	}
	if overlay.SampleLimit != 0 {
		c.SampleLimit = overlay.SampleLimit
	}
	if overlay.ModelFile != "" {
		c.ModelFile = overlay.ModelFile
	}
}

func (c *Config) loadDefaults() {
	if c.InputPath == "" {
		c.InputPath = "data/garments.csv"
	}
	if c.RandomSeed == 0 {
		c.RandomSeed = 42
	}
	if c.NEstimators == 0 {
		c.NEstimators = 100
	}
	if c.ModelFile == "" {
		c.ModelFile = "data/model.json"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.InputPath != "" {
		if v := os.Getenv(env.InputPath); v != "" {
			c.InputPath = v
		}
	}
	if env.RandomSeed != "" {
		if v := os.Getenv(env.RandomSeed); v != "" {
			if n, err := strconv.ParseUint(v, 10, 64); err == nil {
				c.RandomSeed = n
			}
		}
	}
	for name, dst := range map[string]*int{
		env.NEstimators: &c.NEstimators,
		env.MaxDepth:    &c.MaxDepth,
		env.IngestYear:  &c.IngestYear,
		env.SampleLimit: &c.SampleLimit,
	} {
		if name == "" {
			continue
		}
		if v := os.Getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	if env.ModelFile != "" {
		if v := os.Getenv(env.ModelFile); v != "" {
			c.ModelFile = v
		}
	}
}

func (c *Config) validate() error {
	if c.NEstimators < 1 {
		return fmt.Errorf("n_estimators must be positive")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative")
	}
	if c.SampleLimit < 0 {
		return fmt.Errorf("sample_limit must not be negative")
	}
	if c.IngestYear < 0 || c.IngestYear > 9999 {
		return fmt.Errorf("invalid ingest_year: %d", c.IngestYear)
	}
	return nil
}

// Options returns the classifier settings derived from c.
func (c *Config) Options() classifier.Options {
	opts := classifier.DefaultOptions()
	opts.Trees = c.NEstimators
	opts.MaxDepth = c.MaxDepth
	opts.Seed = c.RandomSeed
	return opts
}
