package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// StoreConfig locates the record store and its hash ledger.
type StoreConfig struct {
	Dir         string `toml:"dir"`
	RecordsFile string `toml:"records_file"`
	LedgerFile  string `toml:"ledger_file"`
}

// RecordsPath returns the record store file path.
func (c *StoreConfig) RecordsPath() string {
	return filepath.Join(c.Dir, c.RecordsFile)
}

// LedgerPath returns the ledger file path.
func (c *StoreConfig) LedgerPath() string {
	return filepath.Join(c.Dir, c.LedgerFile)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *StoreConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *StoreConfig) Merge(overlay *StoreConfig) {
	if overlay.Dir != "" {
		c.Dir = overlay.Dir
	}
	if overlay.RecordsFile != "" {
		c.RecordsFile = overlay.RecordsFile
	}
	if overlay.LedgerFile != "" {
		c.LedgerFile = overlay.LedgerFile
	}
}

func (c *StoreConfig) loadDefaults() {
	if c.Dir == "" {
		c.Dir = "data"
	}
	if c.RecordsFile == "" {
		c.RecordsFile = "products_metadata.json"
	}
	if c.LedgerFile == "" {
		c.LedgerFile = "onchain_storage.json"
	}
}

func (c *StoreConfig) loadEnv() {
	if v := os.Getenv("SCM_STORE_DIR"); v != "" {
		c.Dir = v
	}
	if v := os.Getenv("SCM_STORE_RECORDS_FILE"); v != "" {
		c.RecordsFile = v
	}
	if v := os.Getenv("SCM_STORE_LEDGER_FILE"); v != "" {
		c.LedgerFile = v
	}
}

func (c *StoreConfig) validate() error {
	if c.RecordsPath() == c.LedgerPath() {
		return fmt.Errorf("records_file and ledger_file must differ")
	}
	return nil
}
