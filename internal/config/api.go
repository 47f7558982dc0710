package config

import (
	"fmt"
	"os"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/formatting"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/middleware"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/openapi"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "SCM_CORS_ENABLED",
	Origins:          "SCM_CORS_ORIGINS",
	AllowedMethods:   "SCM_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "SCM_CORS_ALLOWED_HEADERS",
	AllowCredentials: "SCM_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "SCM_CORS_MAX_AGE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "SCM_OPENAPI_TITLE",
	Description: "SCM_OPENAPI_DESCRIPTION",
	Path:        "SCM_OPENAPI_PATH",
	Disabled:    "SCM_OPENAPI_DISABLED",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "SCM_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "SCM_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, pagination, and OpenAPI document settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 1 << 20
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if _, err := formatting.ParseBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("SCM_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("SCM_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}
