// Package api assembles the catalogue API module and the static artifact module.
package api

import (
	"net/http"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/config"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/infrastructure"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/middleware"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/module"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/routes"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	patterns, err := registerRoutes(mux, domain, cfg)
	if err != nil {
		return nil, err
	}
	runtime.Logger.Debug("routes registered", "base", cfg.API.BasePath, "routes", patterns)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Metrics(runtime.Metrics))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}

// NewStaticModule serves stored artifacts and product photos under prefix.
func NewStaticModule(prefix string, infra *infrastructure.Infrastructure) (*module.Module, error) {
	logger := infra.Logger.With("module", "static")
	h := newStaticHandler(infra.Storage, logger)

	mux := http.NewServeMux()
	routes.Register(mux, h.routes())

	m := module.New(prefix, mux)
	m.Use(middleware.Metrics(infra.Metrics))
	m.Use(middleware.Logger(logger))

	return m, nil
}
