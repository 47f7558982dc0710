package main

import (
	"net/http"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/api"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/config"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/infrastructure"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/handlers"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/module"
)

const staticPrefix = "/static"

type Modules struct {
	API    *module.Module
	Static *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	staticModule, err := api.NewStaticModule(staticPrefix, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:    apiModule,
		Static: staticModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Static)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		failures := infra.Lifecycle.Readiness(r.Context())
		if len(failures) > 0 {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "not ready",
				"checks": failures,
			})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	router.Handle("GET /metrics", infra.Metrics.Handler())

	return router
}
