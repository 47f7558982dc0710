package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/config"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/infrastructure"
)

// Server wires configuration, infrastructure, and modules into one process.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	router  http.Handler
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"modules", router.Prefixes(),
		"records", cfg.Store.RecordsPath(),
		"storage", cfg.Storage.Provider,
	)

	return &Server{
		infra:   infra,
		modules: modules,
		router:  router,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start binds the listener, starts infrastructure, and reports readiness
// once every startup hook has finished.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	ln, err := s.http.Listen()
	if err != nil {
		return fmt.Errorf("http start failed: %w", err)
	}

	if err := s.infra.Start(); err != nil {
		ln.Close()
		return err
	}

	s.http.Serve(ln, s.infra.Lifecycle)

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
