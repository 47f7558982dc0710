// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies (logging, storage, record stores, metrics) that
// the catalogue service and the scm CLI share.
package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/config"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/products"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/jsonstore"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/lifecycle"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/metrics"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Storage   storage.System
	Records   *jsonstore.Store[products.Product]
	Ledger    *jsonstore.Store[products.LedgerEntry]
	Metrics   *metrics.Registry
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := NewLogger(&cfg.Logging, os.Stderr)

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	records, err := jsonstore.New[products.Product](cfg.Store.RecordsPath())
	if err != nil {
		return nil, fmt.Errorf("records store: %w", err)
	}
	ledger, err := jsonstore.New[products.LedgerEntry](cfg.Store.LedgerPath())
	if err != nil {
		return nil, fmt.Errorf("ledger store: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Storage:   store,
		Records:   records,
		Ledger:    ledger,
		Metrics:   metrics.NewRegistry(),
	}, nil
}

// NewLogger builds the process logger from the logging config.
func NewLogger(cfg *config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// The record store is a readiness check: the service is not ready while the
// file is unreadable.
func (i *Infrastructure) Start() error {
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}

	i.Lifecycle.AddCheck("records", func(context.Context) error {
		items, err := i.Records.Load()
		if err != nil {
			return err
		}
		i.Metrics.StoreRecords.Set(float64(len(items)))
		return nil
	})

	return nil
}
