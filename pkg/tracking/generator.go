// Package tracking resolves tracking URLs for products and renders them as
// scannable QR artifacts in blob storage.
package tracking

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/retry"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/storage"
)

// Item is one record awaiting a tracking artifact.
type Item struct {
	ID          string
	PreviousURL *string
}

// Result reports the artifact state for one item. File is nil when rendering
// or upload failed; URL is always set.
type Result struct {
	ID      string
	URL     string
	File    *string
	Skipped bool
	Err     error
}

// Generator renders tracking artifacts for batches of records.
type Generator struct {
	store    storage.System
	renderer *Renderer
	base     string
	template string
	qrDir    string
	workers  int
	attempts int
	logger   *slog.Logger
}

// NewGenerator builds a generator that links every artifact to base.
func NewGenerator(cfg *Config, base string, store storage.System, logger *slog.Logger) (*Generator, error) {
	renderer, err := NewRenderer(cfg)
	if err != nil {
		return nil, err
	}

	return &Generator{
		store:    store,
		renderer: renderer,
		base:     base,
		template: cfg.URLTemplate,
		qrDir:    cfg.QRDir,
		workers:  max(cfg.Workers, 1),
		attempts: max(cfg.MaxAttempts, 1),
		logger:   logger.With("system", "tracking"),
	}, nil
}

// Base returns the base URL artifacts link to.
func (g *Generator) Base() string {
	return g.base
}

// Generate produces an artifact for every item and returns results in input
// order. Failures are reported per item and never stop the batch. progress,
// when non-nil, is called once per item and never concurrently.
func (g *Generator) Generate(ctx context.Context, items []Item, progress func(Result)) []Result {
	results := make([]Result, len(items))

	var mu sync.Mutex
	report := func(r Result) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		progress(r)
	}

	var eg errgroup.Group
	eg.SetLimit(g.workers)

	for i, item := range items {
		eg.Go(func() error {
			results[i] = g.generate(ctx, item)
			report(results[i])
			return nil
		})
	}
	eg.Wait()

	return results
}

func (g *Generator) generate(ctx context.Context, item Item) Result {
	key := ArtifactKey(g.qrDir, item.ID)
	result := Result{
		ID:  item.ID,
		URL: URL(g.template, g.base, item.ID),
	}

	if item.PreviousURL != nil && *item.PreviousURL == result.URL {
		exists, err := g.store.Exists(ctx, key)
		if err == nil && exists {
			result.File = &key
			result.Skipped = true
			return result
		}
	}

	err := retry.Do(ctx, func(ctx context.Context) error {
		png, err := g.renderer.Render(result.URL)
		if err != nil {
			return retry.Permanent(err)
		}
		return g.store.Upload(ctx, key, bytes.NewReader(png), "image/png")
	}, retry.Options{MaxAttempts: g.attempts, Logger: g.logger})

	if err != nil {
		result.Err = fmt.Errorf("artifact %s: %w", item.ID, err)
		g.logger.Warn("tracking artifact failed", "id", item.ID, "error", err)
		g.removeStale(key)
		return result
	}

	result.File = &key
	return result
}

func (g *Generator) removeStale(key string) {
	if err := g.store.Delete(context.Background(), key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		g.logger.Warn("stale artifact cleanup failed", "key", key, "error", err)
	}
}
