package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/products"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/jsonstore"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/tracking"
)

// ArtifactReport summarizes one artifact pass.
type ArtifactReport struct {
	Base     string `json:"base"`
	Records  int    `json:"records"`
	Rendered int    `json:"rendered"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
}

// GenerateArtifacts renders tracking codes for every stored record and
// writes the resulting qr_file and tracking_url back. Rendering happens
// outside the store lock; the write-back merges by id so tracking history
// edits made meanwhile survive.
func GenerateArtifacts(
	ctx context.Context,
	records *jsonstore.Store[products.Product],
	gen *tracking.Generator,
	progress func(tracking.Result),
	logger *slog.Logger,
) (*ArtifactReport, error) {
	logger = logger.With("system", "artifacts")

	items, err := records.Load()
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoRecords
	}

	work := make([]tracking.Item, len(items))
	for i, p := range items {
		work[i] = tracking.Item{ID: p.ID, PreviousURL: p.TrackingURL}
	}

	logger.Info("generating tracking artifacts", "records", len(work), "base", gen.Base())
	results := gen.Generate(ctx, work, progress)

	report := &ArtifactReport{Base: gen.Base(), Records: len(results)}
	byID := make(map[string]tracking.Result, len(results))
	for _, r := range results {
		byID[r.ID] = r
		switch {
		case r.Err != nil:
			report.Failed++
		case r.Skipped:
			report.Skipped++
		default:
			report.Rendered++
		}
	}

	err = records.Update(func(current []products.Product) ([]products.Product, error) {
		for i := range current {
			r, ok := byID[current[i].ID]
			if !ok {
				continue
			}
			url := r.URL
			current[i].TrackingURL = &url
			current[i].QRFile = r.File
		}
		return current, nil
	})
	if err != nil {
		return nil, fmt.Errorf("save records: %w", err)
	}

	logger.Info("tracking artifacts complete",
		"rendered", report.Rendered,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return report, nil
}
