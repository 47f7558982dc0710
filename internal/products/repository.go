package products

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/digest"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/jsonstore"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/metrics"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/pagination"
)

type repo struct {
	records    *jsonstore.Store[Product]
	ledger     *jsonstore.Store[LedgerEntry]
	metrics    *metrics.Registry
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a product repository implementing the System interface.
func New(
	records *jsonstore.Store[Product],
	ledger *jsonstore.Store[LedgerEntry],
	reg *metrics.Registry,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		records:    records,
		ledger:     ledger,
		metrics:    reg,
		logger:     logger.With("system", "products"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxBodySize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxBodySize)
}

func (r *repo) load() ([]Product, error) {
	items, err := r.records.Load()
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	r.metrics.StoreRecords.Set(float64(len(items)))
	return items, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Product], error) {
	page.Normalize(r.pagination)

	items, err := r.load()
	if err != nil {
		return nil, err
	}

	m := newMatcher(page.Search, filters)
	matched := make([]Product, 0, len(items))
	for i := range items {
		if m.match(&items[i]) {
			items[i].Normalize()
			matched = append(matched, items[i])
		}
	}

	result := pagination.Paginate(matched, page)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id string) (*Product, error) {
	items, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == id {
			items[i].Normalize()
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *repo) UpdateTracking(ctx context.Context, id string, history []TrackingEvent) ([]TrackingEvent, error) {
	if err := validateHistory(history); err != nil {
		return nil, err
	}
	if history == nil {
		history = []TrackingEvent{}
	}

	err := r.records.Update(func(items []Product) ([]Product, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].TrackingHistory = history
				return items, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	r.metrics.TrackingUpdates.Inc()
	r.logger.Info("tracking history updated", "id", id, "events", len(history))
	return history, nil
}

func (r *repo) Verify(ctx context.Context, id string) (*Verification, error) {
	p, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := r.ledger.Load()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	v := &Verification{
		ID:           p.ID,
		MetaHash:     p.MetaHash,
		ComputedHash: digest.Compute(p.Fields()).MetaHash,
	}

	for i := range entries {
		if entries[i].ProductID == id {
			v.LedgerHash = &entries[i].ProductHash
			break
		}
	}

	v.Consistent = strings.EqualFold(v.ComputedHash, v.MetaHash) &&
		v.LedgerHash != nil &&
		strings.EqualFold(*v.LedgerHash, v.MetaHash)

	if !v.Consistent {
		r.metrics.VerifyMismatch.Inc()
		r.logger.Warn("hash verification failed", "id", id, "meta_hash", v.MetaHash, "computed_hash", v.ComputedHash)
	}
	return v, nil
}
