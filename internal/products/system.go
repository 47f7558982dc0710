// Package products serves the catalogue: listing, lookup, tracking history
// updates, and hash verification over the record store.
package products

import (
	"context"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/pagination"
)

// System defines the public contract for product domain operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Product], error)

	Find(ctx context.Context, id string) (*Product, error)
	UpdateTracking(ctx context.Context, id string, history []TrackingEvent) ([]TrackingEvent, error)
	Verify(ctx context.Context, id string) (*Verification, error)
}
