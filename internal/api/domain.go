package api

import (
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/products"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Products products.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Products: products.New(
			runtime.Records,
			runtime.Ledger,
			runtime.Metrics,
			runtime.Logger,
			runtime.Pagination,
		),
	}
}
