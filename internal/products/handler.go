package products

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/handlers"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/pagination"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/routes"
)

// Handler provides HTTP endpoints for product operations.
type Handler struct {
	sys         System
	logger      *slog.Logger
	pagination  pagination.Config
	maxBodySize int64
}

// NewHandler creates a Handler with the given system, logger, pagination config, and body size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxBodySize int64,
) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "products"),
		pagination:  pagination,
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for product endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/products",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "PUT", Pattern: "/{id}/tracking", Handler: h.UpdateTracking, MaxBytes: h.maxBodySize},
			{Method: "GET", Pattern: "/{id}/verify", Handler: h.Verify},
		},
	}
}

// List returns a page of products filtered by search, color and status query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single product by id.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	p, err := h.sys.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// UpdateTracking replaces a product's tracking history.
func (h *Handler) UpdateTracking(w http.ResponseWriter, r *http.Request) {
	var body TrackingUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrBodyTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}
	if body.TrackingHistory == nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	history, err := h.sys.UpdateTracking(r.Context(), r.PathValue("id"), *body.TrackingHistory)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, TrackingResult{
		Status:          "success",
		TrackingHistory: history,
	})
}

// Verify recomputes a product's digest and compares it with the record and ledger.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	v, err := h.sys.Verify(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}
