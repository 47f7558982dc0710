package api

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/handlers"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/routes"
	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/storage"
)

type staticHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newStaticHandler(store storage.System, logger *slog.Logger) *staticHandler {
	return &staticHandler{
		store:  store,
		logger: logger.With("handler", "static"),
	}
}

func (h *staticHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key...}", Handler: h.download},
		},
	}
}

func (h *staticHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	blob, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer blob.Body.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	if blob.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, blob.Body); err != nil {
		h.logger.Warn("static response interrupted", "key", key, "error", err)
	}
}
