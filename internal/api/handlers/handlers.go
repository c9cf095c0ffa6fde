package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/talx-hub/gopher-graph/internal/model"
	"github.com/talx-hub/gopher-graph/internal/utils/logger"
)

// HTTPHandler serves the non-GraphQL endpoints.
type HTTPHandler struct {
	ping func(ctx context.Context) error
}

func New(ping func(ctx context.Context) error) *HTTPHandler {
	return &HTTPHandler{ping: ping}
}

func (h *HTTPHandler) Ping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), model.DefaultTimeout)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		logger.FromContext(ctx).LogAttrs(ctx,
			slog.LevelError,
			"DB is unreachable",
			slog.Any(model.KeyLoggerError, err),
		)
		http.Error(w,
			http.StatusText(http.StatusServiceUnavailable),
			http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}
