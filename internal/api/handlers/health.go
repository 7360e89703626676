package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/talx-hub/salon-bonus/internal/model"
)

type HealthHandler struct {
	logger *slog.Logger
	db     Pinger
}

func NewHealthHandler(db Pinger, log *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger: log,
		db:     db,
	}
}

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), model.DefaultTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		requestLogger(r, h.logger).LogAttrs(ctx,
			slog.LevelError,
			"failed to ping DB",
			slog.Any(model.KeyLoggerError, err),
		)
		http.Error(w, "DB is unavailable", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
