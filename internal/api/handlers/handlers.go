package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model"
	"github.com/talx-hub/salon-bonus/internal/model/checkout"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/service/accrual"
	"github.com/talx-hub/salon-bonus/internal/service/redemption"
	"github.com/talx-hub/salon-bonus/internal/serviceerrs"
)

type Accruer interface {
	Award(ctx context.Context, req accrual.Request) (accrual.Result, error)
}

type Redeemer interface {
	Redeem(ctx context.Context, key loyalty.AccountKey, points int64) (redemption.Result, error)
}

type Settler interface {
	Settle(ctx context.Context, req checkout.Request) (checkout.Result, error)
}

type AccountReader interface {
	Balance(ctx context.Context, key loyalty.AccountKey) (decimal.Decimal, error)
	Summaries(ctx context.Context, cid int64) ([]loyalty.Summary, error)
	MonthlyRevenue(ctx context.Context, bid int64, year int, month time.Month) (checkout.MonthlyRevenue, error)
}

type CatalogAdmin interface {
	CreateProgram(ctx context.Context, p *loyalty.Program) (int64, error)
	CreatePromotion(ctx context.Context, p *loyalty.Promotion) (int64, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

var errNoCustomer = errors.New("no customer in request context")

func customerID(r *http.Request) (int64, error) {
	cid, ok := r.Context().Value(model.KeyContextCustomerID).(int64)
	if !ok || cid <= 0 {
		return 0, errNoCustomer
	}
	return cid, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, serviceerrs.Validation("bad %s %q", name, chi.URLParam(r, name))
	}
	return id, nil
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return serviceerrs.Validation("failed to decode request: %v", err)
	}
	return nil
}

func requestLogger(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if log, ok := r.Context().Value(model.KeyContextLogger).(*slog.Logger); ok {
		return log
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, r *http.Request, code int, v any) {
	w.Header().Set(model.HeaderContentType, "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.LogAttrs(r.Context(),
			slog.LevelError,
			"failed to encode response",
			slog.Any(model.KeyLoggerError, err),
		)
	}
}

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, log *slog.Logger, r *http.Request, err error) {
	code := http.StatusInternalServerError
	var contended *serviceerrs.ContendedError
	switch {
	case errors.Is(err, errNoCustomer):
		code = http.StatusUnauthorized
	case errors.Is(err, serviceerrs.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, serviceerrs.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, serviceerrs.ErrInsufficientBalance):
		code = http.StatusPaymentRequired
	case errors.Is(err, serviceerrs.ErrInsufficientStock),
		errors.Is(err, serviceerrs.ErrNothingToCharge),
		errors.Is(err, serviceerrs.ErrAlreadyAwarded):
		code = http.StatusConflict
	case errors.As(err, &contended):
		code = http.StatusServiceUnavailable
		w.Header().Set("Retry-After", retryAfter(contended.RetryAfter))
	case errors.Is(err, serviceerrs.ErrContended):
		code = http.StatusServiceUnavailable
		w.Header().Set("Retry-After", "1")
	}

	lvl := slog.LevelWarn
	if code == http.StatusInternalServerError {
		lvl = slog.LevelError
	}
	log.LogAttrs(r.Context(), lvl, "request failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", code),
		slog.Any(model.KeyLoggerError, err),
	)

	msg := http.StatusText(code)
	if code < http.StatusInternalServerError {
		msg = err.Error()
	}
	http.Error(w, msg, code)
}

func retryAfter(d time.Duration) string {
	return strconv.Itoa(max(1, int(math.Ceil(d.Seconds()))))
}

func validation(err error) error {
	return fmt.Errorf("%w: %w", serviceerrs.ErrValidation, err)
}
