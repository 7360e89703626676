// Package redemption debits loyalty points for a flat discount.
package redemption

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/service/ledger"
	"github.com/talx-hub/salon-bonus/internal/service/metrics"
	"github.com/talx-hub/salon-bonus/internal/serviceerrs"
)

type Result struct {
	Balance  decimal.Decimal `json:"balance"`
	Discount decimal.Decimal `json:"discount"`
}

type Engine struct {
	ledger     ledger.Transactor
	metrics    *metrics.Collector
	log        *slog.Logger
	now        func() time.Time
	pointValue decimal.Decimal
}

func New(tr ledger.Transactor, pointValue decimal.Decimal, m *metrics.Collector, log *slog.Logger) *Engine {
	return &Engine{
		ledger:     tr,
		pointValue: pointValue,
		metrics:    m,
		log:        log.With(slog.String("service", "redemption")),
		now:        time.Now,
	}
}

// Redeem debits points in its own unit of work. It is not idempotent: a
// caller retrying after a timeout has to re-read the balance first.
func (e *Engine) Redeem(ctx context.Context, key loyalty.AccountKey, points int64) (Result, error) {
	var res Result
	err := e.ledger.InTx(ctx, func(ctx context.Context, tx ledger.Tx) error {
		r, err := e.RedeemTx(ctx, tx, key, points)
		res = r
		return err
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// RedeemTx debits points inside the caller's unit of work, which decides
// whether the debit commits.
func (e *Engine) RedeemTx(
	ctx context.Context, tx ledger.Tx, key loyalty.AccountKey, points int64,
) (Result, error) {
	res, err := e.redeem(ctx, tx, key, points)
	e.metrics.RecordRedemption(outcome(err))
	if err != nil {
		return Result{}, err
	}

	e.log.LogAttrs(ctx, slog.LevelDebug, "points redeemed",
		slog.Int64("cid", key.CustomerID),
		slog.Int64("bid", key.BusinessID),
		slog.Int64("points", points),
		slog.String("discount", res.Discount.StringFixed(2)),
	)
	return res, nil
}

func (e *Engine) redeem(
	ctx context.Context, tx ledger.Tx, key loyalty.AccountKey, points int64,
) (Result, error) {
	if points <= 0 {
		return Result{}, serviceerrs.Validation("points to redeem must be positive, got %d", points)
	}

	acc, err := tx.LockAccount(ctx, key)
	if err != nil {
		return Result{}, fmt.Errorf("failed to lock account: %w", err)
	}
	if !acc.CanDebit(points) {
		return Result{}, fmt.Errorf("redeem %d points with balance %s: %w",
			points, acc.Balance, serviceerrs.ErrInsufficientBalance)
	}

	acc.Debit(points)
	acc.UpdatedAt = e.now()
	discount := e.Discount(points)

	if err = tx.SaveAccount(ctx, acc); err != nil {
		return Result{}, fmt.Errorf("failed to save account: %w", err)
	}
	if err = tx.InsertRedemption(ctx, &loyalty.Redemption{
		AccountKey: key,
		Points:     points,
		Discount:   discount,
		CreatedAt:  e.now(),
	}); err != nil {
		return Result{}, fmt.Errorf("failed to record redemption: %w", err)
	}

	return Result{Balance: acc.Balance, Discount: discount}, nil
}

// Discount is the currency value of points.
func (e *Engine) Discount(points int64) decimal.Decimal {
	return model.RoundCents(decimal.NewFromInt(points).Mul(e.pointValue))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, serviceerrs.ErrContended):
		return metrics.OutcomeContended
	case errors.Is(err, serviceerrs.ErrValidation),
		errors.Is(err, serviceerrs.ErrNotFound),
		errors.Is(err, serviceerrs.ErrInsufficientBalance):
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeFailed
}
