// Package settlement turns a cart or an appointment charge into a final
// payable amount and commits every ledger, stock and revenue write of the
// checkout as one unit.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model"
	"github.com/talx-hub/salon-bonus/internal/model/checkout"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/service/ledger"
	"github.com/talx-hub/salon-bonus/internal/service/metrics"
	"github.com/talx-hub/salon-bonus/internal/service/redemption"
	"github.com/talx-hub/salon-bonus/internal/serviceerrs"
	"github.com/talx-hub/salon-bonus/internal/utils/semaphore"
)

type Catalog interface {
	ActiveProgram(ctx context.Context, bid int64) (*loyalty.Program, error)
	ActivePromotions(ctx context.Context, bid int64, now time.Time) ([]loyalty.Promotion, error)
}

type Redeemer interface {
	RedeemTx(ctx context.Context, tx ledger.Tx, key loyalty.AccountKey, points int64) (redemption.Result, error)
}

// Notifier hears about committed settlements that used loyalty rewards.
type Notifier interface {
	RewardApplied(ctx context.Context, key loyalty.AccountKey, res checkout.Result)
}

type Config struct {
	Location       *time.Location
	TaxRate        decimal.Decimal
	PointValue     decimal.Decimal
	Rates          loyalty.Rates
	AcquireTimeout time.Duration
	MaxConcurrent  uint64
}

type Engine struct {
	ledger   ledger.Transactor
	catalog  Catalog
	redeemer Redeemer
	notifier Notifier
	sem      *semaphore.Semaphore
	metrics  *metrics.Collector
	log      *slog.Logger
	now      func() time.Time
	cfg      Config
}

func New(
	tr ledger.Transactor,
	catalog Catalog,
	redeemer Redeemer,
	notifier Notifier,
	cfg Config,
	m *metrics.Collector,
	log *slog.Logger,
) *Engine {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.MaxConcurrent == 0 {
		cfg.MaxConcurrent = model.DefaultMaxConcurrentSettlements
	}
	if cfg.AcquireTimeout <= 0 {
		cfg.AcquireTimeout = model.DefaultTimeout
	}
	return &Engine{
		ledger:   tr,
		catalog:  catalog,
		redeemer: redeemer,
		notifier: notifier,
		sem:      semaphore.New(cfg.MaxConcurrent),
		metrics:  m,
		log:      log.With(slog.String("service", "settlement")),
		now:      time.Now,
		cfg:      cfg,
	}
}

// Settle prices and commits one checkout. It is not idempotent: after a
// timeout the caller has to look the transaction up before retrying.
func (e *Engine) Settle(ctx context.Context, req checkout.Request) (checkout.Result, error) {
	started := e.now()
	purchase := string(req.PurchaseKind())

	res, err := e.settle(ctx, &req)
	e.metrics.RecordSettlement(purchase, outcome(err), e.now().Sub(started), res.FinalAmount)
	if err != nil {
		lvl := slog.LevelWarn
		if outcome(err) == metrics.OutcomeFailed {
			lvl = slog.LevelError
		}
		e.log.LogAttrs(ctx, lvl, "settlement failed",
			slog.Int64("cid", req.CustomerID),
			slog.Int64("bid", req.BusinessID),
			slog.Any(model.KeyLoggerError, err),
		)
		return checkout.Result{}, err
	}

	e.log.LogAttrs(ctx, slog.LevelInfo, "settled",
		slog.String("transaction_id", res.TransactionID.String()),
		slog.String("final_amount", res.FinalAmount.StringFixed(2)),
		slog.Int64("points_earned", res.PointsEarned),
	)
	if e.notifier != nil && (res.PointsRedeemed > 0 || res.LoyaltyDiscount.IsPositive()) {
		e.notifier.RewardApplied(ctx, req.Key(), res)
	}
	return res, nil
}

func (e *Engine) settle(ctx context.Context, req *checkout.Request) (checkout.Result, error) {
	if req.ProductPurchase {
		req.AppointmentID = nil
	}
	if err := validate(req); err != nil {
		return checkout.Result{}, err
	}

	if err := e.sem.Acquire(ctx, e.cfg.AcquireTimeout); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return checkout.Result{}, fmt.Errorf("settlement abandoned: %w", ctxErr)
		}
		return checkout.Result{}, &serviceerrs.ContendedError{Err: err, RetryAfter: e.cfg.AcquireTimeout}
	}
	defer e.sem.Release()
	e.metrics.SettlementStarted()
	defer e.metrics.SettlementDone()

	now := e.now().In(e.cfg.Location)
	prog, err := e.catalog.ActiveProgram(ctx, req.BusinessID)
	if err != nil {
		return checkout.Result{}, fmt.Errorf("failed to resolve program: %w", err)
	}
	promos, err := e.catalog.ActivePromotions(ctx, req.BusinessID, now)
	if err != nil {
		return checkout.Result{}, fmt.Errorf("failed to resolve promotions: %w", err)
	}

	var res checkout.Result
	err = e.ledger.InTx(ctx, func(ctx context.Context, tx ledger.Tx) error {
		r, err := e.settleTx(ctx, tx, req, prog, promos, now)
		res = r
		return err
	})
	if err != nil {
		return checkout.Result{}, err
	}
	return res, nil
}

func (e *Engine) settleTx(
	ctx context.Context,
	tx ledger.Tx,
	req *checkout.Request,
	prog *loyalty.Program,
	promos []loyalty.Promotion,
	now time.Time,
) (checkout.Result, error) {
	key := req.Key()

	// The cart is guarded by the account lock, so a product checkout locks
	// the account before reading it. An appointment row is locked before the
	// account.
	var (
		c   charge
		err error
	)
	if req.ProductPurchase {
		if _, err = tx.GetOrCreateAccount(ctx, key); err != nil {
			return checkout.Result{}, fmt.Errorf("failed to lock account: %w", err)
		}
		if c, err = e.resolveCharge(ctx, tx, req); err != nil {
			return checkout.Result{}, err
		}
	} else {
		if c, err = e.resolveCharge(ctx, tx, req); err != nil {
			return checkout.Result{}, err
		}
		if _, err = tx.GetOrCreateAccount(ctx, key); err != nil {
			return checkout.Result{}, fmt.Errorf("failed to lock account: %w", err)
		}
	}

	promoDiscount, audits := promotionDiscounts(promos, c.purchase)

	manualDiscount := decimal.Zero
	if req.RedeemPoints > 0 {
		r, err := e.redeemer.RedeemTx(ctx, tx, key, req.RedeemPoints)
		if err != nil {
			return checkout.Result{}, fmt.Errorf("failed to redeem points: %w", err)
		}
		manualDiscount = r.Discount
		audits = append(audits, checkout.DiscountAudit{
			Source: checkout.SourceRedemption,
			Amount: r.Discount,
			Points: req.RedeemPoints,
		})
	}

	// Redemption saved the account, so it is read again under the same lock.
	acc, err := tx.LockAccount(ctx, key)
	if err != nil {
		return checkout.Result{}, fmt.Errorf("failed to lock account: %w", err)
	}

	// An appointment already accrued through Award has counted towards the
	// progress of the program and earned its base points.
	accrued := false
	if req.AppointmentID != nil {
		if accrued, err = tx.PointEventExists(ctx, *req.AppointmentID); err != nil {
			return checkout.Result{}, fmt.Errorf("failed to check point events: %w", err)
		}
	}

	threshold := thresholdOutcome{discount: decimal.Zero}
	if countsTowardsProgram(prog, req, accrued) {
		threshold = applyThreshold(acc, prog, &c)
	}
	if threshold.completions > 0 {
		audits = append(audits, checkout.DiscountAudit{
			Source:   checkout.SourceProgram,
			SourceID: prog.ID,
			Amount:   model.RoundCents(threshold.discount),
			Points:   threshold.bonusPoints,
		})
	}

	loyaltyDiscount := manualDiscount.Add(threshold.discount)
	tax, totalDiscount, final := totals(c.original, promoDiscount.Add(loyaltyDiscount), e.cfg.TaxRate)

	txn := checkout.Transaction{
		ID:              uuid.New(),
		CustomerID:      req.CustomerID,
		BusinessID:      req.BusinessID,
		AppointmentID:   req.AppointmentID,
		PaymentMethodID: req.PaymentMethodID,
		Amount:          final,
		CreatedAt:       now,
	}
	if err = tx.InsertTransaction(ctx, &txn); err != nil {
		return checkout.Result{}, fmt.Errorf("failed to record transaction: %w", err)
	}
	if req.ProductPurchase {
		if err = e.takeProducts(ctx, tx, txn.ID, c.lines); err != nil {
			return checkout.Result{}, err
		}
	}

	earned, err := e.earn(ctx, tx, acc, req, prog, &c, final, threshold.bonusPoints, accrued, now)
	if err != nil {
		return checkout.Result{}, err
	}
	acc.UpdatedAt = now
	if err = tx.SaveAccount(ctx, acc); err != nil {
		return checkout.Result{}, fmt.Errorf("failed to save account: %w", err)
	}

	for i := range audits {
		audits[i].TransactionID = txn.ID
	}
	if len(audits) > 0 {
		if err = tx.InsertDiscounts(ctx, audits); err != nil {
			return checkout.Result{}, fmt.Errorf("failed to record discounts: %w", err)
		}
	}
	if err = tx.AddMonthlyRevenue(ctx, req.BusinessID, now, final); err != nil {
		return checkout.Result{}, fmt.Errorf("failed to add revenue: %w", err)
	}

	if req.ProductPurchase {
		ids := make([]int64, 0, len(c.lines))
		for _, l := range c.lines {
			ids = append(ids, l.ProductID)
		}
		if err = tx.ClearCart(ctx, key, ids); err != nil {
			return checkout.Result{}, fmt.Errorf("failed to clear cart: %w", err)
		}
	} else if err = tx.MarkAppointmentPaid(ctx, *req.AppointmentID); err != nil {
		return checkout.Result{}, fmt.Errorf("failed to mark appointment paid: %w", err)
	}

	return checkout.Result{
		Success:         true,
		OriginalAmount:  c.original,
		Discount:        totalDiscount,
		Tax:             tax,
		FinalAmount:     final,
		TransactionID:   txn.ID,
		LoyaltyDiscount: model.RoundCents(loyaltyDiscount),
		PointsRedeemed:  req.RedeemPoints + threshold.consumedPoints,
		PointsEarned:    earned,
		LoyaltyBalance:  acc.Balance,
	}, nil
}

func (e *Engine) resolveCharge(ctx context.Context, tx ledger.Tx, req *checkout.Request) (charge, error) {
	if req.ProductPurchase {
		lines, err := tx.CartLines(ctx, req.Key())
		if err != nil {
			return charge{}, fmt.Errorf("failed to read cart: %w", err)
		}
		if len(lines) == 0 {
			return charge{}, fmt.Errorf("cart is empty: %w", serviceerrs.ErrNothingToCharge)
		}
		return cartCharge(lines, e.cfg.PointValue), nil
	}

	a, err := tx.LockAppointment(ctx, *req.AppointmentID)
	if err != nil {
		return charge{}, fmt.Errorf("failed to lock appointment: %w", err)
	}
	if a.CustomerID != req.CustomerID || a.BusinessID != req.BusinessID {
		return charge{}, fmt.Errorf("appointment %d of another account: %w",
			a.AppointmentID, serviceerrs.ErrNotFound)
	}
	if a.Paid || !a.Remaining().IsPositive() {
		return charge{}, fmt.Errorf("appointment %d is paid: %w",
			a.AppointmentID, serviceerrs.ErrNothingToCharge)
	}
	return appointmentCharge(a, e.cfg.PointValue), nil
}

// takeProducts decrements stock in product order so concurrent checkouts
// lock stock rows in the same order.
func (e *Engine) takeProducts(
	ctx context.Context, tx ledger.Tx, txnID uuid.UUID, lines []checkout.CartLine,
) error {
	perProduct := make(map[int64]int64, len(lines))
	for _, l := range lines {
		perProduct[l.ProductID] += l.Quantity
	}
	ids := make([]int64, 0, len(perProduct))
	for id := range perProduct {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if err := tx.TakeStock(ctx, id, perProduct[id]); err != nil {
			return fmt.Errorf("failed to take stock: %w", err)
		}
	}

	purchases := make([]checkout.Purchase, 0, len(lines))
	for _, l := range lines {
		purchases = append(purchases, checkout.Purchase{
			TransactionID: txnID,
			ProductID:     l.ProductID,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			LineTotal:     model.RoundCents(l.Total()),
		})
	}
	if err := tx.InsertPurchases(ctx, purchases); err != nil {
		return fmt.Errorf("failed to record purchases: %w", err)
	}
	return nil
}

// earn credits the points of the checkout to acc and records them. An
// appointment that already earned points through accrual earns no base
// points a second time.
func (e *Engine) earn(
	ctx context.Context,
	tx ledger.Tx,
	acc *loyalty.Account,
	req *checkout.Request,
	prog *loyalty.Program,
	c *charge,
	final decimal.Decimal,
	bonus int64,
	accrued bool,
	now time.Time,
) (int64, error) {
	var programType loyalty.ProgramType
	if prog != nil {
		programType = prog.Type
	}
	base := e.cfg.Rates.BasePoints(programType, &final, c.quantity)
	if prog.SuppressesBasePoints() {
		base = 0
	}

	appointmentID := req.AppointmentID
	if accrued {
		base = 0
		appointmentID = nil
	}

	earned := base + bonus
	if earned <= 0 {
		return 0, nil
	}
	acc.Credit(earned)
	err := tx.InsertPointEvent(ctx, &loyalty.PointEvent{
		AccountKey:    req.Key(),
		AppointmentID: appointmentID,
		Points:        earned,
		Source:        loyalty.SourceCheckout,
		CreatedAt:     now,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record point event: %w", err)
	}
	return earned, nil
}

// countsTowardsProgram reports whether the checkout advances the program.
// A manual redemption excludes the threshold of a points program, and an
// accrued appointment has already advanced a progress program.
func countsTowardsProgram(prog *loyalty.Program, req *checkout.Request, accrued bool) bool {
	if prog == nil {
		return false
	}
	if prog.Type == loyalty.PointsBalance {
		return req.RedeemPoints == 0
	}
	return !accrued
}

func validate(req *checkout.Request) error {
	var errs []error
	if req.CustomerID <= 0 || req.BusinessID <= 0 {
		errs = append(errs, serviceerrs.Validation("customer and business ids must be positive"))
	}
	if req.PaymentMethodID <= 0 {
		errs = append(errs, serviceerrs.Validation("payment method is required"))
	}
	if req.RedeemPoints < 0 {
		errs = append(errs, serviceerrs.Validation("points to redeem must not be negative"))
	}
	if !req.ProductPurchase && req.AppointmentID == nil {
		errs = append(errs, serviceerrs.Validation("appointment checkout needs an appointment id"))
	}
	return errors.Join(errs...)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, serviceerrs.ErrContended):
		return metrics.OutcomeContended
	case errors.Is(err, serviceerrs.ErrValidation),
		errors.Is(err, serviceerrs.ErrNotFound),
		errors.Is(err, serviceerrs.ErrNothingToCharge),
		errors.Is(err, serviceerrs.ErrInsufficientBalance),
		errors.Is(err, serviceerrs.ErrInsufficientStock):
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeFailed
}
