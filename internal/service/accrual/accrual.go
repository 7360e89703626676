// Package accrual credits loyalty points for completed visits and
// purchases. An award is idempotent per appointment.
package accrual

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

type ProgramResolver interface {
	ActiveProgram(ctx context.Context, bid int64) (*loyalty.Program, error)
}

type Request struct {
	AppointmentID *int64
	// ChargedAmount, Quantity and ExplicitPoints are optional. Explicit
	// points replace the computed accrual and skip progress tracking. With
	// an appointment the charged amount is the price of its service.
	ChargedAmount  *decimal.Decimal
	Quantity       *int64
	ExplicitPoints *int64
	Source         loyalty.Source
	loyalty.AccountKey
}

type Result struct {
	Balance        decimal.Decimal `json:"balance"`
	Points         int64           `json:"points"`
	Awarded        bool            `json:"awarded"`
	AlreadyAwarded bool            `json:"already_awarded,omitempty"`
}

type Engine struct {
	ledger   ledger.Transactor
	programs ProgramResolver
	metrics  *metrics.Collector
	log      *slog.Logger
	now      func() time.Time
	rates    loyalty.Rates
}

func New(
	tr ledger.Transactor,
	programs ProgramResolver,
	rates loyalty.Rates,
	m *metrics.Collector,
	log *slog.Logger,
) *Engine {
	return &Engine{
		ledger:   tr,
		programs: programs,
		rates:    rates,
		metrics:  m,
		log:      log.With(slog.String("service", "accrual")),
		now:      time.Now,
	}
}

func (e *Engine) Award(ctx context.Context, req Request) (Result, error) {
	if err := validate(&req); err != nil {
		e.metrics.RecordAccrual(string(req.Source), metrics.OutcomeRejected)
		return Result{}, err
	}

	prog, err := e.programs.ActiveProgram(ctx, req.BusinessID)
	if err != nil {
		e.metrics.RecordAccrual(string(req.Source), metrics.OutcomeFailed)
		return Result{}, fmt.Errorf("failed to award points: %w", err)
	}

	var res Result
	err = e.ledger.InTx(ctx, func(ctx context.Context, tx ledger.Tx) error {
		r, err := e.award(ctx, tx, &req, prog)
		res = r
		return err
	})

	switch {
	case errors.Is(err, serviceerrs.ErrAlreadyAwarded):
		e.metrics.RecordAccrual(string(req.Source), metrics.OutcomeDuplicate)
		e.log.LogAttrs(ctx, slog.LevelInfo, "points already awarded for appointment",
			slog.Int64("aid", *req.AppointmentID))
		res.Awarded = false
		res.AlreadyAwarded = true
		res.Points = 0
		return res, nil
	case errors.Is(err, errNothingToAward):
		e.metrics.RecordAccrual(string(req.Source), metrics.OutcomeNoop)
		return res, nil
	case errors.Is(err, serviceerrs.ErrNotFound):
		e.metrics.RecordAccrual(string(req.Source), metrics.OutcomeRejected)
		return Result{}, fmt.Errorf("failed to award points: %w", err)
	case errors.Is(err, serviceerrs.ErrContended):
		e.metrics.RecordAccrual(string(req.Source), metrics.OutcomeContended)
		return Result{}, fmt.Errorf("failed to award points: %w", err)
	case err != nil:
		e.metrics.RecordAccrual(string(req.Source), metrics.OutcomeFailed)
		e.log.LogAttrs(ctx, slog.LevelError, "failed to award points",
			slog.Any(model.KeyLoggerError, err))
		return Result{}, fmt.Errorf("failed to award points: %w", err)
	}

	e.metrics.RecordAccrual(string(req.Source), outcome(res))
	return res, nil
}

func outcome(r Result) string {
	if r.Awarded {
		return metrics.OutcomeOK
	}
	return metrics.OutcomeNoop
}

// errNothingToAward rolls back a unit of work that would write nothing.
var errNothingToAward = errors.New("nothing to award")

func (e *Engine) award(
	ctx context.Context, tx ledger.Tx, req *Request, prog *loyalty.Program,
) (Result, error) {
	if req.AppointmentID != nil {
		if err := chargeOfAppointment(ctx, tx, req); err != nil {
			return Result{}, err
		}
	}

	acc, err := tx.GetOrCreateAccount(ctx, req.AccountKey)
	if err != nil {
		return Result{}, fmt.Errorf("failed to lock account: %w", err)
	}
	res := Result{Balance: acc.Balance}

	if req.AppointmentID != nil {
		exists, err := tx.PointEventExists(ctx, *req.AppointmentID)
		if err != nil {
			return res, fmt.Errorf("failed to check point events: %w", err)
		}
		if exists {
			return res, serviceerrs.ErrAlreadyAwarded
		}
	}

	points, advanced := e.points(acc, req, prog)
	if points <= 0 && !advanced {
		return res, errNothingToAward
	}

	acc.Credit(points)
	acc.UpdatedAt = e.now()
	if err = tx.SaveAccount(ctx, acc); err != nil {
		return res, fmt.Errorf("failed to save account: %w", err)
	}
	event := loyalty.PointEvent{
		AccountKey:    req.AccountKey,
		AppointmentID: req.AppointmentID,
		Points:        points,
		Source:        req.Source,
		CreatedAt:     e.now(),
	}
	if err = tx.InsertPointEvent(ctx, &event); err != nil {
		return res, fmt.Errorf("failed to record point event: %w", err)
	}

	return Result{
		Balance: acc.Balance,
		Points:  points,
		Awarded: points > 0,
	}, nil
}

// chargeOfAppointment locks the appointment of req and checks that it
// belongs to the account. The charged amount is the price of the booked
// service, whatever the caller claimed.
func chargeOfAppointment(ctx context.Context, tx ledger.Tx, req *Request) error {
	a, err := tx.LockAppointment(ctx, *req.AppointmentID)
	if err != nil {
		return fmt.Errorf("failed to lock appointment: %w", err)
	}
	if a.CustomerID != req.CustomerID || a.BusinessID != req.BusinessID {
		return fmt.Errorf("appointment %d of another account: %w",
			a.AppointmentID, serviceerrs.ErrNotFound)
	}
	price := a.Price
	req.ChargedAmount = &price
	return nil
}

// points computes the accrual of req and advances the tracked progress
// counter of acc. advanced reports whether the counter moved.
func (e *Engine) points(acc *loyalty.Account, req *Request, prog *loyalty.Program) (int64, bool) {
	if req.ExplicitPoints != nil {
		return *req.ExplicitPoints, false
	}

	var programType loyalty.ProgramType
	if prog != nil {
		programType = prog.Type
	}
	var quantity int64
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	base := e.rates.BasePoints(programType, req.ChargedAmount, quantity)
	if prog.SuppressesBasePoints() {
		base = 0
	}
	if prog == nil || !prog.Type.IsProgress() {
		return base, false
	}

	step := increment(prog.Type, req.ChargedAmount, quantity)
	if step.IsZero() {
		return base, false
	}
	completions := acc.Advance(prog.Type, step, prog.Threshold)

	var bonus int64
	if bp, ok := prog.Reward.(loyalty.BonusPoints); ok && completions > 0 {
		bonus = bp.Bonus(completions)
	}
	return base + bonus, true
}

// increment is the contribution of one visit or purchase to the progress
// counter of a program type.
func increment(t loyalty.ProgramType, amount *decimal.Decimal, quantity int64) decimal.Decimal {
	switch t {
	case loyalty.AppointmentCount:
		return decimal.NewFromInt(1)
	case loyalty.ProductCount:
		return decimal.NewFromInt(max(quantity, 1))
	case loyalty.AmountSpent:
		if amount == nil {
			return decimal.Zero
		}
		return *amount
	case loyalty.PointsBalance:
	}
	return decimal.Zero
}

func validate(req *Request) error {
	var errs []error
	if req.CustomerID <= 0 || req.BusinessID <= 0 {
		errs = append(errs, serviceerrs.Validation("customer and business ids must be positive"))
	}
	if req.ExplicitPoints != nil && *req.ExplicitPoints < 0 {
		errs = append(errs, serviceerrs.Validation("explicit points must not be negative"))
	}
	if req.ChargedAmount != nil && req.ChargedAmount.IsNegative() {
		errs = append(errs, serviceerrs.Validation("charged amount must not be negative"))
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		errs = append(errs, serviceerrs.Validation("quantity must not be negative"))
	}
	if req.Source == "" {
		req.Source = loyalty.SourceVisit
	}
	return errors.Join(errs...)
}
