// Package catalog resolves the loyalty program and the promotions of a
// business and lets owners configure them.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/service/ledger"
	"github.com/talx-hub/salon-bonus/internal/serviceerrs"
)

// Notifier is told about catalog changes customers may care about.
type Notifier interface {
	PromotionCreated(ctx context.Context, p loyalty.Promotion)
}

type Resolver struct {
	store    ledger.Catalog
	notifier Notifier
	log      *slog.Logger
	loc      *time.Location
}

func New(store ledger.Catalog, notifier Notifier, loc *time.Location, log *slog.Logger) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{
		store:    store,
		notifier: notifier,
		log:      log.With(slog.String("service", "catalog")),
		loc:      loc,
	}
}

// ActiveProgram returns the most recent program of the business, or nil
// when the business runs none.
func (r *Resolver) ActiveProgram(ctx context.Context, bid int64) (*loyalty.Program, error) {
	p, err := r.store.ActiveProgram(ctx, bid)
	if errors.Is(err, serviceerrs.ErrNotFound) {
		return nil, nil //nolint:nilnil // no program is a valid state
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve program of business %d: %w", bid, err)
	}
	return p, nil
}

// ActivePromotions returns the promotions of the business running at now,
// evaluated in the resolver's time zone.
func (r *Resolver) ActivePromotions(ctx context.Context, bid int64, now time.Time) ([]loyalty.Promotion, error) {
	local := now.In(r.loc)
	candidates, err := r.store.Promotions(ctx, bid, local)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve promotions of business %d: %w", bid, err)
	}

	active := make([]loyalty.Promotion, 0, len(candidates))
	for _, p := range candidates {
		if p.Reward == nil {
			r.log.LogAttrs(ctx, slog.LevelWarn, "promotion without reward skipped",
				slog.Int64("promotion_id", p.ID))
			continue
		}
		if p.ActiveAt(local) {
			active = append(active, p)
		}
	}
	return active, nil
}

func (r *Resolver) CreateProgram(ctx context.Context, p *loyalty.Program) (int64, error) {
	if err := validateProgram(p); err != nil {
		return 0, err
	}
	id, err := r.store.CreateProgram(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("failed to create program: %w", err)
	}
	r.log.LogAttrs(ctx, slog.LevelInfo, "program created",
		slog.Int64("program_id", id),
		slog.Int64("bid", p.BusinessID),
		slog.String("type", string(p.Type)),
	)
	return id, nil
}

func (r *Resolver) CreatePromotion(ctx context.Context, p *loyalty.Promotion) (int64, error) {
	if err := validatePromotion(p); err != nil {
		return 0, err
	}
	id, err := r.store.CreatePromotion(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("failed to create promotion: %w", err)
	}
	p.ID = id
	r.log.LogAttrs(ctx, slog.LevelInfo, "promotion created",
		slog.Int64("promotion_id", id),
		slog.Int64("bid", p.BusinessID),
	)
	if r.notifier != nil {
		r.notifier.PromotionCreated(ctx, *p)
	}
	return id, nil
}

func validateProgram(p *loyalty.Program) error {
	var errs []error
	if p.BusinessID <= 0 {
		errs = append(errs, serviceerrs.Validation("business id must be positive"))
	}
	if _, err := loyalty.ParseProgramType(string(p.Type)); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", serviceerrs.ErrValidation, err))
	}
	if !p.Threshold.IsPositive() {
		errs = append(errs, serviceerrs.Validation("threshold must be positive, got %s", p.Threshold))
	}
	if p.Reward == nil {
		errs = append(errs, serviceerrs.Validation("program needs a reward"))
	}
	return errors.Join(errs...)
}

func validatePromotion(p *loyalty.Promotion) error {
	var errs []error
	if p.BusinessID <= 0 {
		errs = append(errs, serviceerrs.Validation("business id must be positive"))
	}
	if p.Title == "" {
		errs = append(errs, serviceerrs.Validation("promotion needs a title"))
	}
	if p.Reward == nil {
		errs = append(errs, serviceerrs.Validation("promotion needs a reward"))
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		errs = append(errs, serviceerrs.Validation("promotion needs start and end dates"))
	} else if p.EndDate.Before(p.StartDate) {
		errs = append(errs, serviceerrs.Validation("promotion ends before it starts"))
	}
	if p.Recurring && len(p.RecurDays) == 0 {
		errs = append(errs, serviceerrs.Validation("recurring promotion needs at least one weekday"))
	}
	if p.StartTime != nil && p.EndTime != nil && *p.EndTime < *p.StartTime {
		errs = append(errs, serviceerrs.Validation("promotion time window ends before it starts"))
	}
	return errors.Join(errs...)
}
