package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/talx-hub/salon-bonus/internal/model"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/repo/internal/db"
)

func (s *Store) ActiveProgram(ctx context.Context, bid int64) (*loyalty.Program, error) {
	findLogic := func() (*loyalty.Program, error) {
		row, err := db.New(s.pool).GetActiveProgram(ctx, bid)
		if err != nil {
			return nil, storageError(fmt.Sprintf("failed to find program of business %d", bid), err)
		}
		return toProgram(row)
	}

	return WithRetry[*loyalty.Program](findLogic, 0) //nolint: wrapcheck // error from wrapped function
}

func (s *Store) Promotions(ctx context.Context, bid int64, day time.Time,
) ([]loyalty.Promotion, error) {
	listLogic := func() ([]loyalty.Promotion, error) {
		rows, err := db.New(s.pool).ListPromotions(ctx, db.ListPromotionsParams{
			IDBusiness: bid,
			Day:        pgDate(day),
		})
		if err != nil {
			return nil, storageError(
				fmt.Sprintf("failed to list promotions of business %d", bid), err)
		}

		promotions := make([]loyalty.Promotion, 0, len(rows))
		for _, row := range rows {
			p, err := toPromotion(row)
			if err != nil {
				s.log.LogAttrs(ctx,
					slog.LevelError,
					"skipping invalid promotion from DB",
					slog.Int64("promotion_id", row.ID),
					slog.Any(model.KeyLoggerError, err),
				)
				continue
			}
			promotions = append(promotions, p)
		}
		return promotions, nil
	}

	return WithRetry[[]loyalty.Promotion](listLogic, 0) //nolint: wrapcheck // error from wrapped function
}

// CreateProgram stores the program and its reward together. The newest
// program of a business is the active one.
func (s *Store) CreateProgram(ctx context.Context, p *loyalty.Program) (int64, error) {
	if p.Reward == nil {
		return 0, errors.New("failed to create program: reward must be set")
	}

	create := func(ctx context.Context, tx connectionPool) (any, error) {
		queries := db.New(tx)
		id, err := queries.CreateProgram(ctx, db.CreateProgramParams{
			IDBusiness:  p.BusinessID,
			ProgramType: string(p.Type),
			Threshold:   model.ToPGNumeric(p.Threshold),
		})
		if err != nil {
			return int64(0), storageError(
				fmt.Sprintf("failed to create program of business %d", p.BusinessID), err)
		}

		if _, err = queries.CreateReward(ctx, db.CreateRewardParams{
			IDProgram:   id,
			RewardType:  string(p.Reward.Kind()),
			RewardValue: model.ToPGNumeric(p.Reward.Value()),
		}); err != nil {
			return int64(0), storageError(fmt.Sprintf("failed to create reward of program %d", id), err)
		}
		return id, nil
	}

	return WithTX[int64](ctx, s.pool, s.log, create)
}

func (s *Store) CreatePromotion(ctx context.Context, p *loyalty.Promotion) (int64, error) {
	if p.Reward == nil {
		return 0, errors.New("failed to create promotion: reward must be set")
	}

	id, err := db.New(s.pool).CreatePromotion(ctx, db.CreatePromotionParams{
		IDBusiness:  p.BusinessID,
		Title:       p.Title,
		Description: p.Description,
		RewardType:  string(p.Reward.Kind()),
		RewardValue: model.ToPGNumeric(p.Reward.Value()),
		StartDate:   pgDate(p.StartDate),
		EndDate:     pgDate(p.EndDate),
		IsRecurring: p.Recurring,
		RecurDays:   recurDays(p.RecurDays),
		StartTime:   pgTime(p.StartTime),
		EndTime:     pgTime(p.EndTime),
	})
	if err != nil {
		return 0, storageError(
			fmt.Sprintf("failed to create promotion of business %d", p.BusinessID), err)
	}
	return id, nil
}
