package repo

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/repo/internal/db"
)

func timestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		t = time.Now()
	}
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

func optionalID(id *int64) pgtype.Int8 {
	if id == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *id, Valid: true}
}

func referenceID(id int64) pgtype.Int8 {
	return pgtype.Int8{Int64: id, Valid: id != 0}
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgDate(t time.Time) pgtype.Date {
	y, m, d := t.Date()
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func pgTime(d *time.Duration) pgtype.Time {
	if d == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: d.Microseconds(), Valid: true}
}

func fromPGTime(t pgtype.Time) *time.Duration {
	if !t.Valid {
		return nil
	}
	d := time.Duration(t.Microseconds) * time.Microsecond
	return &d
}

func toAccount(row db.LoyaltyAccount) (*loyalty.Account, error) {
	acc := loyalty.NewAccount(loyalty.AccountKey{
		CustomerID: row.IDCustomer,
		BusinessID: row.IDBusiness,
	})
	acc.UpdatedAt = row.UpdatedAt.Time

	var errs []error
	for _, f := range []struct {
		dst *decimal.Decimal
		src pgtype.Numeric
	}{
		{&acc.Balance, row.Balance},
		{&acc.AppointmentProgress, row.ApptProgress},
		{&acc.ProductProgress, row.ProductProgress},
		{&acc.AmountProgress, row.AmountProgress},
	} {
		v, err := model.FromPGNumeric(f.src)
		errs = append(errs, err)
		*f.dst = v
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid account %d/%d in DB: %w",
			row.IDCustomer, row.IDBusiness, err)
	}
	return acc, nil
}

func toProgram(row db.GetActiveProgramRow) (*loyalty.Program, error) {
	programType, err := loyalty.ParseProgramType(row.ProgramType)
	if err != nil {
		return nil, fmt.Errorf("invalid program %d in DB: %w", row.ID, err)
	}
	threshold, err := model.FromPGNumeric(row.Threshold)
	if err != nil {
		return nil, fmt.Errorf("invalid threshold of program %d: %w", row.ID, err)
	}
	reward, err := toReward(row.RewardType, row.RewardValue)
	if err != nil {
		return nil, fmt.Errorf("invalid reward of program %d: %w", row.ID, err)
	}

	return &loyalty.Program{
		CreatedAt:  row.CreatedAt.Time,
		Reward:     reward,
		Type:       programType,
		Threshold:  threshold,
		ID:         row.ID,
		BusinessID: row.IDBusiness,
		RewardID:   row.IDReward,
	}, nil
}

func toReward(kind string, value pgtype.Numeric) (loyalty.Reward, error) {
	v, err := model.FromPGNumeric(value)
	if err != nil {
		return nil, err //nolint: wrapcheck // error from wrapped function
	}
	return loyalty.NewReward(loyalty.RewardKind(kind), v) //nolint: wrapcheck // error from wrapped function
}

func toPromotion(row db.Promotion) (loyalty.Promotion, error) {
	reward, err := toReward(row.RewardType, row.RewardValue)
	if err != nil {
		return loyalty.Promotion{}, fmt.Errorf("invalid reward of promotion %d: %w", row.ID, err)
	}

	days := make([]time.Weekday, len(row.RecurDays))
	for i, d := range row.RecurDays {
		days[i] = time.Weekday(d)
	}

	return loyalty.Promotion{
		StartDate:   row.StartDate.Time,
		EndDate:     row.EndDate.Time,
		CreatedAt:   row.CreatedAt.Time,
		Reward:      reward,
		StartTime:   fromPGTime(row.StartTime),
		EndTime:     fromPGTime(row.EndTime),
		Title:       row.Title,
		Description: row.Description,
		RecurDays:   days,
		ID:          row.ID,
		BusinessID:  row.IDBusiness,
		Recurring:   row.IsRecurring,
	}, nil
}

func recurDays(days []time.Weekday) []int16 {
	out := make([]int16, len(days))
	for i, d := range days {
		out[i] = int16(d)
	}
	return out
}
