package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model"
	"github.com/talx-hub/salon-bonus/internal/model/checkout"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/repo/internal/db"
	"github.com/talx-hub/salon-bonus/internal/service/ledger"
	"github.com/talx-hub/salon-bonus/internal/serviceerrs"
)

func (s *Store) Balance(ctx context.Context, key loyalty.AccountKey) (decimal.Decimal, error) {
	balanceLogic := func() (decimal.Decimal, error) {
		raw, err := db.New(s.pool).GetBalance(ctx, db.GetBalanceParams{
			IDCustomer: key.CustomerID,
			IDBusiness: key.BusinessID,
		})
		if err != nil {
			return decimal.Zero, storageError(
				fmt.Sprintf("failed to get balance of %d/%d", key.CustomerID, key.BusinessID), err)
		}
		return model.FromPGNumeric(raw) //nolint: wrapcheck // error from wrapped function
	}

	return WithRetry[decimal.Decimal](balanceLogic, 0) //nolint: wrapcheck // error from wrapped function
}

func (s *Store) Holdings(ctx context.Context, cid int64) ([]ledger.Holding, error) {
	listLogic := func() ([]ledger.Holding, error) {
		rows, err := db.New(s.pool).ListAccountsByCustomer(ctx, cid)
		if err != nil {
			return nil, storageError(fmt.Sprintf("failed to list accounts of customer %d", cid), err)
		}

		holdings := make([]ledger.Holding, len(rows))
		for i, row := range rows {
			acc, err := toAccount(db.LoyaltyAccount{
				IDCustomer:      row.IDCustomer,
				IDBusiness:      row.IDBusiness,
				Balance:         row.Balance,
				ApptProgress:    row.ApptProgress,
				ProductProgress: row.ProductProgress,
				AmountProgress:  row.AmountProgress,
				UpdatedAt:       row.UpdatedAt,
			})
			if err != nil {
				return nil, err
			}
			holdings[i] = ledger.Holding{
				BusinessName: row.BusinessName,
				Account:      *acc,
			}
		}
		return holdings, nil
	}

	return WithRetry[[]ledger.Holding](listLogic, 0) //nolint: wrapcheck // error from wrapped function
}

// MonthlyRevenue reports a zero total for a month without transactions.
func (s *Store) MonthlyRevenue(ctx context.Context,
	bid int64, year int, month time.Month,
) (checkout.MonthlyRevenue, error) {
	empty := checkout.MonthlyRevenue{
		Revenue:    decimal.Zero,
		BusinessID: bid,
		Year:       year,
		Month:      month,
	}

	revenueLogic := func() (checkout.MonthlyRevenue, error) {
		row, err := db.New(s.pool).GetMonthlyRevenue(ctx, db.GetMonthlyRevenueParams{
			IDBusiness: bid,
			Year:       int32(year),  //nolint: gosec // validated by the caller
			Month:      int32(month), //nolint: gosec // 1..12
		})
		if err != nil {
			err = storageError(fmt.Sprintf("failed to get revenue of business %d", bid), err)
			if errors.Is(err, serviceerrs.ErrNotFound) {
				return empty, nil
			}
			return checkout.MonthlyRevenue{}, err
		}

		revenue, err := model.FromPGNumeric(row.Revenue)
		if err != nil {
			return checkout.MonthlyRevenue{}, fmt.Errorf("invalid revenue of business %d: %w", bid, err)
		}
		empty.Revenue = revenue
		empty.Transactions = row.Transactions
		return empty, nil
	}

	return WithRetry[checkout.MonthlyRevenue](revenueLogic, 0) //nolint: wrapcheck // error from wrapped function
}
