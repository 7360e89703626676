package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model"
	"github.com/talx-hub/salon-bonus/internal/model/checkout"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/repo/internal/db"
	"github.com/talx-hub/salon-bonus/internal/serviceerrs"
)

// ledgerTx runs every query on one pgx.Tx. It is not safe for concurrent
// use.
type ledgerTx struct {
	q *db.Queries
}

func (t *ledgerTx) GetOrCreateAccount(ctx context.Context, key loyalty.AccountKey,
) (*loyalty.Account, error) {
	if err := t.q.CreateAccountIfAbsent(ctx, db.CreateAccountIfAbsentParams{
		IDCustomer: key.CustomerID,
		IDBusiness: key.BusinessID,
	}); err != nil {
		return nil, storageError(
			fmt.Sprintf("failed to create account %d/%d", key.CustomerID, key.BusinessID), err)
	}
	return t.LockAccount(ctx, key)
}

func (t *ledgerTx) LockAccount(ctx context.Context, key loyalty.AccountKey,
) (*loyalty.Account, error) {
	row, err := t.q.LockAccount(ctx, db.LockAccountParams{
		IDCustomer: key.CustomerID,
		IDBusiness: key.BusinessID,
	})
	if err != nil {
		return nil, storageError(
			fmt.Sprintf("failed to lock account %d/%d", key.CustomerID, key.BusinessID), err)
	}
	return toAccount(row)
}

func (t *ledgerTx) SaveAccount(ctx context.Context, acc *loyalty.Account) error {
	if err := t.q.UpdateAccount(ctx, db.UpdateAccountParams{
		IDCustomer:      acc.CustomerID,
		IDBusiness:      acc.BusinessID,
		Balance:         model.ToPGNumeric(acc.Balance),
		ApptProgress:    model.ToPGNumeric(acc.AppointmentProgress),
		ProductProgress: model.ToPGNumeric(acc.ProductProgress),
		AmountProgress:  model.ToPGNumeric(acc.AmountProgress),
		UpdatedAt:       timestamptz(time.Now()),
	}); err != nil {
		return storageError(
			fmt.Sprintf("failed to save account %d/%d", acc.CustomerID, acc.BusinessID), err)
	}
	return nil
}

func (t *ledgerTx) PointEventExists(ctx context.Context, appointmentID int64) (bool, error) {
	exists, err := t.q.PointEventExists(ctx, optionalID(&appointmentID))
	if err != nil {
		return false, storageError(
			fmt.Sprintf("failed to look up point event of appointment %d", appointmentID), err)
	}
	return exists, nil
}

func (t *ledgerTx) InsertPointEvent(ctx context.Context, e *loyalty.PointEvent) error {
	id, err := t.q.CreatePointEvent(ctx, db.CreatePointEventParams{
		IDAppointment: optionalID(e.AppointmentID),
		IDCustomer:    e.CustomerID,
		IDBusiness:    e.BusinessID,
		Points:        e.Points,
		Source:        string(e.Source),
		CreatedAt:     timestamptz(e.CreatedAt),
	})
	if isUniqueViolation(err) {
		return serviceerrs.ErrAlreadyAwarded
	}
	if err != nil {
		return storageError("failed to insert point event", err)
	}
	e.ID = id
	return nil
}

func (t *ledgerTx) InsertRedemption(ctx context.Context, r *loyalty.Redemption) error {
	id, err := t.q.CreateRedemption(ctx, db.CreateRedemptionParams{
		IDCustomer: r.CustomerID,
		IDBusiness: r.BusinessID,
		Points:     r.Points,
		Discount:   model.ToPGNumeric(r.Discount),
		CreatedAt:  timestamptz(r.CreatedAt),
	})
	if err != nil {
		return storageError("failed to insert redemption", err)
	}
	r.ID = id
	return nil
}

func (t *ledgerTx) CartLines(ctx context.Context, key loyalty.AccountKey,
) ([]checkout.CartLine, error) {
	rows, err := t.q.ListCartLines(ctx, db.ListCartLinesParams{
		IDCustomer: key.CustomerID,
		IDBusiness: key.BusinessID,
	})
	if err != nil {
		return nil, storageError(
			fmt.Sprintf("failed to list cart of customer %d", key.CustomerID), err)
	}

	lines := make([]checkout.CartLine, len(rows))
	for i, row := range rows {
		price, err := model.FromPGNumeric(row.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price of product %d: %w", row.IDProduct, err)
		}
		lines[i] = checkout.CartLine{
			UnitPrice: price,
			Name:      row.Name,
			ProductID: row.IDProduct,
			Quantity:  row.Quantity,
		}
	}
	return lines, nil
}

func (t *ledgerTx) ClearCart(ctx context.Context, key loyalty.AccountKey, productIDs []int64) error {
	if err := t.q.DeleteCartLines(ctx, db.DeleteCartLinesParams{
		IDCustomer: key.CustomerID,
		ProductIds: productIDs,
	}); err != nil {
		return storageError(
			fmt.Sprintf("failed to clear cart of customer %d", key.CustomerID), err)
	}
	return nil
}

func (t *ledgerTx) LockAppointment(ctx context.Context, appointmentID int64,
) (*checkout.AppointmentCharge, error) {
	row, err := t.q.LockAppointment(ctx, appointmentID)
	if err != nil {
		return nil, storageError(
			fmt.Sprintf("failed to lock appointment %d", appointmentID), err)
	}

	price, err := model.FromPGNumeric(row.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price of appointment %d: %w", appointmentID, err)
	}
	paid, err := model.FromPGNumeric(row.AmountPaid)
	if err != nil {
		return nil, fmt.Errorf("invalid amount paid of appointment %d: %w", appointmentID, err)
	}
	return &checkout.AppointmentCharge{
		Price:         price,
		AmountPaid:    paid,
		AppointmentID: row.ID,
		CustomerID:    row.IDCustomer,
		BusinessID:    row.IDBusiness,
		Paid:          row.IsPaid,
	}, nil
}

func (t *ledgerTx) MarkAppointmentPaid(ctx context.Context, appointmentID int64) error {
	n, err := t.q.MarkAppointmentPaid(ctx, appointmentID)
	if err != nil {
		return storageError(
			fmt.Sprintf("failed to mark appointment %d paid", appointmentID), err)
	}
	if n == 0 {
		return fmt.Errorf("appointment %d: %w", appointmentID, serviceerrs.ErrNotFound)
	}
	return nil
}

func (t *ledgerTx) TakeStock(ctx context.Context, productID, quantity int64) error {
	available, err := t.q.LockProductStock(ctx, productID)
	if err != nil {
		return storageError(fmt.Sprintf("failed to lock product %d", productID), err)
	}
	if available < quantity {
		return &serviceerrs.StockError{
			ProductID: productID,
			Requested: quantity,
			Available: available,
		}
	}

	if err = t.q.DecrementStock(ctx, db.DecrementStockParams{
		Quantity: quantity,
		ID:       productID,
	}); err != nil {
		return storageError(fmt.Sprintf("failed to take stock of product %d", productID), err)
	}
	return nil
}

func (t *ledgerTx) InsertTransaction(ctx context.Context, tr *checkout.Transaction) error {
	if err := t.q.CreateTransaction(ctx, db.CreateTransactionParams{
		ID:              pgUUID(tr.ID),
		IDCustomer:      tr.CustomerID,
		IDBusiness:      tr.BusinessID,
		IDAppointment:   optionalID(tr.AppointmentID),
		Amount:          model.ToPGNumeric(tr.Amount),
		IDPaymentMethod: tr.PaymentMethodID,
		CreatedAt:       timestamptz(tr.CreatedAt),
	}); err != nil {
		return storageError(fmt.Sprintf("failed to insert transaction %s", tr.ID), err)
	}
	return nil
}

func (t *ledgerTx) InsertPurchases(ctx context.Context, purchases []checkout.Purchase) error {
	for _, p := range purchases {
		if err := t.q.CreateProductPurchase(ctx, db.CreateProductPurchaseParams{
			IDTransaction: pgUUID(p.TransactionID),
			IDProduct:     p.ProductID,
			Quantity:      p.Quantity,
			UnitPrice:     model.ToPGNumeric(p.UnitPrice),
			LineTotal:     model.ToPGNumeric(p.LineTotal),
		}); err != nil {
			return storageError(
				fmt.Sprintf("failed to record purchase of product %d", p.ProductID), err)
		}
	}
	return nil
}

func (t *ledgerTx) InsertDiscounts(ctx context.Context, discounts []checkout.DiscountAudit) error {
	for _, d := range discounts {
		if err := t.q.CreateDiscountApplication(ctx, db.CreateDiscountApplicationParams{
			IDTransaction: pgUUID(d.TransactionID),
			Source:        string(d.Source),
			SourceID:      referenceID(d.SourceID),
			Amount:        model.ToPGNumeric(d.Amount),
			Points:        d.Points,
		}); err != nil {
			return storageError(fmt.Sprintf("failed to record %s discount", d.Source), err)
		}
	}
	return nil
}

func (t *ledgerTx) AddMonthlyRevenue(ctx context.Context,
	bid int64, at time.Time, amount decimal.Decimal,
) error {
	if err := t.q.AddMonthlyRevenue(ctx, db.AddMonthlyRevenueParams{
		IDBusiness: bid,
		Year:       int32(at.Year()),  //nolint: gosec // calendar year fits
		Month:      int32(at.Month()), //nolint: gosec // 1..12
		Revenue:    model.ToPGNumeric(amount),
	}); err != nil {
		return storageError(fmt.Sprintf("failed to add revenue of business %d", bid), err)
	}
	return nil
}
