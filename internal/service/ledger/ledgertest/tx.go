package ledgertest

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model/checkout"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/serviceerrs"
)

type memTx struct {
	s      *state
	faults map[string]error
}

func (t *memTx) fault(method string) error {
	if err, ok := t.faults[method]; ok {
		return err
	}
	return nil
}

func (t *memTx) GetOrCreateAccount(_ context.Context, key loyalty.AccountKey) (*loyalty.Account, error) {
	if err := t.fault("GetOrCreateAccount"); err != nil {
		return nil, err
	}
	acc, ok := t.s.accounts[key]
	if !ok {
		acc = *loyalty.NewAccount(key)
		t.s.accounts[key] = acc
	}
	return &acc, nil
}

func (t *memTx) LockAccount(_ context.Context, key loyalty.AccountKey) (*loyalty.Account, error) {
	if err := t.fault("LockAccount"); err != nil {
		return nil, err
	}
	acc, ok := t.s.accounts[key]
	if !ok {
		return nil, fmt.Errorf("account %d/%d: %w",
			key.CustomerID, key.BusinessID, serviceerrs.ErrNotFound)
	}
	return &acc, nil
}

func (t *memTx) SaveAccount(_ context.Context, acc *loyalty.Account) error {
	if err := t.fault("SaveAccount"); err != nil {
		return err
	}
	if acc.Balance.IsNegative() {
		return fmt.Errorf("negative balance for %d/%d: %w",
			acc.CustomerID, acc.BusinessID, serviceerrs.ErrStorage)
	}
	t.s.accounts[acc.AccountKey] = *acc
	return nil
}

func (t *memTx) PointEventExists(_ context.Context, appointmentID int64) (bool, error) {
	return slices.ContainsFunc(t.s.events, func(e loyalty.PointEvent) bool {
		return e.AppointmentID != nil && *e.AppointmentID == appointmentID
	}), nil
}

func (t *memTx) InsertPointEvent(ctx context.Context, e *loyalty.PointEvent) error {
	if err := t.fault("InsertPointEvent"); err != nil {
		return err
	}
	if e.AppointmentID != nil {
		if exists, _ := t.PointEventExists(ctx, *e.AppointmentID); exists {
			return serviceerrs.ErrAlreadyAwarded
		}
	}
	e.ID = t.s.id()
	t.s.events = append(t.s.events, *e)
	return nil
}

func (t *memTx) InsertRedemption(_ context.Context, r *loyalty.Redemption) error {
	if err := t.fault("InsertRedemption"); err != nil {
		return err
	}
	r.ID = t.s.id()
	t.s.redemptions = append(t.s.redemptions, *r)
	return nil
}

func (t *memTx) CartLines(_ context.Context, key loyalty.AccountKey) ([]checkout.CartLine, error) {
	return slices.Clone(t.s.carts[key]), nil
}

func (t *memTx) ClearCart(_ context.Context, key loyalty.AccountKey, productIDs []int64) error {
	if err := t.fault("ClearCart"); err != nil {
		return err
	}
	t.s.carts[key] = slices.DeleteFunc(t.s.carts[key], func(l checkout.CartLine) bool {
		return slices.Contains(productIDs, l.ProductID)
	})
	return nil
}

func (t *memTx) LockAppointment(_ context.Context, id int64) (*checkout.AppointmentCharge, error) {
	c, ok := t.s.appointments[id]
	if !ok {
		return nil, fmt.Errorf("appointment %d: %w", id, serviceerrs.ErrNotFound)
	}
	return &c, nil
}

func (t *memTx) MarkAppointmentPaid(_ context.Context, id int64) error {
	if err := t.fault("MarkAppointmentPaid"); err != nil {
		return err
	}
	c, ok := t.s.appointments[id]
	if !ok {
		return fmt.Errorf("appointment %d: %w", id, serviceerrs.ErrNotFound)
	}
	c.Paid = true
	c.AmountPaid = c.Price
	t.s.appointments[id] = c
	return nil
}

func (t *memTx) TakeStock(_ context.Context, productID, quantity int64) error {
	available, ok := t.s.stock[productID]
	if !ok {
		return fmt.Errorf("product %d: %w", productID, serviceerrs.ErrNotFound)
	}
	if available < quantity {
		return &serviceerrs.StockError{
			ProductID: productID,
			Requested: quantity,
			Available: available,
		}
	}
	t.s.stock[productID] = available - quantity
	return nil
}

func (t *memTx) InsertTransaction(_ context.Context, tr *checkout.Transaction) error {
	if err := t.fault("InsertTransaction"); err != nil {
		return err
	}
	t.s.transactions = append(t.s.transactions, *tr)
	return nil
}

func (t *memTx) InsertPurchases(_ context.Context, p []checkout.Purchase) error {
	if err := t.fault("InsertPurchases"); err != nil {
		return err
	}
	t.s.purchases = append(t.s.purchases, p...)
	return nil
}

func (t *memTx) InsertDiscounts(_ context.Context, d []checkout.DiscountAudit) error {
	if err := t.fault("InsertDiscounts"); err != nil {
		return err
	}
	t.s.discounts = append(t.s.discounts, d...)
	return nil
}

func (t *memTx) AddMonthlyRevenue(_ context.Context, bid int64, at time.Time, amount decimal.Decimal) error {
	if err := t.fault("AddMonthlyRevenue"); err != nil {
		return err
	}
	k := revenueKey{bid: bid, year: at.Year(), month: at.Month()}
	r, ok := t.s.revenue[k]
	if !ok {
		r = checkout.MonthlyRevenue{
			Revenue:    decimal.Zero,
			BusinessID: bid,
			Year:       k.year,
			Month:      k.month,
		}
	}
	r.Revenue = r.Revenue.Add(amount)
	r.Transactions++
	t.s.revenue[k] = r
	return nil
}
