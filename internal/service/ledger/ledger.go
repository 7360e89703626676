// Package ledger declares the storage boundary of the loyalty and checkout
// engines. Every mutation happens inside a Tx obtained from a Transactor;
// the Tx holds exclusive locks on the account, appointment and product rows
// it has touched until the unit of work commits or rolls back.
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model/checkout"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
)

type Tx interface {
	// GetOrCreateAccount locks the account row, inserting a zeroed one
	// first when the pair has none.
	GetOrCreateAccount(ctx context.Context, key loyalty.AccountKey) (*loyalty.Account, error)
	// LockAccount locks an existing account row and fails with
	// serviceerrs.ErrNotFound when there is none.
	LockAccount(ctx context.Context, key loyalty.AccountKey) (*loyalty.Account, error)
	SaveAccount(ctx context.Context, acc *loyalty.Account) error

	PointEventExists(ctx context.Context, appointmentID int64) (bool, error)
	// InsertPointEvent fails with serviceerrs.ErrAlreadyAwarded when the
	// appointment already has an event.
	InsertPointEvent(ctx context.Context, e *loyalty.PointEvent) error
	InsertRedemption(ctx context.Context, r *loyalty.Redemption) error

	// CartLines locks and returns the cart lines of the customer at the
	// business of key.
	CartLines(ctx context.Context, key loyalty.AccountKey) ([]checkout.CartLine, error)
	ClearCart(ctx context.Context, key loyalty.AccountKey, productIDs []int64) error
	LockAppointment(ctx context.Context, appointmentID int64) (*checkout.AppointmentCharge, error)
	MarkAppointmentPaid(ctx context.Context, appointmentID int64) error
	// TakeStock decrements a product's stock, failing with a
	// *serviceerrs.StockError when less than quantity is available.
	TakeStock(ctx context.Context, productID, quantity int64) error

	InsertTransaction(ctx context.Context, t *checkout.Transaction) error
	InsertPurchases(ctx context.Context, p []checkout.Purchase) error
	InsertDiscounts(ctx context.Context, d []checkout.DiscountAudit) error
	AddMonthlyRevenue(ctx context.Context, bid int64, at time.Time, amount decimal.Decimal) error
}

type Transactor interface {
	// InTx runs fn in one unit of work. A non-nil error from fn rolls back
	// everything fn did.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Catalog reads the configuration of a business outside any write unit.
type Catalog interface {
	// ActiveProgram fails with serviceerrs.ErrNotFound when the business
	// has no program.
	ActiveProgram(ctx context.Context, bid int64) (*loyalty.Program, error)
	// Promotions returns the candidate promotions of a business for day.
	// Callers still check loyalty.Promotion.ActiveAt.
	Promotions(ctx context.Context, bid int64, day time.Time) ([]loyalty.Promotion, error)
	CreateProgram(ctx context.Context, p *loyalty.Program) (int64, error)
	CreatePromotion(ctx context.Context, p *loyalty.Promotion) (int64, error)
}

// Holding is an account joined with the name of its business.
type Holding struct {
	BusinessName string
	Account      loyalty.Account
}

// Reader serves lock-free reads for display.
type Reader interface {
	// Balance fails with serviceerrs.ErrNotFound when the pair has no
	// account. It never creates one.
	Balance(ctx context.Context, key loyalty.AccountKey) (decimal.Decimal, error)
	Holdings(ctx context.Context, cid int64) ([]Holding, error)
	MonthlyRevenue(ctx context.Context, bid int64, year int, month time.Month) (checkout.MonthlyRevenue, error)
}

type Store interface {
	Transactor
	Catalog
	Reader
}
