package loyalty

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountKey struct {
	CustomerID int64 `json:"customer_id"`
	BusinessID int64 `json:"business_id"`
}

// Account is the per-(customer, business) balance and progress record.
type Account struct {
	UpdatedAt           time.Time
	Balance             decimal.Decimal
	AppointmentProgress decimal.Decimal
	ProductProgress     decimal.Decimal
	AmountProgress      decimal.Decimal
	AccountKey
}

func NewAccount(key AccountKey) *Account {
	return &Account{
		AccountKey:          key,
		Balance:             decimal.Zero,
		AppointmentProgress: decimal.Zero,
		ProductProgress:     decimal.Zero,
		AmountProgress:      decimal.Zero,
	}
}

// Progress returns the counter tracked by t. Points programs track the
// balance itself.
func (a *Account) Progress(t ProgramType) decimal.Decimal {
	switch t {
	case AppointmentCount:
		return a.AppointmentProgress
	case ProductCount:
		return a.ProductProgress
	case AmountSpent:
		return a.AmountProgress
	case PointsBalance:
		return a.Balance
	}
	return decimal.Zero
}

func (a *Account) setProgress(t ProgramType, v decimal.Decimal) {
	switch t {
	case AppointmentCount:
		a.AppointmentProgress = v
	case ProductCount:
		a.ProductProgress = v
	case AmountSpent:
		a.AmountProgress = v
	case PointsBalance:
		a.Balance = v
	}
}

// Advance adds increment to the counter tracked by t and rolls it over the
// threshold, returning the number of completed thresholds. The counter is
// left strictly below a positive threshold.
func (a *Account) Advance(t ProgramType, increment, threshold decimal.Decimal) int64 {
	progress := a.Progress(t).Add(increment)
	var completions int64
	if threshold.IsPositive() && !progress.LessThan(threshold) {
		q, r := progress.QuoRem(threshold, 0)
		completions = q.IntPart()
		progress = r
	}
	a.setProgress(t, progress)
	return completions
}

func (a *Account) Credit(points int64) {
	a.Balance = a.Balance.Add(decimal.NewFromInt(points))
}

func (a *Account) CanDebit(points int64) bool {
	return !a.Balance.LessThan(decimal.NewFromInt(points))
}

func (a *Account) Debit(points int64) {
	a.Balance = a.Balance.Sub(decimal.NewFromInt(points))
}

// Rates configure the per-visit accrual.
type Rates struct {
	PointsPerDollar   decimal.Decimal
	MinPointsPerVisit decimal.Decimal
}

func DefaultRates() Rates {
	return Rates{
		PointsPerDollar:   decimal.NewFromInt(1),
		MinPointsPerVisit: decimal.NewFromInt(5),
	}
}

// BasePoints is the per-visit accrual before any threshold bonus.
// amount may be nil when the caller has no charged amount.
func (r Rates) BasePoints(t ProgramType, amount *decimal.Decimal, quantity int64) int64 {
	if t == ProductCount {
		return max(quantity, 1)
	}
	if amount == nil {
		return 1
	}
	floor := amount.Mul(r.PointsPerDollar).Floor()
	if amount.IsPositive() {
		return decimal.Max(floor, r.MinPointsPerVisit).IntPart()
	}
	return floor.IntPart()
}
