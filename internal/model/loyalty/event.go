package loyalty

import (
	"time"

	"github.com/shopspring/decimal"
)

type Source string

const (
	SourceVisit    Source = "visit"
	SourcePurchase Source = "purchase"
	SourceCheckout Source = "checkout"
	SourceManual   Source = "manual"
)

// PointEvent is an immutable accrual record. AppointmentID is unique when
// present.
type PointEvent struct {
	CreatedAt     time.Time
	AppointmentID *int64
	Source        Source
	AccountKey
	ID     int64
	Points int64
}

// Redemption is an immutable audit row of a points debit.
type Redemption struct {
	CreatedAt time.Time
	Discount  decimal.Decimal
	AccountKey
	ID     int64
	Points int64
}
