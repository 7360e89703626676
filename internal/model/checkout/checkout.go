package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
)

type CartLine struct {
	UnitPrice decimal.Decimal
	Name      string
	ProductID int64
	Quantity  int64
}

func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

type AppointmentCharge struct {
	Price         decimal.Decimal
	AmountPaid    decimal.Decimal
	AppointmentID int64
	CustomerID    int64
	BusinessID    int64
	Paid          bool
}

// Remaining is what is still owed for the appointment.
func (c AppointmentCharge) Remaining() decimal.Decimal {
	return c.Price.Sub(c.AmountPaid)
}

type Request struct {
	AppointmentID   *int64
	CustomerID      int64
	BusinessID      int64
	PaymentMethodID int64
	RedeemPoints    int64
	ProductPurchase bool
}

func (r *Request) Key() loyalty.AccountKey {
	return loyalty.AccountKey{CustomerID: r.CustomerID, BusinessID: r.BusinessID}
}

func (r *Request) PurchaseKind() loyalty.PurchaseKind {
	if r.ProductPurchase {
		return loyalty.PurchaseProduct
	}
	return loyalty.PurchaseAppointment
}

type Transaction struct {
	CreatedAt       time.Time
	AppointmentID   *int64
	Amount          decimal.Decimal
	CustomerID      int64
	BusinessID      int64
	PaymentMethodID int64
	ID              uuid.UUID
}

type Purchase struct {
	UnitPrice     decimal.Decimal
	LineTotal     decimal.Decimal
	ProductID     int64
	Quantity      int64
	TransactionID uuid.UUID
}

type DiscountSource string

const (
	SourcePromotion  DiscountSource = "promotion"
	SourceProgram    DiscountSource = "program"
	SourceRedemption DiscountSource = "redemption"
)

// DiscountAudit records which promotion or program produced a discount.
type DiscountAudit struct {
	Amount        decimal.Decimal
	Source        DiscountSource
	SourceID      int64
	Points        int64
	TransactionID uuid.UUID
}

type Result struct {
	OriginalAmount  decimal.Decimal `json:"original_amount"`
	Discount        decimal.Decimal `json:"discount"`
	Tax             decimal.Decimal `json:"tax"`
	FinalAmount     decimal.Decimal `json:"final_amount"`
	LoyaltyDiscount decimal.Decimal `json:"loyalty_discount"`
	LoyaltyBalance  decimal.Decimal `json:"loyalty_balance"`
	PointsRedeemed  int64           `json:"points_redeemed"`
	PointsEarned    int64           `json:"points_earned"`
	TransactionID   uuid.UUID       `json:"transaction_id"`
	Success         bool            `json:"success"`
}

type MonthlyRevenue struct {
	Revenue      decimal.Decimal `json:"revenue"`
	BusinessID   int64           `json:"bid"`
	Transactions int64           `json:"transactions"`
	Year         int             `json:"year"`
	Month        time.Month      `json:"month"`
}
