package loyalty

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model"
)

type RewardKind string

const (
	KindFreeAppointment RewardKind = "free_appointment"
	KindFreeProduct     RewardKind = "free_product"
	KindPriceCredit     RewardKind = "price_credit"
	KindBonusPoints     RewardKind = "bonus_points"
	KindPercentDiscount RewardKind = "percent_discount"
)

type PurchaseKind string

const (
	PurchaseAppointment PurchaseKind = "appointment"
	PurchaseProduct     PurchaseKind = "product"
)

// Purchase is what a reward is evaluated against.
type Purchase struct {
	Kind         PurchaseKind
	Subtotal     decimal.Decimal
	CheapestUnit decimal.Decimal
	PointValue   decimal.Decimal
}

// Reward is one of FreeAppointment, FreeProduct, PriceCredit, BonusPoints
// or PercentDiscount.
type Reward interface {
	Kind() RewardKind
	Value() decimal.Decimal
	// Discount is the currency amount one application of the reward is
	// worth for p, zero when the reward does not apply to p.
	Discount(p Purchase) decimal.Decimal
	isReward()
}

type FreeAppointment struct{ Amount decimal.Decimal }

type FreeProduct struct{ Amount decimal.Decimal }

type PriceCredit struct{ Amount decimal.Decimal }

type BonusPoints struct{ Points decimal.Decimal }

type PercentDiscount struct{ Rate decimal.Decimal }

func NewReward(kind RewardKind, value decimal.Decimal) (Reward, error) {
	if value.IsNegative() {
		return nil, fmt.Errorf("reward value must not be negative: %s", value)
	}
	switch kind {
	case KindFreeAppointment:
		return FreeAppointment{Amount: value}, nil
	case KindFreeProduct:
		return FreeProduct{Amount: value}, nil
	case KindPriceCredit:
		return PriceCredit{Amount: value}, nil
	case KindBonusPoints:
		return BonusPoints{Points: value}, nil
	case KindPercentDiscount:
		return PercentDiscount{Rate: value}, nil
	}
	return nil, fmt.Errorf("unknown reward kind %q", kind)
}

// NormalizeRate reads a stored percentage: values up to 1 are fractions,
// anything larger is a percent.
func NormalizeRate(v decimal.Decimal) decimal.Decimal {
	if v.GreaterThan(decimal.NewFromInt(1)) {
		return model.Percent(v)
	}
	return v
}

func (FreeAppointment) Kind() RewardKind { return KindFreeAppointment }
func (r FreeAppointment) Value() decimal.Decimal { return r.Amount }
func (r FreeAppointment) Discount(p Purchase) decimal.Decimal {
	if p.Kind != PurchaseAppointment {
		return decimal.Zero
	}
	if r.Amount.IsPositive() {
		return decimal.Min(r.Amount, p.Subtotal)
	}
	return p.Subtotal
}
func (FreeAppointment) isReward() {}

func (FreeProduct) Kind() RewardKind { return KindFreeProduct }
func (r FreeProduct) Value() decimal.Decimal { return r.Amount }
func (r FreeProduct) Discount(p Purchase) decimal.Decimal {
	if p.Kind != PurchaseProduct {
		return decimal.Zero
	}
	if r.Amount.IsPositive() {
		return r.Amount
	}
	return p.CheapestUnit
}
func (FreeProduct) isReward() {}

func (PriceCredit) Kind() RewardKind { return KindPriceCredit }
func (r PriceCredit) Value() decimal.Decimal { return r.Amount }
func (r PriceCredit) Discount(Purchase) decimal.Decimal { return r.Amount }
func (PriceCredit) isReward() {}

func (BonusPoints) Kind() RewardKind { return KindBonusPoints }
func (r BonusPoints) Value() decimal.Decimal { return r.Points }

// Discount values the points at the per-point redemption rate.
func (r BonusPoints) Discount(p Purchase) decimal.Decimal {
	return model.RoundCents(r.Points.Mul(p.PointValue))
}

// Bonus is the number of points earned for the given threshold completions.
func (r BonusPoints) Bonus(completions int64) int64 {
	return model.RoundHalfUp(r.Points.Mul(decimal.NewFromInt(completions))).IntPart()
}
func (BonusPoints) isReward() {}

func (PercentDiscount) Kind() RewardKind { return KindPercentDiscount }
func (r PercentDiscount) Value() decimal.Decimal { return r.Rate }
func (r PercentDiscount) Discount(p Purchase) decimal.Decimal {
	return model.RoundCents(p.Subtotal.Mul(NormalizeRate(r.Rate)))
}
func (PercentDiscount) isReward() {}
