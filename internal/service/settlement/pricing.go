package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model"
	"github.com/talx-hub/salon-bonus/internal/model/checkout"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
)

// charge is the priced input of a settlement.
type charge struct {
	lines    []checkout.CartLine
	purchase loyalty.Purchase
	original decimal.Decimal
	quantity int64
}

func cartCharge(lines []checkout.CartLine, pointValue decimal.Decimal) charge {
	c := charge{
		lines:    lines,
		original: decimal.Zero,
	}
	cheapest := decimal.Zero
	for i, l := range lines {
		c.original = c.original.Add(l.Total())
		c.quantity += l.Quantity
		if i == 0 || l.UnitPrice.LessThan(cheapest) {
			cheapest = l.UnitPrice
		}
	}
	c.original = model.RoundCents(c.original)
	c.purchase = loyalty.Purchase{
		Kind:         loyalty.PurchaseProduct,
		Subtotal:     c.original,
		CheapestUnit: cheapest,
		PointValue:   pointValue,
	}
	return c
}

func appointmentCharge(a *checkout.AppointmentCharge, pointValue decimal.Decimal) charge {
	remaining := model.RoundCents(a.Remaining())
	return charge{
		original: remaining,
		purchase: loyalty.Purchase{
			Kind:       loyalty.PurchaseAppointment,
			Subtotal:   remaining,
			PointValue: pointValue,
		},
	}
}

// promotionDiscounts applies every promotion to the purchase. Promotions
// that are worth nothing for it leave no audit row.
func promotionDiscounts(promos []loyalty.Promotion, p loyalty.Purchase) (decimal.Decimal, []checkout.DiscountAudit) {
	total := decimal.Zero
	var audits []checkout.DiscountAudit
	for _, promo := range promos {
		d := promo.Reward.Discount(p)
		if !d.IsPositive() {
			continue
		}
		total = total.Add(d)
		audits = append(audits, checkout.DiscountAudit{
			Source:   checkout.SourcePromotion,
			SourceID: promo.ID,
			Amount:   d,
		})
	}
	return total, audits
}

// progressStep is how far one settlement moves the program's counter.
// Count programs only move for their own purchase kind.
func progressStep(t loyalty.ProgramType, c *charge) decimal.Decimal {
	switch t {
	case loyalty.AppointmentCount:
		if c.purchase.Kind == loyalty.PurchaseAppointment {
			return decimal.NewFromInt(1)
		}
	case loyalty.ProductCount:
		if c.purchase.Kind == loyalty.PurchaseProduct {
			return decimal.NewFromInt(c.quantity)
		}
	case loyalty.AmountSpent:
		return c.original
	case loyalty.PointsBalance:
	}
	return decimal.Zero
}

// thresholdOutcome is what completed thresholds paid out.
type thresholdOutcome struct {
	discount       decimal.Decimal
	bonusPoints    int64
	consumedPoints int64
	completions    int64
}

// applyThreshold advances acc for the program and converts completions
// into a currency discount, or into bonus points for BonusPoints rewards.
// Points programs consume threshold points from the balance per completion.
func applyThreshold(acc *loyalty.Account, prog *loyalty.Program, c *charge) thresholdOutcome {
	out := thresholdOutcome{discount: decimal.Zero}
	if prog == nil || prog.Reward == nil {
		return out
	}

	before := acc.Balance
	out.completions = acc.Advance(prog.Type, progressStep(prog.Type, c), prog.Threshold)
	if out.completions == 0 {
		return out
	}
	if prog.Type == loyalty.PointsBalance {
		out.consumedPoints = before.Sub(acc.Balance).IntPart()
	}

	if bp, ok := prog.Reward.(loyalty.BonusPoints); ok {
		out.bonusPoints = bp.Bonus(out.completions)
		return out
	}
	out.discount = prog.Reward.Discount(c.purchase).Mul(decimal.NewFromInt(out.completions))
	return out
}

// totals computes tax and the final amount. The final amount never drops
// below zero.
func totals(original, discount, taxRate decimal.Decimal) (tax, totalDiscount, final decimal.Decimal) {
	tax = model.RoundCents(original.Mul(taxRate))
	totalDiscount = model.RoundCents(discount)
	final = decimal.Max(decimal.Zero, model.RoundCents(original.Add(tax).Sub(totalDiscount)))
	return tax, totalDiscount, final
}
