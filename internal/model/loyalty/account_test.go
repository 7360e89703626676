package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAccount_Advance(t *testing.T) {
	tests := []struct {
		name            string
		programType     ProgramType
		start           string
		increment       string
		threshold       string
		wantCompletions int64
		wantProgress    string
	}{
		{"below threshold", AppointmentCount, "3", "1", "5", 0, "4"},
		{"exactly threshold", AppointmentCount, "4", "1", "5", 1, "0"},
		{"two completions in one increment", ProductCount, "0", "12", "5", 2, "2"},
		{"rolls over with carry", ProductCount, "3", "12", "5", 3, "0"},
		{"amount spent", AmountSpent, "40", "100", "100", 1, "40"},
		{"fractional amount", AmountSpent, "99.99", "0.02", "100", 1, "0.01"},
		{"zero threshold never completes", AmountSpent, "0", "1000", "0", 0, "1000"},
		{"points balance", PointsBalance, "250", "0", "100", 2, "50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewAccount(AccountKey{CustomerID: 1, BusinessID: 1})
			acc.Advance(tt.programType, dec(tt.start), decimal.Zero)

			got := acc.Advance(tt.programType, dec(tt.increment), dec(tt.threshold))
			assert.Equal(t, tt.wantCompletions, got)
			assert.True(t, dec(tt.wantProgress).Equal(acc.Progress(tt.programType)),
				"progress %s", acc.Progress(tt.programType))
			if tt.threshold != "0" {
				assert.True(t, acc.Progress(tt.programType).LessThan(dec(tt.threshold)))
			}
		})
	}
}

func TestAccount_Advance_touchesOnlyOneCounter(t *testing.T) {
	acc := NewAccount(AccountKey{CustomerID: 1, BusinessID: 1})
	acc.Advance(ProductCount, dec("3"), dec("10"))

	assert.True(t, acc.AppointmentProgress.IsZero())
	assert.True(t, acc.AmountProgress.IsZero())
	assert.True(t, acc.Balance.IsZero())
	assert.True(t, dec("3").Equal(acc.ProductProgress))
}

func TestAccount_Debit(t *testing.T) {
	acc := NewAccount(AccountKey{CustomerID: 1, BusinessID: 1})
	acc.Credit(50)
	assert.True(t, acc.CanDebit(50))
	assert.False(t, acc.CanDebit(51))

	acc.Debit(50)
	assert.True(t, acc.Balance.IsZero())
}

func TestRates_BasePoints(t *testing.T) {
	amount := func(s string) *decimal.Decimal {
		d := dec(s)
		return &d
	}
	rates := DefaultRates()
	tests := []struct {
		name        string
		programType ProgramType
		amount      *decimal.Decimal
		quantity    int64
		want        int64
	}{
		{"product count uses quantity", ProductCount, amount("100"), 3, 3},
		{"product count at least one", ProductCount, nil, 0, 1},
		{"amount floor", AmountSpent, amount("42.99"), 0, 42},
		{"minimum per visit", AppointmentCount, amount("2.50"), 0, 5},
		{"zero amount", AmountSpent, amount("0"), 0, 0},
		{"no amount", AppointmentCount, nil, 0, 1},
		{"no program", "", amount("12"), 0, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rates.BasePoints(tt.programType, tt.amount, tt.quantity))
		})
	}
}

func TestProgram_SuppressesBasePoints(t *testing.T) {
	bonus := BonusPoints{Points: dec("2")}
	credit := PriceCredit{Amount: dec("10")}

	assert.True(t, (&Program{Type: AppointmentCount, Reward: bonus}).SuppressesBasePoints())
	assert.True(t, (&Program{Type: AmountSpent, Reward: bonus}).SuppressesBasePoints())
	assert.False(t, (&Program{Type: PointsBalance, Reward: bonus}).SuppressesBasePoints())
	assert.False(t, (&Program{Type: ProductCount, Reward: credit}).SuppressesBasePoints())
	assert.False(t, (*Program)(nil).SuppressesBasePoints())
}
