package loyalty

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ProgramType string

const (
	AppointmentCount ProgramType = "appointment_count"
	ProductCount     ProgramType = "product_count"
	AmountSpent      ProgramType = "amount_spent"
	PointsBalance    ProgramType = "points_balance"
)

func ParseProgramType(s string) (ProgramType, error) {
	switch t := ProgramType(s); t {
	case AppointmentCount, ProductCount, AmountSpent, PointsBalance:
		return t, nil
	}
	return "", fmt.Errorf("unknown program type %q", s)
}

// IsProgress reports whether the program tracks a dedicated counter
// rather than the points balance itself.
func (t ProgramType) IsProgress() bool {
	return t == AppointmentCount || t == ProductCount || t == AmountSpent
}

type Program struct {
	CreatedAt  time.Time
	Reward     Reward
	Type       ProgramType
	Threshold  decimal.Decimal
	ID         int64
	BusinessID int64
	RewardID   int64
}

// SuppressesBasePoints is true when the threshold bonus is the only payout
// for the tracked dimension.
func (p *Program) SuppressesBasePoints() bool {
	if p == nil || !p.Type.IsProgress() {
		return false
	}
	_, ok := p.Reward.(BonusPoints)
	return ok
}
