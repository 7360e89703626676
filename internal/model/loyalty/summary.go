package loyalty

import "github.com/shopspring/decimal"

const defaultPointsGoal = 100

// Summary is the read-only balance/progress view of one account.
type Summary struct {
	RewardValue  *decimal.Decimal `json:"reward_value,omitempty"`
	BusinessName string           `json:"name"`
	ProgramType  ProgramType      `json:"program_type,omitempty"`
	RewardKind   RewardKind       `json:"reward_type,omitempty"`
	BusinessID   int64            `json:"bid"`
	Points       int64            `json:"points"`
	Progress     int64            `json:"progress"`
	Goal         int64            `json:"goal"`
}

// NewSummary builds the display view. prog may be nil when the business has
// no program.
func NewSummary(acc *Account, businessName string, prog *Program) Summary {
	s := Summary{
		BusinessID:   acc.BusinessID,
		BusinessName: businessName,
		Points:       acc.Balance.Round(0).IntPart(),
	}

	progress := acc.Balance
	var goal *decimal.Decimal
	if prog != nil {
		s.ProgramType = prog.Type
		progress = acc.Progress(prog.Type)
		if prog.Threshold.IsPositive() {
			goal = &prog.Threshold
		}
		if prog.Reward != nil {
			s.RewardKind = prog.Reward.Kind()
			v := prog.Reward.Value()
			s.RewardValue = &v
		}
	}

	progress = decimal.Max(progress, decimal.Zero)
	if goal == nil {
		g := decimal.NewFromInt(1)
		if prog != nil && prog.Type == PointsBalance {
			g = decimal.Max(progress, decimal.NewFromInt(defaultPointsGoal))
		}
		goal = &g
	}
	progress = decimal.Min(progress, *goal)

	s.Progress = progress.Round(0).IntPart()
	s.Goal = goal.Round(0).IntPart()
	return s
}
