package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model/checkout"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/service/accrual"
)

const (
	dateLayout = time.DateOnly
	timeLayout = "15:04"
)

// EarnRequest is a customer's claim for the points of a visit. The amount
// and the points are derived from the appointment, never from the body.
type EarnRequest struct {
	AppointmentID *int64 `json:"appointment_id"`
	BusinessID    int64  `json:"bid"`
}

func (r *EarnRequest) ToAccrual(cid int64) (accrual.Request, error) {
	if r.AppointmentID == nil || *r.AppointmentID <= 0 {
		return accrual.Request{}, errors.New("appointment_id is required")
	}
	return accrual.Request{
		AppointmentID: r.AppointmentID,
		Source:        loyalty.SourceVisit,
		AccountKey:    loyalty.AccountKey{CustomerID: cid, BusinessID: r.BusinessID},
	}, nil
}

type RedeemRequest struct {
	BusinessID int64 `json:"bid"`
	Points     int64 `json:"points"`
}

type CheckoutRequest struct {
	AppointmentID   *int64 `json:"appointment_id,omitempty"`
	BusinessID      int64  `json:"bid"`
	PaymentMethodID int64  `json:"payment_method_id"`
	RedeemPoints    int64  `json:"redeem_points,omitempty"`
	ProductPurchase bool   `json:"is_product_purchase"`
}

func (r *CheckoutRequest) ToCheckout(cid int64) checkout.Request {
	return checkout.Request{
		AppointmentID:   r.AppointmentID,
		CustomerID:      cid,
		BusinessID:      r.BusinessID,
		PaymentMethodID: r.PaymentMethodID,
		RedeemPoints:    r.RedeemPoints,
		ProductPurchase: r.ProductPurchase,
	}
}

type ProgramRequest struct {
	ProgramType string      `json:"program_type"`
	Threshold   json.Number `json:"threshold"`
	RewardType  string      `json:"reward_type"`
	RewardValue json.Number `json:"reward_value"`
	BusinessID  int64       `json:"bid"`
}

func (r *ProgramRequest) ToProgram() (*loyalty.Program, error) {
	programType, typeErr := loyalty.ParseProgramType(r.ProgramType)
	threshold, thresholdErr := decimal.NewFromString(r.Threshold.String())
	if thresholdErr != nil {
		thresholdErr = fmt.Errorf("threshold: %w", thresholdErr)
	}
	reward, rewardErr := parseReward(r.RewardType, r.RewardValue)
	if err := errors.Join(typeErr, thresholdErr, rewardErr); err != nil {
		return nil, err
	}

	return &loyalty.Program{
		Reward:     reward,
		Type:       programType,
		Threshold:  threshold,
		BusinessID: r.BusinessID,
	}, nil
}

type PromotionRequest struct {
	StartTime   *string     `json:"start_time,omitempty"`
	EndTime     *string     `json:"end_time,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	RewardType  string      `json:"reward_type"`
	RewardValue json.Number `json:"reward_value"`
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
	RecurDays   []int       `json:"recur_days,omitempty"`
	BusinessID  int64       `json:"bid"`
	Recurring   bool        `json:"is_recurring"`
}

func (r *PromotionRequest) ToPromotion() (*loyalty.Promotion, error) {
	reward, rewardErr := parseReward(r.RewardType, r.RewardValue)
	start, startErr := time.Parse(dateLayout, r.StartDate)
	if startErr != nil {
		startErr = fmt.Errorf("start_date: %w", startErr)
	}
	end, endErr := time.Parse(dateLayout, r.EndDate)
	if endErr != nil {
		endErr = fmt.Errorf("end_date: %w", endErr)
	}
	startTime, startTimeErr := parseTimeOfDay(r.StartTime)
	endTime, endTimeErr := parseTimeOfDay(r.EndTime)

	days := make([]time.Weekday, 0, len(r.RecurDays))
	var daysErr error
	for _, d := range r.RecurDays {
		if d < int(time.Sunday) || d > int(time.Saturday) {
			daysErr = fmt.Errorf("recur_days: %d is not a weekday", d)
			break
		}
		days = append(days, time.Weekday(d))
	}

	if err := errors.Join(rewardErr, startErr, endErr, startTimeErr, endTimeErr, daysErr); err != nil {
		return nil, err
	}
	return &loyalty.Promotion{
		StartDate:   start,
		EndDate:     end,
		Reward:      reward,
		StartTime:   startTime,
		EndTime:     endTime,
		Title:       r.Title,
		Description: r.Description,
		RecurDays:   days,
		BusinessID:  r.BusinessID,
		Recurring:   r.Recurring,
	}, nil
}

func parseReward(kind string, value json.Number) (loyalty.Reward, error) {
	v := decimal.Zero
	if value != "" {
		var err error
		if v, err = decimal.NewFromString(value.String()); err != nil {
			return nil, fmt.Errorf("reward_value: %w", err)
		}
	}
	return loyalty.NewReward(loyalty.RewardKind(kind), v) //nolint: wrapcheck // error from wrapped function
}

func parseTimeOfDay(s *string) (*time.Duration, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(timeLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("time of day %q: %w", *s, err)
	}
	d := time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
	return &d, nil
}

type BalanceResponse struct {
	Balance    json.Number `json:"balance"`
	BusinessID int64       `json:"bid"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}
