package loyalty

import (
	"slices"
	"time"
)

const day = 24 * time.Hour

// Promotion fires on every qualifying checkout inside its window.
type Promotion struct {
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	Reward      Reward
	StartTime   *time.Duration
	EndTime     *time.Duration
	Title       string
	Description string
	RecurDays   []time.Weekday
	ID          int64
	BusinessID  int64
	Recurring   bool
}

// ActiveAt reports whether now falls into the promotion window. Dates are
// compared by calendar day in now's location; a recurring promotion also
// has to match the weekday and the time of day.
func (p *Promotion) ActiveAt(now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if today.Before(dateOf(p.StartDate)) || today.After(dateOf(p.EndDate)) {
		return false
	}
	if !p.Recurring {
		return true
	}
	if !slices.Contains(p.RecurDays, now.Weekday()) {
		return false
	}

	sinceMidnight := time.Duration(now.Hour())*time.Hour +
		time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second
	from, to := time.Duration(0), day
	if p.StartTime != nil {
		from = *p.StartTime
	}
	if p.EndTime != nil {
		to = *p.EndTime
	}
	return sinceMidnight >= from && sinceMidnight <= to
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
