package model

import (
	"fmt"
	"time"
)

// MaxCalendarDays bounds one calendar request; two months is plenty for
// a planning horizon and keeps generation latency predictable.
const MaxCalendarDays = 62

// CalendarRequest asks for a run of consecutive daily entries.
type CalendarRequest struct {
	ProfileID string `json:"profile_id"`
	Start     string `json:"start"`
	Days      int    `json:"days"`
}

// Validate checks the request and returns the parsed start date.
func (r CalendarRequest) Validate() (time.Time, error) {
	if r.Days < 1 || r.Days > MaxCalendarDays {
		return time.Time{}, fmt.Errorf("calendar days %d out of range 1..%d", r.Days, MaxCalendarDays)
	}
	start, err := time.Parse(DateLayout, r.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar start %q: %w", r.Start, err)
	}
	return start, nil
}
