package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/celestialworks/almanac/model"
)

const defaultCalendarDays = 7

// parseDateParam parses a civil date query parameter, defaulting to
// today (UTC) when absent.
func parseDateParam(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidRequest, raw)
	}
	return t, nil
}

// parseDaysParam parses the calendar span, defaulting to one week.
func parseDaysParam(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultCalendarDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: days %q must be an integer", ErrInvalidRequest, raw)
	}
	if days < 1 || days > model.MaxCalendarDays {
		return 0, fmt.Errorf("%w: days %d out of range 1..%d", ErrInvalidRequest, days, model.MaxCalendarDays)
	}
	return days, nil
}

// createProfileRequest is the POST /v1/profiles body. A free-text place
// is resolved through the geocoder unless an explicit location is given.
type createProfileRequest struct {
	Name  string `json:"name"`
	Birth struct {
		Date string `json:"date"`
		Time string `json:"time,omitempty"` // HH:MM, optional
	} `json:"birth"`
	Place    string          `json:"place,omitempty"`
	Location *model.Location `json:"location,omitempty"`
}

// birthData validates and converts the birth section.
func (r createProfileRequest) birthData() (model.BirthData, error) {
	if strings.TrimSpace(r.Name) == "" {
		return model.BirthData{}, fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	rawDate := strings.TrimSpace(r.Birth.Date)
	if rawDate == "" {
		return model.BirthData{}, fmt.Errorf("%w: birth.date is required", ErrInvalidRequest)
	}
	date, err := time.Parse(model.DateLayout, rawDate)
	if err != nil {
		return model.BirthData{}, fmt.Errorf("%w: birth.date %q must be YYYY-MM-DD", ErrInvalidRequest, rawDate)
	}

	birth := model.BirthData{Date: date}
	if rawTime := strings.TrimSpace(r.Birth.Time); rawTime != "" {
		clock, err := time.Parse("15:04", rawTime)
		if err != nil {
			return model.BirthData{}, fmt.Errorf("%w: birth.time %q must be HH:MM", ErrInvalidRequest, rawTime)
		}
		birth.TimeKnown = true
		birth.Hour = clock.Hour()
		birth.Minute = clock.Minute()
	}
	return birth, nil
}
