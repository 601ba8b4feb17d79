package models

import (
	"strings"
	"time"
)

type Frequency string

const (
	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
	Yearly  Frequency = "YEARLY"
)

//nolint:gochecknoglobals //ok
var Frequencies = []Frequency{Daily, Weekly, Monthly, Yearly}

type Weekday string

//nolint:gochecknoglobals //ok
var Weekdays = []Weekday{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

func ParseFrequency(value string) (Frequency, bool) {
	f := Frequency(strings.ToUpper(strings.TrimSpace(value)))
	for _, known := range Frequencies {
		if f == known {
			return f, true
		}
	}
	return "", false
}

func ParseWeekday(value string) (Weekday, bool) {
	d := Weekday(strings.ToUpper(strings.TrimSpace(value)))
	for _, known := range Weekdays {
		if d == known {
			return d, true
		}
	}
	return "", false
}

// RecurrenceRule describes a repeating schedule. Until is a calendar date
// (only year, month and day are meaningful). When both Until and Count are
// set, Until wins.
type RecurrenceRule struct {
	Frequency Frequency
	Interval  int
	ByWeekday []Weekday
	Until     *time.Time
	Count     *int
}

// ParseDate reads a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, NewValidationError("invalid date %q", value)
	}
	return date, nil
}
