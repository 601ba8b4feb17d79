package services

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"wppcal/internal/models"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"

	midnight        = "00:00:00"
	defaultDuration = time.Hour
)

// TimeResolver turns date and time-of-day strings into zoned instants in
// one fixed offset.
type TimeResolver struct {
	location *time.Location
	timeZone string
}

func NewTimeResolver(location *time.Location, timeZone string) TimeResolver {
	return TimeResolver{
		location: location,
		timeZone: timeZone,
	}
}

type EventTimes struct {
	Start time.Time
	End   time.Time
}

// Resolve applies, in order: end date defaults to start date, a start time
// without an end time lasts one hour, missing times are midnight and an end
// before the start moves to the next day.
func (r TimeResolver) Resolve(
	startDate string,
	startTime string,
	endDate string,
	endTime string,
) (EventTimes, error) {
	if startDate == "" {
		return EventTimes{}, models.NewValidationError("start date is required")
	}
	if endDate == "" {
		endDate = startDate
	}

	start, err := r.Combine(startDate, startTime)
	if err != nil {
		return EventTimes{}, err
	}

	if startTime != "" && endTime == "" {
		return EventTimes{Start: start, End: start.Add(defaultDuration)}, nil
	}

	end, err := r.Combine(endDate, endTime)
	if err != nil {
		return EventTimes{}, err
	}

	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	if end.Before(start) {
		return EventTimes{}, models.NewValidationError(
			"end %s is before start %s",
			end.Format(time.RFC3339),
			start.Format(time.RFC3339),
		)
	}

	return EventTimes{Start: start, End: end}, nil
}

// Combine joins a YYYY-MM-DD date and an HH:MM[:SS] time in the fixed zone.
func (r TimeResolver) Combine(date string, clock string) (time.Time, error) {
	if clock == "" {
		clock = midnight
	}
	if len(clock) == len("15:04") {
		clock += ":00"
	}

	t, err := time.ParseInLocation(
		DateLayout+"T"+ClockLayout,
		date+"T"+clock,
		r.location,
	)
	if err != nil {
		return time.Time{}, models.NewValidationError("invalid date/time %q %q", date, clock)
	}

	return t, nil
}

// Split renders an instant back into local date and time strings.
func (r TimeResolver) Split(t time.Time) (string, string) {
	local := t.In(r.location)
	return local.Format(DateLayout), local.Format(ClockLayout)
}

func (r TimeResolver) EventDateTime(t time.Time) *calendar.EventDateTime {
	//nolint:exhaustruct //other fields are optional
	return &calendar.EventDateTime{
		DateTime: t.In(r.location).Format(time.RFC3339),
		TimeZone: r.timeZone,
	}
}

func (r TimeResolver) AllDayDateTime(t time.Time) *calendar.EventDateTime {
	//nolint:exhaustruct //other fields are optional
	return &calendar.EventDateTime{
		Date: t.Format(DateLayout),
	}
}

// Parse reads an event boundary. All-day boundaries come back as local
// midnight with allDay set.
func (r TimeResolver) Parse(edt *calendar.EventDateTime) (time.Time, bool, error) {
	if edt == nil {
		return time.Time{}, false, models.NewValidationError("event has no time")
	}

	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("%w: event time %q", models.ErrValidation, edt.DateTime)
		}
		return t.In(r.location), false, nil
	}

	t, err := time.ParseInLocation(DateLayout, edt.Date, r.location)
	if err != nil {
		return time.Time{}, true, fmt.Errorf("%w: event date %q", models.ErrValidation, edt.Date)
	}
	return t, true, nil
}

func (r TimeResolver) Location() *time.Location {
	return r.location
}
