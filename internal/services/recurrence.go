package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"wppcal/internal/models"
)

const (
	rrulePrefix  = "RRULE:"
	untilLayout  = "20060102T150405Z"
	untilHour    = 23
	untilMinute  = 59
	untilSeconds = 59
)

// RecurrenceCompiler renders a RecurrenceRule as an RRULE value.
type RecurrenceCompiler struct {
	location *time.Location
}

func NewRecurrenceCompiler(location *time.Location) RecurrenceCompiler {
	return RecurrenceCompiler{location: location}
}

// Compile emits FREQ[;INTERVAL][;BYDAY][;UNTIL|;COUNT]. UNTIL is the last
// second of the local until date, in UTC. Until wins over Count.
func (c RecurrenceCompiler) Compile(rule models.RecurrenceRule) (string, error) {
	freq, ok := models.ParseFrequency(string(rule.Frequency))
	if !ok {
		return "", models.NewValidationError("unknown recurrence frequency %q", rule.Frequency)
	}

	parts := []string{"FREQ=" + string(freq)}

	switch {
	case rule.Interval < 0:
		return "", models.NewValidationError("recurrence interval must be positive")
	case rule.Interval > 1:
		parts = append(parts, "INTERVAL="+strconv.Itoa(rule.Interval))
	}

	if len(rule.ByWeekday) > 0 {
		days := make([]string, 0, len(rule.ByWeekday))
		for _, d := range rule.ByWeekday {
			day, known := models.ParseWeekday(string(d))
			if !known {
				return "", models.NewValidationError("unknown weekday %q", d)
			}
			days = append(days, string(day))
		}
		parts = append(parts, "BYDAY="+strings.Join(days, ","))
	}

	switch {
	case rule.Until != nil:
		u := rule.Until
		until := time.Date(
			u.Year(), u.Month(), u.Day(),
			untilHour, untilMinute, untilSeconds, 0,
			c.location,
		)
		parts = append(parts, "UNTIL="+until.UTC().Format(untilLayout))
	case rule.Count != nil:
		if *rule.Count <= 0 {
			return "", models.NewValidationError("recurrence count must be positive")
		}
		parts = append(parts, "COUNT="+strconv.Itoa(*rule.Count))
	}

	compiled := strings.Join(parts, ";")

	if _, err := rrule.StrToRRule(compiled); err != nil {
		return "", fmt.Errorf("%w: recurrence %q: %v", models.ErrValidation, compiled, err)
	}

	return compiled, nil
}

// EventRecurrence is the value for an event body's recurrence field.
func (c RecurrenceCompiler) EventRecurrence(rule models.RecurrenceRule) ([]string, error) {
	compiled, err := c.Compile(rule)
	if err != nil {
		return nil, err
	}
	return []string{rrulePrefix + compiled}, nil
}
