package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type OffsetUnit string

const (
	OffsetDay   OffsetUnit = "day"
	OffsetWeek  OffsetUnit = "week"
	OffsetMonth OffsetUnit = "month"
	OffsetYear  OffsetUnit = "year"
)

// Months and years are approximated, not calendar accurate.
const (
	daysPerMonth = 30
	daysPerYear  = 365
)

//nolint:gochecknoglobals //ok
var offsetPattern = regexp.MustCompile(`^([+-])\s*(\d+)\s*([[:alpha:]ê]+)$`)

//nolint:gochecknoglobals //ok
var offsetUnits = map[string]OffsetUnit{
	"day":     OffsetDay,
	"days":    OffsetDay,
	"dia":     OffsetDay,
	"dias":    OffsetDay,
	"week":    OffsetWeek,
	"weeks":   OffsetWeek,
	"semana":  OffsetWeek,
	"semanas": OffsetWeek,
	"month":   OffsetMonth,
	"months":  OffsetMonth,
	"mes":     OffsetMonth,
	"mês":     OffsetMonth,
	"meses":   OffsetMonth,
	"year":    OffsetYear,
	"years":   OffsetYear,
	"ano":     OffsetYear,
	"anos":    OffsetYear,
}

// OffsetDirective is a signed relative shift such as "+7 days".
type OffsetDirective struct {
	Amount int
	Unit   OffsetUnit
}

// ParseOffset parses "<sign><digits> <unit>[s]". The sign is mandatory.
func ParseOffset(value string) (OffsetDirective, error) {
	m := offsetPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(value)))
	if m == nil {
		return OffsetDirective{}, fmt.Errorf("%w: offset %q", ErrParse, value)
	}

	unit, ok := offsetUnits[m[3]]
	if !ok {
		return OffsetDirective{}, fmt.Errorf("%w: offset unit %q", ErrParse, m[3])
	}

	amount, err := strconv.Atoi(m[2])
	if err != nil {
		return OffsetDirective{}, fmt.Errorf("%w: offset amount %q", ErrParse, m[2])
	}
	if m[1] == "-" {
		amount = -amount
	}

	return OffsetDirective{Amount: amount, Unit: unit}, nil
}

func (o OffsetDirective) Days() int {
	switch o.Unit {
	case OffsetWeek:
		return o.Amount * 7 //nolint:mnd //days per week
	case OffsetMonth:
		return o.Amount * daysPerMonth
	case OffsetYear:
		return o.Amount * daysPerYear
	default:
		return o.Amount
	}
}

func (o OffsetDirective) Duration() time.Duration {
	return time.Duration(o.Days()) * 24 * time.Hour //nolint:mnd //hours per day
}

func (o OffsetDirective) String() string {
	return fmt.Sprintf("%+d %ss", o.Amount, o.Unit)
}
