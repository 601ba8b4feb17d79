package services

import (
	"context"
	"time"

	ics "github.com/arran4/golang-ical"
)

const productID = "-//wppcal//calendar export//EN"

// ExportService renders the upcoming events of a calendar as an iCalendar
// feed.
type ExportService struct {
	directory *CalendarDirectory
	matcher   *EventMatcher
	times     TimeResolver
	timeZone  string
	now       func() time.Time
}

func (service *ExportService) Calendar(ctx context.Context, name string) (string, error) {
	calendarID, err := service.directory.Resolve(ctx, name)
	if err != nil {
		return "", err
	}

	events, err := service.matcher.Fetch(ctx, calendarID, service.matcher.DefaultWindow())
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)
	cal.SetXWRTimezone(service.timeZone)

	stamp := service.now().UTC()
	for _, event := range events {
		start, allDay, err := service.times.Parse(event.Start)
		if err != nil {
			return "", err
		}
		end, _, err := service.times.Parse(event.End)
		if err != nil {
			return "", err
		}

		vevent := cal.AddEvent(event.Id)
		vevent.SetDtStampTime(stamp)
		vevent.SetSummary(event.Summary)
		if event.Location != "" {
			vevent.SetLocation(event.Location)
		}
		if event.Description != "" {
			vevent.SetDescription(event.Description)
		}

		if allDay {
			vevent.SetAllDayStartAt(start)
			vevent.SetAllDayEndAt(end)
			continue
		}
		vevent.SetStartAt(start)
		vevent.SetEndAt(end)
	}

	return cal.Serialize(), nil
}

