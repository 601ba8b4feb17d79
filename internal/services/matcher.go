package services

import (
	"context"
	"time"

	"google.golang.org/api/calendar/v3"
	"wppcal/internal/models"
	"wppcal/pkg/gcal"
)

// EventMatcher fetches events in a window and filters them by normalized
// summary text.
type EventMatcher struct {
	client   gcal.Client
	now      func() time.Time
	location *time.Location
	window   time.Duration
}

// DefaultWindow is [now, now+window).
func (service *EventMatcher) DefaultWindow() models.Window {
	now := service.now().In(service.location)
	return models.Window{From: now, To: now.Add(service.window)}
}

// YearWindow is [now, January 1st of next year at local midnight).
func (service *EventMatcher) YearWindow() models.Window {
	now := service.now().In(service.location)
	end := time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, service.location)
	return models.Window{From: now, To: end}
}

// Fetch returns every event in the window, in start order, across all pages.
func (service *EventMatcher) Fetch(
	ctx context.Context,
	calendarID string,
	window models.Window,
) ([]*calendar.Event, error) {
	events := []*calendar.Event{}

	pageToken := ""
	for {
		page, err := service.client.ListEvents(
			ctx,
			calendarID,
			window.From,
			window.To,
			pageToken,
		)
		if err != nil {
			return nil, models.NewTransientError("list events", err)
		}

		events = append(events, page.Items...)

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return events, nil
}

// Find returns the events whose summary contains term. An event whose id
// equals term is an explicit selection and is returned alone. An empty term
// matches everything.
func (service *EventMatcher) Find(
	ctx context.Context,
	calendarID string,
	term string,
	window models.Window,
) ([]*calendar.Event, error) {
	events, err := service.Fetch(ctx, calendarID, window)
	if err != nil {
		return nil, err
	}

	if term == "" {
		return events, nil
	}

	for _, event := range events {
		if event.Id == term {
			return []*calendar.Event{event}, nil
		}
	}

	key := Normalize(term)
	matches := []*calendar.Event{}
	for _, event := range events {
		if Matches(event.Summary, key) {
			matches = append(matches, event)
		}
	}

	return matches, nil
}
