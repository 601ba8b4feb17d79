package gcal

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	eventsPageSize = 250
	orderByStart   = "startTime"
)

type client struct {
	service *calendar.Service
}

func New(ctx context.Context, tokenSource oauth2.TokenSource) (Client, error) {
	service, err := calendar.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return client{
		service: service,
	}, nil
}

func (client client) ListCalendars(
	ctx context.Context,
	pageToken string,
) (*calendar.CalendarList, error) {
	call := client.service.CalendarList.List().Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	return call.Do()
}

func (client client) InsertCalendar(
	ctx context.Context,
	name string,
	timeZone string,
) (*calendar.Calendar, error) {
	//nolint:exhaustruct //other fields are optional
	body := &calendar.Calendar{
		Summary:  name,
		TimeZone: timeZone,
	}
	return client.service.Calendars.Insert(body).Context(ctx).Do()
}

func (client client) ListEvents(
	ctx context.Context,
	calendarID string,
	timeMin time.Time,
	timeMax time.Time,
	pageToken string,
) (*calendar.Events, error) {
	call := client.service.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy(orderByStart).
		MaxResults(eventsPageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	return call.Do()
}

func (client client) GetEvent(
	ctx context.Context,
	calendarID string,
	eventID string,
) (*calendar.Event, error) {
	return client.service.Events.Get(calendarID, eventID).Context(ctx).Do()
}

func (client client) InsertEvent(
	ctx context.Context,
	calendarID string,
	event *calendar.Event,
) (*calendar.Event, error) {
	return client.service.Events.Insert(calendarID, event).Context(ctx).Do()
}

func (client client) UpdateEvent(
	ctx context.Context,
	calendarID string,
	eventID string,
	event *calendar.Event,
) (*calendar.Event, error) {
	return client.service.Events.Update(calendarID, eventID, event).Context(ctx).Do()
}

func (client client) DeleteEvent(ctx context.Context, calendarID string, eventID string) error {
	return client.service.Events.Delete(calendarID, eventID).Context(ctx).Do()
}

// IsNotFound reports whether err is a 404/410 answer from the service.
func IsNotFound(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone
}
