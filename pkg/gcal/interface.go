package gcal

import (
	"context"
	"time"

	"google.golang.org/api/calendar/v3"
)

// Client is the subset of the calendar service used by the engine. List
// calls return a single page; callers follow NextPageToken.
type Client interface {
	ListCalendars(ctx context.Context, pageToken string) (*calendar.CalendarList, error)
	InsertCalendar(ctx context.Context, name string, timeZone string) (*calendar.Calendar, error)
	ListEvents(
		ctx context.Context,
		calendarID string,
		timeMin time.Time,
		timeMax time.Time,
		pageToken string,
	) (*calendar.Events, error)
	GetEvent(ctx context.Context, calendarID string, eventID string) (*calendar.Event, error)
	InsertEvent(
		ctx context.Context,
		calendarID string,
		event *calendar.Event,
	) (*calendar.Event, error)
	UpdateEvent(
		ctx context.Context,
		calendarID string,
		eventID string,
		event *calendar.Event,
	) (*calendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID string, eventID string) error
}
