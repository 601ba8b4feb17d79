//nolint:exhaustruct,revive //ignore
package mocks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"wppcal/pkg/gcal"
)

var ErrMockedFailure = errors.New("mocked calendar failure")

// MockCalendarClient is an in-memory calendar service. Lists are paged by
// PageSize so callers have to follow page tokens.
type MockCalendarClient struct {
	mu sync.Mutex

	PageSize int

	calendars []*calendar.CalendarListEntry
	events    map[string][]*calendar.Event
	nextID    int

	FailList    bool
	FailInsert  bool
	FailDeletes map[string]bool

	Calls map[string]int
}

func NewMockCalendarClient() *MockCalendarClient {
	return &MockCalendarClient{
		PageSize:    2,
		events:      map[string][]*calendar.Event{},
		FailDeletes: map[string]bool{},
		Calls:       map[string]int{},
	}
}

var _ gcal.Client = (*MockCalendarClient)(nil)

func (client *MockCalendarClient) AddCalendar(name string) string {
	client.mu.Lock()
	defer client.mu.Unlock()

	return client.addCalendar(name)
}

func (client *MockCalendarClient) addCalendar(name string) string {
	client.nextID++
	id := fmt.Sprintf("cal-%d", client.nextID)
	client.calendars = append(client.calendars, &calendar.CalendarListEntry{
		Id:      id,
		Summary: name,
	})
	return id
}

// AddEvent stores event as-is, assigning an id when it has none.
func (client *MockCalendarClient) AddEvent(calendarID string, event *calendar.Event) string {
	client.mu.Lock()
	defer client.mu.Unlock()

	return client.addEvent(calendarID, event)
}

func (client *MockCalendarClient) addEvent(calendarID string, event *calendar.Event) string {
	if event.Id == "" {
		client.nextID++
		event.Id = fmt.Sprintf("evt-%d", client.nextID)
	}
	client.events[calendarID] = append(client.events[calendarID], event)
	return event.Id
}

func (client *MockCalendarClient) Events(calendarID string) []*calendar.Event {
	client.mu.Lock()
	defer client.mu.Unlock()

	return slices.Clone(client.events[calendarID])
}

func (client *MockCalendarClient) Event(calendarID string, eventID string) *calendar.Event {
	client.mu.Lock()
	defer client.mu.Unlock()

	for _, event := range client.events[calendarID] {
		if event.Id == eventID {
			return event
		}
	}
	return nil
}

func (client *MockCalendarClient) CallCount(name string) int {
	client.mu.Lock()
	defer client.mu.Unlock()

	return client.Calls[name]
}

func (client *MockCalendarClient) call(name string) {
	client.Calls[name]++
}

func (client *MockCalendarClient) ListCalendars(
	ctx context.Context,
	pageToken string,
) (*calendar.CalendarList, error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	client.call("ListCalendars")
	if client.FailList {
		return nil, ErrMockedFailure
	}

	items, next := page(client.calendars, pageToken, client.PageSize)
	return &calendar.CalendarList{Items: items, NextPageToken: next}, nil
}

func (client *MockCalendarClient) InsertCalendar(
	ctx context.Context,
	name string,
	timeZone string,
) (*calendar.Calendar, error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	client.call("InsertCalendar")
	if client.FailInsert {
		return nil, ErrMockedFailure
	}

	id := client.addCalendar(name)
	return &calendar.Calendar{Id: id, Summary: name, TimeZone: timeZone}, nil
}

func (client *MockCalendarClient) ListEvents(
	ctx context.Context,
	calendarID string,
	timeMin time.Time,
	timeMax time.Time,
	pageToken string,
) (*calendar.Events, error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	client.call("ListEvents")
	if client.FailList {
		return nil, ErrMockedFailure
	}

	inWindow := []*calendar.Event{}
	for _, event := range client.events[calendarID] {
		start := startOf(event)
		if !start.Before(timeMin) && start.Before(timeMax) {
			inWindow = append(inWindow, event)
		}
	}
	slices.SortStableFunc(inWindow, func(a, b *calendar.Event) int {
		return startOf(a).Compare(startOf(b))
	})

	items, next := page(inWindow, pageToken, client.PageSize)
	return &calendar.Events{Items: items, NextPageToken: next}, nil
}

func (client *MockCalendarClient) GetEvent(
	ctx context.Context,
	calendarID string,
	eventID string,
) (*calendar.Event, error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	client.call("GetEvent")
	for _, event := range client.events[calendarID] {
		if event.Id == eventID {
			clone := *event
			return &clone, nil
		}
	}
	return nil, &googleapi.Error{Code: 404, Message: "Not Found"}
}

func (client *MockCalendarClient) InsertEvent(
	ctx context.Context,
	calendarID string,
	event *calendar.Event,
) (*calendar.Event, error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	client.call("InsertEvent")
	if client.FailInsert {
		return nil, ErrMockedFailure
	}

	clone := *event
	client.addEvent(calendarID, &clone)
	return &clone, nil
}

func (client *MockCalendarClient) UpdateEvent(
	ctx context.Context,
	calendarID string,
	eventID string,
	event *calendar.Event,
) (*calendar.Event, error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	client.call("UpdateEvent")
	for i, stored := range client.events[calendarID] {
		if stored.Id == eventID {
			clone := *event
			clone.Id = eventID
			client.events[calendarID][i] = &clone
			return &clone, nil
		}
	}
	return nil, &googleapi.Error{Code: 404, Message: "Not Found"}
}

func (client *MockCalendarClient) DeleteEvent(
	ctx context.Context,
	calendarID string,
	eventID string,
) error {
	client.mu.Lock()
	defer client.mu.Unlock()

	client.call("DeleteEvent")
	if client.FailDeletes[eventID] {
		return ErrMockedFailure
	}

	events := client.events[calendarID]
	for i, event := range events {
		if event.Id == eventID {
			client.events[calendarID] = slices.Delete(events, i, i+1)
			return nil
		}
	}
	return &googleapi.Error{Code: 410, Message: "Gone"}
}

func startOf(event *calendar.Event) time.Time {
	if event.Start == nil {
		return time.Time{}
	}
	if event.Start.DateTime != "" {
		t, _ := time.Parse(time.RFC3339, event.Start.DateTime)
		return t
	}
	t, _ := time.Parse("2006-01-02", event.Start.Date)
	return t
}

func page[T any](items []T, pageToken string, size int) ([]T, string) {
	offset := 0
	if pageToken != "" {
		offset, _ = strconv.Atoi(pageToken)
	}
	if size <= 0 {
		size = len(items)
	}
	if offset >= len(items) {
		return []T{}, ""
	}

	end := min(offset+size, len(items))
	next := ""
	if end < len(items) {
		next = strconv.Itoa(end)
	}
	return slices.Clone(items[offset:end]), next
}
