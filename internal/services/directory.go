package services

import (
	"context"
	"log/slog"

	"wppcal/internal/models"
	"wppcal/pkg/gcal"
)

// CalendarDirectory maps calendar display names to service identifiers.
// Nothing is cached: every call walks the full calendar list.
type CalendarDirectory struct {
	logger   *slog.Logger
	client   gcal.Client
	timeZone string
}

// Resolve compares display names exactly (case-sensitive) across all pages.
func (service *CalendarDirectory) Resolve(ctx context.Context, name string) (string, error) {
	pageToken := ""
	for {
		page, err := service.client.ListCalendars(ctx, pageToken)
		if err != nil {
			return "", models.NewTransientError("list calendars", err)
		}

		for _, entry := range page.Items {
			if entry.Summary == name {
				return entry.Id, nil
			}
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return "", models.NewNotFoundError("calendar %q", name)
}

// Create inserts a calendar. Callers only invoke it after Resolve returned
// ErrNotFound; the two calls are not atomic.
func (service *CalendarDirectory) Create(
	ctx context.Context,
	name string,
) (models.CalendarRef, error) {
	created, err := service.client.InsertCalendar(ctx, name, service.timeZone)
	if err != nil {
		return models.CalendarRef{}, models.NewTransientError("create calendar", err)
	}

	service.logger.Info("calendar created", "name", name, "id", created.Id)

	return models.CalendarRef{Name: created.Summary, ID: created.Id}, nil
}

func (service *CalendarDirectory) List(ctx context.Context) ([]models.CalendarRef, error) {
	calendars := []models.CalendarRef{}

	pageToken := ""
	for {
		page, err := service.client.ListCalendars(ctx, pageToken)
		if err != nil {
			return nil, models.NewTransientError("list calendars", err)
		}

		for _, entry := range page.Items {
			calendars = append(calendars, models.CalendarRef{
				Name: entry.Summary,
				ID:   entry.Id,
			})
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return calendars, nil
}
