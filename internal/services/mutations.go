package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"google.golang.org/api/calendar/v3"
	"wppcal/internal/models"
	"wppcal/pkg/gcal"
)

// MutationExecutor performs create, update, delete and list against one
// resolved calendar. Every call re-reads from the calendar service.
type MutationExecutor struct {
	logger     *slog.Logger
	client     gcal.Client
	times      TimeResolver
	recurrence RecurrenceCompiler
	matcher    *EventMatcher
	replies    Replies
}

func (service *MutationExecutor) Create(
	ctx context.Context,
	calendarID string,
	draft models.EventDraft,
) (*calendar.Event, error) {
	if draft.Summary == "" {
		return nil, models.NewValidationError("event summary is required")
	}

	times, err := service.times.Resolve(
		draft.StartDate,
		draft.StartTime,
		draft.EndDate,
		draft.EndTime,
	)
	if err != nil {
		return nil, err
	}

	//nolint:exhaustruct //other fields are optional
	body := &calendar.Event{
		Summary:     draft.Summary,
		Location:    draft.Location,
		Description: draft.Description,
		Start:       service.times.EventDateTime(times.Start),
		End:         service.times.EventDateTime(times.End),
	}

	if draft.Recurrence != nil {
		body.Recurrence, err = service.recurrence.EventRecurrence(*draft.Recurrence)
		if err != nil {
			return nil, err
		}
	}

	created, err := service.client.InsertEvent(ctx, calendarID, body)
	if err != nil {
		return nil, models.NewTransientError("insert event", err)
	}

	service.logger.Info(
		"event created",
		"calendar_id", calendarID,
		"event_id", created.Id,
		"recurring", len(body.Recurrence) > 0,
	)

	return created, nil
}

// Update rewrites the first event matching selector. The service replaces
// the whole body, so the stored event is fetched and patched first.
func (service *MutationExecutor) Update(
	ctx context.Context,
	calendarID string,
	selector string,
	patch models.EventPatch,
) (*calendar.Event, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, models.NewValidationError("event to update is required")
	}

	matches, err := service.matcher.Find(
		ctx,
		calendarID,
		selector,
		service.matcher.DefaultWindow(),
	)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, models.NewNotFoundError("event %q", selector)
	}

	eventID := matches[0].Id
	if patch.Recurrence != nil && matches[0].RecurringEventId != "" {
		// recurrence can only be set on the series, not on an instance
		eventID = matches[0].RecurringEventId
	}

	body, err := service.client.GetEvent(ctx, calendarID, eventID)
	if err != nil {
		if gcal.IsNotFound(err) {
			return nil, models.NewNotFoundError("event %q", eventID)
		}
		return nil, models.NewTransientError("get event", err)
	}

	if patch.Summary != nil {
		body.Summary = *patch.Summary
	}
	if patch.Location != nil {
		body.Location = *patch.Location
	}
	if patch.Description != nil {
		body.Description = *patch.Description
	}

	switch {
	case patch.StartOffset != nil:
		err = service.shift(body, *patch.StartOffset)
	case patch.HasSchedule():
		err = service.reschedule(body, patch)
	}
	if err != nil {
		return nil, err
	}

	body.Recurrence = nil
	if patch.Recurrence != nil {
		body.Recurrence, err = service.recurrence.EventRecurrence(*patch.Recurrence)
		if err != nil {
			return nil, err
		}
	}

	updated, err := service.client.UpdateEvent(ctx, calendarID, eventID, body)
	if err != nil {
		return nil, models.NewTransientError("update event", err)
	}

	service.logger.Info("event updated", "calendar_id", calendarID, "event_id", eventID)

	return updated, nil
}

// shift moves the event by a relative offset, preserving its duration.
func (service *MutationExecutor) shift(
	body *calendar.Event,
	offset models.OffsetDirective,
) error {
	start, allDay, err := service.times.Parse(body.Start)
	if err != nil {
		return err
	}
	end, _, err := service.times.Parse(body.End)
	if err != nil {
		return err
	}

	if allDay {
		days := offset.Days()
		body.Start = service.times.AllDayDateTime(start.AddDate(0, 0, days))
		body.End = service.times.AllDayDateTime(end.AddDate(0, 0, days))
		return nil
	}

	newStart := start.Add(offset.Duration())
	newEnd := newStart.Add(end.Sub(start))

	body.Start = service.times.EventDateTime(newStart)
	body.End = service.times.EventDateTime(newEnd)
	return nil
}

// reschedule overlays patched date/time fields on the stored schedule.
// When neither end field is patched the original duration is kept.
func (service *MutationExecutor) reschedule(
	body *calendar.Event,
	patch models.EventPatch,
) error {
	start, allDay, err := service.times.Parse(body.Start)
	if err != nil {
		return err
	}
	end, _, err := service.times.Parse(body.End)
	if err != nil {
		return err
	}

	startDate, startClock := service.times.Split(start)
	_, endClock := service.times.Split(end)

	if allDay && patch.StartTime == nil && patch.EndTime == nil {
		return service.rescheduleAllDay(body, patch, start, end)
	}

	if patch.StartDate != nil {
		startDate = *patch.StartDate
	}
	if patch.StartTime != nil {
		startClock = *patch.StartTime
	}

	newStart, err := service.times.Combine(startDate, startClock)
	if err != nil {
		return err
	}

	if patch.EndDate == nil && patch.EndTime == nil {
		duration := end.Sub(start)
		if allDay {
			duration = defaultDuration
		}
		body.Start = service.times.EventDateTime(newStart)
		body.End = service.times.EventDateTime(newStart.Add(duration))
		return nil
	}

	endDate := startDate
	if patch.EndDate != nil {
		endDate = *patch.EndDate
	}
	if patch.EndTime != nil {
		endClock = *patch.EndTime
	}

	times, err := service.times.Resolve(startDate, startClock, endDate, endClock)
	if err != nil {
		return err
	}

	body.Start = service.times.EventDateTime(times.Start)
	body.End = service.times.EventDateTime(times.End)
	return nil
}

func (service *MutationExecutor) rescheduleAllDay(
	body *calendar.Event,
	patch models.EventPatch,
	start time.Time,
	end time.Time,
) error {
	newStart := start
	if patch.StartDate != nil {
		var err error
		newStart, err = service.times.Combine(*patch.StartDate, "")
		if err != nil {
			return err
		}
	}

	newEnd := newStart.Add(end.Sub(start))
	if patch.EndDate != nil {
		last, err := service.times.Combine(*patch.EndDate, "")
		if err != nil {
			return err
		}
		// all-day end dates are exclusive
		newEnd = last.AddDate(0, 0, 1)
	}
	if !newEnd.After(newStart) {
		return models.NewValidationError("end date is before start date")
	}

	body.Start = service.times.AllDayDateTime(newStart)
	body.End = service.times.AllDayDateTime(newEnd)
	return nil
}

// Delete removes every event matching selector in the default window.
func (service *MutationExecutor) Delete(
	ctx context.Context,
	calendarID string,
	selector string,
) (models.DeleteReport, error) {
	if strings.TrimSpace(selector) == "" {
		return models.DeleteReport{}, models.NewValidationError("event to delete is required")
	}

	matches, err := service.matcher.Find(
		ctx,
		calendarID,
		selector,
		service.matcher.DefaultWindow(),
	)
	if err != nil {
		return models.DeleteReport{}, err
	}
	if len(matches) == 0 {
		return models.DeleteReport{}, models.NewNotFoundError("event %q", selector)
	}

	return service.deleteEach(ctx, calendarID, matches), nil
}

// DeleteAll removes every event from now until the end of the current
// year, optionally narrowed by selector.
func (service *MutationExecutor) DeleteAll(
	ctx context.Context,
	calendarID string,
	selector string,
) (models.DeleteReport, error) {
	matches, err := service.matcher.Find(
		ctx,
		calendarID,
		selector,
		service.matcher.YearWindow(),
	)
	if err != nil {
		return models.DeleteReport{}, err
	}

	return service.deleteEach(ctx, calendarID, matches), nil
}

// deleteEach issues deletions one after another. A failed deletion is
// logged and counted, the rest still run.
func (service *MutationExecutor) deleteEach(
	ctx context.Context,
	calendarID string,
	events []*calendar.Event,
) models.DeleteReport {
	report := models.DeleteReport{Attempted: len(events)}

	for _, event := range events {
		err := service.client.DeleteEvent(ctx, calendarID, event.Id)
		if err != nil {
			service.logger.Error(
				"failed to delete event",
				logging.ErrAttr(models.NewTransientError("delete event", err)),
				"calendar_id", calendarID,
				"event_id", event.Id,
			)
			continue
		}
		report.Succeeded++
	}

	service.logger.Info(
		"events deleted",
		"calendar_id", calendarID,
		"attempted", report.Attempted,
		"succeeded", report.Succeeded,
	)

	return report
}

func (service *MutationExecutor) List(
	ctx context.Context,
	calendarID string,
) ([]models.EventSummary, error) {
	events, err := service.matcher.Fetch(ctx, calendarID, service.matcher.DefaultWindow())
	if err != nil {
		return nil, err
	}

	summaries := make([]models.EventSummary, 0, len(events))
	for _, event := range events {
		summaries = append(summaries, models.EventSummary{
			ID:           event.Id,
			Summary:      event.Summary,
			StartDisplay: service.StartDisplay(event),
			Recurring:    event.RecurringEventId != "" || len(event.Recurrence) > 0,
		})
	}

	return summaries, nil
}

// StartDisplay formats an event start for replies.
func (service *MutationExecutor) StartDisplay(event *calendar.Event) string {
	start, allDay, err := service.times.Parse(event.Start)
	if err != nil {
		if event.Start == nil {
			return ""
		}
		return event.Start.DateTime + event.Start.Date
	}
	if allDay {
		return service.replies.Date(start)
	}
	return service.replies.DateTime(start)
}
