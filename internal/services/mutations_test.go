package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"wppcal/internal/models"
)

func TestCreateEvent(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	//nolint:exhaustruct //other fields are optional
	created, err := env.services.Mutations.Create(context.Background(), calID, models.EventDraft{
		Summary:   "Plantão",
		StartDate: "2025-01-01",
		StartTime: "23:00:00",
		EndTime:   "00:30:00",
	})
	require.Nil(t, err)

	assert.Equal(t, "2025-01-01T23:00:00-03:00", created.Start.DateTime)
	assert.Equal(t, "2025-01-02T00:30:00-03:00", created.End.DateTime)
	assert.Equal(t, "America/Sao_Paulo", created.Start.TimeZone)
	assert.Empty(t, created.Recurrence)
	assert.Len(t, env.calendar.Events(calID), 1)
}

func TestCreateRecurringEvent(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	//nolint:exhaustruct //other fields are optional
	created, err := env.services.Mutations.Create(context.Background(), calID, models.EventDraft{
		Summary:   "Academia",
		StartDate: "2025-01-06",
		StartTime: "07:00:00",
		Recurrence: &models.RecurrenceRule{
			Frequency: models.Weekly,
			ByWeekday: []models.Weekday{"MO", "WE", "FR"},
			Count:     ptr(9),
		},
	})
	require.Nil(t, err)
	assert.Equal(t, []string{"RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR;COUNT=9"}, created.Recurrence)
	assert.Equal(t, "2025-01-06T08:00:00-03:00", created.End.DateTime)
}

func TestCreateDateOnlyEventStartsAtMidnight(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	//nolint:exhaustruct //other fields are optional
	created, err := env.services.Mutations.Create(context.Background(), calID, models.EventDraft{
		Summary:   "Aniversário",
		StartDate: "2025-01-10",
	})
	require.Nil(t, err)

	assert.Equal(t, "2025-01-10T00:00:00-03:00", created.Start.DateTime)
	assert.Equal(t, "2025-01-10T00:00:00-03:00", created.End.DateTime)
	assert.Empty(t, created.Start.Date)
}

func TestCreateEventRequiresSummary(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	//nolint:exhaustruct //other fields are optional
	_, err := env.services.Mutations.Create(context.Background(), calID, models.EventDraft{
		StartDate: "2025-01-01",
	})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Equal(t, 0, env.calendar.CallCount("InsertEvent"))
}

func TestCreateEventTransient(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")
	env.calendar.FailInsert = true

	//nolint:exhaustruct //other fields are optional
	_, err := env.services.Mutations.Create(context.Background(), calID, models.EventDraft{
		Summary:   "Almoço",
		StartDate: "2025-01-01",
	})
	assert.ErrorIs(t, err, models.ErrTransient)
}

func TestUpdateOffsetPreservesDuration(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	id := env.calendar.AddEvent(calID, timedEvent(
		"Reunião",
		time.Date(2025, 1, 1, 10, 0, 0, 0, location),
		time.Hour,
	))

	offset, err := models.ParseOffset("+7 days")
	require.Nil(t, err)

	//nolint:exhaustruct //other fields are optional
	updated, err := env.services.Mutations.Update(
		context.Background(),
		calID,
		"reuniao",
		models.EventPatch{StartOffset: &offset},
	)
	require.Nil(t, err)

	assert.Equal(t, id, updated.Id)
	assert.Equal(t, "2025-01-08T10:00:00-03:00", updated.Start.DateTime)
	assert.Equal(t, "2025-01-08T11:00:00-03:00", updated.End.DateTime)
	assert.Equal(t, "2025-01-08T10:00:00-03:00", env.calendar.Event(calID, id).Start.DateTime)
}

func TestUpdateFieldsAndRemovesRecurrence(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	event := timedEvent("Reunião", time.Date(2025, 1, 2, 14, 0, 0, 0, location), 2*time.Hour)
	event.Location = "Sala 1"
	event.Recurrence = []string{"RRULE:FREQ=DAILY;COUNT=3"}
	id := env.calendar.AddEvent(calID, event)

	//nolint:exhaustruct //other fields are optional
	updated, err := env.services.Mutations.Update(
		context.Background(),
		calID,
		"Reunião",
		models.EventPatch{
			Summary:   ptr("Reunião com cliente"),
			StartDate: ptr("2025-01-03"),
		},
	)
	require.Nil(t, err)

	assert.Equal(t, id, updated.Id)
	assert.Equal(t, "Reunião com cliente", updated.Summary)
	assert.Equal(t, "Sala 1", updated.Location)
	assert.Equal(t, "2025-01-03T14:00:00-03:00", updated.Start.DateTime)
	assert.Equal(t, "2025-01-03T16:00:00-03:00", updated.End.DateTime)
	assert.Empty(t, updated.Recurrence)
}

func TestUpdateAllDayOffset(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	//nolint:exhaustruct //other fields are optional
	env.calendar.AddEvent(calID, &calendar.Event{
		Summary: "Feriado",
		Start:   &calendar.EventDateTime{Date: "2025-01-10"},
		End:     &calendar.EventDateTime{Date: "2025-01-11"},
	})

	offset, err := models.ParseOffset("+1 week")
	require.Nil(t, err)

	//nolint:exhaustruct //other fields are optional
	updated, err := env.services.Mutations.Update(
		context.Background(),
		calID,
		"feriado",
		models.EventPatch{StartOffset: &offset},
	)
	require.Nil(t, err)
	assert.Equal(t, "2025-01-17", updated.Start.Date)
	assert.Equal(t, "2025-01-18", updated.End.Date)
}

func TestUpdateNotFound(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	//nolint:exhaustruct //other fields are optional
	_, err := env.services.Mutations.Update(
		context.Background(),
		calID,
		"inexistente",
		models.EventPatch{Summary: ptr("x")},
	)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, 0, env.calendar.CallCount("UpdateEvent"))
}

func TestBulkDeletePartialFailure(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	env.calendar.AddEvent(calID, timedEvent("Aula de inglês", now.Add(time.Hour), time.Hour))
	failing := env.calendar.AddEvent(calID, timedEvent("Aula de inglês", now.Add(25*time.Hour), time.Hour))
	env.calendar.AddEvent(calID, timedEvent("Aula de inglês", now.Add(49*time.Hour), time.Hour))
	env.calendar.AddEvent(calID, timedEvent("Dentista", now.Add(3*time.Hour), time.Hour))
	env.calendar.FailDeletes[failing] = true

	report, err := env.services.Mutations.Delete(context.Background(), calID, "aula de ingles")
	require.Nil(t, err)

	assert.Equal(t, 3, report.Attempted)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 3, env.calendar.CallCount("DeleteEvent"))
	assert.Len(t, env.calendar.Events(calID), 2)
}

func TestDeleteNotFound(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	_, err := env.services.Mutations.Delete(context.Background(), calID, "nada")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteAllUntilEndOfYear(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	env.calendar.AddEvent(calID, timedEvent("Aula", now.Add(time.Hour), time.Hour))
	env.calendar.AddEvent(calID, timedEvent("Dentista", now.Add(100*24*time.Hour), time.Hour))
	env.calendar.AddEvent(calID, timedEvent("Ano novo", time.Date(2026, 1, 1, 10, 0, 0, 0, location), time.Hour))

	report, err := env.services.Mutations.DeleteAll(context.Background(), calID, "")
	require.Nil(t, err)

	assert.Equal(t, models.DeleteReport{Attempted: 2, Succeeded: 2}, report)
	assert.Len(t, env.calendar.Events(calID), 1)
}

func TestListEvents(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	env.calendar.AddEvent(calID, timedEvent("Almoço", time.Date(2025, 1, 2, 12, 0, 0, 0, location), time.Hour))
	//nolint:exhaustruct //other fields are optional
	env.calendar.AddEvent(calID, &calendar.Event{
		Summary: "Feriado",
		Start:   &calendar.EventDateTime{Date: "2025-01-03"},
		End:     &calendar.EventDateTime{Date: "2025-01-04"},
	})

	events, err := env.services.Mutations.List(context.Background(), calID)
	require.Nil(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "Almoço", events[0].Summary)
	assert.Equal(t, "02/01/2025 12:00", events[0].StartDisplay)
	assert.Equal(t, "03/01/2025", events[1].StartDisplay)
}

func TestUpdateEndTimeOvernightWithRecurrence(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	id := env.calendar.AddEvent(calID, timedEvent(
		"Plantão",
		time.Date(2025, 1, 2, 22, 0, 0, 0, location),
		time.Hour,
	))

	//nolint:exhaustruct //other fields are optional
	updated, err := env.services.Mutations.Update(
		context.Background(),
		calID,
		"plantao",
		models.EventPatch{
			EndTime: ptr("01:00:00"),
			Recurrence: &models.RecurrenceRule{
				Frequency: models.Weekly,
				Count:     ptr(4),
			},
		},
	)
	require.Nil(t, err)

	assert.Equal(t, id, updated.Id)
	assert.Equal(t, "2025-01-02T22:00:00-03:00", updated.Start.DateTime)
	assert.Equal(t, "2025-01-03T01:00:00-03:00", updated.End.DateTime)
	assert.Equal(t, []string{"RRULE:FREQ=WEEKLY;COUNT=4"}, updated.Recurrence)
	assert.Equal(t, updated.Recurrence, env.calendar.Event(calID, id).Recurrence)
}

func TestUpdateRecurrenceTargetsSeries(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	master := timedEvent("Academia", time.Date(2024, 12, 2, 7, 0, 0, 0, location), time.Hour)
	master.Id = "academia"
	master.Recurrence = []string{"RRULE:FREQ=WEEKLY;BYDAY=MO"}
	env.calendar.AddEvent(calID, master)

	instance := timedEvent("Academia", time.Date(2025, 1, 6, 7, 0, 0, 0, location), time.Hour)
	instance.Id = "academia_20250106T100000Z"
	instance.RecurringEventId = "academia"
	env.calendar.AddEvent(calID, instance)

	//nolint:exhaustruct //other fields are optional
	updated, err := env.services.Mutations.Update(
		context.Background(),
		calID,
		"academia",
		models.EventPatch{
			Recurrence: &models.RecurrenceRule{
				Frequency: models.Weekly,
				ByWeekday: []models.Weekday{"MO", "TH"},
			},
		},
	)
	require.Nil(t, err)

	assert.Equal(t, "academia", updated.Id)
	assert.Equal(t, []string{"RRULE:FREQ=WEEKLY;BYDAY=MO,TH"}, updated.Recurrence)
	assert.Equal(t, "2024-12-02T07:00:00-03:00", updated.Start.DateTime)
	assert.Empty(t, env.calendar.Event(calID, instance.Id).Recurrence)
}

func TestUpdateInstanceWithoutRecurrence(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	instance := timedEvent("Academia", time.Date(2025, 1, 6, 7, 0, 0, 0, location), time.Hour)
	instance.Id = "academia_20250106T100000Z"
	instance.RecurringEventId = "academia"
	env.calendar.AddEvent(calID, instance)

	//nolint:exhaustruct //other fields are optional
	updated, err := env.services.Mutations.Update(
		context.Background(),
		calID,
		"academia",
		models.EventPatch{Location: ptr("Smart Fit")},
	)
	require.Nil(t, err)
	assert.Equal(t, instance.Id, updated.Id)
	assert.Equal(t, "Smart Fit", updated.Location)
}

func TestUpdateAllDayDates(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	//nolint:exhaustruct //other fields are optional
	id := env.calendar.AddEvent(calID, &calendar.Event{
		Summary: "Viagem",
		Start:   &calendar.EventDateTime{Date: "2025-01-10"},
		End:     &calendar.EventDateTime{Date: "2025-01-11"},
	})

	//nolint:exhaustruct //other fields are optional
	updated, err := env.services.Mutations.Update(
		context.Background(),
		calID,
		"viagem",
		models.EventPatch{
			StartDate: ptr("2025-01-20"),
			EndDate:   ptr("2025-01-22"),
		},
	)
	require.Nil(t, err)

	assert.Equal(t, id, updated.Id)
	assert.Equal(t, "2025-01-20", updated.Start.Date)
	assert.Equal(t, "2025-01-23", updated.End.Date)
	assert.Empty(t, updated.Start.DateTime)
}

func TestUpdateAllDayStartKeepsLength(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	//nolint:exhaustruct //other fields are optional
	env.calendar.AddEvent(calID, &calendar.Event{
		Summary: "Congresso",
		Start:   &calendar.EventDateTime{Date: "2025-01-10"},
		End:     &calendar.EventDateTime{Date: "2025-01-12"},
	})

	//nolint:exhaustruct //other fields are optional
	updated, err := env.services.Mutations.Update(
		context.Background(),
		calID,
		"congresso",
		models.EventPatch{StartDate: ptr("2025-01-15")},
	)
	require.Nil(t, err)

	assert.Equal(t, "2025-01-15", updated.Start.Date)
	assert.Equal(t, "2025-01-17", updated.End.Date)
}

func TestUpdateAllDayEndBeforeStart(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	//nolint:exhaustruct //other fields are optional
	env.calendar.AddEvent(calID, &calendar.Event{
		Summary: "Viagem",
		Start:   &calendar.EventDateTime{Date: "2025-01-10"},
		End:     &calendar.EventDateTime{Date: "2025-01-11"},
	})

	//nolint:exhaustruct //other fields are optional
	_, err := env.services.Mutations.Update(
		context.Background(),
		calID,
		"viagem",
		models.EventPatch{
			StartDate: ptr("2025-01-20"),
			EndDate:   ptr("2025-01-18"),
		},
	)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Equal(t, 0, env.calendar.CallCount("UpdateEvent"))
}

func TestBlankSelectorIsRejected(t *testing.T) {
	env := newTestEnv()
	calID := env.calendar.AddCalendar("wpp-llm")

	env.calendar.AddEvent(calID, timedEvent("Aula", now.Add(time.Hour), time.Hour))
	env.calendar.AddEvent(calID, timedEvent("Dentista", now.Add(3*time.Hour), time.Hour))

	_, err := env.services.Mutations.Delete(context.Background(), calID, "  ")
	assert.ErrorIs(t, err, models.ErrValidation)

	//nolint:exhaustruct //other fields are optional
	_, err = env.services.Mutations.Update(
		context.Background(),
		calID,
		"",
		models.EventPatch{Summary: ptr("x")},
	)
	assert.ErrorIs(t, err, models.ErrValidation)

	assert.Equal(t, 0, env.calendar.CallCount("ListEvents"))
	assert.Equal(t, 0, env.calendar.CallCount("DeleteEvent"))
	assert.Len(t, env.calendar.Events(calID), 2)
}
