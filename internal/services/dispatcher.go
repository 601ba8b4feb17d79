package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"wppcal/internal/models"
)

type handler func(ctx context.Context, intent models.Intent) string

type eventHandler func(ctx context.Context, intent models.Intent, calendarID string) string

// Dispatcher maps an (action, target) pair to a mutation and renders the
// single reply for it.
type Dispatcher struct {
	logger    *slog.Logger
	directory *CalendarDirectory
	mutations *MutationExecutor
	replies   Replies
	handlers  map[models.DispatchKey]handler
}

func NewDispatcher(
	logger *slog.Logger,
	directory *CalendarDirectory,
	mutations *MutationExecutor,
	replies Replies,
) *Dispatcher {
	d := &Dispatcher{
		logger:    logger,
		directory: directory,
		mutations: mutations,
		replies:   replies,
	}

	d.handlers = map[models.DispatchKey]handler{}
	d.register(models.ActionCreate, models.TargetCalendar, d.createCalendar)
	d.register(models.ActionList, models.TargetCalendar, d.listCalendars)
	d.register(models.ActionCreate, models.TargetEvent, d.withCalendar(d.createEvent))
	d.register(models.ActionUpdate, models.TargetEvent, d.withCalendar(d.updateEvent))
	d.register(models.ActionDelete, models.TargetEvent, d.withCalendar(d.deleteEvents))
	d.register(
		models.ActionDeleteAll,
		models.TargetEvent,
		d.withCalendar(d.deleteAllEvents),
	)
	d.register(models.ActionList, models.TargetEvent, d.withCalendar(d.listEvents))

	return d
}

func (d *Dispatcher) register(action models.Action, target models.Target, h handler) {
	d.handlers[models.DispatchKey{Action: action, Target: target}] = h
}

func (d *Dispatcher) Dispatch(ctx context.Context, intent models.Intent) string {
	h, ok := d.handlers[intent.Key()]
	if !ok {
		d.logger.Debug(
			"unrecognized request",
			"action", intent.Action,
			"target", intent.Target,
		)
		return d.replies.Unrecognized()
	}

	return h(ctx, intent)
}

// withCalendar resolves the calendar first. A missing calendar ends the
// branch before any other calendar call is made.
func (d *Dispatcher) withCalendar(next eventHandler) handler {
	return func(ctx context.Context, intent models.Intent) string {
		calendarID, err := d.directory.Resolve(ctx, intent.CalendarName)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return d.replies.CalendarNotFound(intent.CalendarName)
			}
			return d.fail(intent, err)
		}

		return next(ctx, intent, calendarID)
	}
}

func (d *Dispatcher) fail(intent models.Intent, err error) string {
	if errors.Is(err, models.ErrTransient) {
		d.logger.Error(
			"calendar request failed",
			logging.ErrAttr(err),
			"action", intent.Action,
			"target", intent.Target,
		)
	} else {
		d.logger.Info(
			"calendar request rejected",
			"error", err.Error(),
			"action", intent.Action,
			"target", intent.Target,
		)
	}
	return d.replies.ForError(err)
}

func (d *Dispatcher) createCalendar(ctx context.Context, intent models.Intent) string {
	_, err := d.directory.Resolve(ctx, intent.CalendarName)
	if err == nil {
		return d.replies.CalendarExists(intent.CalendarName)
	}
	if !errors.Is(err, models.ErrNotFound) {
		return d.fail(intent, err)
	}

	created, err := d.directory.Create(ctx, intent.CalendarName)
	if err != nil {
		return d.fail(intent, err)
	}

	return d.replies.CalendarCreated(created.Name)
}

func (d *Dispatcher) listCalendars(ctx context.Context, intent models.Intent) string {
	calendars, err := d.directory.List(ctx)
	if err != nil {
		return d.fail(intent, err)
	}

	return d.replies.CalendarList(calendars)
}

func (d *Dispatcher) createEvent(
	ctx context.Context,
	intent models.Intent,
	calendarID string,
) string {
	if intent.EventDraft == nil {
		return d.fail(intent, models.NewValidationError("event details are required"))
	}

	created, err := d.mutations.Create(ctx, calendarID, *intent.EventDraft)
	if err != nil {
		return d.fail(intent, err)
	}

	return d.replies.EventCreated(
		created.Summary,
		d.mutations.StartDisplay(created),
		len(created.Recurrence) > 0,
	)
}

func (d *Dispatcher) updateEvent(
	ctx context.Context,
	intent models.Intent,
	calendarID string,
) string {
	if intent.EventPatch == nil {
		return d.fail(intent, models.NewValidationError("nothing to update"))
	}

	updated, err := d.mutations.Update(ctx, calendarID, intent.EventSelector, *intent.EventPatch)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return d.replies.EventNotFound(intent.EventSelector)
		}
		return d.fail(intent, err)
	}

	return d.replies.EventUpdated(updated.Summary, d.mutations.StartDisplay(updated))
}

func (d *Dispatcher) deleteEvents(
	ctx context.Context,
	intent models.Intent,
	calendarID string,
) string {
	report, err := d.mutations.Delete(ctx, calendarID, intent.EventSelector)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return d.replies.EventNotFound(intent.EventSelector)
		}
		return d.fail(intent, err)
	}

	return d.replies.Deleted(report)
}

func (d *Dispatcher) deleteAllEvents(
	ctx context.Context,
	intent models.Intent,
	calendarID string,
) string {
	report, err := d.mutations.DeleteAll(ctx, calendarID, intent.EventSelector)
	if err != nil {
		return d.fail(intent, err)
	}

	return d.replies.Deleted(report)
}

func (d *Dispatcher) listEvents(
	ctx context.Context,
	intent models.Intent,
	calendarID string,
) string {
	events, err := d.mutations.List(ctx, calendarID)
	if err != nil {
		return d.fail(intent, err)
	}

	return d.replies.EventList(intent.CalendarName, events)
}
