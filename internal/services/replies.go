package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wppcal/internal/models"
)

type messageKey int

const (
	msgUnrecognized messageKey = iota
	msgNotCalendarRequest
	msgUnderstandingFailed
	msgCalendarNotFound
	msgCalendarExists
	msgCalendarCreated
	msgEventCreated
	msgEventCreatedRecurring
	msgEventUpdated
	msgEventNotFound
	msgDeleted
	msgDeletedPartial
	msgNothingToDelete
	msgNoEvents
	msgEventsHeader
	msgCalendarsHeader
	msgNoCalendars
	msgInvalid
	msgOffsetInvalid
	msgServiceUnavailable
	msgInternal
)

type catalog struct {
	dateTimeLayout string
	dateLayout     string
	messages       map[messageKey]string
}

const DefaultLanguage = "pt-BR"

//nolint:gochecknoglobals //ok
var catalogs = map[string]catalog{
	"pt-BR": {
		dateTimeLayout: "02/01/2006 15:04",
		dateLayout:     "02/01/2006",
		messages: map[messageKey]string{
			msgUnrecognized:          "Desculpe, não reconheci esse pedido.",
			msgNotCalendarRequest:    "Posso ajudar com eventos e calendários. Tente algo como \"marque uma reunião amanhã às 15h\".",
			msgUnderstandingFailed:   "Não consegui entender a mensagem agora. Tente novamente em instantes.",
			msgCalendarNotFound:      "Calendário '%s' não encontrado.",
			msgCalendarExists:        "O calendário '%s' já existe.",
			msgCalendarCreated:       "Calendário '%s' criado com sucesso!",
			msgEventCreated:          "Evento '%s' criado para %s.",
			msgEventCreatedRecurring: "Evento recorrente '%s' criado a partir de %s.",
			msgEventUpdated:          "Evento '%s' atualizado para %s.",
			msgEventNotFound:         "Nenhum evento encontrado para '%s'.",
			msgDeleted:               "%d evento(s) excluído(s).",
			msgDeletedPartial:        "%d de %d evento(s) excluído(s); os demais falharam.",
			msgNothingToDelete:       "Nenhum evento para excluir.",
			msgNoEvents:              "Nenhum evento encontrado em '%s'.",
			msgEventsHeader:          "Eventos em '%s':",
			msgCalendarsHeader:       "Seus calendários:",
			msgNoCalendars:           "Nenhum calendário encontrado.",
			msgInvalid:               "Pedido incompleto ou inválido: %s",
			msgOffsetInvalid:         "Não entendi o deslocamento de data: %s",
			msgServiceUnavailable:    "O Google Agenda não respondeu. Tente novamente mais tarde.",
			msgInternal:              "Algo deu errado ao processar o pedido.",
		},
	},
	"en": {
		dateTimeLayout: "2006-01-02 15:04",
		dateLayout:     "2006-01-02",
		messages: map[messageKey]string{
			msgUnrecognized:          "Sorry, I did not recognize that request.",
			msgNotCalendarRequest:    "I can help with events and calendars. Try something like \"schedule a meeting tomorrow at 3pm\".",
			msgUnderstandingFailed:   "I could not understand the message right now. Please try again shortly.",
			msgCalendarNotFound:      "Calendar '%s' not found.",
			msgCalendarExists:        "Calendar '%s' already exists.",
			msgCalendarCreated:       "Calendar '%s' created.",
			msgEventCreated:          "Event '%s' created for %s.",
			msgEventCreatedRecurring: "Recurring event '%s' created starting %s.",
			msgEventUpdated:          "Event '%s' moved to %s.",
			msgEventNotFound:         "No event found for '%s'.",
			msgDeleted:               "%d event(s) deleted.",
			msgDeletedPartial:        "%d of %d event(s) deleted; the rest failed.",
			msgNothingToDelete:       "Nothing to delete.",
			msgNoEvents:              "No events found in '%s'.",
			msgEventsHeader:          "Events in '%s':",
			msgCalendarsHeader:       "Your calendars:",
			msgNoCalendars:           "No calendars found.",
			msgInvalid:               "Incomplete or invalid request: %s",
			msgOffsetInvalid:         "I did not understand the date shift: %s",
			msgServiceUnavailable:    "Google Calendar did not respond. Please try again later.",
			msgInternal:              "Something went wrong while handling the request.",
		},
	},
}

// Replies renders user-facing outcomes in the deployment's language.
type Replies struct {
	catalog catalog
}

func NewReplies(language string) Replies {
	c, ok := catalogs[language]
	if !ok {
		c = catalogs[DefaultLanguage]
	}
	return Replies{catalog: c}
}

func (r Replies) format(key messageKey, args ...any) string {
	return fmt.Sprintf(r.catalog.messages[key], args...)
}

func (r Replies) DateTime(t time.Time) string {
	return t.Format(r.catalog.dateTimeLayout)
}

func (r Replies) Date(t time.Time) string {
	return t.Format(r.catalog.dateLayout)
}

func (r Replies) Unrecognized() string {
	return r.format(msgUnrecognized)
}

func (r Replies) NotCalendarRequest() string {
	return r.format(msgNotCalendarRequest)
}

func (r Replies) UnderstandingFailed() string {
	return r.format(msgUnderstandingFailed)
}

func (r Replies) CalendarNotFound(name string) string {
	return r.format(msgCalendarNotFound, name)
}

func (r Replies) CalendarExists(name string) string {
	return r.format(msgCalendarExists, name)
}

func (r Replies) CalendarCreated(name string) string {
	return r.format(msgCalendarCreated, name)
}

func (r Replies) EventCreated(summary string, start string, recurring bool) string {
	if recurring {
		return r.format(msgEventCreatedRecurring, summary, start)
	}
	return r.format(msgEventCreated, summary, start)
}

func (r Replies) EventUpdated(summary string, start string) string {
	return r.format(msgEventUpdated, summary, start)
}

func (r Replies) EventNotFound(selector string) string {
	return r.format(msgEventNotFound, selector)
}

func (r Replies) Deleted(report models.DeleteReport) string {
	if report.Attempted == 0 {
		return r.format(msgNothingToDelete)
	}
	if report.Succeeded < report.Attempted {
		return r.format(msgDeletedPartial, report.Succeeded, report.Attempted)
	}
	return r.format(msgDeleted, report.Succeeded)
}

func (r Replies) EventList(calendarName string, events []models.EventSummary) string {
	if len(events) == 0 {
		return r.format(msgNoEvents, calendarName)
	}

	var sb strings.Builder
	sb.WriteString(r.format(msgEventsHeader, calendarName))
	for _, event := range events {
		fmt.Fprintf(&sb, "\n- %s: %s", event.StartDisplay, event.Summary)
	}
	return sb.String()
}

func (r Replies) CalendarList(calendars []models.CalendarRef) string {
	if len(calendars) == 0 {
		return r.format(msgNoCalendars)
	}

	var sb strings.Builder
	sb.WriteString(r.format(msgCalendarsHeader))
	for _, cal := range calendars {
		fmt.Fprintf(&sb, "\n- %s", cal.Name)
	}
	return sb.String()
}

// ForError is the single translation of an engine error into a reply.
func (r Replies) ForError(err error) string {
	switch {
	case errors.Is(err, models.ErrParse):
		return r.format(msgOffsetInvalid, detail(err, models.ErrParse))
	case errors.Is(err, models.ErrValidation):
		return r.format(msgInvalid, detail(err, models.ErrValidation))
	case errors.Is(err, models.ErrTransient):
		return r.format(msgServiceUnavailable)
	case errors.Is(err, models.ErrNotFound):
		return r.format(msgEventNotFound, detail(err, models.ErrNotFound))
	default:
		return r.format(msgInternal)
	}
}

// detail drops the sentinel prefix from a wrapped message.
func detail(err error, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}
