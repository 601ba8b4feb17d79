package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"wppcal/internal/dtos"
	"wppcal/internal/models"
	"wppcal/pkg/gemini"
)

const intentPrompt = `You are a calendar assistant that turns a user message into a JSON intent.
Reply with ONE JSON object only, no extra text. If the message is not about
calendars or events, reply with {}.

Current date and time: %s (%s, UTC offset %s).
Default calendar name: %q. Use it as calendar_name for events unless the user names another one.

Schema:
{
  "action": "create" | "update" | "delete" | "delete_all" | "list",
  "target": "event" | "calendar",
  "calendar_name": string,
  "event_summary_or_id": string,
  "event_details": {
    "summary": string, "location": string, "description": string,
    "start_date": "YYYY-MM-DD", "end_date": "YYYY-MM-DD",
    "start_time": "HH:MM:SS", "end_time": "HH:MM:SS",
    "recurrence_details": {
      "rule": "DAILY" | "WEEKLY" | "MONTHLY" | "YEARLY",
      "interval": integer, "byweekday": ["MO","TU","WE","TH","FR","SA","SU"],
      "until_date": "YYYY-MM-DD", "count": integer
    }
  },
  "update_data": { same fields as event_details, plus "start_date_offset": "+7 days" }
}

Rules:
- Resolve relative dates ("tomorrow", "next friday") against the current date.
- create/event: summary and start_date are required. Without a time use start_time "00:00:00";
  without an end use the start date, and an end time one hour after the start time.
- update/event: put the event to change in event_summary_or_id and only the changed fields in update_data.
  For relative moves ("push it a week") use start_date_offset with a sign, amount and unit (days, weeks, months, years).
- delete/event: put the text that identifies the event in event_summary_or_id.
- delete_all/event: clears the calendar until the end of the year; event_summary_or_id narrows it when given.
- list/event lists upcoming events; list/calendar lists calendars.
- create/calendar: calendar_name is the new calendar's name.

User message: %s`

// IntentService asks the NLU model for an intent and validates it at the
// boundary.
type IntentService struct {
	client          gemini.Client
	location        *time.Location
	defaultCalendar string
	now             func() time.Time
}

func (service *IntentService) Prompt(message string) string {
	now := service.now().In(service.location)
	return fmt.Sprintf(
		intentPrompt,
		now.Format("2006-01-02 15:04:05"),
		now.Weekday().String(),
		now.Format("-07:00"),
		service.defaultCalendar,
		message,
	)
}

// Extract returns nil without error when the message is not a calendar
// request.
func (service *IntentService) Extract(
	ctx context.Context,
	message string,
) (*models.Intent, error) {
	raw, err := service.client.GenerateJSON(ctx, service.Prompt(message))
	if err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil //nolint:nilnil //no intent
	}

	var dto dtos.IntentDto
	if err = json.Unmarshal(raw, &dto); err != nil {
		return nil, fmt.Errorf("decode intent: %w", err)
	}

	if dto.IsEmpty() {
		return nil, nil //nolint:nilnil //no intent
	}

	if ok, errs := dto.Validate(); !ok {
		return nil, models.NewValidationError("%s", describe(errs))
	}

	intent, err := dto.ToIntent(service.defaultCalendar)
	if err != nil {
		return nil, err
	}

	return &intent, nil
}

func describe(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for key := range errs {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+" "+errs[key])
	}
	return strings.Join(parts, ", ")
}
