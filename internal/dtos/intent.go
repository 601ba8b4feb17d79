package dtos

import (
	"fmt"
	"slices"
	"strings"

	"github.com/xdoubleu/essentia/v2/pkg/validate"
	"wppcal/internal/models"
)

// IntentDto is the JSON object produced by the NLU step. All fields are
// optional on the wire; which ones are required depends on action and target.
type IntentDto struct {
	Action           string           `json:"action"`
	Target           string           `json:"target"`
	CalendarName     string           `json:"calendar_name"`
	EventDetails     *EventDetailsDto `json:"event_details"`
	EventSummaryOrID string           `json:"event_summary_or_id"`
	UpdateData       *UpdateDataDto   `json:"update_data"`
}

type EventDetailsDto struct {
	Summary           *string               `json:"summary"`
	Location          *string               `json:"location"`
	Description       *string               `json:"description"`
	StartDate         *string               `json:"start_date"`
	EndDate           *string               `json:"end_date"`
	StartTime         *string               `json:"start_time"`
	EndTime           *string               `json:"end_time"`
	RecurrenceDetails *RecurrenceDetailsDto `json:"recurrence_details"`
}

type UpdateDataDto struct {
	EventDetailsDto
	StartDateOffset *string `json:"start_date_offset"`
}

type RecurrenceDetailsDto struct {
	Rule      string   `json:"rule"`
	Frequency string   `json:"frequency"`
	Interval  int      `json:"interval"`
	ByWeekday []string `json:"byweekday"`
	UntilDate *string  `json:"until_date"`
	Count     *int     `json:"count"`
}

// IsEmpty reports the "{}" answer the NLU gives for unrelated messages.
func (dto *IntentDto) IsEmpty() bool {
	return dto.Action == "" && dto.Target == "" && dto.CalendarName == "" &&
		dto.EventDetails == nil && dto.EventSummaryOrID == "" && dto.UpdateData == nil
}

func (dto *IntentDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "action", dto.Action, validate.IsNotEmpty)
	validate.Check(v, "target", dto.Target, validate.IsNotEmpty)

	errs := map[string]string{}
	for key, msg := range v.Errors() {
		errs[key] = msg
	}

	action := models.Action(dto.Action)
	target := models.Target(dto.Target)

	if dto.Action != "" && !slices.Contains(models.Actions, action) {
		errs["action"] = fmt.Sprintf("unknown action %q", dto.Action)
	}
	if dto.Target != "" && !slices.Contains(models.Targets, target) {
		errs["target"] = fmt.Sprintf("unknown target %q", dto.Target)
	}

	switch {
	case action == models.ActionCreate && target == models.TargetCalendar:
		if strings.TrimSpace(dto.CalendarName) == "" {
			errs["calendar_name"] = "must be provided"
		}
	case action == models.ActionCreate && target == models.TargetEvent:
		dto.validateDraft(errs)
	case action == models.ActionUpdate && target == models.TargetEvent:
		dto.validateSelector(errs)
		dto.validatePatch(errs)
	case action == models.ActionDelete && target == models.TargetEvent:
		dto.validateSelector(errs)
	}

	return len(errs) == 0, errs
}

func (dto *IntentDto) validateDraft(errs map[string]string) {
	if dto.EventDetails == nil {
		errs["event_details"] = "must be provided"
		return
	}
	if isBlank(dto.EventDetails.Summary) {
		errs["event_details.summary"] = "must be provided"
	}
	if isBlank(dto.EventDetails.StartDate) {
		errs["event_details.start_date"] = "must be provided"
	}
	validateRecurrence(dto.EventDetails.RecurrenceDetails, "event_details", errs)
}

func (dto *IntentDto) validateSelector(errs map[string]string) {
	if strings.TrimSpace(dto.EventSummaryOrID) == "" {
		errs["event_summary_or_id"] = "must be provided"
	}
}

func (dto *IntentDto) validatePatch(errs map[string]string) {
	data := dto.updateData()
	if data == nil {
		errs["update_data"] = "must be provided"
		return
	}
	// start_date_offset is parsed by ToIntent and reported as a parse error
	validateRecurrence(data.RecurrenceDetails, "update_data", errs)
}

func validateRecurrence(dto *RecurrenceDetailsDto, prefix string, errs map[string]string) {
	if dto == nil {
		return
	}

	key := prefix + ".recurrence_details"
	if _, ok := models.ParseFrequency(dto.frequency()); !ok {
		errs[key+".rule"] = fmt.Sprintf("unknown frequency %q", dto.frequency())
	}
	if dto.Interval < 0 {
		errs[key+".interval"] = "must be positive"
	}
	for _, day := range dto.ByWeekday {
		if _, ok := models.ParseWeekday(day); !ok {
			errs[key+".byweekday"] = fmt.Sprintf("unknown weekday %q", day)
		}
	}
	if dto.UntilDate == nil && dto.Count != nil && *dto.Count <= 0 {
		errs[key+".count"] = "must be positive"
	}
}

// updateData falls back to event_details, where the NLU often puts the
// fields to change.
func (dto *IntentDto) updateData() *UpdateDataDto {
	if dto.UpdateData != nil {
		return dto.UpdateData
	}
	if dto.EventDetails != nil {
		return &UpdateDataDto{EventDetailsDto: *dto.EventDetails}
	}
	return nil
}

// ToIntent converts a validated dto. Event targets without a calendar name
// use defaultCalendar.
func (dto *IntentDto) ToIntent(defaultCalendar string) (models.Intent, error) {
	intent := models.Intent{
		Action:        models.Action(dto.Action),
		Target:        models.Target(dto.Target),
		CalendarName:  strings.TrimSpace(dto.CalendarName),
		EventSelector: strings.TrimSpace(dto.EventSummaryOrID),
	}

	if intent.Target == models.TargetEvent && intent.CalendarName == "" {
		intent.CalendarName = defaultCalendar
	}

	switch intent.Key() {
	case models.DispatchKey{Action: models.ActionCreate, Target: models.TargetEvent}:
		if dto.EventDetails == nil {
			return intent, models.NewValidationError("event details are required")
		}
		draft, err := dto.EventDetails.toDraft()
		if err != nil {
			return intent, err
		}
		intent.EventDraft = &draft
	case models.DispatchKey{Action: models.ActionUpdate, Target: models.TargetEvent}:
		data := dto.updateData()
		if data == nil {
			return intent, models.NewValidationError("nothing to update")
		}
		patch, err := data.toPatch()
		if err != nil {
			return intent, err
		}
		intent.EventPatch = &patch
	}

	return intent, nil
}

func (dto EventDetailsDto) toDraft() (models.EventDraft, error) {
	draft := models.EventDraft{
		Summary:     deref(dto.Summary),
		Location:    deref(dto.Location),
		Description: deref(dto.Description),
		StartDate:   deref(dto.StartDate),
		EndDate:     deref(dto.EndDate),
		StartTime:   deref(dto.StartTime),
		EndTime:     deref(dto.EndTime),
	}

	if dto.RecurrenceDetails != nil {
		rule, err := dto.RecurrenceDetails.toRule()
		if err != nil {
			return draft, err
		}
		draft.Recurrence = &rule
	}

	return draft, nil
}

func (dto UpdateDataDto) toPatch() (models.EventPatch, error) {
	patch := models.EventPatch{
		Summary:     nonBlank(dto.Summary),
		Location:    dto.Location,
		Description: dto.Description,
		StartDate:   nonBlank(dto.StartDate),
		EndDate:     nonBlank(dto.EndDate),
		StartTime:   nonBlank(dto.StartTime),
		EndTime:     nonBlank(dto.EndTime),
	}

	if dto.StartDateOffset != nil {
		offset, err := models.ParseOffset(*dto.StartDateOffset)
		if err != nil {
			return patch, err
		}
		patch.StartOffset = &offset
	}

	if dto.RecurrenceDetails != nil {
		rule, err := dto.RecurrenceDetails.toRule()
		if err != nil {
			return patch, err
		}
		patch.Recurrence = &rule
	}

	return patch, nil
}

func (dto RecurrenceDetailsDto) frequency() string {
	if dto.Rule != "" {
		return dto.Rule
	}
	return dto.Frequency
}

func (dto RecurrenceDetailsDto) toRule() (models.RecurrenceRule, error) {
	frequency, ok := models.ParseFrequency(dto.frequency())
	if !ok {
		return models.RecurrenceRule{}, models.NewValidationError(
			"unknown recurrence frequency %q", dto.frequency(),
		)
	}

	rule := models.RecurrenceRule{
		Frequency: frequency,
		Interval:  dto.Interval,
		Count:     dto.Count,
	}

	for _, day := range dto.ByWeekday {
		weekday, ok := models.ParseWeekday(day)
		if !ok {
			return rule, models.NewValidationError("unknown weekday %q", day)
		}
		rule.ByWeekday = append(rule.ByWeekday, weekday)
	}

	if dto.UntilDate != nil && *dto.UntilDate != "" {
		until, err := models.ParseDate(*dto.UntilDate)
		if err != nil {
			return rule, err
		}
		rule.Until = &until
	}

	return rule, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func nonBlank(value *string) *string {
	if isBlank(value) {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func isBlank(value *string) bool {
	return value == nil || strings.TrimSpace(*value) == ""
}
