package models

type Action string

const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionDeleteAll Action = "delete_all"
	ActionList      Action = "list"
)

//nolint:gochecknoglobals //ok
var Actions = []Action{
	ActionCreate,
	ActionUpdate,
	ActionDelete,
	ActionDeleteAll,
	ActionList,
}

type Target string

const (
	TargetEvent    Target = "event"
	TargetCalendar Target = "calendar"
)

//nolint:gochecknoglobals //ok
var Targets = []Target{TargetEvent, TargetCalendar}

// DispatchKey identifies one branch of the dispatch table.
type DispatchKey struct {
	Action Action
	Target Target
}

// Intent is a validated request. Which optional fields are populated
// depends on the (Action, Target) pair:
//
//	create×calendar   CalendarName
//	create×event      CalendarName, EventDraft
//	update×event      CalendarName, EventSelector, EventPatch
//	delete×event      CalendarName, EventSelector
//	delete_all×event  CalendarName, EventSelector (optional filter)
//	list×event        CalendarName
//	list×calendar     nothing
type Intent struct {
	Action        Action
	Target        Target
	CalendarName  string
	EventSelector string
	EventDraft    *EventDraft
	EventPatch    *EventPatch
}

func (i Intent) Key() DispatchKey {
	return DispatchKey{Action: i.Action, Target: i.Target}
}

type EventDraft struct {
	Summary     string
	Location    string
	Description string
	StartDate   string
	EndDate     string
	StartTime   string
	EndTime     string
	Recurrence  *RecurrenceRule
}

// EventPatch holds the fields an update replaces. Nil means untouched.
type EventPatch struct {
	Summary     *string
	Location    *string
	Description *string
	StartDate   *string
	EndDate     *string
	StartTime   *string
	EndTime     *string
	Recurrence  *RecurrenceRule
	StartOffset *OffsetDirective
}

func (p EventPatch) HasSchedule() bool {
	return p.StartDate != nil || p.EndDate != nil ||
		p.StartTime != nil || p.EndTime != nil
}
