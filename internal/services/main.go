package services

import (
	"log/slog"
	"time"

	"wppcal/internal/config"
	"wppcal/pkg/evolution"
	"wppcal/pkg/gcal"
	"wppcal/pkg/gemini"
)

type Services struct {
	Directory  *CalendarDirectory
	Matcher    *EventMatcher
	Mutations  *MutationExecutor
	Dispatcher *Dispatcher
	Intents    *IntentService
	Chat       *ChatService
	Export     *ExportService
	Replies    Replies
}

func New(
	logger *slog.Logger,
	config config.Config,
	location *time.Location,
	calendarClient gcal.Client,
	messenger evolution.Client,
	nluClient gemini.Client,
	interactions InteractionLog,
	now func() time.Time,
) *Services {
	replies := NewReplies(config.Language)
	times := NewTimeResolver(location, config.Timezone)

	directory := &CalendarDirectory{
		logger:   logger,
		client:   calendarClient,
		timeZone: config.Timezone,
	}
	matcher := &EventMatcher{
		client:   calendarClient,
		now:      now,
		location: location,
		window:   config.MatchWindow,
	}
	mutations := &MutationExecutor{
		logger:     logger,
		client:     calendarClient,
		times:      times,
		recurrence: NewRecurrenceCompiler(location),
		matcher:    matcher,
		replies:    replies,
	}
	dispatcher := NewDispatcher(logger, directory, mutations, replies)
	intents := &IntentService{
		client:          nluClient,
		location:        location,
		defaultCalendar: config.DefaultCalendar,
		now:             now,
	}

	return &Services{
		Directory:  directory,
		Matcher:    matcher,
		Mutations:  mutations,
		Dispatcher: dispatcher,
		Intents:    intents,
		Chat: &ChatService{
			logger:       logger,
			intents:      intents,
			dispatcher:   dispatcher,
			replies:      replies,
			messenger:    messenger,
			interactions: interactions,
			now:          now,
		},
		Export: &ExportService{
			directory: directory,
			matcher:   matcher,
			times:     times,
			timeZone:  config.Timezone,
			now:       now,
		},
		Replies: replies,
	}
}
