package services_test

import (
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"google.golang.org/api/calendar/v3"
	"wppcal/internal/config"
	"wppcal/internal/mocks"
	"wppcal/internal/services"
)

//nolint:gochecknoglobals //needed for tests
var location = time.FixedZone("-03:00", -3*60*60)

//nolint:gochecknoglobals //needed for tests
var now = time.Date(2025, time.January, 1, 9, 0, 0, 0, location)

type testEnv struct {
	services     *services.Services
	calendar     *mocks.MockCalendarClient
	messenger    *mocks.MockEvolutionClient
	nlu          *mocks.MockGeminiClient
	interactions *mocks.MockInteractionLog
	replies      services.Replies
}

func newTestEnv() testEnv {
	//nolint:exhaustruct //other fields are optional
	cfg := config.Config{
		Timezone:        "America/Sao_Paulo",
		TimezoneOffset:  "-03:00",
		DefaultCalendar: "wpp-llm",
		Language:        "pt-BR",
		MatchWindow:     30 * 24 * time.Hour,
	}

	env := testEnv{
		calendar:     mocks.NewMockCalendarClient(),
		messenger:    mocks.NewMockEvolutionClient(),
		nlu:          mocks.NewMockGeminiClient(),
		interactions: mocks.NewMockInteractionLog(),
		replies:      services.NewReplies("pt-BR"),
	}

	env.services = services.New(
		logging.NewNopLogger(),
		cfg,
		location,
		env.calendar,
		env.messenger,
		env.nlu,
		env.interactions,
		func() time.Time { return now },
	)

	return env
}

func timedEvent(summary string, start time.Time, duration time.Duration) *calendar.Event {
	//nolint:exhaustruct //other fields are optional
	return &calendar.Event{
		Summary: summary,
		Start:   &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: start.Add(duration).Format(time.RFC3339)},
	}
}

func ptr[T any](value T) *T {
	return &value
}
