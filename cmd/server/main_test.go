package main

import (
	"os"
	"testing"
	"time"

	configtools "github.com/xdoubleu/essentia/v2/pkg/config"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"wppcal/internal/config"
	"wppcal/internal/mocks"
)

var testApp *Application //nolint:gochecknoglobals //needed for tests

//nolint:gochecknoglobals //needed for tests
var testClients struct {
	calendar  *mocks.MockCalendarClient
	messenger *mocks.MockEvolutionClient
	nlu       *mocks.MockGeminiClient
}

const (
	webhookKey  = "secret"
	allowedFrom = "5511999999999"
)

func TestMain(m *testing.M) {
	var err error

	cfg := config.New(logging.NewNopLogger())
	cfg.Env = configtools.TestEnv
	cfg.DBDsn = ""
	cfg.WebhookAPIKey = webhookKey
	cfg.AllowedNumber = allowedFrom
	cfg.TimezoneOffset = "-03:00"
	cfg.DefaultCalendar = "wpp-llm"
	cfg.Language = "pt-BR"

	testClients.calendar = mocks.NewMockCalendarClient()
	testClients.messenger = mocks.NewMockEvolutionClient()
	testClients.nlu = mocks.NewMockGeminiClient()

	testClients.calendar.AddCalendar("wpp-llm")

	testApp, err = NewApplication(
		logging.NewNopLogger(),
		cfg,
		nil,
		Clients{
			Calendar:  testClients.calendar,
			Messenger: testClients.messenger,
			NLU:       testClients.nlu,
		},
		func() time.Time {
			return time.Date(2025, time.January, 1, 9, 0, 0, 0, time.FixedZone("-03:00", -3*60*60))
		},
	)
	if err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}
