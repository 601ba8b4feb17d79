//nolint:mnd //no magic number
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/config"
	"github.com/xhit/go-str2duration/v2"
)

type Config struct {
	Env        string
	Port       int
	WebURL     string
	SentryDsn  string
	SampleRate float64
	DBDsn      string
	Release    string

	WebhookAPIKey     string
	AllowedNumber     string
	EvolutionURL      string
	EvolutionAPIKey   string
	EvolutionInstance string

	GeminiAPIKey string
	GeminiModel  string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleTokenFile    string

	Timezone        string
	TimezoneOffset  string
	DefaultCalendar string
	Language        string
	MatchWindow     time.Duration
}

func New(logger *slog.Logger) Config {
	var cfg Config

	parser := config.New(logger)

	cfg.Env = parser.EnvStr("ENV", config.ProdEnv)
	cfg.Port = parser.EnvInt("PORT", 8000)
	cfg.WebURL = parser.EnvStr("WEB_URL", "http://localhost:8000")
	cfg.SentryDsn = parser.EnvStr("SENTRY_DSN", "")
	cfg.SampleRate = parser.EnvFloat("SAMPLE_RATE", 1.0)
	cfg.DBDsn = parser.EnvStr("DB_DSN", "")
	cfg.Release = parser.EnvStr("RELEASE", config.DevEnv)

	cfg.WebhookAPIKey = parser.EnvStr("WEBHOOK_API_KEY", "")
	cfg.AllowedNumber = parser.EnvStr("ALLOWED_NUMBER", "")
	cfg.EvolutionURL = parser.EnvStr("EVOLUTION_URL", "http://localhost:8389")
	cfg.EvolutionAPIKey = parser.EnvStr("EVOLUTION_API_KEY", "")
	cfg.EvolutionInstance = parser.EnvStr("EVOLUTION_INSTANCE", "wpp-tablet")

	cfg.GeminiAPIKey = parser.EnvStr("GEMINI_API_KEY", "")
	cfg.GeminiModel = parser.EnvStr("GEMINI_MODEL", "gemini-2.0-flash")

	cfg.GoogleClientID = parser.EnvStr("GOOGLE_CLIENT_ID", "")
	cfg.GoogleClientSecret = parser.EnvStr("GOOGLE_CLIENT_SECRET", "")
	cfg.GoogleTokenFile = parser.EnvStr("GOOGLE_TOKEN_FILE", "token_files/token_calendar_v3.json")

	cfg.Timezone = parser.EnvStr("TIMEZONE", "America/Sao_Paulo")
	cfg.TimezoneOffset = parser.EnvStr("TIMEZONE_OFFSET", "-03:00")
	cfg.DefaultCalendar = parser.EnvStr("DEFAULT_CALENDAR", "wpp-llm")
	cfg.Language = parser.EnvStr("LANGUAGE", "pt-BR")

	window := parser.EnvStr("MATCH_WINDOW", "30d")
	matchWindow, err := str2duration.ParseDuration(window)
	if err != nil || matchWindow <= 0 {
		logger.Warn("invalid MATCH_WINDOW, using 30d", "value", window)
		matchWindow = 30 * 24 * time.Hour
	}
	cfg.MatchWindow = matchWindow

	return cfg
}

// Location returns the fixed-offset zone every event time is rendered in.
func (cfg Config) Location() (*time.Location, error) {
	return ParseOffset(cfg.TimezoneOffset)
}

// ParseOffset turns "-03:00" (or "+0530", "Z") into a fixed zone.
func ParseOffset(value string) (*time.Location, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "Z" || value == "UTC" {
		return time.UTC, nil
	}

	t, err := time.Parse("-07:00", value)
	if err != nil {
		t, err = time.Parse("-0700", value)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid timezone offset %q: %w", value, err)
	}

	_, seconds := t.Zone()
	return time.FixedZone(value, seconds), nil
}
