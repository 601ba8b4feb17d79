package main

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/sentrytools"
	"wppcal/internal/config"
	"wppcal/internal/repositories"
	"wppcal/internal/services"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type Application struct {
	logger       *slog.Logger
	config       config.Config
	services     *services.Services
	repositories *repositories.Repositories
}

func main() {
	cfg := config.New(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	logger := slog.New(sentrytools.NewLogHandler(cfg.Env,
		slog.NewTextHandler(os.Stdout, nil)))

	var db *pgxpool.Pool
	if cfg.DBDsn != "" {
		var err error
		db, err = postgres.Connect(
			logger,
			cfg.DBDsn,
			25, //nolint:mnd //no magic number
			"15m",
			60,             //nolint:mnd //no magic number
			10*time.Second, //nolint:mnd //no magic number
			5*time.Minute,  //nolint:mnd //no magic number
		)
		if err != nil {
			panic(err)
		}
		defer db.Close()

		err = ApplyMigrations(logger, db)
		if err != nil {
			panic(err)
		}
	} else {
		logger.Warn("DB_DSN is empty, interactions will not be recorded")
	}

	// without calendar credentials nothing can be served
	clients, err := NewClients(context.Background(), cfg)
	if err != nil {
		panic(err)
	}

	app, err := NewApplication(logger, cfg, db, clients, time.Now)
	if err != nil {
		panic(err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,  //nolint:mnd //no magic number
		WriteTimeout: 60 * time.Second, //nolint:mnd //no magic number
	}
	err = httptools.Serve(logger, srv, cfg.Env)
	if err != nil {
		logger.Error("failed to serve server", logging.ErrAttr(err))
	}
}

// NewApplication wires services. A nil db disables the interaction log.
func NewApplication(
	logger *slog.Logger,
	cfg config.Config,
	db *pgxpool.Pool,
	clients Clients,
	now func() time.Time,
) (*Application, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	//nolint:exhaustruct //other fields are optional
	app := &Application{
		logger: logger,
		config: cfg,
	}

	var interactions services.InteractionLog = repositories.DiscardInteractions{}
	if db != nil {
		app.repositories = repositories.New(postgres.NewSpanDB(db))
		interactions = app.repositories.Interactions
	}

	app.services = services.New(
		logger,
		cfg,
		location,
		clients.Calendar,
		clients.Messenger,
		clients.NLU,
		interactions,
		now,
	)

	return app, nil
}

func ApplyMigrations(logger *slog.Logger, db *pgxpool.Pool) error {
	migrationsDB := stdlib.OpenDBFromPool(db)

	goose.SetLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(string(goose.DialectPostgres)); err != nil {
		return err
	}

	return goose.Up(migrationsDB, "migrations")
}
