package main

import (
	"context"

	"wppcal/internal/config"
	"wppcal/pkg/evolution"
	"wppcal/pkg/gcal"
	"wppcal/pkg/gemini"
)

type Clients struct {
	Calendar  gcal.Client
	Messenger evolution.Client
	NLU       gemini.Client
}

// NewClients fails only when the Google credentials are unusable.
func NewClients(ctx context.Context, cfg config.Config) (Clients, error) {
	tokenSource, err := gcal.TokenSourceFromFile(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleTokenFile,
	)
	if err != nil {
		return Clients{}, err
	}

	calendarClient, err := gcal.New(ctx, tokenSource)
	if err != nil {
		return Clients{}, err
	}

	return Clients{
		Calendar:  calendarClient,
		Messenger: evolution.New(cfg.EvolutionURL, cfg.EvolutionInstance, cfg.EvolutionAPIKey),
		NLU:       gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
	}, nil
}
