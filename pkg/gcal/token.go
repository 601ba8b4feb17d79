package gcal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// TokenSourceFromFile loads an OAuth token previously stored by the
// authorization flow and returns a refreshing token source for it.
func TokenSourceFromFile(
	ctx context.Context,
	clientID string,
	clientSecret string,
	path string,
) (oauth2.TokenSource, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("google client id and secret are required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}

	var token oauth2.Token
	if err = json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("decoding token file: %w", err)
	}
	if token.RefreshToken == "" && !token.Valid() {
		return nil, errors.New("stored token is expired and has no refresh token")
	}

	//nolint:exhaustruct //other fields are optional
	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendar.CalendarScope},
	}

	return cfg.TokenSource(ctx, &token), nil
}
