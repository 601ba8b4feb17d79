package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/parse"
	"wppcal/internal/models"
)

const defaultInteractionLimit = 50

func (app *Application) healthHandler(w http.ResponseWriter, r *http.Request) {
	err := httptools.WriteJSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"environment": app.config.Env,
		"release":     app.config.Release,
	}, nil)
	if err != nil {
		httptools.ServerErrorResponse(w, r, err)
	}
}

func (app *Application) exportHandler(w http.ResponseWriter, r *http.Request) {
	name, err := parse.URLParam[string](r, "name", nil)
	if err != nil {
		http.Error(w, "Invalid calendar name", http.StatusBadRequest)
		return
	}

	feed, err := app.services.Export.Calendar(r.Context(), name)
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, "Calendar not found", http.StatusNotFound)
		return
	case errors.Is(err, models.ErrTransient):
		http.Error(w, "Failed to fetch calendar", http.StatusBadGateway)
		return
	case err != nil:
		http.Error(w, "Failed to export calendar", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	_, err = w.Write([]byte(feed))
	if err != nil {
		app.logger.Error("failed to write calendar", "error", err)
	}
}

func (app *Application) interactionsHandler(w http.ResponseWriter, r *http.Request) {
	if app.repositories == nil {
		http.Error(w, "Interaction log is disabled", http.StatusNotFound)
		return
	}

	limit := defaultInteractionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httptools.FailedValidationResponse(w, r, map[string]string{
				"limit": "must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	interactions, err := app.repositories.Interactions.ListRecent(r.Context(), limit)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	err = httptools.WriteJSON(w, http.StatusOK, interactions, nil)
	if err != nil {
		httptools.ServerErrorResponse(w, r, err)
	}
}
