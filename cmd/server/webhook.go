package main

import (
	"net/http"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"wppcal/internal/dtos"
)

type webhookResponse struct {
	Status string `json:"status"`
	Reply  string `json:"reply,omitempty"`
}

func (app *Application) webhookHandler(w http.ResponseWriter, r *http.Request) {
	var webhookDto dtos.WebhookDto

	err := httptools.ReadJSON(r.Body, &webhookDto)
	if err != nil {
		httptools.BadRequestResponse(w, r, err)
		return
	}

	if app.config.WebhookAPIKey != "" && webhookDto.APIKey != app.config.WebhookAPIKey {
		http.Error(w, "Invalid key", http.StatusUnauthorized)
		return
	}

	if ok, errs := webhookDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	response := webhookResponse{Status: "ignored"}

	sender := webhookDto.Sender()
	allowed := app.config.AllowedNumber == "" || sender == app.config.AllowedNumber
	if webhookDto.IsProcessable() && allowed {
		reply, err := app.services.Chat.HandleMessage(r.Context(), sender, webhookDto.Text())
		if err != nil {
			app.logger.Error(
				"failed to send reply",
				logging.ErrAttr(err),
				"sender", sender,
			)
		}
		response = webhookResponse{Status: "ok", Reply: reply}
	}

	err = httptools.WriteJSON(w, http.StatusOK, response, nil)
	if err != nil {
		httptools.ServerErrorResponse(w, r, err)
	}
}
