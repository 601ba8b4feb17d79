package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"wppcal/internal/models"
	"wppcal/pkg/evolution"
)

type InteractionLog interface {
	Record(ctx context.Context, interaction models.Interaction) error
}

// ChatService handles one inbound message to completion: intent, dispatch,
// reply, record.
type ChatService struct {
	logger       *slog.Logger
	intents      *IntentService
	dispatcher   *Dispatcher
	replies      Replies
	messenger    evolution.Client
	interactions InteractionLog
	now          func() time.Time
}

func (service *ChatService) HandleMessage(
	ctx context.Context,
	sender string,
	text string,
) (string, error) {
	interaction := models.Interaction{
		ID:      uuid.New(),
		Sender:  sender,
		Message: text,
	}

	intent, err := service.intents.Extract(ctx, text)
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrParse):
		service.logger.Info("rejected intent", "error", err.Error())
		interaction.Reply = service.replies.ForError(err)
	case err != nil:
		service.logger.Error("failed to extract intent", logging.ErrAttr(err))
		interaction.Reply = service.replies.UnderstandingFailed()
	case intent == nil:
		interaction.Reply = service.replies.NotCalendarRequest()
	default:
		interaction.Action = intent.Action
		interaction.Target = intent.Target
		interaction.Reply = service.dispatcher.Dispatch(ctx, *intent)
	}

	_, sendErr := service.messenger.SendText(ctx, sender, interaction.Reply)

	interaction.CreatedAt = service.now()
	if err = service.interactions.Record(ctx, interaction); err != nil {
		service.logger.Warn("failed to record interaction", "error", err.Error())
	}

	return interaction.Reply, sendErr
}
