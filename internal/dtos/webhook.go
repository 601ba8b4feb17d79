package dtos

import (
	"strings"

	"github.com/xdoubleu/essentia/v2/pkg/validate"
)

// WebhookDto is the subset of an Evolution API "messages.upsert" event the
// server reads.
type WebhookDto struct {
	Event    string             `json:"event"`
	Instance string             `json:"instance"`
	APIKey   string             `json:"apikey"`
	Data     WebhookMessageData `json:"data"`
}

type WebhookMessageData struct {
	Key      WebhookMessageKey `json:"key"`
	PushName string            `json:"pushName"`
	Message  *WebhookMessage   `json:"message"`
}

type WebhookMessageKey struct {
	RemoteJid string `json:"remoteJid"`
	FromMe    bool   `json:"fromMe"`
	ID        string `json:"id"`
}

type WebhookMessage struct {
	Conversation        string               `json:"conversation"`
	ExtendedTextMessage *ExtendedTextMessage `json:"extendedTextMessage"`
}

type ExtendedTextMessage struct {
	Text string `json:"text"`
}

// Text returns the plain conversation text, or the text of a reply/quote.
func (dto *WebhookDto) Text() string {
	if dto.Data.Message == nil {
		return ""
	}
	if dto.Data.Message.Conversation != "" {
		return strings.TrimSpace(dto.Data.Message.Conversation)
	}
	if dto.Data.Message.ExtendedTextMessage != nil {
		return strings.TrimSpace(dto.Data.Message.ExtendedTextMessage.Text)
	}
	return ""
}

// Sender is the phone number part of the remote JID.
func (dto *WebhookDto) Sender() string {
	number, _, _ := strings.Cut(dto.Data.Key.RemoteJid, "@")
	return number
}

// IsProcessable is false for messages the bot should silently ignore.
func (dto *WebhookDto) IsProcessable() bool {
	return !dto.Data.Key.FromMe && dto.Text() != ""
}

func (dto *WebhookDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "data.key.remoteJid", dto.Data.Key.RemoteJid, validate.IsNotEmpty)

	return v.Valid(), v.Errors()
}
