package dtos_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wppcal/internal/dtos"
)

func TestWebhookDto(t *testing.T) {
	var dto dtos.WebhookDto
	require.Nil(t, json.Unmarshal([]byte(`{
		"event": "messages.upsert",
		"instance": "wpp-tablet",
		"apikey": "secret",
		"data": {
			"key": {"remoteJid": "5511999999999@s.whatsapp.net", "fromMe": false, "id": "1"},
			"pushName": "Ana",
			"message": {"conversation": " marque almoço amanhã "},
			"messageType": "conversation"
		}
	}`), &dto))

	assert.Equal(t, "5511999999999", dto.Sender())
	assert.Equal(t, "marque almoço amanhã", dto.Text())
	assert.True(t, dto.IsProcessable())

	ok, _ := dto.Validate()
	assert.True(t, ok)
}

func TestWebhookDtoExtendedText(t *testing.T) {
	var dto dtos.WebhookDto
	require.Nil(t, json.Unmarshal([]byte(`{
		"data": {
			"key": {"remoteJid": "5511999999999@s.whatsapp.net", "fromMe": true},
			"message": {"extendedTextMessage": {"text": "ok"}}
		}
	}`), &dto))

	assert.Equal(t, "ok", dto.Text())
	assert.False(t, dto.IsProcessable())
}

func TestWebhookDtoWithoutMessage(t *testing.T) {
	var dto dtos.WebhookDto
	require.Nil(t, json.Unmarshal([]byte(`{"data": {"key": {}}}`), &dto))

	assert.Equal(t, "", dto.Text())
	assert.False(t, dto.IsProcessable())

	ok, errs := dto.Validate()
	assert.False(t, ok)
	assert.Contains(t, errs, "data.key.remoteJid")
}
