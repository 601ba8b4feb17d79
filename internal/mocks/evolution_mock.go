//nolint:exhaustruct,revive //ignore
package mocks

import (
	"context"
	"sync"

	"wppcal/pkg/evolution"
)

type SentMessage struct {
	Number string
	Text   string
}

type MockEvolutionClient struct {
	mu   sync.Mutex
	sent []SentMessage
	Err  error
}

func NewMockEvolutionClient() *MockEvolutionClient {
	return &MockEvolutionClient{}
}

func (client *MockEvolutionClient) SendText(
	ctx context.Context,
	number string,
	text string,
) (*evolution.SendTextResponse, error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.Err != nil {
		return nil, client.Err
	}

	client.sent = append(client.sent, SentMessage{Number: number, Text: text})
	return &evolution.SendTextResponse{Status: "PENDING"}, nil
}

func (client *MockEvolutionClient) Sent() []SentMessage {
	client.mu.Lock()
	defer client.mu.Unlock()

	return append([]SentMessage{}, client.sent...)
}
