//nolint:exhaustruct,revive //ignore
package mocks

import (
	"context"
	"strings"
	"sync"
)

// MockGeminiClient answers with the first response whose key is contained
// in the prompt's user message, or "{}".
type MockGeminiClient struct {
	mu        sync.Mutex
	responses map[string]string
	Err       error
	Prompts   []string
}

func NewMockGeminiClient() *MockGeminiClient {
	return &MockGeminiClient{responses: map[string]string{}}
}

func (client *MockGeminiClient) Respond(message string, json string) {
	client.mu.Lock()
	defer client.mu.Unlock()

	client.responses[message] = json
}

func (client *MockGeminiClient) GenerateJSON(
	ctx context.Context,
	prompt string,
) ([]byte, error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	client.Prompts = append(client.Prompts, prompt)
	if client.Err != nil {
		return nil, client.Err
	}

	for message, response := range client.responses {
		if strings.HasSuffix(prompt, "User message: "+message) {
			return []byte(response), nil
		}
	}
	return []byte("{}"), nil
}
