//nolint:exhaustruct,revive //ignore
package mocks

import (
	"context"
	"sync"

	"wppcal/internal/models"
)

type MockInteractionLog struct {
	mu      sync.Mutex
	records []models.Interaction
	Err     error
}

func NewMockInteractionLog() *MockInteractionLog {
	return &MockInteractionLog{}
}

func (log *MockInteractionLog) Record(
	ctx context.Context,
	interaction models.Interaction,
) error {
	log.mu.Lock()
	defer log.mu.Unlock()

	if log.Err != nil {
		return log.Err
	}
	log.records = append(log.records, interaction)
	return nil
}

func (log *MockInteractionLog) Records() []models.Interaction {
	log.mu.Lock()
	defer log.mu.Unlock()

	return append([]models.Interaction{}, log.records...)
}
