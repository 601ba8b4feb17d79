package models

import (
	"time"

	"github.com/google/uuid"
)

// Interaction is one processed inbound message and the reply sent back.
type Interaction struct {
	ID        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Action    Action    `json:"action"`
	Target    Target    `json:"target"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"createdAt"`
}
