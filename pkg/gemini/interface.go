package gemini

import "context"

type Client interface {
	// GenerateJSON sends a single-turn prompt and returns the model's text,
	// which the model is instructed to emit as a JSON document.
	GenerateJSON(ctx context.Context, prompt string) ([]byte, error)
}
