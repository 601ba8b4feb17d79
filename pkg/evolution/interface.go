package evolution

import "context"

type Client interface {
	SendText(ctx context.Context, number string, text string) (*SendTextResponse, error)
}
