package llm

import (
	"context"
)

// Client is an interface for invoking LLM models across providers.
// This allows mocking in tests without making real API calls.
type Client interface {
	Complete(ctx context.Context, request Request) (*Response, error)
}
