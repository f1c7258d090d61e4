package llm

import (
	"context"
	"errors"
)

// Client is a chat-completion backend. A single shared instance is built at
// startup and passed into the enricher.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyCompletion is returned when the model responds without content.
var ErrEmptyCompletion = errors.New("empty completion")
