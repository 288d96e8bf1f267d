// Package llm wraps the hosted generative backends behind one interface.
// Consumers (the RAG, web-search, and direct providers) depend on Chatter
// instead of a concrete client.
package llm

import (
	"context"
	"errors"
)

// Chatter sends a prompt to the given model and returns the completion text.
type Chatter interface {
	Chat(ctx context.Context, model string, prompt string) (string, error)
}

// Permanent failure classes. Backends surface these unwrapped-checkable via
// errors.Is so callers can distinguish them from transient conditions, which
// the backends retry internally before giving up.
var (
	ErrUnauthorized  = errors.New("backend rejected credentials")
	ErrModelNotFound = errors.New("model not available")
	ErrQuotaExceeded = errors.New("backend quota exceeded")
	ErrRateLimited   = errors.New("rate limited")
)
