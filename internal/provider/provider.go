// Package provider holds the answer backends the router tries in order:
// generative backends grounded in retrieval or web search, the static
// knowledge lookup, and the curated terminal fallback.
package provider

import (
	"context"
	"errors"
	"strings"
)

// ErrNoAnswer signals that a provider ran without failing but produced
// nothing usable, so the router should move on to the next provider.
var ErrNoAnswer = errors.New("provider: no usable answer")

// Provider is a single answer backend.
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string
	// Eligible reports whether the provider should be tried for this
	// question. Ineligible providers are skipped, not counted as failures.
	Eligible(question string) bool
	// Answer produces a reply. A non-nil error means the router falls
	// through to the next provider.
	Answer(ctx context.Context, question string) (string, error)
}

// Generated answers below this length are usually truncated or empty model
// output rather than a real reply.
const minAnswerLen = 50

var refusalPhrases = []string{
	"i cannot",
	"i can't",
	"as an ai",
	"i apologize",
	"i'm unable",
	"i don't know",
}

// acceptable rejects model output that is too short or reads as a refusal.
func acceptable(answer string) bool {
	if len(strings.TrimSpace(answer)) < minAnswerLen {
		return false
	}
	lower := strings.ToLower(answer)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}
