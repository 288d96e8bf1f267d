package provider

import (
	"context"
	"fmt"

	"github.com/plywoodstudio/faqbot/internal/knowledge"
)

// Knowledge answers from the static curated corpus with no model call.
// It sits after the generative providers so grounded model answers win
// when a backend is available, and still serves useful product facts
// fully offline.
type Knowledge struct{}

func NewKnowledge() *Knowledge { return &Knowledge{} }

func (k *Knowledge) Name() string { return "knowledge" }

func (k *Knowledge) Eligible(question string) bool { return true }

func (k *Knowledge) Answer(ctx context.Context, question string) (string, error) {
	answer := knowledge.Lookup(question)
	if answer == "" {
		return "", fmt.Errorf("%w: no topic match", ErrNoAnswer)
	}
	return answer, nil
}
