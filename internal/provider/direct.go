package provider

import (
	"context"
	"fmt"

	"github.com/plywoodstudio/faqbot/internal/composer"
	"github.com/plywoodstudio/faqbot/internal/knowledge"
	"github.com/plywoodstudio/faqbot/internal/llm"
)

// Direct answers with a generative backend and only the business summary
// as context. The name distinguishes the primary model from the
// HuggingFace front-runner when both are configured.
type Direct struct {
	name     string
	composer *composer.Composer
	chatter  llm.Chatter
	model    string
	summary  string
}

func NewDirect(name string, comp *composer.Composer, chatter llm.Chatter, model string) *Direct {
	return &Direct{
		name:     name,
		composer: comp,
		chatter:  chatter,
		model:    model,
		summary:  knowledge.DefaultProfile().Summary(),
	}
}

func (d *Direct) Name() string { return d.name }

func (d *Direct) Eligible(question string) bool {
	return d.chatter != nil
}

func (d *Direct) Answer(ctx context.Context, question string) (string, error) {
	prompt := d.composer.ComposeDirect(question, d.summary)
	answer, err := d.chatter.Chat(ctx, d.model, prompt)
	if err != nil {
		return "", fmt.Errorf("direct generation: %w", err)
	}
	if !acceptable(answer) {
		return "", fmt.Errorf("%w: answer failed quality check", ErrNoAnswer)
	}
	return answer, nil
}
