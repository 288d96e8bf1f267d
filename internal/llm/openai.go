package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/plywoodstudio/faqbot/internal/knowledge"
)

const (
	openaiMaxRetries     = 3
	openaiInitialBackoff = 2 * time.Second
)

// OpenAI is a Chatter backed by the OpenAI chat completions API.
type OpenAI struct {
	client      *openai.Client
	temperature float32
	maxTokens   int
	backoff     time.Duration
}

// NewOpenAI creates an OpenAI backend. Returns nil when no API key is
// configured, which callers treat as "backend unavailable".
func NewOpenAI(apiKey string, temperature float32, maxTokens int) *OpenAI {
	if apiKey == "" {
		return nil
	}
	return &OpenAI{
		client:      openai.NewClient(apiKey),
		temperature: temperature,
		maxTokens:   maxTokens,
		backoff:     openaiInitialBackoff,
	}
}

// Chat sends the prompt with the business persona as system message.
// Rate-limit responses are retried with escalating backoff up to a small
// cap; authentication and not-found failures are permanent and returned
// immediately.
func (c *OpenAI) Chat(ctx context.Context, model, prompt string) (string, error) {
	var lastErr error
	for attempt := range openaiMaxRetries {
		text, err := c.chatOnce(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, ErrRateLimited) {
			return "", err
		}

		lastErr = err
		if attempt < openaiMaxRetries-1 {
			wait := time.Duration(float64(c.backoff) * math.Pow(2, float64(attempt)))
			slog.Warn("openai rate limited, backing off", "wait", wait, "attempt", attempt+1)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	return "", fmt.Errorf("rate limited after %d attempts: %w", openaiMaxRetries, lastErr)
}

func (c *OpenAI) chatOnce(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: knowledge.Persona},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	slog.Debug("openai response",
		"model", model,
		"chars", len(answer),
		"total_tokens", resp.Usage.TotalTokens,
	)
	return answer, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("openai: %w", ErrUnauthorized)
		case http.StatusNotFound:
			return fmt.Errorf("openai: %w", ErrModelNotFound)
		case http.StatusTooManyRequests:
			// OpenAI reports exhausted quota with the same status code.
			if strings.Contains(strings.ToLower(apiErr.Message), "quota") {
				return fmt.Errorf("openai: %w", ErrQuotaExceeded)
			}
			return fmt.Errorf("openai: %w", ErrRateLimited)
		}
	}
	return fmt.Errorf("openai call failed: %w", err)
}
