package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	hfDefaultBaseURL = "https://api-inference.huggingface.co"
	hfTimeout        = 30 * time.Second
	hfMaxRetries     = 3
	hfLoadingBackoff = 5 * time.Second
)

// HuggingFace is a Chatter backed by the Hugging Face Inference API (the
// OpenAI-compatible chat completions surface). Cold models report 503 while
// loading; those and 429s are retried with escalating backoff. A configured
// fallback model is tried once when the primary model fails for any
// non-credential reason.
type HuggingFace struct {
	apiKey        string
	baseURL       string
	fallbackModel string
	temperature   float32
	maxTokens     int
	backoff       time.Duration
	httpClient    *http.Client
}

// NewHuggingFace creates a Hugging Face backend. Returns nil when no API key
// is configured.
func NewHuggingFace(apiKey, fallbackModel string, temperature float32, maxTokens int) *HuggingFace {
	if apiKey == "" {
		return nil
	}
	return &HuggingFace{
		apiKey:        apiKey,
		baseURL:       hfDefaultBaseURL,
		fallbackModel: fallbackModel,
		temperature:   temperature,
		maxTokens:     maxTokens,
		backoff:       hfLoadingBackoff,
		httpClient:    &http.Client{Timeout: hfTimeout},
	}
}

// NewHuggingFaceWithBaseURL points the client at a custom base URL (for testing).
func NewHuggingFaceWithBaseURL(apiKey, fallbackModel, baseURL string, temperature float32, maxTokens int) *HuggingFace {
	c := NewHuggingFace(apiKey, fallbackModel, temperature, maxTokens)
	if c != nil {
		c.baseURL = strings.TrimRight(baseURL, "/")
		c.backoff = 10 * time.Millisecond
	}
	return c
}

type hfChatRequest struct {
	Model       string      `json:"model"`
	Messages    []hfMessage `json:"messages"`
	Temperature float32     `json:"temperature"`
	MaxTokens   int         `json:"max_tokens"`
	TopP        float32     `json:"top_p"`
}

type hfMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type hfChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat calls the primary model, retrying transient conditions, then falls
// back to the configured fallback model before giving up.
func (c *HuggingFace) Chat(ctx context.Context, model, prompt string) (string, error) {
	text, err := c.tryModel(ctx, model, prompt)
	if err == nil {
		return text, nil
	}
	if isPermanentCredential(err) || c.fallbackModel == "" || c.fallbackModel == model {
		return "", err
	}

	slog.Warn("primary model failed, trying fallback",
		"model", model, "fallback", c.fallbackModel, "error", err)
	return c.tryModel(ctx, c.fallbackModel, prompt)
}

func (c *HuggingFace) tryModel(ctx context.Context, model, prompt string) (string, error) {
	var lastErr error
	for attempt := range hfMaxRetries {
		text, err := c.chatOnce(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		if !isTransient(err) {
			return "", err
		}

		lastErr = err
		if attempt < hfMaxRetries-1 {
			wait := c.backoff * time.Duration(attempt+1)
			slog.Info("transient backend condition, retrying",
				"model", model, "wait", wait, "attempt", attempt+1, "error", err)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	return "", fmt.Errorf("model %s failed after %d attempts: %w", model, hfMaxRetries, lastErr)
}

// modelLoadingError marks the 503 returned while a cold model spins up.
type modelLoadingError struct {
	model string
}

func (e *modelLoadingError) Error() string {
	return fmt.Sprintf("model %s is loading", e.model)
}

func isTransient(err error) bool {
	var loading *modelLoadingError
	return errors.As(err, &loading) || errors.Is(err, ErrRateLimited)
}

func isPermanentCredential(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func (c *HuggingFace) chatOnce(ctx context.Context, model, prompt string) (string, error) {
	body, err := json.Marshal(hfChatRequest{
		Model:       model,
		Messages:    []hfMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		TopP:        0.9,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s/v1/chat/completions", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return "", fmt.Errorf("huggingface: %w", ErrUnauthorized)
	case http.StatusNotFound:
		return "", fmt.Errorf("huggingface model %s: %w", model, ErrModelNotFound)
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("huggingface rate limited: %w", ErrRateLimited)
	case http.StatusServiceUnavailable:
		return "", &modelLoadingError{model: model}
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed hfChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("huggingface returned no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
