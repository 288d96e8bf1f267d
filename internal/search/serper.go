package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const serperEndpoint = "https://google.serper.dev/search"

// Serper queries the serper.dev Google search API.
type Serper struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewSerper returns nil when no API key is configured so callers can
// fall through to another backend.
func NewSerper(apiKey string) *Serper {
	if apiKey == "" {
		return nil
	}

	return &Serper{
		apiKey:   apiKey,
		endpoint: serperEndpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// NewSerperWithEndpoint is used by tests to point at a local server.
func NewSerperWithEndpoint(apiKey, endpoint string) *Serper {
	s := NewSerper(apiKey)
	if s != nil {
		s.endpoint = endpoint
	}
	return s
}

type serperRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num,omitempty"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic"`
	AnswerBox struct {
		Answer  string `json:"answer"`
		Snippet string `json:"snippet"`
		Title   string `json:"title"`
	} `json:"answerBox"`
}

func (s *Serper) Search(ctx context.Context, query string, limit int) ([]Snippet, error) {
	body, err := json.Marshal(serperRequest{Query: query, Num: limit})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("serper returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode serper response: %w", err)
	}

	var snippets []Snippet
	if answer := parsed.AnswerBox.Answer; answer != "" || parsed.AnswerBox.Snippet != "" {
		text := answer
		if text == "" {
			text = parsed.AnswerBox.Snippet
		}
		snippets = append(snippets, Snippet{
			Title:  parsed.AnswerBox.Title,
			Text:   stripHTML(text),
			Source: "answer box",
		})
	}
	for _, r := range parsed.Organic {
		if len(snippets) >= limit {
			break
		}
		if r.Snippet == "" {
			continue
		}
		snippets = append(snippets, Snippet{
			Title:  r.Title,
			Text:   stripHTML(r.Snippet),
			Source: r.Link,
		})
	}

	slog.Debug("serper search complete", "query", query, "results", len(snippets))
	return snippets, nil
}
