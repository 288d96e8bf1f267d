package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const duckDuckGoEndpoint = "https://api.duckduckgo.com/"

// Keyless results are short and abstract-only, so anything under this
// length is unlikely to answer a product question.
const minInstantAnswerLen = 20

// DuckDuckGo queries the keyless Instant Answer API. It serves as the
// search backend when no Serper key is configured.
type DuckDuckGo struct {
	endpoint string
	client   *http.Client
}

func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		endpoint: duckDuckGoEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NewDuckDuckGoWithEndpoint is used by tests to point at a local server.
func NewDuckDuckGoWithEndpoint(endpoint string) *DuckDuckGo {
	d := NewDuckDuckGo()
	d.endpoint = endpoint
	return d
}

type instantAnswer struct {
	Abstract      string `json:"Abstract"`
	AbstractURL   string `json:"AbstractURL"`
	Heading       string `json:"Heading"`
	Definition    string `json:"Definition"`
	DefinitionURL string `json:"DefinitionURL"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]Snippet, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	q.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	var parsed instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode duckduckgo response: %w", err)
	}

	var snippets []Snippet
	if len(parsed.Abstract) >= minInstantAnswerLen {
		snippets = append(snippets, Snippet{
			Title:  parsed.Heading,
			Text:   stripHTML(parsed.Abstract),
			Source: parsed.AbstractURL,
		})
	}
	if len(parsed.Definition) >= minInstantAnswerLen {
		snippets = append(snippets, Snippet{
			Title:  parsed.Heading,
			Text:   stripHTML(parsed.Definition),
			Source: parsed.DefinitionURL,
		})
	}
	for _, topic := range parsed.RelatedTopics {
		if len(snippets) >= limit {
			break
		}
		if len(topic.Text) < minInstantAnswerLen {
			continue
		}
		snippets = append(snippets, Snippet{
			Text:   stripHTML(topic.Text),
			Source: topic.FirstURL,
		})
	}

	return snippets, nil
}
