package reranking

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/plywoodstudio/faqbot/internal/llm"
	"github.com/plywoodstudio/faqbot/internal/retrieval"
)

const defaultConcurrency = 3

// Reranker re-scores retrieved documents by question relevance.
type Reranker interface {
	Rerank(ctx context.Context, question string, docs []retrieval.ScoredDoc) ([]retrieval.ScoredDoc, error)
}

// New returns an LLMReranker if enabled and a backend is available,
// NoOpReranker otherwise.
func New(chatter llm.Chatter, model string, enabled bool, timeout time.Duration, threshold float32) Reranker {
	if !enabled || chatter == nil {
		return &NoOpReranker{}
	}
	return &LLMReranker{
		chatter:   chatter,
		model:     model,
		timeout:   timeout,
		threshold: threshold,
	}
}

// LLMReranker asks the generative backend to score each (question, document)
// pair. Scoring runs concurrently, bounded to defaultConcurrency requests.
// Documents below the threshold are dropped and the rest are sorted by the
// new score descending.
type LLMReranker struct {
	chatter   llm.Chatter
	model     string
	timeout   time.Duration
	threshold float32
}

// Rerank scores each document against the question. If the timeout fires
// before scoring completes, the lexical order is returned unchanged.
func (r *LLMReranker) Rerank(ctx context.Context, question string, docs []retrieval.ScoredDoc) ([]retrieval.ScoredDoc, error) {
	if len(docs) == 0 {
		return docs, nil
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// Buffered so goroutines never block on send after the collector stops.
	results := make(chan retrieval.ScoredDoc, len(docs))
	sem := make(chan struct{}, defaultConcurrency)

	var wg sync.WaitGroup
	for _, d := range docs {
		wg.Add(1)
		go func(doc retrieval.ScoredDoc) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-timeoutCtx.Done():
				return
			}
			defer func() { <-sem }()

			score, err := r.scoreDoc(timeoutCtx, question, doc)
			if err != nil {
				if timeoutCtx.Err() != nil {
					return
				}
				slog.Debug("reranker score failed, retaining lexical score", "doc", doc.Doc.ID, "error", err)
				results <- doc
				return
			}
			doc.Score = score
			results <- doc
		}(d)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	scored := make([]retrieval.ScoredDoc, 0, len(docs))
collect:
	for {
		select {
		case d, ok := <-results:
			if !ok {
				break collect
			}
			scored = append(scored, d)
		case <-timeoutCtx.Done():
			// Too slow: fall back to the lexical ranking.
			return docs, nil
		}
	}

	if len(scored) == 0 {
		return docs, nil
	}

	filtered := make([]retrieval.ScoredDoc, 0, len(scored))
	for _, d := range scored {
		if d.Score >= r.threshold {
			filtered = append(filtered, d)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Score > filtered[j].Score
	})

	return filtered, nil
}

func (r *LLMReranker) scoreDoc(ctx context.Context, question string, doc retrieval.ScoredDoc) (float32, error) {
	prompt := "Rate the relevance of the following document to the customer question on a scale of 0.0 to 1.0.\n" +
		"Question: " + question + "\n" +
		"Document: " + doc.Doc.Title + "\n" + doc.Doc.Content + "\n" +
		`Respond with only a JSON object: {"score": <float>}`

	resp, err := r.chatter.Chat(ctx, r.model, prompt)
	if err != nil {
		return doc.Score, err
	}

	score, parseErr := parseScore(resp)
	if parseErr != nil {
		slog.Debug("reranker parse failed, using lexical score", "resp", resp, "error", parseErr)
		return doc.Score, nil
	}
	return score, nil
}

// parseScore extracts a relevance score from a model response. Models often
// wrap the JSON in markdown code fences or prepend filler text, so the parser
// strips fences and slices from the first { to the last } before decoding.
func parseScore(resp string) (float32, error) {
	s := strings.TrimSpace(resp)

	if idx := strings.Index(s, "```"); idx != -1 {
		s = s[idx+3:]
		if strings.HasPrefix(s, "json") {
			s = s[4:]
		}
		if end := strings.Index(s, "```"); end != -1 {
			s = s[:end]
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return 0, fmt.Errorf("no JSON object in response")
	}

	var obj struct {
		Score float32 `json:"score"`
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), &obj); err != nil {
		return 0, fmt.Errorf("unmarshal score: %w", err)
	}
	return obj.Score, nil
}

// NoOpReranker passes documents through unchanged.
type NoOpReranker struct{}

func (n *NoOpReranker) Rerank(_ context.Context, _ string, docs []retrieval.ScoredDoc) ([]retrieval.ScoredDoc, error) {
	return docs, nil
}
