package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plywoodstudio/faqbot/internal/composer"
	"github.com/plywoodstudio/faqbot/internal/llm"
	"github.com/plywoodstudio/faqbot/internal/reranking"
	"github.com/plywoodstudio/faqbot/internal/retrieval"
)

// RAG answers with a generative backend grounded in retrieved knowledge
// documents.
type RAG struct {
	retriever *retrieval.Retriever
	reranker  reranking.Reranker
	composer  *composer.Composer
	chatter   llm.Chatter
	model     string
	topK      int
}

func NewRAG(retriever *retrieval.Retriever, reranker reranking.Reranker, comp *composer.Composer, chatter llm.Chatter, model string, topK int) *RAG {
	if reranker == nil {
		reranker = &reranking.NoOpReranker{}
	}
	return &RAG{
		retriever: retriever,
		reranker:  reranker,
		composer:  comp,
		chatter:   chatter,
		model:     model,
		topK:      topK,
	}
}

func (r *RAG) Name() string { return "rag" }

func (r *RAG) Eligible(question string) bool {
	return r.chatter != nil
}

func (r *RAG) Answer(ctx context.Context, question string) (string, error) {
	docs, err := r.retriever.Retrieve(ctx, question, r.topK)
	if err != nil {
		return "", fmt.Errorf("retrieving context: %w", err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("%w: no matching documents", ErrNoAnswer)
	}

	docs, err = r.reranker.Rerank(ctx, question, docs)
	if err != nil {
		return "", fmt.Errorf("reranking context: %w", err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("%w: all documents filtered by reranker", ErrNoAnswer)
	}

	prompt := r.composer.ComposeRAG(question, docs)
	answer, err := r.chatter.Chat(ctx, r.model, prompt)
	if err != nil {
		return "", fmt.Errorf("rag generation: %w", err)
	}
	if !acceptable(answer) {
		slog.Debug("rag answer rejected by quality check", "length", len(answer))
		return "", fmt.Errorf("%w: answer failed quality check", ErrNoAnswer)
	}
	return answer, nil
}
