// Package composer assembles LLM prompts from the question, retrieved
// product knowledge, and web search snippets.
package composer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plywoodstudio/faqbot/internal/retrieval"
	"github.com/plywoodstudio/faqbot/internal/search"
)

const defaultMaxContextTokens = 3000

const answerInstructions = `Answer the customer's question using the context above. Keep the answer concise and factual. If the context does not cover the question, say you will check with the team and suggest visiting the showroom. For pricing, invite the customer to contact the store for current wholesale rates. Do not invent product specifications.`

// Composer builds grounded prompts within a context token budget.
type Composer struct {
	MaxContextTokens int
}

// New creates a Composer with the given token budget for injected context.
// If maxContextTokens <= 0, the default (3000) is used.
func New(maxContextTokens int) *Composer {
	if maxContextTokens <= 0 {
		maxContextTokens = defaultMaxContextTokens
	}
	return &Composer{MaxContextTokens: maxContextTokens}
}

// ComposeRAG builds a prompt grounded in retrieved knowledge documents.
// Documents are injected highest score first until the budget runs out.
func (c *Composer) ComposeRAG(question string, docs []retrieval.ScoredDoc) string {
	sorted := make([]retrieval.ScoredDoc, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	var sb strings.Builder
	sb.WriteString("[Product Knowledge]\n")

	remaining := c.MaxContextTokens - EstimateTokens(sb.String())
	var included int
	for _, d := range sorted {
		entry := fmt.Sprintf("## %s\n%s\n\n", d.Doc.Title, d.Doc.Content)
		tokens := EstimateTokens(entry)
		if tokens > remaining {
			continue
		}
		sb.WriteString(entry)
		remaining -= tokens
		included++
	}
	if included == 0 {
		sb.WriteString("(no matching documents)\n\n")
	}

	writeQuestion(&sb, question)
	return sb.String()
}

// ComposeSearch builds a prompt grounded in web search snippets.
func (c *Composer) ComposeSearch(question string, snippets []search.Snippet) string {
	var sb strings.Builder
	sb.WriteString("[Web Search Results]\n")

	remaining := c.MaxContextTokens - EstimateTokens(sb.String())
	for _, s := range snippets {
		entry := formatSnippet(s)
		tokens := EstimateTokens(entry)
		if tokens > remaining {
			continue
		}
		sb.WriteString(entry)
		remaining -= tokens
	}

	writeQuestion(&sb, question)
	return sb.String()
}

// ComposeDirect builds an ungrounded prompt carrying only the business
// summary, used when neither retrieval nor search produced context.
func (c *Composer) ComposeDirect(question, businessSummary string) string {
	var sb strings.Builder
	if businessSummary != "" {
		sb.WriteString("[Business]\n")
		sb.WriteString(businessSummary)
		sb.WriteString("\n\n")
	}
	writeQuestion(&sb, question)
	return sb.String()
}

func writeQuestion(sb *strings.Builder, question string) {
	sb.WriteString("[Customer Question]\n")
	sb.WriteString(strings.TrimSpace(question))
	sb.WriteString("\n\n")
	sb.WriteString(answerInstructions)
}

func formatSnippet(s search.Snippet) string {
	var sb strings.Builder
	if s.Title != "" {
		sb.WriteString("## ")
		sb.WriteString(s.Title)
		sb.WriteString("\n")
	}
	sb.WriteString(s.Text)
	if s.Source != "" {
		sb.WriteString("\n(")
		sb.WriteString(s.Source)
		sb.WriteString(")")
	}
	sb.WriteString("\n\n")
	return sb.String()
}

// EstimateTokens provides a rough token count using 4 chars per token heuristic.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}
