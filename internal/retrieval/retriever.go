package retrieval

import (
	"context"
	"sort"
	"strings"
	"unicode"
)

// ScoredDoc is a retrieved document with its relevance score.
type ScoredDoc struct {
	Doc   Doc
	Score float32
}

// Retriever ranks stored documents against a question by keyword overlap.
// Keyword hits weigh more than title hits, which weigh more than body
// hits, so a question naming a product grade surfaces that grade's
// document before generic catalog text.
type Retriever struct {
	store *DocStore
}

func NewRetriever(store *DocStore) *Retriever {
	return &Retriever{store: store}
}

// Retrieve returns the topK highest scoring documents for the query.
// Documents with no term overlap are excluded entirely.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]ScoredDoc, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	docs, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}

	var scored []ScoredDoc
	for _, d := range docs {
		score := scoreDoc(d, terms)
		if score > 0 {
			scored = append(scored, ScoredDoc{Doc: d, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

const (
	keywordWeight = 3
	titleWeight   = 2
	contentWeight = 1
)

func scoreDoc(d Doc, terms []string) float32 {
	keywords := make(map[string]bool, len(d.Keywords))
	for _, k := range d.Keywords {
		for _, t := range tokenize(k) {
			keywords[t] = true
		}
	}
	title := tokenSet(d.Title)
	content := tokenSet(d.Content)

	var score float32
	for _, term := range terms {
		switch {
		case keywords[term]:
			score += keywordWeight
		case title[term]:
			score += titleWeight
		case content[term]:
			score += contentWeight
		}
	}
	return score / float32(len(terms))
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range tokenize(s) {
		set[t] = true
	}
	return set
}

// Common question words that carry no product signal.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "what": true, "which": true,
	"how": true, "you": true, "your": true, "can": true, "does": true,
	"are": true, "have": true, "with": true, "about": true, "much": true,
	"many": true, "this": true, "that": true, "there": true, "should": true,
	"would": true, "need": true, "want": true, "please": true, "tell": true,
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 3 || stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
