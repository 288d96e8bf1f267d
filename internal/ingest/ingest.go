// Package ingest loads price lists and product sheets into the corpus
// so the retriever can answer from them.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/plywoodstudio/faqbot/internal/retrieval"
)

// Chunks shorter than this are merged into the next one; anything
// shorter after merging is dropped as noise.
const minChunkLen = 80

// maxChunkLen keeps a single chunk within the composer's context budget.
const maxChunkLen = 2000

// Ingestor extracts text from files and stores it as knowledge docs.
type Ingestor struct {
	store *retrieval.DocStore
}

func New(store *retrieval.DocStore) *Ingestor {
	return &Ingestor{store: store}
}

// IngestFile extracts, chunks, and stores one file. PDF files go through
// the PDF text extractor, everything else is read as plain text. docType
// and title override the defaults ("ingested" and the file name) when
// non-empty. Returns the number of documents stored.
func (i *Ingestor) IngestFile(ctx context.Context, path, docType, title string) (int, error) {
	var (
		text string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = extractPDF(path)
	} else {
		text, err = readText(path)
	}
	if err != nil {
		return 0, err
	}

	chunks := chunkText(text)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no usable text in %s", path)
	}

	name := filepath.Base(path)
	if docType == "" {
		docType = "ingested"
	}
	if title == "" {
		title = name
	}
	now := time.Now().UTC()
	docs := make([]retrieval.Doc, len(chunks))
	for n, chunk := range chunks {
		docs[n] = retrieval.Doc{
			ID:        uuid.New().String(),
			Type:      docType,
			Title:     fmt.Sprintf("%s (part %d)", title, n+1),
			Content:   chunk,
			Source:    name,
			CreatedAt: now,
		}
	}

	if err := i.store.Insert(ctx, docs); err != nil {
		return 0, fmt.Errorf("storing chunks: %w", err)
	}

	slog.Info("file ingested", "file", name, "chunks", len(docs))
	return len(docs), nil
}

func readText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}

func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return buf.String(), nil
}

// chunkText splits text on blank lines, merging short paragraphs forward
// and splitting oversized ones so every chunk lands between minChunkLen
// and maxChunkLen.
func chunkText(text string) []string {
	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var current strings.Builder
	flush := func() {
		chunk := strings.TrimSpace(current.String())
		current.Reset()
		if len(chunk) >= minChunkLen {
			chunks = append(chunks, chunk)
		}
	}

	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		for len(p) > maxChunkLen {
			flush()
			cut := strings.LastIndex(p[:maxChunkLen], " ")
			if cut <= 0 {
				cut = maxChunkLen
			}
			chunks = append(chunks, strings.TrimSpace(p[:cut]))
			p = strings.TrimSpace(p[cut:])
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
		if current.Len() >= minChunkLen {
			flush()
		}
	}
	flush()

	return chunks
}
