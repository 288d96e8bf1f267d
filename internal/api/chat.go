// Package api exposes the chatbot over HTTP and MCP.
package api

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/plywoodstudio/faqbot/internal/knowledge"
	"github.com/plywoodstudio/faqbot/internal/metrics"
	"github.com/plywoodstudio/faqbot/internal/pipeline"
	"github.com/plywoodstudio/faqbot/internal/retrieval"
)

const maxRequestBodySize = 1 << 20 // 1MB

//go:embed ui/index.html
var uiFS embed.FS

// Asker answers chat questions. Satisfied by *pipeline.Pipeline.
type Asker interface {
	Ask(ctx context.Context, question, userID string) (pipeline.Answer, error)
}

// ChatDeps holds dependencies for the HTTP server.
type ChatDeps struct {
	Asker      Asker
	Store      *retrieval.DocStore
	AdminToken string // empty disables the admin ingest route
}

type chatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type chatResponse struct {
	Response       string `json:"response"`
	Source         string `json:"source"`
	Cached         bool   `json:"cached"`
	Timestamp      string `json:"timestamp"`
	ResponseTimeMs int64  `json:"response_time_ms"`
}

// NewChatHandler returns the full HTTP surface: chat, health, business
// info, metrics, the embedded web UI, and the optional admin ingest.
func NewChatHandler(deps ChatDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", handleIndex)
	r.Get("/health", handleHealth)
	r.Post("/chat", handleChat(deps.Asker))
	r.Get("/api/business-info", handleBusinessInfo)
	r.Handle("/metrics", metrics.Handler())

	if deps.AdminToken != "" && deps.Store != nil {
		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(deps.AdminToken))
			r.Post("/api/docs", handleAddDoc(deps.Store))
		})
	}

	return r
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := uiFS.ReadFile("ui/index.html")
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "ui unavailable: %v", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleChat(asker Asker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "message is required")
			return
		}
		if req.UserID == "" {
			req.UserID = "anonymous"
		}

		answer, err := asker.Ask(r.Context(), req.Message, req.UserID)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse{
			Response:       answer.Text,
			Source:         answer.Provider,
			Cached:         answer.Cached,
			Timestamp:      answer.Timestamp.Format(time.RFC3339),
			ResponseTimeMs: answer.Elapsed.Milliseconds(),
		})
	}
}

func handleBusinessInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(knowledge.DefaultProfile())
}

type addDocRequest struct {
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
	Content  string   `json:"content"`
	Source   string   `json:"source"`
}

func handleAddDoc(store *retrieval.DocStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req addDocRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Title == "" || req.Content == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "title and content are required")
			return
		}
		if req.Type == "" {
			req.Type = "text"
		}
		if req.Source == "" {
			req.Source = "api"
		}

		doc := retrieval.Doc{
			ID:       uuid.New().String(),
			Type:     req.Type,
			Title:    req.Title,
			Keywords: req.Keywords,
			Content:  req.Content,
			Source:   req.Source,
		}
		if err := store.Insert(r.Context(), []retrieval.Doc{doc}); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save document: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": doc.ID, "status": "stored"})
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
