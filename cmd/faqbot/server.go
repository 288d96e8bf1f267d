package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/plywoodstudio/faqbot/internal/api"
	"github.com/plywoodstudio/faqbot/internal/cache"
	"github.com/plywoodstudio/faqbot/internal/composer"
	"github.com/plywoodstudio/faqbot/internal/config"
	"github.com/plywoodstudio/faqbot/internal/gate"
	"github.com/plywoodstudio/faqbot/internal/llm"
	"github.com/plywoodstudio/faqbot/internal/pipeline"
	"github.com/plywoodstudio/faqbot/internal/provider"
	"github.com/plywoodstudio/faqbot/internal/reranking"
	"github.com/plywoodstudio/faqbot/internal/retrieval"
	"github.com/plywoodstudio/faqbot/internal/router"
	"github.com/plywoodstudio/faqbot/internal/search"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the faqbot server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "faqbot version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open and seed the knowledge corpus.
	store, err := retrieval.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening corpus store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing corpus store: %v\n", err)
		}
	}()
	if err := store.Seed(ctx); err != nil {
		return fmt.Errorf("seeding corpus: %w", err)
	}

	pipe, retriever := buildPipeline(cfg, store)

	handler := api.NewChatHandler(api.ChatDeps{
		Asker:      pipe,
		Store:      store,
		AdminToken: cfg.Server.AdminToken,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// MCP server over stdio.
	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Asker:     pipe,
		Retriever: retriever,
	})
	stdioSrv := server.NewStdioServer(mcpSrv)
	go func() {
		if err := stdioSrv.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("MCP stdio server error", "error", err)
		}
	}()
	slog.Info("MCP server started (stdio transport)")

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "faqbot listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "shutting down...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildPipeline assembles the provider waterfall from configuration.
// Missing API keys drop the corresponding providers rather than failing,
// so the bot still answers from the corpus and curated replies offline.
func buildPipeline(cfg config.Config, store *retrieval.DocStore) (*pipeline.Pipeline, *retrieval.Retriever) {
	retriever := retrieval.NewRetriever(store)
	comp := composer.New(0)

	openai := llm.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Temperature, cfg.OpenAI.MaxTokens)
	hf := llm.NewHuggingFace(cfg.HuggingFace.APIKey, cfg.HuggingFace.FallbackModel, cfg.OpenAI.Temperature, cfg.OpenAI.MaxTokens)

	var searcher search.Searcher = search.NewDuckDuckGo()
	if serper := search.NewSerper(cfg.Search.SerperAPIKey); serper != nil {
		searcher = search.NewChain(serper, searcher)
	}

	// Generative chatter used by the grounded providers. nil disables them.
	var chatter llm.Chatter
	if openai != nil {
		chatter = openai
	}
	model := cfg.OpenAI.Model

	reranker := reranking.New(chatter, model, cfg.Pipeline.Rerank, cfg.Pipeline.ProviderTimeout/2, 0.3)

	var providers []provider.Provider
	if cfg.HuggingFace.Primary && hf != nil {
		providers = append(providers, provider.NewDirect("hf-direct", comp, hf, cfg.HuggingFace.Model))
	}
	providers = append(providers,
		provider.NewRAG(retriever, reranker, comp, chatter, model, cfg.Pipeline.TopK),
		provider.NewWebSearch(searcher, comp, chatter, model),
		provider.NewDirect("direct", comp, chatter, model),
		provider.NewKnowledge(),
		provider.NewCurated(),
	)

	answerCache := cache.New(cfg.Cache.RedisURL)
	route := router.New(providers, cfg.Pipeline.ProviderTimeout)
	pipe := pipeline.New(gate.New(), answerCache, route, cfg.Cache.TTL)

	return pipe, retriever
}
