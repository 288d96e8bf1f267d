package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plywoodstudio/faqbot/internal/config"
	"github.com/plywoodstudio/faqbot/internal/ingest"
	"github.com/plywoodstudio/faqbot/internal/retrieval"
)

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the chatbot a question",
	Long: `Ask the chatbot a question from the command line.

Examples:
  faqbot ask "What is the price of marine plywood?"
  faqbot ask where is your showroom located`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		req := map[string]any{
			"message": question,
			"user_id": "cli",
		}
		resp, err := client.post(cmd.Context(), "/chat", req)
		if err != nil {
			return err
		}

		var result struct {
			Response       string `json:"response"`
			Source         string `json:"source"`
			Cached         bool   `json:"cached"`
			ResponseTimeMs int64  `json:"response_time_ms"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		fmt.Println(result.Response)

		meta := fmt.Sprintf("source: %s, %dms", result.Source, result.ResponseTimeMs)
		if result.Cached {
			meta += ", cached"
		}
		fmt.Printf("\n%s\n", colorize(colorCyan, meta))
		return nil
	},
}

// --- ingest ---

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Ingest a document into the knowledge base",
	Long: `Ingest a text or PDF document into the knowledge base.

The file is split into chunks and stored locally. Restart the server
to pick up new documents.

Examples:
  faqbot ingest ./catalog.pdf
  faqbot ingest ./datasheet.pdf --type technical --title "Kitply marine datasheet"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docType, _ := cmd.Flags().GetString("type")
		title, _ := cmd.Flags().GetString("title")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := retrieval.Open(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening document store: %w", err)
		}
		defer store.Close()

		count, err := ingest.New(store).IngestFile(cmd.Context(), args[0], docType, title)
		if err != nil {
			return err
		}

		printSuccess("Ingested %s (%d chunks)", args[0], count)
		return nil
	},
}

func init() {
	ingestCmd.Flags().String("type", "", "document type stored with each chunk")
	ingestCmd.Flags().String("title", "", "title for the document (default: file name)")
}

// --- status ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server and configuration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		printStatus("Server", "port %d", cfg.Server.Port)
		printStatus("Data dir", "%s", cfg.Storage.DataDir)
		printStatus("Model", "%s", cfg.OpenAI.Model)
		if cfg.HuggingFace.APIKey != "" {
			printStatus("HF model", "%s", cfg.HuggingFace.Model)
		}
		if cfg.Cache.RedisURL != "" {
			printStatus("Cache", "redis")
		} else {
			printStatus("Cache", "in-memory")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/health")
		if err != nil {
			printError("Server: not running (%v)", err)
			return nil
		}

		var health map[string]string
		if err := decodeJSON(resp, &health); err != nil {
			return err
		}

		printSuccess("Server: %s", health["status"])
		return nil
	},
}
