package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/plywoodstudio/faqbot/internal/knowledge"
	"github.com/plywoodstudio/faqbot/internal/retrieval"
)

// MCPRetriever abstracts corpus search for the MCP layer.
type MCPRetriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]retrieval.ScoredDoc, error)
}

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Asker     Asker
	Retriever MCPRetriever
}

// NewMCPServer exposes the chatbot to MCP clients: an ask tool running
// the full answer pipeline, a product search tool over the corpus, and
// the business profile as a resource.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"plywood-faqbot",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("Plywood Studio FAQ assistant: product, brand, and store questions for a Hyderabad plywood wholesaler."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("ask",
			mcp.WithDescription("Ask the Plywood Studio assistant a question about products, brands, or the store."),
			mcp.WithString("question", mcp.Description("The customer question"), mcp.Required()),
		),
		mcpAsk(deps),
	)

	s.AddTool(
		mcp.NewTool("search_products",
			mcp.WithDescription("Search the product knowledge corpus and return matching documents."),
			mcp.WithString("query", mcp.Description("Search query"), mcp.Required()),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 5)")),
		),
		mcpSearchProducts(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"business://info",
			"Business Information",
			mcp.WithResourceDescription("Plywood Studio company profile as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceBusiness(),
	)

	return s
}

func mcpAsk(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := req.RequireString("question")
		if err != nil {
			return mcpError("question is required"), nil
		}

		answer, err := deps.Asker.Ask(ctx, question, "mcp")
		if err != nil {
			return mcpError(fmt.Sprintf("ask failed: %v", err)), nil
		}

		return mcpText(answer.Text), nil
	}
}

func mcpSearchProducts(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcpError("query is required"), nil
		}

		limit := req.GetInt("limit", 5)
		if limit <= 0 {
			limit = 5
		}
		if limit > 20 {
			limit = 20
		}

		docs, err := deps.Retriever.Retrieve(ctx, query, limit)
		if err != nil {
			return mcpError(fmt.Sprintf("search failed: %v", err)), nil
		}
		if len(docs) == 0 {
			return mcpText("[]"), nil
		}

		type docResult struct {
			ID      string  `json:"id"`
			Type    string  `json:"type"`
			Title   string  `json:"title"`
			Content string  `json:"content"`
			Score   float32 `json:"score"`
		}

		results := make([]docResult, len(docs))
		for i, d := range docs {
			results[i] = docResult{
				ID:      d.Doc.ID,
				Type:    d.Doc.Type,
				Title:   d.Doc.Title,
				Content: d.Doc.Content,
				Score:   d.Score,
			}
		}

		b, err := json.Marshal(results)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}

		return mcpText(string(b)), nil
	}
}

func mcpResourceBusiness() server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(knowledge.DefaultProfile())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal business profile: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
