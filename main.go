// GROWI MCP Server - A Model Context Protocol server for GROWI wikis
// Provides tools for reading, editing, searching and attaching files to pages
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aoyamat/growi-mcp-server/growi"
	"github.com/aoyamat/growi-mcp-server/tools"
	"github.com/aoyamat/growi-mcp-server/tracing"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ServerName    = "growi-mcp-server"
	ServerVersion = "1.0.0"
)

func main() {
	// Optional .env file for local development
	_ = godotenv.Load()

	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Load configuration from environment
	config, err := growi.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up tracing
	ctx := context.Background()
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	// Create GROWI client
	client, err := growi.NewClient(config, logger)
	if err != nil {
		log.Fatalf("Failed to create GROWI client: %v", err)
	}

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger: logger,
		Instructions: `GROWI MCP Server provides tools for interacting with a GROWI wiki.

Available tools:
- growi_get_page_list: List pages under a path with pagination
- growi_read_page: Read a page's full markdown body
- growi_create_page: Create a new page (path must be free)
- growi_update_page: Replace an existing page's body
- growi_rename_page: Move a page to a new path (API v3)
- growi_remove_page: Delete a page (recursive delete is opt-in)
- growi_search_pages: Full-text search, optionally under a subtree
- growi_get_user_names: Look up usernames (API v3)
- growi_register_user: Create a new wiki user account
- growi_upload_attachment: Upload a local file to a page
- growi_attachment_list: List a page's attachments
- growi_get_attachment_info: Get one attachment's metadata (API v3)
- growi_download_attachment: Save an attachment to a local file (API v3)
- growi_remove_attachment: Delete an attachment

Pages are addressed by path (starting with "/") or by opaque id.

Configure via environment variables:
- GROWI_DOMAIN: Wiki base URL (e.g., https://wiki.example.com)
- GROWI_API_TOKEN: API access token
- GROWI_API_VERSION: "1" or "3" (default "3")
- GROWI_CONNECT_SID: Session cookie for binary downloads (optional)`,
	})

	// Register all tools
	tools.NewHandlerRegistry(client, logger).RegisterAll(server)

	// Optional Prometheus endpoint; the MCP transport itself is stdio
	if addr := os.Getenv("GROWI_MCP_METRICS_ADDR"); addr != "" {
		go serveMetrics(addr, logger)
	}

	logger.Info("Starting GROWI MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"domain", config.Domain,
		"api_version", client.APIVersion(),
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// serveMetrics exposes /metrics and /healthz on the given address.
func serveMetrics(addr string, logger *slog.Logger) {
	logger.Info("Serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, metricsMux()); err != nil {
		logger.Error("Metrics server failed", "error", err)
	}
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
