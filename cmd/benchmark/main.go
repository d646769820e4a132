// Command benchmark measures GROWI API latency from the configured
// environment. It exercises the same client the MCP server uses, so the
// numbers reflect what tool calls will see.
//
// Usage:
//
//	GROWI_DOMAIN=... GROWI_API_TOKEN=... go run ./cmd/benchmark -path / -n 5
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aoyamat/growi-mcp-server/growi"
	"github.com/joho/godotenv"
)

func main() {
	path := flag.String("path", "/", "Page path to read and list")
	query := flag.String("query", "", "Optional search query to benchmark")
	n := flag.Int("n", 5, "Iterations per operation")
	flag.Parse()

	_ = godotenv.Load()

	config, err := growi.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := growi.NewClient(config, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()

	fmt.Printf("=== GROWI API Benchmark (%s, API %s) ===\n\n", config.Domain, client.APIVersion())

	measure("read_page", *n, func() error {
		_, err := client.ReadPage(ctx, growi.ReadPageArgs{PathOrID: *path})
		return err
	})

	measure("get_page_list", *n, func() error {
		_, err := client.GetPageList(ctx, growi.PageListArgs{PathOrID: *path})
		return err
	})

	if *query != "" {
		measure("search_pages", *n, func() error {
			_, err := client.SearchPages(ctx, growi.SearchPagesArgs{Query: *query})
			return err
		})
	}
}

// measure runs op n times and prints min/avg/max wall time.
func measure(name string, n int, op func() error) {
	var total, min, max time.Duration
	for i := 0; i < n; i++ {
		start := time.Now()
		if err := op(); err != nil {
			fmt.Printf("%-15s error: %v\n", name, err)
			return
		}
		d := time.Since(start)
		total += d
		if min == 0 || d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	fmt.Printf("%-15s n=%d min=%v avg=%v max=%v\n", name, n, min, total/time.Duration(n), max)
}
