package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/arturpietrzak/customer-service-llm/internal/mcpadapter"
	"github.com/arturpietrzak/customer-service-llm/internal/products"
	"github.com/arturpietrzak/customer-service-llm/internal/setup/logger"
)

var mcpCatalogPath string

// mcpCmd exposes the product catalog over MCP stdio, so external agents can
// search the same database the benchmarked models use.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the product catalog as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New(logLevel)
		ctx := cmd.Context()

		catalog, err := products.LoadStore(mcpCatalogPath)
		if err != nil {
			return fmt.Errorf("failed to load product catalog: %w", err)
		}

		server := mcp.NewServer(
			&mcp.Implementation{
				Name:    "customer-service-llm",
				Version: "1.0.0",
			}, nil,
		)

		mcp.AddTool(server, &mcp.Tool{
			Name:        "search_products",
			Description: "Search products by name, category, producer, and price with sorting options",
		}, mcpadapter.NewSearchHandler(catalog))

		mcp.AddTool(server, &mcp.Tool{
			Name:        "get_categories",
			Description: "List all available product categories and producers",
		}, mcpadapter.NewCategoriesHandler(catalog))

		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
			// EOF / "server is closing" is expected when stdin closes
			if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
				log.Debug().Err(err).Msg("MCP server stopped")
				return nil
			}
			return err
		}
		return nil
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpCatalogPath, "catalog", "configs/products.json", "path to the product catalog")
	rootCmd.AddCommand(mcpCmd)
}
