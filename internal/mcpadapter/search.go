// Package mcpadapter exposes the product catalog as MCP tools, so the same
// search the executor runs in-process is available to external agents.
package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arturpietrzak/customer-service-llm/internal/products"
)

// SearchInput is the MCP tool input schema (matches the executor's in-process
// tool arguments).
type SearchInput struct {
	Name     string  `json:"name,omitempty" jsonschema:"product name or keywords to search for"`
	Category string  `json:"category,omitempty" jsonschema:"category name, e.g. Laptopy, Klawiatury, Monitory"`
	Producer string  `json:"producer,omitempty" jsonschema:"producer/brand name, e.g. Lenovo, ASUS, Apple"`
	MinPrice float64 `json:"min_price,omitempty" jsonschema:"minimum price in PLN"`
	MaxPrice float64 `json:"max_price,omitempty" jsonschema:"maximum price in PLN"`
	SortBy   string  `json:"sort_by,omitempty" jsonschema:"sort order: price_asc, price_desc, name, or relevance"`
	Limit    int     `json:"limit,omitempty" jsonschema:"maximum number of products to return (1-50, default 10)"`
}

// SearchOutput is the MCP tool result.
type SearchOutput struct {
	Products []products.Product `json:"products"`
	Count    int                `json:"count"`
}

// CategoriesOutput lists the catalog's categories and producers.
type CategoriesOutput struct {
	Categories []string `json:"categories"`
	Producers  []string `json:"producers"`
}

// NewSearchHandler returns a tool handler over the given catalog.
// Pass the returned function to mcp.AddTool.
func NewSearchHandler(store *products.Store) func(context.Context, *mcp.CallToolRequest, SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		found := store.Search(products.Query{
			Name:     input.Name,
			Category: input.Category,
			Producer: input.Producer,
			MinPrice: input.MinPrice,
			MaxPrice: input.MaxPrice,
			SortBy:   input.SortBy,
			Limit:    input.Limit,
		})
		return nil, SearchOutput{Products: found, Count: len(found)}, nil
	}
}

// NewCategoriesHandler returns a tool handler listing categories and producers.
// Pass the returned function to mcp.AddTool.
func NewCategoriesHandler(store *products.Store) func(context.Context, *mcp.CallToolRequest, struct{}) (*mcp.CallToolResult, CategoriesOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, CategoriesOutput, error) {
		return nil, CategoriesOutput{
			Categories: store.Categories(),
			Producers:  store.Producers(),
		}, nil
	}
}
