// Package products is the in-memory catalog of the fictional electronics
// shop. The executor and the MCP server both search it; judges see its
// results as ground truth for factual accuracy.
package products

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// Product is one catalog entry. Prices are PLN.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Producer    string   `json:"producer"`
	Price       float64  `json:"price"`
	Features    []string `json:"features,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Query is one catalog search. Zero values mean "no filter"; Limit is
// clamped into [1,50] with a default of 10.
type Query struct {
	Name     string  `json:"name,omitempty"`
	Category string  `json:"category,omitempty"`
	Producer string  `json:"producer,omitempty"`
	MinPrice float64 `json:"min_price,omitempty"`
	MaxPrice float64 `json:"max_price,omitempty"`
	SortBy   string  `json:"sort_by,omitempty"`
	Limit    int     `json:"limit,omitempty"`
}

// Store is an immutable product catalog.
type Store struct {
	products []Product
}

func NewStore(products []Product) *Store {
	return &Store{products: products}
}

// LoadStore reads a catalog from a JSON file holding either a bare array or
// an object with a "products" key.
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read product catalog: %w", err)
	}

	var wrapped struct {
		Products []Product `json:"products"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && len(wrapped.Products) > 0 {
		return NewStore(wrapped.Products), nil
	}

	var list []Product
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse product catalog %s: %w", path, err)
	}
	return NewStore(list), nil
}

// Search filters the catalog. Name matches name, description and features;
// category and producer are substring matches. Results are ordered by the
// requested sort, defaulting to match order (relevance).
func (s *Store) Search(q Query) []Product {
	limit := q.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if limit < 1 {
		limit = 1
	}

	var matched []Product
	for _, p := range s.products {
		if q.Name != "" && !matchesName(p, q.Name) {
			continue
		}
		if q.Category != "" && !containsFold(p.Category, q.Category) {
			continue
		}
		if q.Producer != "" && !containsFold(p.Producer, q.Producer) {
			continue
		}
		if q.MinPrice > 0 && p.Price < q.MinPrice {
			continue
		}
		if q.MaxPrice > 0 && p.Price > q.MaxPrice {
			continue
		}
		matched = append(matched, p)
	}

	switch q.SortBy {
	case "price_asc":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case "price_desc":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	case "name":
		sort.SliceStable(matched, func(i, j int) bool {
			return strings.ToLower(matched[i].Name) < strings.ToLower(matched[j].Name)
		})
	}

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// Categories lists the distinct categories in the catalog, sorted.
func (s *Store) Categories() []string {
	return distinct(s.products, func(p Product) string { return p.Category })
}

// Producers lists the distinct producers in the catalog, sorted.
func (s *Store) Producers() []string {
	return distinct(s.products, func(p Product) string { return p.Producer })
}

// Len returns the catalog size.
func (s *Store) Len() int {
	return len(s.products)
}

func matchesName(p Product, name string) bool {
	if containsFold(p.Name, name) || containsFold(p.Description, name) {
		return true
	}
	for _, f := range p.Features {
		if containsFold(f, name) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func distinct(products []Product, key func(Product) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		k := key(p)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
