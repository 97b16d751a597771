package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/Xenpaii/b-store/internal/catalog"
	"github.com/Xenpaii/b-store/internal/logger"

	"go.uber.org/zap"
)

// Config is the explicit client configuration. No module-level globals.
type Config struct {
	APIBaseURL string
	HTTPClient *http.Client
}

// CategoryAll passes every product through the category filter.
const CategoryAll = "all"

const productsQuery = `
	query {
		products {
			id
			name
			description
			category
			price
			gallery
			in_stock
			attributes {
				id
				name
				items {
					id
					displayValue
					value
				}
			}
		}
	}
`

type wireError struct {
	Message string `json:"message"`
}

// Gateway fetches the catalog from the API endpoint. Fetches are independent
// context-cancellable reads; a navigation that supersedes one simply cancels
// it and the last request to complete wins.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
}

func NewGateway(cfg Config) *Gateway {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Gateway{baseURL: cfg.APIBaseURL, httpClient: client}
}

func (g *Gateway) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gateway"),
		zap.String("method", "ListProducts"),
	)

	body, err := json.Marshal(map[string]string{"query": productsQuery})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %s", resp.Status)
	}

	var decoded struct {
		Data struct {
			Products []catalog.Product `json:"products"`
		} `json:"data"`
		Errors []wireError `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	if len(decoded.Errors) > 0 {
		return nil, fmt.Errorf("fetch catalog: %s", decoded.Errors[0].Message)
	}

	log.Debug("catalog fetched", zap.Int("count", len(decoded.Data.Products)))
	return decoded.Data.Products, nil
}

// FilterByCategory keeps the products of one category; CategoryAll keeps all.
func FilterByCategory(products []catalog.Product, category string) []catalog.Product {
	if category == CategoryAll || category == "" {
		return products
	}
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// SortInStockFirst returns a copy with in-stock products ahead of sold-out
// ones, keeping the catalog order within each group.
func SortInStockFirst(products []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, len(products))
	copy(out, products)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].InStock && !out[j].InStock
	})
	return out
}
