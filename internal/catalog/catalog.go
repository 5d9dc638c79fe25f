package catalog

import (
	"context"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/nurak20/smart-pos-web/internal/domain"
)

// CategoryAll is the sentinel category that bypasses category filtering.
const CategoryAll = "all"

// Categories are the fixed POS category tabs.
var Categories = []domain.Category{
	{ID: CategoryAll, Name: "All Products"},
	{ID: "beverages", Name: "Beverages"},
	{ID: "snacks", Name: "Snacks"},
	{ID: "electronics", Name: "Electronics"},
	{ID: "clothing", Name: "Clothing"},
	{ID: "books", Name: "Books"},
}

// Fetcher loads the sellable products from the remote API.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]domain.CatalogItem, error)
}

// Cache holds the catalog for one terminal session. The item list is
// replaced wholesale on every refresh and is otherwise immutable; Filter
// never mutates it.
type Cache struct {
	mu      sync.RWMutex
	items   []domain.CatalogItem
	fetcher Fetcher
	sfg     singleflight.Group // collapses concurrent refreshes
}

func NewCache(fetcher Fetcher) *Cache {
	return &Cache{fetcher: fetcher}
}

// Refresh re-fetches the catalog. A fetch failure resolves the cache to an
// empty list rather than propagating, so the sell screen renders "no
// products" instead of failing; the error is only logged.
func (c *Cache) Refresh(ctx context.Context) {
	_, _, _ = c.sfg.Do("catalog", func() (interface{}, error) {
		items, err := c.fetcher.FetchProducts(ctx)
		if err != nil {
			log.Printf("catalog fetch failed: %v", err)
			items = nil
		}

		c.mu.Lock()
		c.items = items
		c.mu.Unlock()
		return nil, nil
	})
}

// Items returns a copy of the cached catalog.
func (c *Cache) Items() []domain.CatalogItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Filter returns items matching the category and text query. Category is an
// exact match on category_id, with CategoryAll bypassing it. The query is a
// case-insensitive substring match against name, brand, code and
// description; any one field matching is enough.
func (c *Cache) Filter(categoryID, query string) []domain.CatalogItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.CatalogItem, 0, len(c.items))
	q := strings.ToLower(query)
	for _, item := range c.items {
		if categoryID != "" && categoryID != CategoryAll && item.CategoryID != categoryID {
			continue
		}
		if q != "" && !matchesQuery(item, q) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(item domain.CatalogItem, q string) bool {
	return strings.Contains(strings.ToLower(item.ProductName), q) ||
		strings.Contains(strings.ToLower(item.BrandName), q) ||
		strings.Contains(strings.ToLower(item.Code), q) ||
		strings.Contains(strings.ToLower(item.Description), q)
}
