package autocomplete

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shivani123B/fitlog/internal/model"
)

const DefaultCacheSize = 50

// Cache holds recent search results per mode and query. Reads refresh an
// entry and the least recently used entry is evicted first. Safe for
// concurrent use.
type Cache struct {
	entries *lru.Cache[string, []model.FoodCandidate]
}

func NewCache(capacity int) (*Cache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be > 0")
	}
	entries, err := lru.New[string, []model.FoodCandidate](capacity)
	if err != nil {
		return nil, fmt.Errorf("create search cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Key namespaces a query by mode: "mode:lowercased trimmed query".
func Key(mode, query string) string {
	return mode + ":" + strings.ToLower(strings.TrimSpace(query))
}

func (c *Cache) Get(mode, query string) ([]model.FoodCandidate, bool) {
	v, ok := c.entries.Get(Key(mode, query))
	if !ok {
		return nil, false
	}
	return append([]model.FoodCandidate(nil), v...), true
}

func (c *Cache) Put(mode, query string, results []model.FoodCandidate) {
	c.entries.Add(Key(mode, query), append([]model.FoodCandidate(nil), results...))
}

func (c *Cache) Len() int {
	return c.entries.Len()
}
