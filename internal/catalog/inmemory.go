package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// InMemoryStore is a simple in-process catalog for local/dev use and tests.
type InMemoryStore struct {
	mu    sync.RWMutex
	items []Item
}

func NewInMemoryStore(items []Item) *InMemoryStore {
	s := &InMemoryStore{items: make([]Item, len(items))}
	copy(s.items, items)
	return s
}

func (s *InMemoryStore) Query(_ context.Context, q Query) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if !item.Active {
			continue
		}
		if q.Category != "" && !strings.EqualFold(item.Category, q.Category) {
			continue
		}
		if q.MaxPrice != nil && item.Price > *q.MaxPrice {
			continue
		}
		if len(q.Keywords) > 0 && !matchesAnyKeyword(item, q.Keywords) {
			continue
		}
		out = append(out, item)
	}

	if q.CheapestFirst {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func matchesAnyKeyword(item Item, keywords []string) bool {
	haystack := strings.ToLower(item.Name + " " + item.Description)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) Close() error { return nil }
