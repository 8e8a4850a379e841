package catalog

import "context"

// Item is a single sellable product. SKUs are unique across the catalog.
type Item struct {
	ID          int64   `json:"id"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Active      bool    `json:"active"`
}

// Query is a structured filter over active items. Zero values mean
// "no constraint"; Limit <= 0 means unbounded.
type Query struct {
	Category      string
	MaxPrice      *float64
	Keywords      []string
	CheapestFirst bool
	Limit         int
}

// Store executes structured queries against the product catalog.
// Implementations only ever return active items.
type Store interface {
	Query(ctx context.Context, q Query) ([]Item, error)
	Close() error
}

// NewStore selects a backing store: Postgres when a database URL is
// configured, the seeded in-memory catalog otherwise.
func NewStore(ctx context.Context, databaseURL string) (Store, error) {
	if databaseURL == "" {
		return NewInMemoryStore(SeedItems()), nil
	}
	return NewPostgresStore(ctx, databaseURL)
}
