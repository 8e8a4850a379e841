package catalog

import (
	"context"
	"testing"
)

func TestQueryFiltersInactive(t *testing.T) {
	s := NewInMemoryStore(SeedItems())
	items, err := s.Query(context.Background(), Query{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	for _, it := range items {
		if !it.Active {
			t.Fatalf("inactive item %s returned", it.SKU)
		}
	}
}

func TestQueryCategoryAndPrice(t *testing.T) {
	s := NewInMemoryStore(SeedItems())
	max := 500.0
	items, err := s.Query(context.Background(), Query{Category: "electronics", MaxPrice: &max})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("expected electronics under 500")
	}
	for _, it := range items {
		if it.Category != "Electronics" {
			t.Fatalf("item %s category = %q", it.SKU, it.Category)
		}
		if it.Price > max {
			t.Fatalf("item %s price %.2f exceeds max", it.SKU, it.Price)
		}
	}
}

func TestQueryKeywordsAreDisjunctive(t *testing.T) {
	s := NewInMemoryStore(SeedItems())
	items, err := s.Query(context.Background(), Query{Keywords: []string{"hoodie", "sneakers"}})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
}

func TestQueryCheapestFirstWithLimit(t *testing.T) {
	s := NewInMemoryStore(SeedItems())
	items, err := s.Query(context.Background(), Query{CheapestFirst: true, Limit: 5})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("len(items) = %d, want 5", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].Price < items[i-1].Price {
			t.Fatalf("items not sorted by price: %v before %v", items[i-1].Price, items[i].Price)
		}
	}
}
