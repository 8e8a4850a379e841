package chat

import (
	"context"
	"testing"

	"github.com/oaklee/shopassist/internal/catalog"
)

func TestRetrieveCapsAtTen(t *testing.T) {
	items := make([]catalog.Item, 0, 15)
	for i := 0; i < 15; i++ {
		items = append(items, catalog.Item{
			ID: int64(i + 1), SKU: string(rune('A' + i)), Name: "Widget",
			Category: "Electronics", Price: float64(i + 1), Currency: "$", Active: true,
		})
	}
	r := NewRetriever(catalog.NewInMemoryStore(items))

	got, usedFallback, err := r.Retrieve(context.Background(), Filters{Keywords: []string{"widget"}})
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if usedFallback {
		t.Fatalf("usedFallback = true, want false")
	}
	if len(got) != 10 {
		t.Fatalf("len(got) = %d, want 10", len(got))
	}
}

func TestRetrieveFallsBackToCheapestFive(t *testing.T) {
	r := NewRetriever(catalog.NewInMemoryStore(catalog.SeedItems()))

	got, usedFallback, err := r.Retrieve(context.Background(), Filters{Keywords: []string{"nothing-matches-this"}})
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if !usedFallback {
		t.Fatalf("usedFallback = false, want true")
	}
	if len(got) != 5 {
		t.Fatalf("len(got) = %d, want 5", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Price < got[i-1].Price {
			t.Fatalf("fallback not cheapest-first: %.2f before %.2f", got[i-1].Price, got[i].Price)
		}
	}
}
