package chat

import (
	"context"

	"github.com/oaklee/shopassist/internal/catalog"
)

const (
	retrievalLimit = 10
	fallbackLimit  = 5
)

// Retriever turns interpreted filters into a bounded product context.
type Retriever struct {
	store catalog.Store
}

func NewRetriever(store catalog.Store) *Retriever {
	return &Retriever{store: store}
}

// Retrieve runs the filtered query, falling back to the cheapest active
// items when the filters match nothing. The returned flag reports whether
// the fallback tier was used.
func (r *Retriever) Retrieve(ctx context.Context, f Filters) ([]catalog.Item, bool, error) {
	items, err := r.store.Query(ctx, catalog.Query{
		Category: f.Category,
		MaxPrice: f.MaxPrice,
		Keywords: f.Keywords,
		Limit:    retrievalLimit,
	})
	if err != nil {
		return nil, false, err
	}
	if len(items) > 0 {
		return items, false, nil
	}

	items, err = r.store.Query(ctx, catalog.Query{
		CheapestFirst: true,
		Limit:         fallbackLimit,
	})
	if err != nil {
		return nil, false, err
	}
	return items, true, nil
}
