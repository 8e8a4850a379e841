package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/oaklee/shopassist/internal/observability"
)

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return make([]float32, 4), nil
}

func newTestMetrics(t *testing.T) *observability.Metrics {
	t.Helper()
	return observability.NewMetrics(fmt.Sprintf("shopassist_test_search_%d", time.Now().UnixNano()))
}

// fakeIndex serves the search REST surface. semanticStatus controls the
// hybrid query outcome; lexical queries (no vectorQueries) always succeed
// with docs unless lexicalStatus is set.
type fakeIndex struct {
	semanticStatus int
	lexicalStatus  int
	docs           []Document
}

func (f *fakeIndex) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/docs/search") {
			http.NotFound(w, r)
			return
		}
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)

		_, semantic := req["vectorQueries"]
		if semantic && f.semanticStatus != 0 {
			http.Error(w, "semantic tier down", f.semanticStatus)
			return
		}
		if !semantic && f.lexicalStatus != 0 {
			http.Error(w, "lexical tier down", f.lexicalStatus)
			return
		}
		_ = json.NewEncoder(w).Encode(searchResponse{Value: f.docs})
	})
}

func newTestService(t *testing.T, idx *fakeIndex, embedErr error) (*Service, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(idx.handler())
	t.Cleanup(ts.Close)
	client := NewClient(ClientConfig{
		Endpoint:       ts.URL,
		APIKey:         "test-key",
		IndexName:      "products",
		SemanticConfig: "semantic-config",
		VectorField:    "contentVector",
	})
	return NewService(&stubEmbedder{err: embedErr}, client, newTestMetrics(t)), ts
}

func TestSearchSemanticTier(t *testing.T) {
	idx := &fakeIndex{docs: []Document{{ID: "1", Name: "Aspire 14 Laptop", Category: "Electronics", Price: 449.99}}}
	svc, _ := newTestService(t, idx, nil)

	items, err := svc.Search(context.Background(), "laptops under 500")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(items) != 1 || items[0].Name != "Aspire 14 Laptop" {
		t.Fatalf("items = %+v, want the laptop", items)
	}
	if items[0].ID != 1 {
		t.Fatalf("ID = %d, want 1", items[0].ID)
	}
}

func TestSearchFallsBackToLexical(t *testing.T) {
	idx := &fakeIndex{
		semanticStatus: http.StatusInternalServerError,
		docs:           []Document{{ID: "2", Name: "Fleece Hoodie", Category: "Apparel", Price: 39.99}},
	}
	svc, _ := newTestService(t, idx, nil)

	items, err := svc.Search(context.Background(), "hoodie")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(items) != 1 || items[0].Name != "Fleece Hoodie" {
		t.Fatalf("items = %+v, want the hoodie via lexical tier", items)
	}
}

func TestSearchEmbeddingFailureFallsBack(t *testing.T) {
	idx := &fakeIndex{docs: []Document{{ID: "3", Name: "Trail Smartwatch", Price: 149.99}}}
	svc, _ := newTestService(t, idx, errors.New("embedding service down"))

	items, err := svc.Search(context.Background(), "smartwatch")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %+v, want lexical result", items)
	}
}

func TestSearchBothTiersFailingYieldsEmpty(t *testing.T) {
	idx := &fakeIndex{
		semanticStatus: http.StatusInternalServerError,
		lexicalStatus:  http.StatusInternalServerError,
	}
	svc, _ := newTestService(t, idx, nil)

	items, err := svc.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search() error = %v, want nil (errors never surface)", err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %+v, want empty", items)
	}
}

func TestSearchPropagatesCancellation(t *testing.T) {
	idx := &fakeIndex{docs: []Document{{ID: "1", Name: "X"}}}
	svc, _ := newTestService(t, idx, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Search(ctx, "anything")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Search() error = %v, want context.Canceled", err)
	}
}
