package search

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/oaklee/shopassist/internal/catalog"
	"github.com/oaklee/shopassist/internal/observability"
)

const topResults = 10

// QueryEmbedder computes the query vector for the semantic tier.
type QueryEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Service is the standalone semantic search capability: hybrid
// vector+semantic retrieval with a lexical second tier.
type Service struct {
	embedder QueryEmbedder
	client   *Client
	metrics  *observability.Metrics
}

func NewService(embedder QueryEmbedder, client *Client, metrics *observability.Metrics) *Service {
	return &Service{embedder: embedder, client: client, metrics: metrics}
}

// Search runs the two-tier chain: semantic first, lexical on any semantic
// failure. Tier errors never reach the caller; the only returned error is
// context cancellation. An empty result means both tiers genuinely
// returned nothing.
func (s *Service) Search(ctx context.Context, query string) ([]catalog.Item, error) {
	docs, err := s.semanticTier(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("semantic search failed, falling back to lexical: %v", err)
		s.metrics.RetrievalFallbacks.WithLabelValues("lexical").Inc()

		docs, err = s.client.LexicalSearch(ctx, query, topResults)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("lexical search failed: %v", err)
			return nil, nil
		}
	}
	return documentsToItems(docs), nil
}

func (s *Service) semanticTier(ctx context.Context, query string) ([]Document, error) {
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return s.client.SemanticSearch(ctx, query, BuildFilter(query), vector, topResults)
}

// IndexProducts embeds each item's combined text and uploads the batch.
func (s *Service) IndexProducts(ctx context.Context, items []catalog.Item) error {
	docs := make([]Document, 0, len(items))
	for _, item := range items {
		combined := strings.TrimSpace(item.Name + " " + item.Description + " " + item.Category)
		vector, err := s.embedder.Embed(ctx, combined)
		if err != nil {
			return fmt.Errorf("embed product %s: %w", item.SKU, err)
		}
		docs = append(docs, Document{
			ID:            strconv.FormatInt(item.ID, 10),
			Name:          item.Name,
			Description:   item.Description,
			Category:      item.Category,
			Price:         item.Price,
			ContentVector: vector,
		})
	}
	return s.client.IndexDocuments(ctx, docs)
}

// EnsureIndex verifies the backing index exists.
func (s *Service) EnsureIndex(ctx context.Context) error {
	return s.client.EnsureIndex(ctx)
}

func documentsToItems(docs []Document) []catalog.Item {
	if len(docs) == 0 {
		return nil
	}
	items := make([]catalog.Item, 0, len(docs))
	for _, d := range docs {
		id, _ := strconv.ParseInt(d.ID, 10, 64)
		items = append(items, catalog.Item{
			ID:          id,
			Name:        d.Name,
			Description: d.Description,
			Category:    d.Category,
			Price:       d.Price,
			Currency:    "$",
			Active:      true,
		})
	}
	return items
}
