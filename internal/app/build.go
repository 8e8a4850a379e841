package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/oaklee/shopassist/internal/catalog"
	"github.com/oaklee/shopassist/internal/chat"
	"github.com/oaklee/shopassist/internal/checkout"
	"github.com/oaklee/shopassist/internal/config"
	"github.com/oaklee/shopassist/internal/httpapi"
	"github.com/oaklee/shopassist/internal/llm"
	"github.com/oaklee/shopassist/internal/observability"
	"github.com/oaklee/shopassist/internal/search"
)

// BuildResult holds the assembled service graph.
type BuildResult struct {
	Handler http.Handler
	Cleanup func()
}

// Build wires configuration into the full service. Optional upstreams
// (semantic search, checkout) are left nil when unconfigured and the API
// reports them unavailable.
func Build(ctx context.Context, cfg config.Config) (*BuildResult, error) {
	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	store, err := catalog.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog store: %w", err)
	}

	var client llm.ChatClient
	if cfg.OpenAIAPIKey != "" {
		client = llm.NewOpenAIClient(llm.Config{
			APIKey:        cfg.OpenAIAPIKey,
			AzureEndpoint: cfg.OpenAIAzureEndpoint,
			Model:         cfg.ChatModel,
			Timeout:       cfg.ChatTimeout,
		})
	} else {
		log.Println("no OpenAI API key configured, using mock chat client")
		client = llm.NewMockClient()
	}

	chatSvc := chat.NewService(chat.NewHistoryStore(), store, client, metrics, cfg.ChatMaxTokens, float32(cfg.ChatTemperature))

	var searchSvc *search.Service
	if cfg.SearchEndpoint != "" {
		embedder := search.NewEmbedder(search.EmbedderConfig{
			APIKey:        cfg.OpenAIAPIKey,
			AzureEndpoint: cfg.OpenAIAzureEndpoint,
			Model:         cfg.EmbeddingModel,
			Dimensions:    cfg.EmbeddingDimensions,
			Timeout:       cfg.EmbeddingTimeout,
		})
		searchClient := search.NewClient(search.ClientConfig{
			Endpoint:       cfg.SearchEndpoint,
			APIKey:         cfg.SearchAPIKey,
			IndexName:      cfg.SearchIndexName,
			SemanticConfig: cfg.SearchSemanticConfig,
			VectorField:    cfg.SearchVectorField,
			Timeout:        cfg.SearchTimeout,
		})
		searchSvc = search.NewService(embedder, searchClient, metrics)
	} else {
		log.Println("no search endpoint configured, /v1/search disabled")
	}

	var checkoutProxy *checkout.Proxy
	if cfg.CheckoutBaseURL != "" {
		checkoutProxy = checkout.NewProxy(cfg.CheckoutBaseURL, cfg.CheckoutTimeout)
	} else {
		log.Println("no checkout API configured, /v1/checkout disabled")
	}

	server := httpapi.New(cfg, chatSvc, searchSvc, checkoutProxy, store, metrics)

	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Printf("closing catalog store: %v", err)
		}
	}

	return &BuildResult{Handler: server.Router(), Cleanup: cleanup}, nil
}
