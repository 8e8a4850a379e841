package search

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// EmbedderConfig mirrors the chat client config; AzureEndpoint switches
// to the Azure API shape.
type EmbedderConfig struct {
	APIKey        string
	AzureEndpoint string
	Model         string
	Dimensions    int
	Timeout       time.Duration
}

// Embedder computes fixed-dimension text embeddings.
type Embedder struct {
	client *openai.Client
	model  string
	dims   int
}

func NewEmbedder(cfg EmbedderConfig) *Embedder {
	var clientCfg openai.ClientConfig
	if strings.TrimSpace(cfg.AzureEndpoint) != "" {
		clientCfg = openai.DefaultAzureConfig(cfg.APIKey, cfg.AzureEndpoint)
	} else {
		clientCfg = openai.DefaultConfig(cfg.APIKey)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	dims := cfg.Dimensions
	if dims <= 0 {
		dims = 1536
	}
	return &Embedder{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		dims:   dims,
	}
}

// Embed returns the embedding vector for text. Blank input maps to a zero
// vector of the configured dimension without calling the remote service.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return make([]float32, e.dims), nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(e.model),
		Dimensions: e.dims,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("create embedding: empty data in response")
	}
	return resp.Data[0].Embedding, nil
}

// Dimensions reports the configured vector size.
func (e *Embedder) Dimensions() int { return e.dims }
