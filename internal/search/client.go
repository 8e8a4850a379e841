package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const apiVersion = "2024-07-01"

// Document is a product as stored in the search index.
type Document struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	ContentVector []float32 `json:"contentVector,omitempty"`
}

// ClientConfig points at the search service and index.
type ClientConfig struct {
	Endpoint       string
	APIKey         string
	IndexName      string
	SemanticConfig string
	VectorField    string
	Timeout        time.Duration
}

// Client talks to the hybrid search REST API.
type Client struct {
	cfg  ClientConfig
	http *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

type vectorQuery struct {
	Kind   string    `json:"kind"`
	Vector []float32 `json:"vector"`
	Fields string    `json:"fields"`
	K      int       `json:"k"`
}

type searchRequest struct {
	Search                string        `json:"search"`
	Filter                string        `json:"filter,omitempty"`
	VectorQueries         []vectorQuery `json:"vectorQueries,omitempty"`
	QueryType             string        `json:"queryType,omitempty"`
	SemanticConfiguration string        `json:"semanticConfiguration,omitempty"`
	Top                   int           `json:"top"`
	Select                string        `json:"select"`
}

type searchResponse struct {
	Value []Document `json:"value"`
}

// SemanticSearch issues a hybrid vector+lexical+semantic-ranked query with
// an optional filter expression, requesting the top k documents.
func (c *Client) SemanticSearch(ctx context.Context, query, filter string, vector []float32, top int) ([]Document, error) {
	searchText := query
	if strings.TrimSpace(searchText) == "" {
		searchText = "*"
	}
	req := searchRequest{
		Search: searchText,
		Filter: filter,
		VectorQueries: []vectorQuery{{
			Kind:   "vector",
			Vector: vector,
			Fields: c.cfg.VectorField,
			K:      top,
		}},
		QueryType:             "semantic",
		SemanticConfiguration: c.cfg.SemanticConfig,
		Top:                   top,
		Select:                "id,name,description,category,price",
	}
	return c.search(ctx, req)
}

// LexicalSearch issues a plain keyword query against the same index.
func (c *Client) LexicalSearch(ctx context.Context, query string, top int) ([]Document, error) {
	searchText := query
	if strings.TrimSpace(searchText) == "" {
		searchText = "*"
	}
	return c.search(ctx, searchRequest{
		Search: searchText,
		Top:    top,
		Select: "id,name,description,category,price",
	})
}

func (c *Client) search(ctx context.Context, req searchRequest) ([]Document, error) {
	url := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s", c.cfg.Endpoint, c.cfg.IndexName, apiVersion)
	body, err := c.post(ctx, url, req)
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}
	return parsed.Value, nil
}

// EnsureIndex verifies the index exists. It does not create it; index
// provisioning happens out of band.
func (c *Client) EnsureIndex(ctx context.Context) error {
	url := fmt.Sprintf("%s/indexes/%s?api-version=%s", c.cfg.Endpoint, c.cfg.IndexName, apiVersion)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("api-key", c.cfg.APIKey)

	res, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("get index: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("search index %q does not exist; create it before indexing", c.cfg.IndexName)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return fmt.Errorf("get index status %d: %s", res.StatusCode, string(body))
	}
	return nil
}

type indexBatch struct {
	Value []indexAction `json:"value"`
}

type indexAction struct {
	Action string `json:"@search.action"`
	Document
}

// IndexDocuments uploads documents to the index in one batch.
func (c *Client) IndexDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	batch := indexBatch{Value: make([]indexAction, 0, len(docs))}
	for _, d := range docs {
		batch.Value = append(batch.Value, indexAction{Action: "upload", Document: d})
	}

	url := fmt.Sprintf("%s/indexes/%s/docs/index?api-version=%s", c.cfg.Endpoint, c.cfg.IndexName, apiVersion)
	if _, err := c.post(ctx, url, batch); err != nil {
		return fmt.Errorf("index documents: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.cfg.APIKey)

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return nil, fmt.Errorf("search http status %d: %s", res.StatusCode, string(body))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
