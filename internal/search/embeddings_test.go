package search

import (
	"context"
	"testing"
)

func TestEmbedBlankInputSkipsRemoteCall(t *testing.T) {
	// Unreachable endpoint: a remote call would fail loudly.
	e := NewEmbedder(EmbedderConfig{
		APIKey:        "unused",
		AzureEndpoint: "http://127.0.0.1:1",
		Model:         "text-embedding-3-small",
		Dimensions:    8,
	})

	for _, input := range []string{"", "   ", "\t\n"} {
		vec, err := e.Embed(context.Background(), input)
		if err != nil {
			t.Fatalf("Embed(%q) error = %v", input, err)
		}
		if len(vec) != 8 {
			t.Fatalf("len(vec) = %d, want 8", len(vec))
		}
		for i, v := range vec {
			if v != 0 {
				t.Fatalf("vec[%d] = %v, want 0", i, v)
			}
		}
	}
}

func TestEmbedderDefaultDimensions(t *testing.T) {
	e := NewEmbedder(EmbedderConfig{APIKey: "unused", Model: "text-embedding-3-small"})
	if e.Dimensions() != 1536 {
		t.Fatalf("Dimensions() = %d, want 1536", e.Dimensions())
	}
}
