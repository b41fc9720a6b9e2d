package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
)

// EmbeddingClient calls an OpenAI-compatible /embeddings endpoint
// (OpenAI, Ollama, text-embeddings-inference, infinity).
type EmbeddingClient struct {
	base  string
	key   string
	model string
	http  *http.Client
	retry engine.RetryConfig
}

type embeddingReq struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResp struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// NewEmbeddingClient builds an embeddings client from the engine configuration.
func NewEmbeddingClient(c engine.Config) (*EmbeddingClient, error) {
	if c.EmbedAPIBase == "" {
		return nil, errors.New("EMBED_API_BASE is not set")
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &EmbeddingClient{
		base:  strings.TrimRight(c.EmbedAPIBase, "/"),
		key:   c.EmbedAPIKey,
		model: c.EmbedModel,
		http:  httpClient,
		retry: engine.DefaultRetryConfig,
	}, nil
}

// Embed returns the embedding vector for one text.
func (e *EmbeddingClient) Embed(ctx context.Context, text string) ([]float64, error) {
	engine.IncrEmbedding()
	body, err := json.Marshal(embeddingReq{Model: e.model, Input: []string{text}})
	if err != nil {
		return nil, err
	}

	resp, err := engine.RetryHTTP(ctx, e.retry, "embeddings", func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.base+"/embeddings", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if e.key != "" {
			req.Header.Set("Authorization", "Bearer "+e.key)
		}
		return e.http.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &engine.APIError{Service: "embeddings", StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	var out embeddingResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode embeddings: %w", err)
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, errors.New("embeddings: empty vector in response")
	}
	return out.Data[0].Embedding, nil
}
