// internal/common/embedding/client.go
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrEmbeddingFailed     = errors.New("EMBEDDING_FAILED")
	ErrEmbeddingAPITimeout = errors.New("EMBEDDING_API_TIMEOUT")
)

// ClientConfig configures the remote embedding service client.
type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	Dimension  int
}

// Client calls an external embedding service over HTTP. It satisfies
// Embedder so the similarity index can be pointed at a real sentence-encoder
// deployment instead of the local hashed embedder.
type Client struct {
	config *ClientConfig
	client *http.Client
}

func NewClient(config *ClientConfig) *Client {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	return &Client{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

func (c *Client) Dimension() int {
	return c.config.Dimension
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"text": text,
	})

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ErrEmbeddingAPITimeout
			}
		}

		// Request bodies are single-use, so build a fresh request per attempt
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/ai/embed", bytes.NewBuffer(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, lastErr = c.client.Do(req)

		if ctx.Err() != nil ||
			errors.Is(lastErr, context.DeadlineExceeded) ||
			errors.Is(lastErr, context.Canceled) {
			return nil, ErrEmbeddingAPITimeout
		}

		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrEmbeddingAPITimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, lastErr)
	}

	if resp == nil {
		return nil, fmt.Errorf("%w: no successful response after retries", ErrEmbeddingFailed)
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Vector []float32 `json:"vector"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("%w: decode error: %v", ErrEmbeddingFailed, err)
	}

	if len(apiResponse.Vector) == 0 {
		return nil, fmt.Errorf("%w: empty vector in response", ErrEmbeddingFailed)
	}

	return apiResponse.Vector, nil
}
