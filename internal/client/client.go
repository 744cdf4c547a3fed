// Package client talks to the quiz API over HTTP and hands back raw,
// order-preserving payloads for the orchestrator to interpret.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/payload"

	"go.uber.org/zap"
)

const maxBodyBytes = 8 << 20

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the API at baseURL. A nil httpClient means
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type generateRequest struct {
	URL string `json:"url"`
}

// GenerateQuiz posts articleURL to /generate_quiz.
func (c *Client) GenerateQuiz(ctx context.Context, articleURL string) (any, error) {
	return c.do(ctx, http.MethodPost, "/generate_quiz", generateRequest{URL: articleURL})
}

// History fetches /history.
func (c *Client) History(ctx context.Context) (any, error) {
	return c.do(ctx, http.MethodGet, "/history", nil)
}

// GetQuiz fetches /quiz/{id}.
func (c *Client) GetQuiz(ctx context.Context, id string) (any, error) {
	return c.do(ctx, http.MethodGet, "/quiz/"+url.PathEscape(id), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (any, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Get().Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Get().Debug("non-2xx response", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	v, err := payload.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return v, nil
}
