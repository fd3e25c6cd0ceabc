package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Generator turns an utterance plus history into a GraphQL document or a
// clarification request.
type Generator interface {
	Generate(ctx context.Context, query string, history []Turn) (string, error)
}

// UpstreamError reports a failure talking to the query-generation service.
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("status %d: %v", e.Status, e.Err)
	}
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// LLMClient calls the query-generation service over HTTP.
type LLMClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewLLMClient creates a client for baseURL. A zero timeout disables it.
func NewLLMClient(baseURL string, timeout time.Duration) *LLMClient {
	return &LLMClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *LLMClient) Generate(ctx context.Context, query string, history []Turn) (string, error) {
	body, err := json.Marshal(QueryRequest{Query: query, History: history})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Status: resp.StatusCode, Err: err}
	}

	var out QueryResponse
	decodeErr := json.Unmarshal(raw, &out)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if decodeErr == nil && out.Error != "" {
			msg = out.Error
		}
		return "", &UpstreamError{Status: resp.StatusCode, Err: errors.New(msg)}
	}
	if decodeErr != nil {
		return "", &UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	if out.GraphQLQuery == "" {
		return "", &UpstreamError{Status: resp.StatusCode, Err: errors.New("response carried no graphql_query")}
	}
	return out.GraphQLQuery, nil
}
