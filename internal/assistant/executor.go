package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/graphql-go/graphql"
)

// Executor runs a GraphQL document as the caller carried by ctx.
type Executor interface {
	Execute(ctx context.Context, doc string) (map[string]any, error)
}

// ExecutionError carries the messages of a rejected or failed document.
type ExecutionError struct {
	Messages []string
}

func (e *ExecutionError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// SchemaExecutor executes in-process against a schema.
type SchemaExecutor func(ctx context.Context, doc string) *graphql.Result

func (f SchemaExecutor) Execute(ctx context.Context, doc string) (map[string]any, error) {
	res := f(ctx, doc)
	if res == nil {
		return nil, &ExecutionError{Messages: []string{"no result"}}
	}
	if len(res.Errors) > 0 {
		msgs := make([]string, len(res.Errors))
		for i, e := range res.Errors {
			msgs[i] = e.Message
		}
		return nil, &ExecutionError{Messages: msgs}
	}
	data, _ := res.Data.(map[string]any)
	return data, nil
}

// HTTPExecutor posts documents to a remote /graphql endpoint.
type HTTPExecutor struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

func NewHTTPExecutor(baseURL, token string, timeout time.Duration) *HTTPExecutor {
	return &HTTPExecutor{
		endpoint:   strings.TrimRight(baseURL, "/") + "/graphql",
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken replaces the bearer token sent with each document.
func (e *HTTPExecutor) SetToken(token string) { e.token = token }

type graphQLResponse struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (e *HTTPExecutor) Execute(ctx context.Context, doc string) (map[string]any, error) {
	body, err := json.Marshal(map[string]string{"query": doc})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &ExecutionError{Messages: []string{err.Error()}}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExecutionError{Messages: []string{err.Error()}}
	}
	var out graphQLResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ExecutionError{Messages: []string{fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))}}
	}
	if len(out.Errors) > 0 {
		msgs := make([]string, len(out.Errors))
		for i, e := range out.Errors {
			msgs[i] = e.Message
		}
		return nil, &ExecutionError{Messages: msgs}
	}
	return out.Data, nil
}
