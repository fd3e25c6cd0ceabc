// Package assistant turns natural-language requests into GraphQL documents
// through the query-generation service and executes them as the caller.
package assistant

import "time"

type TurnType string

const (
	TurnUser      TurnType = "user"
	TurnAssistant TurnType = "assistant"
	TurnLLM       TurnType = "llm"
	TurnResult    TurnType = "result"
	TurnError     TurnType = "error"
)

// Turn is one entry of a conversation. Result turns carry the raw data and
// the rendered table next to the JSON text in Content.
type Turn struct {
	Type      TurnType       `json:"type"`
	Content   string         `json:"content"`
	Data      map[string]any `json:"data,omitempty"`
	Table     *Table         `json:"table,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type State string

const (
	StateIdle              State = "idle"
	StateAwaitingLLM       State = "awaiting_llm"
	StateClarifying        State = "clarifying"
	StateAwaitingExecution State = "awaiting_execution"
	StateRendered          State = "rendered"
	StateErrored           State = "errored"
)

// QueryRequest is the body accepted by the query-generation service.
type QueryRequest struct {
	Query   string `json:"query"`
	History []Turn `json:"history,omitempty"`
}

// QueryResponse is the body returned by the query-generation service.
type QueryResponse struct {
	Success       bool   `json:"success"`
	GraphQLQuery  string `json:"graphql_query,omitempty"`
	OriginalQuery string `json:"original_query,omitempty"`
	Error         string `json:"error,omitempty"`
}
