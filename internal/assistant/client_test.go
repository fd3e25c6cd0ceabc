package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLLMClientGenerate(t *testing.T) {
	var got QueryRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/llm/query" {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(QueryResponse{Success: true, GraphQLQuery: "query { getEvents { Name } }", OriginalQuery: got.Query})
	}))
	defer srv.Close()

	client := NewLLMClient(srv.URL+"/api/llm/", time.Second)
	history := []Turn{{Type: TurnUser, Content: "earlier"}}
	doc, err := client.Generate(context.Background(), "Show events", history)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if doc != "query { getEvents { Name } }" {
		t.Errorf("doc = %q", doc)
	}
	if got.Query != "Show events" || len(got.History) != 1 || got.History[0].Content != "earlier" {
		t.Errorf("request = %+v", got)
	}
}

func TestLLMClientUpstreamErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  int
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(QueryResponse{Error: "ollama down"})
		}, 500},
		{"undecodable", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>"))
		}, 200},
		{"empty document", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(QueryResponse{Success: true})
		}, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewLLMClient(srv.URL, time.Second).Generate(context.Background(), "q", nil)
			var upstream *UpstreamError
			if !errors.As(err, &upstream) {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if upstream.Status != tt.status {
				t.Errorf("status = %d, want %d", upstream.Status, tt.status)
			}
		})
	}

	_, err := NewLLMClient("http://127.0.0.1:1", time.Second).Generate(context.Background(), "q", nil)
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Errorf("transport failure should be UpstreamError, got %v", err)
	}
}

func TestHTTPExecutor(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["query"] == "query { getAdmins { Username } }" {
			w.Write([]byte(`{"data":null,"errors":[{"message":"access denied"}]}`))
			return
		}
		w.Write([]byte(`{"data":{"getEvents":[{"Name":"Gala"}]}}`))
	}))
	defer srv.Close()

	exec := NewHTTPExecutor(srv.URL, "tok", time.Second)
	data, err := exec.Execute(context.Background(), "query { getEvents { Name } }")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if auth != "Bearer tok" {
		t.Errorf("Authorization = %q", auth)
	}
	if events, _ := data["getEvents"].([]any); len(events) != 1 {
		t.Errorf("data = %v", data)
	}

	_, err = exec.Execute(context.Background(), "query { getAdmins { Username } }")
	var execErr *ExecutionError
	if !errors.As(err, &execErr) || execErr.Error() != "access denied" {
		t.Errorf("expected ExecutionError, got %v", err)
	}
}
