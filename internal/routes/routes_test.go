package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"alumni-directory/bootstrap"
	"alumni-directory/dto"
	"alumni-directory/internal/assistant"
	"alumni-directory/internal/auth"
	"alumni-directory/internal/graph"
	"alumni-directory/internal/photostore"
	"alumni-directory/internal/repository"
	"alumni-directory/internal/services"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type stubGenerator struct {
	reply string
	err   error
}

func (g stubGenerator) Generate(context.Context, string, []assistant.Turn) (string, error) {
	return g.reply, g.err
}

type testServer struct {
	app    *fiber.App
	svc    *services.Services
	tokens *auth.Manager
}

func newTestServer(t *testing.T, gen assistant.Generator, rateLimit int) *testServer {
	t.Helper()
	store := repository.NewMemoryStore()
	if err := bootstrap.EnsureIndexes(context.Background(), store); err != nil {
		t.Fatal(err)
	}
	return newTestServerWith(t, store, photostore.NewMemoryStore(), gen, rateLimit)
}

func newTestServerWith(t *testing.T, store repository.Store, files photostore.Store, gen assistant.Generator, rateLimit int) *testServer {
	t.Helper()
	tokens := auth.NewManager("test-secret", time.Hour)
	svc := services.New(repository.New(store), files, photostore.NewPolicy(1<<20), tokens)
	gql, err := graph.NewServer(svc)
	if err != nil {
		t.Fatal(err)
	}

	app := fiber.New()
	Setup(app, Deps{
		Services:     svc,
		Tokens:       tokens,
		GraphQL:      gql,
		Generator:    gen,
		Bridge:       assistant.NewBridge(gen, assistant.SchemaExecutor(gql.ExecuteDocument), assistant.PolicyStrict),
		PhotoBaseURL: "http://localhost:4000/photo/",
		RateLimit:    rateLimit,
	})
	return &testServer{app: app, svc: svc, tokens: tokens}
}

func (s *testServer) alumniToken(t *testing.T, name, email string) (string, string) {
	t.Helper()
	a, err := s.svc.Alumni.Create(context.Background(), dto.AlumniInput{
		Name: name, GraduationYear: 2020, Email: email, Password: "password123", Employer: "Google",
	})
	if err != nil {
		t.Fatal(err)
	}
	tok, _ := s.tokens.IssueAlumni(a.ID.Hex(), a.AlumniID)
	return tok, a.AlumniID
}

func (s *testServer) adminToken() string {
	tok, _ := s.tokens.IssueAdmin("000000000000000000000001", "AD1001")
	return tok
}

func (s *testServer) do(t *testing.T, req *http.Request, token string) *http.Response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func uploadRequest(t *testing.T, contentType string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="photo"; filename="Gala Night.PNG"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(data)
	w.Close()

	req := httptest.NewRequest("POST", "/upload-photo", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
}

func TestSystemRoutes(t *testing.T) {
	s := newTestServer(t, stubGenerator{}, 0)

	resp := s.do(t, httptest.NewRequest("GET", "/healthz", nil), "")
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || string(body) != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}

	resp = s.do(t, httptest.NewRequest("GET", "/metrics", nil), "")
	body, _ = io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(string(body), "go_goroutines") {
		t.Errorf("metrics = %d", resp.StatusCode)
	}
}

func TestPhotoLifecycle(t *testing.T) {
	s := newTestServer(t, stubGenerator{}, 0)
	adaTok, adaID := s.alumniToken(t, "Ada", "ada@example.com")
	bobTok, _ := s.alumniToken(t, "Bob", "bob@example.com")

	resp := s.do(t, uploadRequest(t, "image/png", pngBytes, map[string]string{"Event_id": "E1001", "Tags": "gala, 2025"}), adaTok)
	if resp.StatusCode != fiber.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("upload status = %d: %s", resp.StatusCode, body)
	}
	var created struct {
		PhotoID  string   `json:"Photo_id"`
		FileID   string   `json:"File_id"`
		FileName string   `json:"File_name"`
		AlumniID string   `json:"Alumni_id"`
		Tags     []string `json:"Tags"`
		URL      string   `json:"url"`
	}
	decodeJSON(t, resp, &created)
	if created.AlumniID != adaID || created.PhotoID != "P1001" || len(created.Tags) != 2 {
		t.Errorf("created = %+v", created)
	}
	if created.URL != "http://localhost:4000/photo/"+created.FileID {
		t.Errorf("url = %q", created.URL)
	}
	if !strings.HasSuffix(created.FileName, "_gala-night.png") {
		t.Errorf("file name = %q", created.FileName)
	}

	resp = s.do(t, httptest.NewRequest("GET", "/photo/"+created.FileID, nil), "")
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || !bytes.Equal(data, pngBytes) {
		t.Errorf("download = %d, %d bytes", resp.StatusCode, len(data))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}

	resp = s.do(t, httptest.NewRequest("DELETE", "/photo/"+created.FileID, nil), bobTok)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("delete by another alumni = %d", resp.StatusCode)
	}
	resp = s.do(t, httptest.NewRequest("DELETE", "/photo/"+created.FileID, nil), adaTok)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("delete by owner = %d", resp.StatusCode)
	}

	resp = s.do(t, httptest.NewRequest("GET", "/photo/"+created.FileID, nil), "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("download after delete = %d", resp.StatusCode)
	}
	resp = s.do(t, httptest.NewRequest("DELETE", "/photo/"+created.FileID, nil), s.adminToken())
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("second delete = %d", resp.StatusCode)
	}
	if photos, _ := s.svc.Photos.List(context.Background()); len(photos) != 0 {
		t.Errorf("metadata left behind: %+v", photos)
	}
}

func TestUploadRejections(t *testing.T) {
	s := newTestServer(t, stubGenerator{}, 0)
	adaTok, _ := s.alumniToken(t, "Ada", "ada@example.com")

	tests := []struct {
		name   string
		req    *http.Request
		token  string
		status int
	}{
		{"anonymous", uploadRequest(t, "image/png", pngBytes, nil), "", fiber.StatusUnauthorized},
		{"declared non-image", uploadRequest(t, "text/plain", []byte("hello"), nil), adaTok, fiber.StatusBadRequest},
		{"disguised non-image", uploadRequest(t, "image/png", []byte("just text, not a picture"), nil), adaTok, fiber.StatusBadRequest},
		{"as someone else", uploadRequest(t, "image/png", pngBytes, map[string]string{"Alumni_id": "A9999"}), adaTok, fiber.StatusForbidden},
		{"bad tags", uploadRequest(t, "image/png", pngBytes, map[string]string{"Tags": "[1,"}), adaTok, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(t, tt.req, tt.token)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}

	resp := s.do(t, httptest.NewRequest("GET", "/photo/not-an-id", nil), "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("invalid id status = %d", resp.StatusCode)
	}
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAssistantTurn(t *testing.T) {
	s := newTestServer(t, stubGenerator{reply: `query { getAlumniByEmployer(Employer: "Google") { Name Email } }`}, 0)
	adaTok, _ := s.alumniToken(t, "Ada", "ada@example.com")

	resp := s.do(t, postJSON("/assistant/turn", `{"query":"Find all alumni at Google"}`), "")
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("anonymous turn = %d", resp.StatusCode)
	}

	resp = s.do(t, postJSON("/assistant/turn", `{"query":"Find all alumni at Google"}`), adaTok)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("turn status = %d", resp.StatusCode)
	}
	var out struct {
		Turns []assistant.Turn `json:"turns"`
	}
	decodeJSON(t, resp, &out)
	if len(out.Turns) != 3 {
		t.Fatalf("turns = %+v", out.Turns)
	}
	result := out.Turns[2]
	if result.Type != assistant.TurnResult || result.Table == nil || result.Table.Rows[0][1] != "ada@example.com" {
		t.Errorf("result = %+v", result)
	}

	resp = s.do(t, postJSON("/assistant/turn", `{"query":"  "}`), adaTok)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("empty turn = %d", resp.StatusCode)
	}
}

func TestAssistantQueryPassthrough(t *testing.T) {
	s := newTestServer(t, stubGenerator{reply: "query { getEvents { Name } }"}, 0)
	resp := s.do(t, postJSON("/assistant/query", `{"query":"Show events"}`), "")
	var body assistant.QueryResponse
	decodeJSON(t, resp, &body)
	if !body.Success || body.GraphQLQuery != "query { getEvents { Name } }" || body.OriginalQuery != "Show events" {
		t.Errorf("body = %+v", body)
	}

	failing := newTestServer(t, stubGenerator{err: errors.New("connection refused")}, 0)
	resp = failing.do(t, postJSON("/assistant/query", `{"query":"Show events"}`), "")
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Errorf("upstream failure = %d", resp.StatusCode)
	}
	decodeJSON(t, resp, &body)
	if body.Success || !strings.HasPrefix(body.Error, "LLM service error: ") {
		t.Errorf("body = %+v", body)
	}
}

func TestAssistantRateLimit(t *testing.T) {
	s := newTestServer(t, stubGenerator{reply: "query { getEvents { Name } }"}, 1)
	if resp := s.do(t, postJSON("/assistant/query", `{"query":"a"}`), ""); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("first call = %d", resp.StatusCode)
	}
	if resp := s.do(t, postJSON("/assistant/query", `{"query":"b"}`), ""); resp.StatusCode != fiber.StatusTooManyRequests {
		t.Errorf("second call = %d", resp.StatusCode)
	}
}
