package notion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ntask/internal/clock"
	"ntask/internal/config"
)

// recordedRequest is one request seen by the fake store.
type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// fakeStore is an httptest server that records requests and replies with
// a fixed status and body.
type fakeStore struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
	server   *httptest.Server
}

func newFakeStore(t *testing.T, status int, body string) *fakeStore {
	t.Helper()
	fs := &fakeStore{status: status, body: body}
	fs.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		fs.mu.Lock()
		fs.requests = append(fs.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   data,
		})
		fs.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fs.status)
		_, _ = io.WriteString(w, fs.body)
	}))
	t.Cleanup(fs.server.Close)
	return fs
}

func (fs *fakeStore) calls() []recordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]recordedRequest, len(fs.requests))
	copy(out, fs.requests)
	return out
}

func (fs *fakeStore) lastBody(t *testing.T) map[string]any {
	t.Helper()
	calls := fs.calls()
	if len(calls) == 0 {
		t.Fatal("expected at least one request")
	}
	var m map[string]any
	if err := json.Unmarshal(calls[len(calls)-1].Body, &m); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	return m
}

var fixedDay = time.Date(2026, 2, 20, 10, 0, 0, 0, time.Local)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Notion: config.NotionConfig{
			Token:           "secret-token",
			DatabaseID:      "db-123",
			MediaDatabaseID: "media-456",
			BaseURL:         baseURL,
			Version:         config.DefaultNotionVersion,
		},
	}
}

func newTestClient(t *testing.T, fs *fakeStore) *Client {
	t.Helper()
	c, err := New(context.Background(), testConfig(fs.server.URL), WithClock(clock.Fixed(fixedDay)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_RequiresCredentials(t *testing.T) {
	cfg := testConfig("http://unused")
	cfg.Notion.Token = ""
	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("expected error without token")
	}
}

func TestClient_SendsRequiredHeaders(t *testing.T) {
	fs := newFakeStore(t, http.StatusOK, `{"results":[]}`)
	c := newTestClient(t, fs)

	if _, err := c.ListTasks(context.Background(), queryAll); err != nil {
		t.Fatalf("ListTasks: %v", err)
	}

	calls := fs.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 request, got %d", len(calls))
	}
	h := calls[0].Header
	if got := h.Get("Authorization"); got != "Bearer secret-token" {
		t.Errorf("unexpected Authorization %q", got)
	}
	if got := h.Get("Notion-Version"); got != "2022-06-28" {
		t.Errorf("unexpected Notion-Version %q", got)
	}
	if got := h.Get("Content-Type"); got != "application/json" {
		t.Errorf("unexpected Content-Type %q", got)
	}
}

func TestClient_TransportError(t *testing.T) {
	fs := newFakeStore(t, http.StatusOK, `{}`)
	c := newTestClient(t, fs)
	fs.server.Close()

	_, err := c.ListTasks(context.Background(), queryAll)
	if err == nil {
		t.Fatal("expected error from closed server")
	}
}
