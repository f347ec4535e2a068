package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/wardline/server/internal/intake/engine"
	"github.com/wardline/server/internal/intake/model"
	"github.com/wardline/server/internal/intake/repo"
)

type noopPersister struct{}

func (noopPersister) Persist(ctx context.Context, p model.WebhookPayload) error { return nil }

type noopNotifier struct{}

func (noopNotifier) Notify(ctx context.Context, p model.WebhookPayload) error { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := engine.New(engine.Config{
		Sessions: repo.NewMemorySessionRepository(),
		Store:    noopPersister{},
		Notifier: noopNotifier{},
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(eng, []string{"*"})
}

func postChat(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestRootEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %q", resp["status"])
	}
}

func TestChatTurn(t *testing.T) {
	srv := newTestServer(t)

	w := postChat(t, srv, `{"message":"severe chest pain","session_id":"abc"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ChatResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Reply, "full name") {
		t.Errorf("expected a name request, got %q", resp.Reply)
	}
}

func TestChatValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"message":`},
		{"missing session id", `{"message":"hello"}`},
		{"blank session id", `{"message":"hello","session_id":"  "}`},
		{"empty message", `{"message":"","session_id":"abc"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postChat(t, srv, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestChatConversationFlow(t *testing.T) {
	srv := newTestServer(t)

	replies := make([]string, 0, 3)
	for _, msg := range []string{"severe chest pain", "John Smith", "34"} {
		w := postChat(t, srv, `{"message":"`+msg+`","session_id":"flow"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("turn %q: status %d", msg, w.Code)
		}
		var resp ChatResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		replies = append(replies, resp.Reply)
	}

	if !strings.Contains(replies[1], "age") {
		t.Errorf("turn 2 should ask for age: %q", replies[1])
	}
	if !strings.Contains(replies[2], "Emergency Ward") {
		t.Errorf("turn 3 should complete with the ward name: %q", replies[2])
	}
}

func TestCreateSession(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(resp["session_id"]); err != nil {
		t.Errorf("session_id is not a uuid: %q", resp["session_id"])
	}
}
