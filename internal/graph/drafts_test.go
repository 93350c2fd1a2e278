package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"outlook-draft-mailer/internal/models"
)

func testDraft() models.Draft {
	return models.Draft{
		To:      "ada@example.com",
		Subject: "Hello Ada",
		Body:    "Quick note about the engine.",
	}
}

func TestCreate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/me/messages" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}

		var req draftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("request body not decodable: %v", err)
		}
		if req.Body.ContentType != "Text" {
			t.Errorf("contentType = %q, want Text", req.Body.ContentType)
		}
		if len(req.ToRecipients) != 1 || req.ToRecipients[0].EmailAddress.Address != "ada@example.com" {
			t.Errorf("toRecipients = %+v", req.ToRecipients)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "AAMk-example"}`))
	}))
	defer server.Close()

	result := NewDrafts(server.URL).Create(context.Background(), "test-token", testDraft())
	if result.Status != models.StatusSuccess {
		t.Fatalf("Status = %q, want success (detail: %s)", result.Status, result.Detail)
	}
	if result.DraftID != "AAMk-example" {
		t.Errorf("DraftID = %q, want AAMk-example", result.DraftID)
	}
}

func TestCreate_NonCreatedStatusIsFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"Throttled", http.StatusTooManyRequests, "slow down"},
		{"Unauthorized", http.StatusUnauthorized, "token expired"},
		{"ServerError", http.StatusInternalServerError, "oops"},
		{"OKIsNotCreated", http.StatusOK, "unexpected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			result := NewDrafts(server.URL).Create(context.Background(), "test-token", testDraft())
			if result.Status != models.StatusError {
				t.Fatalf("Status = %q, want error", result.Status)
			}
			if !strings.Contains(result.Detail, tt.body) {
				t.Errorf("Detail = %q, want it to carry the response body", result.Detail)
			}
		})
	}
}

func TestCreate_EmptyTokenMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	result := NewDrafts(server.URL).Create(context.Background(), "", testDraft())
	if result.Status != models.StatusError {
		t.Fatalf("Status = %q, want error without token", result.Status)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("expected zero network calls without token, got %d", n)
	}
}

func TestCreate_TransportErrorIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	result := NewDrafts(server.URL).Create(context.Background(), "test-token", testDraft())
	if result.Status != models.StatusError {
		t.Fatalf("Status = %q, want error on transport failure", result.Status)
	}
	if result.Detail == "" {
		t.Error("Detail empty, want transport error description")
	}
}
