package personalize

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

func testContact() models.Contact {
	return models.Contact{
		TraceID: "test-trace",
		Email:   "ada@example.com",
		Fields: map[string]string{
			"first_name":  "Ada",
			"last_name":   "Lovelace",
			"company":     "Analytical Engines",
			"role":        "Engineer",
			"observation": "published the first algorithm",
		},
	}
}

func chatFixture(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(body)
}

func testConfig(endpoint string) models.OpenAIConfig {
	return models.OpenAIConfig{
		Endpoint:       endpoint,
		Model:          "gpt-3.5-turbo",
		MaxTokens:      50,
		TimeoutSeconds: 5,
	}
}

func TestSuffix_NoAPIKeyMakesNoCalls(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(chatFixture("hello")))
	}))
	defer server.Close()

	client := New(testConfig(server.URL), "")

	for i := 0; i < 3; i++ {
		if got := client.Suffix(context.Background(), testContact()); got != "" {
			t.Errorf("Suffix() = %q, want empty without API key", got)
		}
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("expected zero network calls without API key, got %d", n)
	}
}

func TestSuffix_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer test-key", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("request body not decodable: %v", err)
		}
		if req.MaxTokens != 50 {
			t.Errorf("max_tokens = %d, want 50", req.MaxTokens)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "Ada") {
			t.Errorf("prompt does not carry contact fields: %+v", req.Messages)
		}
		_, _ = w.Write([]byte(chatFixture("  Loved your recent work.  ")))
	}))
	defer server.Close()

	client := New(testConfig(server.URL), "test-key")

	got := client.Suffix(context.Background(), testContact())
	if got != "\n\nLoved your recent work." {
		t.Errorf("Suffix() = %q", got)
	}
}

func TestSuffix_TruncatesLongCompletions(t *testing.T) {
	long := strings.Repeat("x", 300)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chatFixture(long)))
	}))
	defer server.Close()

	client := New(testConfig(server.URL), "test-key")

	got := client.Suffix(context.Background(), testContact())
	suffix := strings.TrimPrefix(got, "\n\n")
	if len(suffix) != maxSuffixLen {
		t.Errorf("suffix length = %d, want %d", len(suffix), maxSuffixLen)
	}
	if !strings.HasSuffix(suffix, "...") {
		t.Errorf("truncated suffix missing ellipsis marker: %q", suffix[len(suffix)-10:])
	}
}

func TestSuffix_DegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "Non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			},
		},
		{
			name: "Malformed response body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
		{
			name: "Empty choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"choices": []}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := New(testConfig(server.URL), "test-key")
			if got := client.Suffix(context.Background(), testContact()); got != "" {
				t.Errorf("Suffix() = %q, want empty on failure", got)
			}
		})
	}
}

func TestSuffix_TransportErrorReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := New(testConfig(server.URL), "test-key")
	if got := client.Suffix(context.Background(), testContact()); got != "" {
		t.Errorf("Suffix() = %q, want empty on transport error", got)
	}
}
