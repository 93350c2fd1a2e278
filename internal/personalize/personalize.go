package personalize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"outlook-draft-mailer/internal/logging"
	"outlook-draft-mailer/internal/models"
)

// maxSuffixLen caps the appended sentence so a chatty completion cannot bloat the draft
const maxSuffixLen = 200

// Client calls a chat-completions endpoint to produce one short personalized
// sentence per contact. It degrades to a no-op: with no API key it returns
// an empty suffix without touching the network, and any request failure is
// logged and swallowed so the batch is never interrupted.
type Client struct {
	apiKey     string
	endpoint   string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// New creates a personalization client from the service configuration.
// An empty apiKey produces a client that is permanently a no-op.
func New(cfg models.OpenAIConfig, apiKey string) *Client {
	return &Client{
		apiKey:    apiKey,
		endpoint:  cfg.Endpoint,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Suffix returns an appendable personalization suffix for the contact,
// prefixed with a blank line, or an empty string when personalization is
// unavailable or fails.
func (c *Client) Suffix(ctx context.Context, contact models.Contact) string {
	if c.apiKey == "" {
		return ""
	}

	locallog := logging.Log.WithField("trace_id", contact.TraceID)

	payload, err := json.Marshal(chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: buildPrompt(contact)}},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		locallog.Errorf("AI personalization failed: %v", err)
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		locallog.Errorf("AI personalization failed: %v", err)
		return ""
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		locallog.Errorf("AI personalization failed: %v", err)
		return ""
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		locallog.Errorf("AI personalization failed: HTTP %d: %s", resp.StatusCode, body)
		return ""
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		locallog.Errorf("AI personalization failed: %v", err)
		return ""
	}
	if len(parsed.Choices) == 0 {
		locallog.Error("AI personalization failed: empty choices in response")
		return ""
	}

	sentence := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if sentence == "" {
		return ""
	}
	if len(sentence) > maxSuffixLen {
		sentence = sentence[:maxSuffixLen-3] + "..."
	}

	return "\n\n" + sentence
}

// buildPrompt assembles a bounded prompt from the four fields the completion
// is allowed to see; absent fields appear as blanks rather than being omitted.
func buildPrompt(contact models.Contact) string {
	return fmt.Sprintf(`Based on this contact info, write a brief, personalized sentence (max 35 words) to add to a cold email:
Name: %s %s
Company: %s
Role: %s
Observation: %s

Write a natural, genuine-sounding personalization:`,
		contact.Field("first_name"),
		contact.Field("last_name"),
		contact.Field("company"),
		contact.Field("role"),
		contact.Field("observation"),
	)
}
