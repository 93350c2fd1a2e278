package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"outlook-draft-mailer/internal/models"
)

// Drafts submits rendered messages to the mail API as draft messages in the
// authenticated user's mailbox. One POST per contact, no retries; outcome
// classification is the caller's only signal.
type Drafts struct {
	endpoint   string
	httpClient *http.Client
}

// NewDrafts creates a draft submitter against the given Graph API endpoint
func NewDrafts(endpoint string) *Drafts {
	return &Drafts{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type draftRequest struct {
	Subject      string      `json:"subject"`
	Body         itemBody    `json:"body"`
	ToRecipients []recipient `json:"toRecipients"`
}

type itemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type recipient struct {
	EmailAddress emailAddress `json:"emailAddress"`
}

type emailAddress struct {
	Address string `json:"address"`
}

// Create posts one draft and classifies the HTTP outcome. An empty token
// short-circuits to a failure without a network call. HTTP 201 is the only
// success; any other status or a transport error becomes a Failure with a
// human-readable detail.
func (d *Drafts) Create(ctx context.Context, token string, draft models.Draft) models.SubmissionResult {
	if token == "" {
		return models.Failure("no access token")
	}

	payload, err := json.Marshal(draftRequest{
		Subject: draft.Subject,
		Body: itemBody{
			ContentType: "Text",
			Content:     draft.Body,
		},
		ToRecipients: []recipient{
			{EmailAddress: emailAddress{Address: draft.To}},
		},
	})
	if err != nil {
		return models.Failure(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint+"/me/messages", bytes.NewReader(payload))
	if err != nil {
		return models.Failure(err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return models.Failure(err.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return models.Failure(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, body))
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil || created.ID == "" {
		// The draft exists even if the response body is unusable; report
		// success with a placeholder ID rather than a false failure.
		return models.Success("unknown")
	}

	return models.Success(created.ID)
}
