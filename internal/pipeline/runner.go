package pipeline

import (
	"context"
	"time"

	"outlook-draft-mailer/internal/auditlog"
	"outlook-draft-mailer/internal/logging"
	"outlook-draft-mailer/internal/models"
	"outlook-draft-mailer/internal/render"
)

// DraftCreator submits one rendered draft and classifies the outcome
type DraftCreator interface {
	Create(ctx context.Context, token string, draft models.Draft) models.SubmissionResult
}

// Personalizer produces an appendable body suffix for a contact, possibly empty
type Personalizer interface {
	Suffix(ctx context.Context, contact models.Contact) string
}

// AuditWriter records one durable row per submitted contact
type AuditWriter interface {
	Append(row auditlog.Row) error
}

// Runner drives the per-contact sequence: render, augment, submit, audit,
// pace. A failure in any single step is isolated to that contact; the batch
// itself only refuses to start when authentication failed upstream.
type Runner struct {
	drafts       DraftCreator
	personalizer Personalizer
	audit        AuditWriter
	subject      string
	body         string
	delay        time.Duration
	sleep        func(time.Duration)
}

// NewRunner wires the orchestrator. personalizer may be nil to disable
// augmentation entirely.
func NewRunner(drafts DraftCreator, personalizer Personalizer, audit AuditWriter, templates models.TemplateConfig, delay time.Duration) *Runner {
	return &Runner{
		drafts:       drafts,
		personalizer: personalizer,
		audit:        audit,
		subject:      templates.Subject,
		body:         templates.Body,
		delay:        delay,
		sleep:        time.Sleep,
	}
}

// Run processes the whole contact list sequentially. Contacts without an
// email address are skipped with a notice and produce no audit row and no
// pacing delay; every other contact produces exactly one audit row.
func (r *Runner) Run(ctx context.Context, token string, contactList []models.Contact) {
	for i, contact := range contactList {
		locallog := logging.Log.WithField("trace_id", contact.TraceID)

		subject := render.Render(r.subject, contact)
		body := render.Render(r.body, contact)

		if r.personalizer != nil {
			if suffix := r.personalizer.Suffix(ctx, contact); suffix != "" {
				body += suffix
			}
		}

		if contact.Email == "" {
			locallog.Infof("Row %d: no email address, skipping", i+1)
			continue
		}

		locallog.Infof("Creating draft for %s", contact.Email)
		result := r.drafts.Create(ctx, token, models.Draft{
			To:      contact.Email,
			Subject: subject,
			Body:    body,
		})

		if err := r.audit.Append(auditlog.Row{
			Email:     contact.Email,
			Company:   contact.Field("company"),
			FirstName: contact.Field("first_name"),
			Subject:   subject,
			DraftID:   result.DraftID,
			Status:    string(result.Status),
		}); err != nil {
			locallog.Errorf("Error writing audit row: %v", err)
		}

		if result.Status == models.StatusSuccess {
			locallog.Infof("Draft created successfully (ID: %s)", result.DraftID)
		} else {
			locallog.Errorf("Draft creation failed: %s", result.Detail)
		}

		if i < len(contactList)-1 {
			r.sleep(r.delay)
		}
	}
}
