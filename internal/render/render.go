package render

import (
	"bytes"
	"text/template"

	"outlook-draft-mailer/internal/logging"
	"outlook-draft-mailer/internal/models"
)

// Render substitutes {{.column}} placeholders in the template text with the
// contact's field values. Placeholders naming an absent column render as empty
// strings. Rendering never fails upward: on a malformed template or an
// execution error the raw template text is returned verbatim so the batch can
// keep going with an unpersonalized message.
func Render(templateText string, contact models.Contact) string {
	t, err := template.New("message").Option("missingkey=zero").Parse(templateText)
	if err != nil {
		logging.Log.WithField("trace_id", contact.TraceID).Errorf("Template parsing error: %v", err)
		return templateText
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, contact.Fields); err != nil {
		logging.Log.WithField("trace_id", contact.TraceID).Errorf("Template rendering error: %v", err)
		return templateText
	}

	return buf.String()
}
