package models

// Contact represents one normalized spreadsheet row. Fields holds every column
// by name with missing cells already blanked out; Email duplicates the "email"
// column because it decides whether the contact is processable at all.
type Contact struct {
	TraceID string
	Email   string
	Fields  map[string]string
}

// Field returns the named field value, or an empty string if the column is absent
func (c Contact) Field(name string) string {
	return c.Fields[name]
}
