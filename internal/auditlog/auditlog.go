package auditlog

import (
	"encoding/csv"
	"fmt"
	"os"
)

var header = []string{"email", "company", "first_name", "subject", "draft_id", "status"}

// Row is one durable record of a single contact's processing outcome
type Row struct {
	Email     string
	Company   string
	FirstName string
	Subject   string
	DraftID   string
	Status    string
}

// Writer appends audit rows to a CSV file, creating it with a header row on
// first use. Single-writer by contract; the orchestrator is sequential.
type Writer struct {
	path string
}

// NewWriter creates an audit writer for the given log file path
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Append writes one row, opening and closing the file per call so every row
// is durable the moment Append returns.
func (w *Writer) Append(row Row) error {
	_, statErr := os.Stat(w.path)
	needHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("error opening audit log: %w", err)
	}

	cw := csv.NewWriter(f)
	if needHeader {
		if err := cw.Write(header); err != nil {
			_ = f.Close()
			return fmt.Errorf("error writing audit header: %w", err)
		}
	}
	if err := cw.Write([]string{row.Email, row.Company, row.FirstName, row.Subject, row.DraftID, row.Status}); err != nil {
		_ = f.Close()
		return fmt.Errorf("error writing audit row: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("error flushing audit log: %w", err)
	}

	return f.Close()
}
