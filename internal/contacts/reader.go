package contacts

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"outlook-draft-mailer/internal/models"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// EmailColumn is the one column a contact file must provide for a row to be submittable
const EmailColumn = "email"

// Load reads an ordered contact list from an .xlsx sheet or a .csv file.
// Column names become field names; missing or blank cells are normalized to
// empty strings so templates can reference any column safely. For .csv input
// the sheet name is ignored.
func Load(path, sheet string) ([]models.Contact, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadExcel(path, sheet)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported contact file format %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

func loadExcel(path, sheet string) ([]models.Contact, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening spreadsheet: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheet, err)
	}

	return fromRows(rows), nil
}

func loadCSV(path string) ([]models.Contact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening contact file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // short rows are padded during normalization

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing contact file: %w", err)
	}

	return fromRows(rows), nil
}

// fromRows turns a header row plus data rows into normalized contacts. Every
// contact gets a trace ID at ingestion so log lines and audit rows can be
// correlated across the pipeline.
func fromRows(rows [][]string) []models.Contact {
	if len(rows) < 2 {
		return nil
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	contactList := make([]models.Contact, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			fields[name] = value
		}

		contactList = append(contactList, models.Contact{
			TraceID: uuid.New().String(),
			Email:   fields[EmailColumn],
			Fields:  fields,
		})
	}

	return contactList
}
