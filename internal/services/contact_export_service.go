package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/winslowhq/cordial/internal/models"
)

var ContactCSVHeaders = []string{"Name", "Email", "Phone", "Company", "Title", "Notes"}

// ExportCSV renders the workspace's contacts as CSV with a fixed header
// row.
func (service *ContactService) ExportCSV(callerID uint, workspaceID uint) ([]byte, error) {
	contacts, err := service.List(callerID, workspaceID)
	if err != nil {
		return nil, err
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(ContactCSVHeaders); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, contact := range contacts {
		record := []string{
			contact.Name,
			contact.Email,
			contact.Phone,
			contact.Company,
			contact.Title,
			contact.Notes,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return output.Bytes(), nil
}

// ImportCSV reads header-mapped contact rows and inserts the valid ones in
// one batch. Rows without a name are skipped, not fatal. Returns the
// number imported.
func (service *ContactService) ImportCSV(callerID uint, workspaceID uint, input io.Reader) (int, error) {
	if err := service.roles.RequireRole(callerID, workspaceID, contactWriteRoles...); err != nil {
		return 0, err
	}

	reader := csv.NewReader(input)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("%w: unreadable csv header", ErrValidation)
	}
	columns := make(map[string]int, len(header))
	for index, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = index
	}
	if _, ok := columns["name"]; !ok {
		return 0, fmt.Errorf("%w: csv header missing name column", ErrValidation)
	}

	field := func(record []string, column string) string {
		index, ok := columns[column]
		if !ok || index >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[index])
	}

	now := time.Now()
	contacts := make([]models.Contact, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: malformed csv row", ErrValidation)
		}

		name := field(record, "name")
		if name == "" {
			continue
		}
		contacts = append(contacts, models.Contact{
			WorkspaceID: workspaceID,
			Name:        name,
			Email:       NormalizeEmail(field(record, "email")),
			Phone:       field(record, "phone"),
			Company:     field(record, "company"),
			Title:       field(record, "title"),
			Notes:       field(record, "notes"),
			CreatedAt:   now,
		})
	}

	if err := service.contacts.CreateBatch(contacts); err != nil {
		return 0, fmt.Errorf("store imported contacts: %w", err)
	}
	return len(contacts), nil
}
