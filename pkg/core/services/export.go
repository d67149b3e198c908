package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jortega/tlmkt-assign/pkg/db"
)

// csvHeader matches the layout the call-center tooling imports.
var csvHeader = []string{
	"assignment_date",
	"operator",
	"campaign_name",
	"user_id",
	"username",
	"full_name",
	"phone",
	"level",
	"currency",
	"last_activity",
}

// ExportAssignmentsCSV writes the batch to a dated CSV file inside dir,
// creating the directory if needed. Returns the file path.
func ExportAssignmentsCSV(dir string, date time.Time, records []db.AssignmentRecord) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("assignments_%s.csv", date.Format("2006-01-02")))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.AssignmentDate.Format("2006-01-02"),
			rec.Operator,
			rec.CampaignName,
			strconv.FormatInt(rec.UserID, 10),
			rec.Username,
			rec.FullName,
			rec.Phone,
			strconv.Itoa(rec.Level),
			rec.Currency,
			rec.LastActivity,
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}

	return path, nil
}
