package services

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/tlmkt-assign/pkg/db"
)

func TestExportAssignmentsCSV(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	records := []db.AssignmentRecord{
		{
			AssignmentDate: date,
			Operator:       "Ana",
			CampaignName:   "Reactivación",
			UserID:         42,
			Username:       "u42",
			FullName:       "User FortyTwo",
			Phone:          "+52123",
			Level:          2,
			Currency:       "MXN",
			LastActivity:   "2025-01-15",
		},
	}

	path, err := ExportAssignmentsCSV(dir, date, records)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "assignments_2025-03-03.csv"), path)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"2025-03-03", "Ana", "Reactivación", "42", "u42", "User FortyTwo", "+52123", "2", "MXN", "2025-01-15",
	}, rows[1])
}

func TestExportAssignmentsCSV_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	path, err := ExportAssignmentsCSV(dir, date, nil)
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
