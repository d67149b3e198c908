package postgres

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jortega/tlmkt-assign/pkg/core/model"
)

// Segment table names come from a spreadsheet and are interpolated into
// queries, so they are restricted to plain identifiers.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// GetAvailableLeads reads candidate leads from the given segment
// tables in order. Rows without a usable phone number or outside
// levels 1-3 are filtered in the query.
func (d *DB) GetAvailableLeads(ctx context.Context, tables []string) ([]model.Lead, error) {
	var leads []model.Lead

	for _, table := range tables {
		if !identifierPattern.MatchString(table) {
			return nil, fmt.Errorf("invalid segment table name %q", table)
		}

		query := fmt.Sprintf(`
			SELECT user_id, COALESCE(campaign_name, ''), username, full_name, phone, level, currency, COALESCE(last_activity, '')
			FROM %s
			WHERE level IN (1, 2, 3)
			  AND phone IS NOT NULL
			  AND phone <> ''
		`, table)

		rows, err := d.pool.Query(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to query segment table %s: %w", table, err)
		}

		for rows.Next() {
			var lead model.Lead
			if err := rows.Scan(
				&lead.UserID,
				&lead.Campaign,
				&lead.Username,
				&lead.FullName,
				&lead.Phone,
				&lead.Level,
				&lead.Currency,
				&lead.LastActivity,
			); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan lead from %s: %w", table, err)
			}
			leads = append(leads, lead)
		}

		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error iterating leads from %s: %w", table, err)
		}
		rows.Close()
	}

	return leads, nil
}
