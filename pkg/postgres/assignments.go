package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jortega/tlmkt-assign/pkg/db"
)

// GetAssignedPairsBetween returns the (user, campaign) pairs assigned
// on dates in [since, before). Used to exclude recently worked leads
// from a new batch.
func (d *DB) GetAssignedPairsBetween(ctx context.Context, since, before time.Time) ([]db.AssignedPair, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT DISTINCT user_id, campaign_name
		FROM daily_assignment
		WHERE assignment_date >= $1 AND assignment_date < $2
	`, since, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query assigned pairs: %w", err)
	}
	defer rows.Close()

	var pairs []db.AssignedPair
	for rows.Next() {
		var pair db.AssignedPair
		if err := rows.Scan(&pair.UserID, &pair.CampaignName); err != nil {
			return nil, fmt.Errorf("failed to scan assigned pair: %w", err)
		}
		pairs = append(pairs, pair)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assigned pairs: %w", err)
	}

	return pairs, nil
}

// HasAssignmentsOn reports whether any assignments already exist for
// the given date. A batch never runs twice for the same day.
func (d *DB) HasAssignmentsOn(ctx context.Context, date time.Time) (bool, error) {
	var exists bool
	err := d.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM daily_assignment WHERE assignment_date = $1)
	`, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing assignments: %w", err)
	}

	return exists, nil
}

// GetAssignmentsOn returns the assignment rows stored for a date,
// ordered by operator then campaign.
func (d *DB) GetAssignmentsOn(ctx context.Context, date time.Time) ([]db.AssignmentRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, assignment_date, operator, campaign_name, user_id, username, full_name, phone, level, currency, last_activity
		FROM daily_assignment
		WHERE assignment_date = $1
		ORDER BY operator, campaign_name, user_id
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var records []db.AssignmentRecord
	for rows.Next() {
		var rec db.AssignmentRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.AssignmentDate,
			&rec.Operator,
			&rec.CampaignName,
			&rec.UserID,
			&rec.Username,
			&rec.FullName,
			&rec.Phone,
			&rec.Level,
			&rec.Currency,
			&rec.LastActivity,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignment record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return records, nil
}

// InsertAssignments inserts assignment records in a single transaction
func (d *DB) InsertAssignments(ctx context.Context, records []db.AssignmentRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range records {
		_, err := tx.Exec(ctx, `
			INSERT INTO daily_assignment (id, assignment_date, operator, campaign_name, user_id, username, full_name, phone, level, currency, last_activity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, rec.ID, rec.AssignmentDate, rec.Operator, rec.CampaignName, rec.UserID, rec.Username, rec.FullName, rec.Phone, rec.Level, rec.Currency, rec.LastActivity)
		if err != nil {
			return fmt.Errorf("failed to insert assignment record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
