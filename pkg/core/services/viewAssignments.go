package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jortega/tlmkt-assign/pkg/db"
)

// AssignmentsView is one day's stored assignments plus the derived
// totals the CLI prints.
type AssignmentsView struct {
	Date           time.Time
	Records        []db.AssignmentRecord
	OperatorTotals []OperatorTotal
	CampaignTotals []CampaignTotal
}

// ViewAssignments loads the assignments stored for a date.
func ViewAssignments(
	ctx context.Context,
	warehouse db.Warehouse,
	logger *zap.Logger,
	date time.Time,
) (*AssignmentsView, error) {
	date = startOfDay(date)
	logger.Debug("Loading assignments", zap.String("date", date.Format("2006-01-02")))

	records, err := warehouse.GetAssignmentsOn(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	return &AssignmentsView{
		Date:           date,
		Records:        records,
		OperatorTotals: SummarizeByOperator(records),
		CampaignTotals: SummarizeByCampaign(records),
	}, nil
}
