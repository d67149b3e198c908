package db

import (
	"context"
	"time"

	"github.com/jortega/tlmkt-assign/pkg/core/model"
)

// Warehouse defines the interface for lead warehouse operations.
// postgres.DB implements this interface; the services package also
// accepts test doubles.
type Warehouse interface {
	GetAvailableLeads(ctx context.Context, tables []string) ([]model.Lead, error)
	GetAssignedPairsBetween(ctx context.Context, since, before time.Time) ([]AssignedPair, error)
	HasAssignmentsOn(ctx context.Context, date time.Time) (bool, error)
	GetAssignmentsOn(ctx context.Context, date time.Time) ([]AssignmentRecord, error)
	InsertAssignments(ctx context.Context, records []AssignmentRecord) error
}
