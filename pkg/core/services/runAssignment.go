package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jortega/tlmkt-assign/internal/config"
	"github.com/jortega/tlmkt-assign/pkg/core/assigner"
	"github.com/jortega/tlmkt-assign/pkg/core/model"
	"github.com/jortega/tlmkt-assign/pkg/db"
)

// Currencies the business never assigns, regardless of the sheet
// parameters.
var hardExcludedCurrencies = []string{"CAD", "ARS", "BRL"}

// ConfigSheetClient defines the spreadsheet operations a batch run needs
type ConfigSheetClient interface {
	ListOperators(spreadsheetID, tab string) ([]model.Operator, error)
	GetAssignmentParams(spreadsheetID, tab string) (*model.AssignmentParams, error)
	GetSegmentTables(spreadsheetID, tab string) ([]string, error)
	AppendRows(spreadsheetID, sheetRange string, values [][]interface{}) error
}

// RunOptions controls a single batch run
type RunOptions struct {
	Date   time.Time
	DryRun bool
	Force  bool
}

// RunResult is the outcome of a batch run, including what was skipped
// and why.
type RunResult struct {
	Date           time.Time
	Records        []db.AssignmentRecord
	OperatorTotals []OperatorTotal
	CampaignTotals []CampaignTotal
	LeftoverCount  int
	Diagnostics    assigner.Diagnostics
	Persisted      bool
	ExportPath     string

	// SkipReason is set when the run stopped before allocating
	// anything, e.g. off-schedule or already assigned.
	SkipReason string
}

// RunDailyAssignment executes the full daily batch: it loads the run
// parameters, roster and candidate leads, filters out excluded
// currencies and recently assigned users, allocates leads to operators,
// and persists the result unless this is a dry run.
func RunDailyAssignment(
	ctx context.Context,
	warehouse db.Warehouse,
	sheets ConfigSheetClient,
	cfg *config.Config,
	logger *zap.Logger,
	opts RunOptions,
) (*RunResult, error) {
	date := startOfDay(opts.Date)
	logger.Info("Starting daily assignment",
		zap.String("date", date.Format("2006-01-02")),
		zap.Bool("dry_run", opts.DryRun),
		zap.Bool("force", opts.Force))

	if cfg.RunSchedule != "" && !opts.Force {
		scheduled, err := isScheduledDay(cfg.RunSchedule, date)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate run schedule: %w", err)
		}
		if !scheduled {
			logger.Info("Not a scheduled run day, skipping", zap.String("schedule", cfg.RunSchedule))
			return &RunResult{Date: date, SkipReason: "not a scheduled run day"}, nil
		}
	}

	if !opts.DryRun {
		exists, err := warehouse.HasAssignmentsOn(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing assignments: %w", err)
		}
		if exists {
			logger.Warn("Assignments already exist for date, skipping",
				zap.String("date", date.Format("2006-01-02")))
			return &RunResult{Date: date, SkipReason: "assignments already exist for this date"}, nil
		}
	}

	logger.Debug("Loading assignment parameters")
	params, err := sheets.GetAssignmentParams(cfg.ConfigSheetID, cfg.ParamsTab)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment parameters: %w", err)
	}

	logger.Debug("Loading segment tables")
	tables, err := sheets.GetSegmentTables(cfg.ConfigSheetID, cfg.SegmentsTab)
	if err != nil {
		return nil, fmt.Errorf("failed to load segment tables: %w", err)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no segment tables configured")
	}

	logger.Debug("Loading operator roster")
	operators, err := sheets.ListOperators(cfg.RosterSheetID, cfg.RosterTab)
	if err != nil {
		return nil, fmt.Errorf("failed to load operators: %w", err)
	}
	if len(operators) == 0 {
		return nil, fmt.Errorf("no active operators in roster")
	}
	logger.Info("Roster loaded", zap.Int("operators", len(operators)))

	logger.Debug("Loading candidate leads", zap.Int("segment_tables", len(tables)))
	leads, err := warehouse.GetAvailableLeads(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to load leads: %w", err)
	}
	logger.Info("Candidate leads loaded", zap.Int("leads", len(leads)))

	cutoff := date.AddDate(0, 0, -params.DaysAgoToDiscard)
	logger.Debug("Loading assignment history",
		zap.String("since", cutoff.Format("2006-01-02")),
		zap.String("before", date.Format("2006-01-02")))
	assignedPairs, err := warehouse.GetAssignedPairsBetween(ctx, cutoff, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment history: %w", err)
	}

	pool := prepareLeads(leads, params, assignedPairs)
	logger.Info("Lead pool prepared",
		zap.Int("eligible", len(pool)),
		zap.Int("discarded", len(leads)-len(pool)))

	outcome := assigner.Run(assigner.Input{
		Leads:     pool,
		Operators: operators,
		Params:    *params,
		Seed:      cfg.Seed,
	})

	logger.Info("Allocation completed",
		zap.Int("assigned", len(outcome.Assignments)),
		zap.Int("leftover", len(outcome.Leftover)),
		zap.Int("skipped_operators", outcome.Diagnostics.SkippedOperators))
	for _, campaign := range outcome.Diagnostics.MissingPools {
		logger.Warn("No leads available for campaign", zap.String("campaign", campaign))
	}
	for _, campaign := range outcome.Diagnostics.EmptyOperatorCampaigns {
		logger.Warn("No operator quota for campaign", zap.String("campaign", campaign))
	}

	records := buildRecords(outcome.Assignments, date)

	result := &RunResult{
		Date:           date,
		Records:        records,
		OperatorTotals: SummarizeByOperator(records),
		CampaignTotals: SummarizeByCampaign(records),
		LeftoverCount:  len(outcome.Leftover),
		Diagnostics:    outcome.Diagnostics,
	}

	// The CSV is written even on a dry run; only the warehouse and the
	// results sheet are spared.
	if cfg.ExportDir != "" {
		exportPath, err := ExportAssignmentsCSV(cfg.ExportDir, date, records)
		if err != nil {
			return nil, fmt.Errorf("failed to export assignments: %w", err)
		}
		result.ExportPath = exportPath
		logger.Info("Assignments exported", zap.String("path", exportPath))
	}

	if opts.DryRun {
		logger.Info("Dry run, nothing persisted")
		return result, nil
	}

	if err := warehouse.InsertAssignments(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to persist assignments: %w", err)
	}
	result.Persisted = true
	logger.Info("Assignments persisted", zap.Int("records", len(records)))

	if cfg.ResultsSheetID != "" && cfg.ResultsTab != "" {
		if err := sheets.AppendRows(cfg.ResultsSheetID, cfg.ResultsTab, assignmentRows(records)); err != nil {
			return nil, fmt.Errorf("failed to publish assignments to results sheet: %w", err)
		}
		logger.Info("Assignments published to results sheet", zap.Int("rows", len(records)))
	}

	return result, nil
}

// assignmentRows converts records to spreadsheet rows in the same
// column order as the CSV export.
func assignmentRows(records []db.AssignmentRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []interface{}{
			rec.AssignmentDate.Format("2006-01-02"),
			rec.Operator,
			rec.CampaignName,
			rec.UserID,
			rec.Username,
			rec.FullName,
			rec.Phone,
			rec.Level,
			rec.Currency,
			rec.LastActivity,
		})
	}
	return rows
}

// prepareLeads normalizes campaign labels, drops excluded currencies,
// deduplicates by user ID keeping the first occurrence, and removes
// users assigned under the same campaign within the history window. A
// user appearing in several segment tables enters the snapshot exactly
// once, under the first campaign seen.
func prepareLeads(leads []model.Lead, params *model.AssignmentParams, history []db.AssignedPair) []model.Lead {
	excluded := make(map[string]bool, len(hardExcludedCurrencies)+len(params.CurrenciesToFilter))
	for _, currency := range hardExcludedCurrencies {
		excluded[currency] = true
	}
	for _, currency := range params.CurrenciesToFilter {
		excluded[currency] = true
	}

	type pair struct {
		userID   int64
		campaign string
	}
	recentlyAssigned := make(map[pair]bool, len(history))
	for _, h := range history {
		recentlyAssigned[pair{h.UserID, model.NormalizeCampaignCode(h.CampaignName)}] = true
	}

	seen := make(map[int64]bool, len(leads))
	var pool []model.Lead
	for _, lead := range leads {
		lead.Campaign = model.NormalizeCampaignCode(lead.Campaign)

		if excluded[lead.Currency] {
			continue
		}

		// Dedupe before the history check: a duplicate never gets a
		// second chance under another campaign.
		if seen[lead.UserID] {
			continue
		}
		seen[lead.UserID] = true

		if recentlyAssigned[pair{lead.UserID, lead.Campaign}] {
			continue
		}

		pool = append(pool, lead)
	}

	return pool
}

// buildRecords converts engine assignments into warehouse rows. The
// campaign column keeps the lead's origin campaign display label, which
// is what the history exclusion matches against on later runs.
func buildRecords(assignments []model.Assignment, date time.Time) []db.AssignmentRecord {
	records := make([]db.AssignmentRecord, 0, len(assignments))
	for _, a := range assignments {
		records = append(records, db.AssignmentRecord{
			ID:             uuid.New().String(),
			AssignmentDate: date,
			Operator:       a.Operator,
			CampaignName:   model.CampaignDisplayName(a.Lead.Campaign),
			UserID:         a.Lead.UserID,
			Username:       a.Lead.Username,
			FullName:       a.Lead.FullName,
			Phone:          a.Lead.Phone,
			Level:          a.Lead.Level,
			Currency:       a.Lead.Currency,
			LastActivity:   a.Lead.LastActivity,
		})
	}
	return records
}

// isScheduledDay reports whether the date is an occurrence of the
// recurrence rule.
func isScheduledDay(schedule string, date time.Time) (bool, error) {
	rule, err := rrule.StrToRRule(schedule)
	if err != nil {
		return false, fmt.Errorf("invalid rrule %q: %w", schedule, err)
	}

	// Anchor the rule before the date under test so Between sees it.
	rule.DTStart(date.AddDate(0, -1, 0))

	dayStart := startOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Second)
	return len(rule.Between(dayStart, dayEnd, true)) > 0, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
