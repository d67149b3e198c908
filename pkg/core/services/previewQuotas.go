package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jortega/tlmkt-assign/internal/config"
	"github.com/jortega/tlmkt-assign/pkg/core/assigner"
)

// QuotaPreview shows how the per-operator base count would split across
// campaigns for the current roster, without touching any leads.
type QuotaPreview struct {
	Campaigns        []CampaignQuotas
	TotalQuota       int
	SkippedOperators int
}

// CampaignQuotas lists the operator quotas for one campaign
type CampaignQuotas struct {
	Campaign string
	Quotas   []assigner.OperatorQuota
}

// PreviewQuotas derives the quota table from the roster and the sheet
// parameters and returns it for display.
func PreviewQuotas(
	sheets ConfigSheetClient,
	cfg *config.Config,
	logger *zap.Logger,
) (*QuotaPreview, error) {
	logger.Debug("Loading assignment parameters")
	params, err := sheets.GetAssignmentParams(cfg.ConfigSheetID, cfg.ParamsTab)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment parameters: %w", err)
	}

	logger.Debug("Loading operator roster")
	operators, err := sheets.ListOperators(cfg.RosterSheetID, cfg.RosterTab)
	if err != nil {
		return nil, fmt.Errorf("failed to load operators: %w", err)
	}
	if len(operators) == 0 {
		return nil, fmt.Errorf("no active operators in roster")
	}

	table, skipped := assigner.BuildQuotaTable(operators, params.UsersToAssignPerOperator)

	preview := &QuotaPreview{
		TotalQuota:       table.TotalQuota(),
		SkippedOperators: skipped,
	}
	for _, campaign := range table.Campaigns() {
		preview.Campaigns = append(preview.Campaigns, CampaignQuotas{
			Campaign: campaign,
			Quotas:   table.Operators(campaign),
		})
	}

	logger.Info("Quota preview built",
		zap.Int("campaigns", len(preview.Campaigns)),
		zap.Int("total_quota", preview.TotalQuota),
		zap.Int("skipped_operators", skipped))

	return preview, nil
}
