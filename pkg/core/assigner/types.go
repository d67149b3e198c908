package assigner

import "github.com/jortega/tlmkt-assign/pkg/core/model"

// OperatorQuota is the number of leads an operator should receive for
// one campaign during the current run.
type OperatorQuota struct {
	Operator string
	Quota    int
}

// QuotaTable maps campaigns to their operator quota entries. Campaign
// iteration order is the insertion order, so runs are reproducible
// regardless of map ordering.
type QuotaTable struct {
	campaigns []string
	entries   map[string][]OperatorQuota
}

// NewQuotaTable creates an empty quota table.
func NewQuotaTable() *QuotaTable {
	return &QuotaTable{
		entries: make(map[string][]OperatorQuota),
	}
}

// Add appends a quota entry for the campaign, registering the campaign
// on first use.
func (t *QuotaTable) Add(campaign string, q OperatorQuota) {
	if _, ok := t.entries[campaign]; !ok {
		t.campaigns = append(t.campaigns, campaign)
	}
	t.entries[campaign] = append(t.entries[campaign], q)
}

// Campaigns returns the campaign names in insertion order.
func (t *QuotaTable) Campaigns() []string {
	return t.campaigns
}

// Operators returns the quota entries for a campaign, in the order the
// operators were added.
func (t *QuotaTable) Operators(campaign string) []OperatorQuota {
	return t.entries[campaign]
}

// TotalQuota sums every quota entry in the table.
func (t *QuotaTable) TotalQuota() int {
	total := 0
	for _, ops := range t.entries {
		for _, q := range ops {
			total += q.Quota
		}
	}
	return total
}

// CampaignPools partitions the lead snapshot by campaign code.
// Campaigns with no leads are simply absent.
type CampaignPools map[string][]model.Lead

// BuildCampaignPools groups leads by campaign, preserving snapshot order
// within each campaign.
func BuildCampaignPools(leads []model.Lead) CampaignPools {
	pools := make(CampaignPools)
	for _, lead := range leads {
		pools[lead.Campaign] = append(pools[lead.Campaign], lead)
	}
	return pools
}

// Remove drops the given leads from their campaign pools. Each lead
// leaves the pool at most once; unknown IDs are ignored.
func (p CampaignPools) Remove(assignments []model.Assignment) {
	consumed := make(map[string]map[int64]bool)
	for _, a := range assignments {
		campaign := a.Lead.Campaign
		if consumed[campaign] == nil {
			consumed[campaign] = make(map[int64]bool)
		}
		consumed[campaign][a.Lead.UserID] = true
	}

	for campaign, ids := range consumed {
		pool, ok := p[campaign]
		if !ok {
			continue
		}
		kept := pool[:0]
		for _, lead := range pool {
			if !ids[lead.UserID] {
				kept = append(kept, lead)
			}
		}
		p[campaign] = kept
	}
}

// Diagnostics counts the soft conditions absorbed during a run. A
// malformed campaign never aborts the batch; it just shows up here.
type Diagnostics struct {
	// SkippedOperators counts operators whose campaign-list length has
	// no defined split ratio and who therefore received no quota.
	SkippedOperators int

	// MissingPools lists campaigns named in the quota table with no
	// leads in the snapshot, each campaign at most once per run.
	MissingPools []string

	// EmptyOperatorCampaigns lists campaigns that had no operator
	// quota entries when a pass visited them, each at most once.
	EmptyOperatorCampaigns []string
}

// Outcome is the final result of an assignment run.
type Outcome struct {
	// Assignments in the order they were produced: priority, small,
	// big, relevant, completion.
	Assignments []model.Assignment

	// Leftover holds the leads still unassigned after the completion
	// pass. Informational only.
	Leftover []model.Lead

	Diagnostics Diagnostics
}
