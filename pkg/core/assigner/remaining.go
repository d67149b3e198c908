package assigner

import "github.com/jortega/tlmkt-assign/pkg/core/model"

// RemainingQuota recomputes unfulfilled quota after one or more tiers.
// Each entry of the original table is reduced by the number of
// assignments already made for that campaign and operator; entries with
// nothing left are dropped. Pure function: neither input is modified.
func RemainingQuota(assignments []model.Assignment, original *QuotaTable) *QuotaTable {
	type pair struct {
		campaign, operator string
	}
	counts := make(map[pair]int, len(assignments))
	for _, a := range assignments {
		counts[pair{a.Campaign, a.Operator}]++
	}

	remaining := NewQuotaTable()
	for _, campaign := range original.Campaigns() {
		for _, q := range original.Operators(campaign) {
			left := q.Quota - counts[pair{campaign, q.Operator}]
			if left <= 0 {
				continue
			}
			remaining.Add(campaign, OperatorQuota{Operator: q.Operator, Quota: left})
		}
	}

	return remaining
}
