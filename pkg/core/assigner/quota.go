package assigner

import (
	"math"

	"github.com/jortega/tlmkt-assign/pkg/core/model"
)

// splitRatios maps an operator's campaign count to the share of their
// base lead count each campaign receives, in roster order.
var splitRatios = map[int][]float64{
	1: {1.0},
	2: {0.7, 0.3},
	3: {0.5, 0.3, 0.2},
}

// BuildQuotaTable derives per-(campaign, operator) quotas from the
// roster associations. Each quota is round(baseCount * ratio); quotas
// for the same campaign accumulate across operators in roster order.
//
// Operators whose campaign count has no defined split ratio contribute
// nothing; the second return value counts them so callers can surface
// the drop as a diagnostic.
func BuildQuotaTable(operators []model.Operator, baseCount int) (*QuotaTable, int) {
	table := NewQuotaTable()
	skipped := 0

	for _, op := range operators {
		ratios, ok := splitRatios[len(op.Campaigns)]
		if !ok {
			skipped++
			continue
		}
		for i, campaign := range op.Campaigns {
			if i >= len(ratios) {
				break
			}
			table.Add(campaign, OperatorQuota{
				Operator: op.Name,
				Quota:    int(math.Round(float64(baseCount) * ratios[i])),
			})
		}
	}

	return table, skipped
}
