package assigner

import "github.com/jortega/tlmkt-assign/pkg/core/model"

// TierConfig describes one invocation of the currency-constrained
// allocator over a currency subset.
type TierConfig struct {
	// Currencies is the target currency set. Leads of other currencies
	// are untouched by the tier.
	Currencies []string

	// MaxPercent caps how much of each operator's quota this tier may
	// fill. Nil means no cap: operators are filled to quota.
	MaxPercent *float64

	// SplitPercentage divides MaxPercent evenly across the target
	// currencies and runs the round-robin independently per currency.
	// When false a single combined cap applies across all of them.
	SplitPercentage bool

	// Seed for the per-campaign deterministic shuffle.
	Seed int64
}

// TierResult is the output of one tier.
type TierResult struct {
	// Assignments created by the tier.
	Assignments []model.Assignment

	// Remaining holds the target-currency leads the tier did not
	// consume, still tagged with their origin campaign.
	Remaining []model.Lead

	// MissingPools and EmptyOperatorCampaigns record campaigns the
	// tier skipped. Soft conditions: the tier continues past them.
	MissingPools           []string
	EmptyOperatorCampaigns []string
}

// AssignCurrencies distributes leads of the target currencies to
// operators in strict round-robin fashion, one lead per operator per
// turn, respecting the tier's percentage caps.
//
// For each campaign present in both the quota table and the pools, the
// campaign's leads are filtered to the target currencies and shuffled
// with a fresh generator seeded from cfg.Seed, so repeated runs
// reproduce the same order. Operators are visited in quota-table order;
// an operator at its cap is skipped without consuming a turn, and the
// campaign finishes when a full pass assigns nothing or the filtered
// pool is exhausted.
func AssignCurrencies(table *QuotaTable, pools CampaignPools, cfg TierConfig) TierResult {
	var res TierResult

	for _, campaign := range table.Campaigns() {
		pool, ok := pools[campaign]
		if !ok {
			res.MissingPools = append(res.MissingPools, campaign)
			continue
		}

		operators := table.Operators(campaign)
		if len(operators) == 0 {
			res.EmptyOperatorCampaigns = append(res.EmptyOperatorCampaigns, campaign)
			continue
		}

		filtered := filterByCurrency(pool, cfg.Currencies)
		shuffled := shuffleLeads(filtered, cfg.Seed)

		var assigned []model.Assignment
		switch {
		case cfg.MaxPercent == nil:
			assigned = roundRobin(shuffled, operators, campaign, func(q OperatorQuota) int {
				return q.Quota
			})

		case cfg.SplitPercentage:
			// The cap is divided evenly across the target currencies
			// and each currency gets its own round-robin, in the order
			// the currencies are listed.
			perCurrency := *cfg.MaxPercent / float64(len(cfg.Currencies))
			for _, currency := range cfg.Currencies {
				subset := filterByCurrency(shuffled, []string{currency})
				assigned = append(assigned, roundRobin(subset, operators, campaign, func(q OperatorQuota) int {
					return int(float64(q.Quota) * perCurrency)
				})...)
			}

		default:
			// Single combined cap across all target currencies.
			maxPercent := *cfg.MaxPercent
			assigned = roundRobin(shuffled, operators, campaign, func(q OperatorQuota) int {
				return int(float64(q.Quota) * maxPercent)
			})
		}

		res.Assignments = append(res.Assignments, assigned...)

		// Everything in the currency filter that was not consumed is
		// handed on as completion-pass candidates, in pool order.
		consumed := make(map[int64]bool, len(assigned))
		for _, a := range assigned {
			consumed[a.Lead.UserID] = true
		}
		for _, lead := range filtered {
			if !consumed[lead.UserID] {
				res.Remaining = append(res.Remaining, lead)
			}
		}
	}

	return res
}

// roundRobin cycles the operators in order, drawing one lead per
// eligible operator per turn. capFor yields the applicable cap for an
// operator; percentage caps truncate toward zero inside capFor. The
// loop ends when the pool runs out or a full pass finds no operator
// below its cap.
func roundRobin(pool []model.Lead, operators []OperatorQuota, campaign string, capFor func(OperatorQuota) int) []model.Assignment {
	if len(pool) == 0 || len(operators) == 0 {
		return nil
	}

	var assigned []model.Assignment
	counts := make(map[string]int, len(operators))
	idx := 0
	skips := 0

	for next := 0; next < len(pool); {
		op := operators[idx]
		if counts[op.Operator] >= capFor(op) {
			idx = (idx + 1) % len(operators)
			skips++
			if skips == len(operators) {
				break
			}
			continue
		}

		assigned = append(assigned, model.Assignment{
			Campaign: campaign,
			Operator: op.Operator,
			Lead:     pool[next],
		})
		counts[op.Operator]++
		next++
		skips = 0
		idx = (idx + 1) % len(operators)
	}

	return assigned
}
