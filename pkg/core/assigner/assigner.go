// Package assigner implements the daily lead allocation engine: quota
// derivation from roster associations, the tiered currency-constrained
// round-robin distributor, cross-tier remaining-quota recalculation,
// and the completion pass that fills leftover quota from secondary
// pools. The engine is pure: it performs no I/O and is a deterministic
// function of its input plus the shuffle seed.
package assigner

import "github.com/jortega/tlmkt-assign/pkg/core/model"

// Input is the in-memory snapshot an assignment run operates on. The
// leads are expected to be deduplicated by user ID with historical
// exclusions already removed.
type Input struct {
	Leads     []model.Lead
	Operators []model.Operator
	Params    model.AssignmentParams
	Seed      int64
}

// Run executes the full allocation sequence in fixed tier order:
// priority, small, big, relevant, then the completion pass. Assigned
// leads leave their campaign pool immediately, so no lead can be
// assigned twice even if the tier currency sets overlap.
func Run(in Input) *Outcome {
	seed := in.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	pools := BuildCampaignPools(in.Leads)
	table, skippedOps := BuildQuotaTable(in.Operators, in.Params.UsersToAssignPerOperator)

	outcome := &Outcome{}
	outcome.Diagnostics.SkippedOperators = skippedOps

	// Diagnostics are per run, not per tier: a campaign missing from
	// the snapshot is missing in every tier, but reported once.
	reportedMissing := make(map[string]bool)
	reportedEmpty := make(map[string]bool)
	reportMissing := func(campaigns []string) {
		for _, c := range campaigns {
			if !reportedMissing[c] {
				reportedMissing[c] = true
				outcome.Diagnostics.MissingPools = append(outcome.Diagnostics.MissingPools, c)
			}
		}
	}
	reportEmpty := func(campaigns []string) {
		for _, c := range campaigns {
			if !reportedEmpty[c] {
				reportedEmpty[c] = true
				outcome.Diagnostics.EmptyOperatorCampaigns = append(outcome.Diagnostics.EmptyOperatorCampaigns, c)
			}
		}
	}

	runTier := func(quota *QuotaTable, cfg TierConfig) TierResult {
		res := AssignCurrencies(quota, pools, cfg)
		pools.Remove(res.Assignments)
		reportMissing(res.MissingPools)
		reportEmpty(res.EmptyOperatorCampaigns)
		return res
	}

	priority := runTier(table, TierConfig{
		Currencies:      in.Params.PriorityCurrencies,
		MaxPercent:      &in.Params.MaxPriorityCurrenciesPct,
		SplitPercentage: true,
		Seed:            seed,
	})

	small := runTier(table, TierConfig{
		Currencies:      in.Params.SmallCurrenciesToLimit,
		MaxPercent:      &in.Params.MaxSmallCurrenciesPct,
		SplitPercentage: false,
		Seed:            seed,
	})

	big := runTier(table, TierConfig{
		Currencies:      in.Params.BigCurrenciesToLimit,
		MaxPercent:      &in.Params.MaxBigCurrenciesPct,
		SplitPercentage: true,
		Seed:            seed,
	})

	assigned := concat(priority.Assignments, small.Assignments, big.Assignments)

	// The relevant tier runs against whatever quota the capped tiers
	// left unfilled, with no cap of its own.
	relevant := runTier(RemainingQuota(assigned, table), TierConfig{
		Currencies: in.Params.RelevantCurrencies,
		Seed:       seed,
	})
	assigned = append(assigned, relevant.Assignments...)

	// Completion draws from the union of every tier's leftovers, minus
	// anything a later tier consumed, against the final unmet quota.
	leftover := concatLeads(priority.Remaining, small.Remaining, big.Remaining, relevant.Remaining)
	leftover = excludeAssigned(leftover, assigned)

	completion := CompleteAssignments(leftover, RemainingQuota(assigned, table), CompletionConfig{
		ExtraCampaigns:     in.Params.ExtraUsersCampaign,
		PriorityCurrencies: in.Params.PriorityCurrencies,
		RelevantCurrencies: in.Params.RelevantCurrencies,
		Seed:               seed,
	})
	reportEmpty(completion.EmptyOperatorCampaigns)

	outcome.Assignments = append(assigned, completion.Assignments...)
	outcome.Leftover = completion.Unassigned
	return outcome
}

func concat(groups ...[]model.Assignment) []model.Assignment {
	var all []model.Assignment
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

func concatLeads(groups ...[]model.Lead) []model.Lead {
	var all []model.Lead
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

// excludeAssigned filters out leads already assigned by an earlier
// tier. Tier remainders are computed per tier, so a lead left over by
// one tier may have been consumed by a later one.
func excludeAssigned(leads []model.Lead, assigned []model.Assignment) []model.Lead {
	taken := make(map[int64]bool, len(assigned))
	for _, a := range assigned {
		taken[a.Lead.UserID] = true
	}

	kept := leads[:0]
	for _, lead := range leads {
		if !taken[lead.UserID] {
			kept = append(kept, lead)
		}
	}
	return kept
}
