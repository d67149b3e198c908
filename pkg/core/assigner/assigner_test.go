package assigner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/tlmkt-assign/pkg/core/model"
)

// The 70/30 scenario: one operator on two campaigns with base 100
// gives quotas X=70, Y=30. With 50 leads in X and 40 in Y the uncapped
// tier exhausts X's pool at 50 and fills Y's quota at 30, leaving 20
// unmet quota on X and 10 leads over in Y.
func TestUncappedTier_SeventyThirtyScenario(t *testing.T) {
	operators := []model.Operator{
		{Name: "Ana", Campaigns: []string{"non_depositors", "reactivation"}},
	}
	table, _ := BuildQuotaTable(operators, 100)
	require.Equal(t, 70, table.Operators("non_depositors")[0].Quota)
	require.Equal(t, 30, table.Operators("reactivation")[0].Quota)

	leads := append(makeLeads(1, 50, "non_depositors", "USD"), makeLeads(1000, 40, "reactivation", "USD")...)
	pools := BuildCampaignPools(leads)

	res := AssignCurrencies(table, pools, TierConfig{Currencies: []string{"USD"}, Seed: DefaultSeed})

	byCampaign := make(map[string]int)
	for _, a := range res.Assignments {
		byCampaign[a.Campaign]++
	}
	assert.Equal(t, 50, byCampaign["non_depositors"])
	assert.Equal(t, 30, byCampaign["reactivation"])
	assert.Len(t, res.Remaining, 10)

	remaining := RemainingQuota(res.Assignments, table)
	require.Equal(t, []string{"non_depositors"}, remaining.Campaigns())
	assert.Equal(t, 20, remaining.Operators("non_depositors")[0].Quota)
}

func runInput() Input {
	var leads []model.Lead
	leads = append(leads, makeLeads(1, 30, "non_depositors", "USD")...)
	leads = append(leads, makeLeads(100, 30, "non_depositors", "MXN")...)
	leads = append(leads, makeLeads(200, 20, "non_depositors", "PEN")...)
	leads = append(leads, makeLeads(300, 40, "reactivation", "USD")...)
	leads = append(leads, makeLeads(400, 50, "reactivation", "COP")...)
	leads = append(leads, makeLeads(500, 15, "reactivation", "BOB")...)

	return Input{
		Leads: leads,
		Operators: []model.Operator{
			{Name: "Ana", Campaigns: []string{"non_depositors", "reactivation"}},
			{Name: "Luis", Campaigns: []string{"reactivation"}},
			{Name: "Marta", Campaigns: []string{"non_depositors"}},
		},
		Params: model.AssignmentParams{
			UsersToAssignPerOperator: 40,
			PriorityCurrencies:       []string{"USD"},
			MaxPriorityCurrenciesPct: 0.5,
			SmallCurrenciesToLimit:   []string{"BOB", "PEN"},
			MaxSmallCurrenciesPct:    0.2,
			BigCurrenciesToLimit:     []string{"MXN"},
			MaxBigCurrenciesPct:      0.4,
			RelevantCurrencies:       []string{"COP", "MXN"},
			ExtraUsersCampaign:       []string{"non_depositors"},
		},
		Seed: DefaultSeed,
	}
}

func TestRun_NoDuplicateAssignments(t *testing.T) {
	outcome := Run(runInput())

	seen := make(map[int64]bool)
	for _, a := range outcome.Assignments {
		assert.False(t, seen[a.Lead.UserID], "lead %d assigned twice", a.Lead.UserID)
		seen[a.Lead.UserID] = true
	}
	require.NotEmpty(t, outcome.Assignments)
}

func TestRun_QuotaNeverExceeded(t *testing.T) {
	in := runInput()
	outcome := Run(in)

	table, _ := BuildQuotaTable(in.Operators, in.Params.UsersToAssignPerOperator)
	quota := make(map[[2]string]int)
	for _, campaign := range table.Campaigns() {
		for _, q := range table.Operators(campaign) {
			quota[[2]string{campaign, q.Operator}] = q.Quota
		}
	}

	counts := make(map[[2]string]int)
	for _, a := range outcome.Assignments {
		counts[[2]string{a.Campaign, a.Operator}]++
	}

	for key, n := range counts {
		assert.LessOrEqual(t, n, quota[key], "campaign %s operator %s over quota", key[0], key[1])
	}
}

func TestRun_Deterministic(t *testing.T) {
	first := Run(runInput())
	second := Run(runInput())

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Leftover, second.Leftover)
}

func TestRun_SeedChangesOrderButNotInvariants(t *testing.T) {
	in := runInput()
	base := Run(in)

	in.Seed = 7
	reseeded := Run(in)

	// Same totals, same invariants; ordering may differ.
	assert.Equal(t, len(base.Assignments), len(reseeded.Assignments))

	seen := make(map[int64]bool)
	for _, a := range reseeded.Assignments {
		assert.False(t, seen[a.Lead.UserID])
		seen[a.Lead.UserID] = true
	}
}

func TestRun_ReportsSkippedOperators(t *testing.T) {
	in := runInput()
	in.Operators = append(in.Operators, model.Operator{
		Name:      "Pedro",
		Campaigns: []string{"a", "b", "c", "d"},
	})

	outcome := Run(in)

	assert.Equal(t, 1, outcome.Diagnostics.SkippedOperators)
}

func TestRun_ReportsMissingPools(t *testing.T) {
	in := runInput()
	in.Operators = []model.Operator{
		{Name: "Ana", Campaigns: []string{"rejected"}},
	}
	in.Leads = makeLeads(1, 5, "reactivation", "USD")

	outcome := Run(in)

	assert.Contains(t, outcome.Diagnostics.MissingPools, "rejected")
	assert.Empty(t, outcome.Assignments)
}

func TestRun_ReportsMissingPoolOncePerRun(t *testing.T) {
	in := runInput()
	in.Operators = []model.Operator{
		{Name: "Ana", Campaigns: []string{"rejected"}},
	}
	in.Leads = makeLeads(1, 5, "reactivation", "USD")

	outcome := Run(in)

	// Every tier sees the pool missing, but the diagnostic is per run.
	assert.Equal(t, []string{"rejected"}, outcome.Diagnostics.MissingPools)
}

func TestRun_LeftoverContainsOnlyUnassignedLeads(t *testing.T) {
	outcome := Run(runInput())

	assigned := make(map[int64]bool)
	for _, a := range outcome.Assignments {
		assigned[a.Lead.UserID] = true
	}
	for _, lead := range outcome.Leftover {
		assert.False(t, assigned[lead.UserID], "leftover lead %d was assigned", lead.UserID)
	}
}
