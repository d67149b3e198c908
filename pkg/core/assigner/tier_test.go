package assigner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/tlmkt-assign/pkg/core/model"
)

// makeLeads builds n leads for a campaign and currency with sequential
// user IDs starting at base.
func makeLeads(base int64, n int, campaign, currency string) []model.Lead {
	leads := make([]model.Lead, n)
	for i := range leads {
		leads[i] = model.Lead{
			UserID:   base + int64(i),
			Campaign: campaign,
			Currency: currency,
			Username: fmt.Sprintf("user%d", base+int64(i)),
		}
	}
	return leads
}

func operatorCounts(assignments []model.Assignment) map[string]int {
	counts := make(map[string]int)
	for _, a := range assignments {
		counts[a.Operator]++
	}
	return counts
}

func TestAssignCurrencies_NoCapFillsToQuota(t *testing.T) {
	table := NewQuotaTable()
	table.Add("reactivation", OperatorQuota{Operator: "Ana", Quota: 3})
	table.Add("reactivation", OperatorQuota{Operator: "Luis", Quota: 2})

	pools := BuildCampaignPools(makeLeads(1, 10, "reactivation", "USD"))

	res := AssignCurrencies(table, pools, TierConfig{Currencies: []string{"USD"}, Seed: DefaultSeed})

	counts := operatorCounts(res.Assignments)
	assert.Equal(t, 3, counts["Ana"])
	assert.Equal(t, 2, counts["Luis"])
	assert.Len(t, res.Remaining, 5)
}

func TestAssignCurrencies_RoundRobinAlternatesOperators(t *testing.T) {
	table := NewQuotaTable()
	table.Add("reactivation", OperatorQuota{Operator: "Ana", Quota: 2})
	table.Add("reactivation", OperatorQuota{Operator: "Luis", Quota: 2})

	pools := BuildCampaignPools(makeLeads(1, 4, "reactivation", "USD"))

	res := AssignCurrencies(table, pools, TierConfig{Currencies: []string{"USD"}, Seed: DefaultSeed})

	require.Len(t, res.Assignments, 4)
	order := make([]string, 4)
	for i, a := range res.Assignments {
		order[i] = a.Operator
	}
	assert.Equal(t, []string{"Ana", "Luis", "Ana", "Luis"}, order)
}

func TestAssignCurrencies_SplitCapPerCurrency(t *testing.T) {
	table := NewQuotaTable()
	table.Add("reactivation", OperatorQuota{Operator: "Ana", Quota: 100})

	leads := append(makeLeads(1, 30, "reactivation", "USD"), makeLeads(100, 30, "reactivation", "EUR")...)
	pools := BuildCampaignPools(leads)

	maxPercent := 0.4
	res := AssignCurrencies(table, pools, TierConfig{
		Currencies:      []string{"USD", "EUR"},
		MaxPercent:      &maxPercent,
		SplitPercentage: true,
		Seed:            DefaultSeed,
	})

	// Cap per currency is floor(100 * 0.4/2) = 20.
	byCurrency := make(map[string]int)
	for _, a := range res.Assignments {
		byCurrency[a.Lead.Currency]++
	}
	assert.Equal(t, 20, byCurrency["USD"])
	assert.Equal(t, 20, byCurrency["EUR"])
	assert.Len(t, res.Remaining, 20)
}

func TestAssignCurrencies_CombinedCapAcrossCurrencies(t *testing.T) {
	table := NewQuotaTable()
	table.Add("reactivation", OperatorQuota{Operator: "Ana", Quota: 100})

	leads := append(makeLeads(1, 20, "reactivation", "PEN"), makeLeads(100, 20, "reactivation", "CLP")...)
	pools := BuildCampaignPools(leads)

	maxPercent := 0.25
	res := AssignCurrencies(table, pools, TierConfig{
		Currencies:      []string{"PEN", "CLP"},
		MaxPercent:      &maxPercent,
		SplitPercentage: false,
		Seed:            DefaultSeed,
	})

	// Single combined cap: floor(100 * 0.25) = 25 across both currencies.
	assert.Len(t, res.Assignments, 25)
	assert.Len(t, res.Remaining, 15)
}

func TestAssignCurrencies_MissingPoolSkipped(t *testing.T) {
	table := NewQuotaTable()
	table.Add("rejected", OperatorQuota{Operator: "Ana", Quota: 10})
	table.Add("reactivation", OperatorQuota{Operator: "Ana", Quota: 10})

	pools := BuildCampaignPools(makeLeads(1, 5, "reactivation", "USD"))

	res := AssignCurrencies(table, pools, TierConfig{Currencies: []string{"USD"}, Seed: DefaultSeed})

	assert.Equal(t, []string{"rejected"}, res.MissingPools)
	assert.Len(t, res.Assignments, 5)
}

func TestAssignCurrencies_EmptyOperatorListSkipped(t *testing.T) {
	table := &QuotaTable{
		campaigns: []string{"reactivation"},
		entries:   map[string][]OperatorQuota{"reactivation": {}},
	}

	pools := BuildCampaignPools(makeLeads(1, 5, "reactivation", "USD"))

	res := AssignCurrencies(table, pools, TierConfig{Currencies: []string{"USD"}, Seed: DefaultSeed})

	assert.Empty(t, res.Assignments)
	assert.Equal(t, []string{"reactivation"}, res.EmptyOperatorCampaigns)
}

func TestAssignCurrencies_OtherCurrenciesUntouched(t *testing.T) {
	table := NewQuotaTable()
	table.Add("reactivation", OperatorQuota{Operator: "Ana", Quota: 100})

	leads := append(makeLeads(1, 5, "reactivation", "USD"), makeLeads(100, 5, "reactivation", "GBP")...)
	pools := BuildCampaignPools(leads)

	res := AssignCurrencies(table, pools, TierConfig{Currencies: []string{"USD"}, Seed: DefaultSeed})

	assert.Len(t, res.Assignments, 5)
	for _, a := range res.Assignments {
		assert.Equal(t, "USD", a.Lead.Currency)
	}
	// GBP leads are neither assigned nor reported as remaining.
	assert.Empty(t, res.Remaining)
}

func TestAssignCurrencies_ExhaustionTerminates(t *testing.T) {
	table := NewQuotaTable()
	table.Add("reactivation", OperatorQuota{Operator: "Ana", Quota: 500})
	table.Add("reactivation", OperatorQuota{Operator: "Luis", Quota: 500})

	pools := BuildCampaignPools(makeLeads(1, 7, "reactivation", "USD"))

	res := AssignCurrencies(table, pools, TierConfig{Currencies: []string{"USD"}, Seed: DefaultSeed})

	assert.Len(t, res.Assignments, 7)
	assert.Empty(t, res.Remaining)

	remaining := RemainingQuota(res.Assignments, table)
	assert.Equal(t, 993, remaining.TotalQuota())
}

func TestAssignCurrencies_Deterministic(t *testing.T) {
	table := NewQuotaTable()
	table.Add("reactivation", OperatorQuota{Operator: "Ana", Quota: 20})
	table.Add("reactivation", OperatorQuota{Operator: "Luis", Quota: 20})

	leads := append(makeLeads(1, 25, "reactivation", "USD"), makeLeads(100, 25, "reactivation", "EUR")...)

	cfg := TierConfig{Currencies: []string{"USD", "EUR"}, Seed: DefaultSeed}

	first := AssignCurrencies(table, BuildCampaignPools(leads), cfg)
	second := AssignCurrencies(table, BuildCampaignPools(leads), cfg)

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Remaining, second.Remaining)
}

func TestAssignCurrencies_NoDuplicateLeads(t *testing.T) {
	table := NewQuotaTable()
	table.Add("reactivation", OperatorQuota{Operator: "Ana", Quota: 50})

	pools := BuildCampaignPools(makeLeads(1, 30, "reactivation", "USD"))

	res := AssignCurrencies(table, pools, TierConfig{Currencies: []string{"USD"}, Seed: DefaultSeed})

	seen := make(map[int64]bool)
	for _, a := range res.Assignments {
		assert.False(t, seen[a.Lead.UserID], "lead %d assigned twice", a.Lead.UserID)
		seen[a.Lead.UserID] = true
	}
}
