package assigner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/tlmkt-assign/pkg/core/model"
)

func TestRemainingQuota_SubtractsAssignedCounts(t *testing.T) {
	table := NewQuotaTable()
	table.Add("non_depositors", OperatorQuota{Operator: "Ana", Quota: 10})
	table.Add("non_depositors", OperatorQuota{Operator: "Luis", Quota: 5})

	assignments := []model.Assignment{
		{Campaign: "non_depositors", Operator: "Ana", Lead: model.Lead{UserID: 1}},
		{Campaign: "non_depositors", Operator: "Ana", Lead: model.Lead{UserID: 2}},
		{Campaign: "non_depositors", Operator: "Ana", Lead: model.Lead{UserID: 3}},
	}

	remaining := RemainingQuota(assignments, table)

	entries := remaining.Operators("non_depositors")
	require.Len(t, entries, 2)
	assert.Equal(t, OperatorQuota{Operator: "Ana", Quota: 7}, entries[0])
	assert.Equal(t, OperatorQuota{Operator: "Luis", Quota: 5}, entries[1])
}

func TestRemainingQuota_DropsFulfilledEntries(t *testing.T) {
	table := NewQuotaTable()
	table.Add("reactivation", OperatorQuota{Operator: "Ana", Quota: 2})
	table.Add("reactivation", OperatorQuota{Operator: "Luis", Quota: 1})

	assignments := []model.Assignment{
		{Campaign: "reactivation", Operator: "Ana", Lead: model.Lead{UserID: 1}},
		{Campaign: "reactivation", Operator: "Ana", Lead: model.Lead{UserID: 2}},
		{Campaign: "reactivation", Operator: "Luis", Lead: model.Lead{UserID: 3}},
	}

	remaining := RemainingQuota(assignments, table)

	assert.Empty(t, remaining.Campaigns())
	assert.Equal(t, 0, remaining.TotalQuota())
}

func TestRemainingQuota_AssignmentsScopedToCampaignOperatorPair(t *testing.T) {
	table := NewQuotaTable()
	table.Add("reactivation", OperatorQuota{Operator: "Ana", Quota: 5})
	table.Add("rejected", OperatorQuota{Operator: "Ana", Quota: 5})

	assignments := []model.Assignment{
		{Campaign: "reactivation", Operator: "Ana", Lead: model.Lead{UserID: 1}},
	}

	remaining := RemainingQuota(assignments, table)

	assert.Equal(t, 4, remaining.Operators("reactivation")[0].Quota)
	assert.Equal(t, 5, remaining.Operators("rejected")[0].Quota)
}

func TestRemainingQuota_DoesNotMutateOriginal(t *testing.T) {
	table := NewQuotaTable()
	table.Add("reactivation", OperatorQuota{Operator: "Ana", Quota: 5})

	assignments := []model.Assignment{
		{Campaign: "reactivation", Operator: "Ana", Lead: model.Lead{UserID: 1}},
	}

	_ = RemainingQuota(assignments, table)

	assert.Equal(t, 5, table.Operators("reactivation")[0].Quota)
}
