package assigner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/tlmkt-assign/pkg/core/model"
)

func TestBuildQuotaTable_SingleCampaign(t *testing.T) {
	operators := []model.Operator{
		{Name: "Ana", Campaigns: []string{"reactivation"}},
	}

	table, skipped := BuildQuotaTable(operators, 100)

	assert.Equal(t, 0, skipped)
	require.Equal(t, []string{"reactivation"}, table.Campaigns())
	require.Len(t, table.Operators("reactivation"), 1)
	assert.Equal(t, OperatorQuota{Operator: "Ana", Quota: 100}, table.Operators("reactivation")[0])
}

func TestBuildQuotaTable_SplitRatios(t *testing.T) {
	tests := []struct {
		name      string
		campaigns []string
		base      int
		want      map[string]int
	}{
		{
			name:      "two campaigns split 70/30",
			campaigns: []string{"non_depositors", "reactivation"},
			base:      100,
			want:      map[string]int{"non_depositors": 70, "reactivation": 30},
		},
		{
			name:      "three campaigns split 50/30/20",
			campaigns: []string{"non_depositors", "reactivation", "rejected"},
			base:      100,
			want:      map[string]int{"non_depositors": 50, "reactivation": 30, "rejected": 20},
		},
		{
			name:      "rounding is half away from zero",
			campaigns: []string{"non_depositors", "reactivation"},
			base:      25, // 17.5 and 7.5
			want:      map[string]int{"non_depositors": 18, "reactivation": 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, skipped := BuildQuotaTable([]model.Operator{
				{Name: "Luis", Campaigns: tt.campaigns},
			}, tt.base)

			assert.Equal(t, 0, skipped)
			for campaign, quota := range tt.want {
				entries := table.Operators(campaign)
				require.Len(t, entries, 1, "campaign %s", campaign)
				assert.Equal(t, quota, entries[0].Quota, "campaign %s", campaign)
			}
		})
	}
}

func TestBuildQuotaTable_UndefinedCampaignCountSkipped(t *testing.T) {
	operators := []model.Operator{
		{Name: "Ana", Campaigns: []string{"a", "b", "c", "d"}},
		{Name: "Luis", Campaigns: nil},
		{Name: "Marta", Campaigns: []string{"reactivation"}},
	}

	table, skipped := BuildQuotaTable(operators, 50)

	assert.Equal(t, 2, skipped)
	assert.Equal(t, []string{"reactivation"}, table.Campaigns())
	assert.Equal(t, 50, table.TotalQuota())
}

func TestBuildQuotaTable_QuotasAccumulateAcrossOperators(t *testing.T) {
	operators := []model.Operator{
		{Name: "Ana", Campaigns: []string{"reactivation", "rejected"}},
		{Name: "Luis", Campaigns: []string{"reactivation"}},
	}

	table, _ := BuildQuotaTable(operators, 100)

	entries := table.Operators("reactivation")
	require.Len(t, entries, 2)
	assert.Equal(t, "Ana", entries[0].Operator)
	assert.Equal(t, 70, entries[0].Quota)
	assert.Equal(t, "Luis", entries[1].Operator)
	assert.Equal(t, 100, entries[1].Quota)
}
