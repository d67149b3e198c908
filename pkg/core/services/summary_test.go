package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jortega/tlmkt-assign/pkg/db"
)

func summaryRecords() []db.AssignmentRecord {
	return []db.AssignmentRecord{
		{Operator: "Ana", CampaignName: "Reactivación", UserID: 1},
		{Operator: "Luis", CampaignName: "Reactivación", UserID: 2},
		{Operator: "Ana", CampaignName: "Reactivación", UserID: 3},
		{Operator: "Ana", CampaignName: "No Depositantes", UserID: 4},
	}
}

func TestSummarizeByOperator(t *testing.T) {
	totals := SummarizeByOperator(summaryRecords())

	assert.Equal(t, []OperatorTotal{
		{Operator: "Ana", Count: 3},
		{Operator: "Luis", Count: 1},
	}, totals)
}

func TestSummarizeByCampaign(t *testing.T) {
	totals := SummarizeByCampaign(summaryRecords())

	assert.Equal(t, []CampaignTotal{
		{Campaign: "Reactivación", Operator: "Ana", Count: 2},
		{Campaign: "Reactivación", Operator: "Luis", Count: 1},
		{Campaign: "No Depositantes", Operator: "Ana", Count: 1},
	}, totals)
}

func TestSummarize_EmptyRecords(t *testing.T) {
	assert.Empty(t, SummarizeByOperator(nil))
	assert.Empty(t, SummarizeByCampaign(nil))
}
