package services

import "github.com/jortega/tlmkt-assign/pkg/db"

// OperatorTotal is the number of leads an operator received in a batch
type OperatorTotal struct {
	Operator string
	Count    int
}

// CampaignTotal is the number of leads one operator received under one
// campaign in a batch
type CampaignTotal struct {
	Campaign string
	Operator string
	Count    int
}

// SummarizeByOperator counts records per operator, in first-seen order.
func SummarizeByOperator(records []db.AssignmentRecord) []OperatorTotal {
	counts := make(map[string]int)
	var order []string
	for _, rec := range records {
		if _, ok := counts[rec.Operator]; !ok {
			order = append(order, rec.Operator)
		}
		counts[rec.Operator]++
	}

	totals := make([]OperatorTotal, 0, len(order))
	for _, operator := range order {
		totals = append(totals, OperatorTotal{Operator: operator, Count: counts[operator]})
	}
	return totals
}

// SummarizeByCampaign counts records per campaign and operator, in
// first-seen order.
func SummarizeByCampaign(records []db.AssignmentRecord) []CampaignTotal {
	type key struct {
		campaign string
		operator string
	}
	counts := make(map[key]int)
	var order []key
	for _, rec := range records {
		k := key{rec.CampaignName, rec.Operator}
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}

	totals := make([]CampaignTotal, 0, len(order))
	for _, k := range order {
		totals = append(totals, CampaignTotal{Campaign: k.campaign, Operator: k.operator, Count: counts[k]})
	}
	return totals
}
