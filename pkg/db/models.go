package db

import "time"

// AssignmentRecord is one row of the daily assignment table: a lead
// handed to an operator on a given date. CampaignName carries the
// display label, matching the historical table contents.
type AssignmentRecord struct {
	ID             string
	AssignmentDate time.Time
	Operator       string
	CampaignName   string
	UserID         int64
	Username       string
	FullName       string
	Phone          string
	Level          int
	Currency       string
	LastActivity   string
}

// AssignedPair identifies a user already assigned under a campaign,
// used to exclude recently worked leads from a new batch.
type AssignedPair struct {
	UserID       int64
	CampaignName string
}
