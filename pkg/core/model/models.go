package model

import "strings"

// Campaign display labels (as they appear in the roster sheet and the
// warehouse) mapped to internal codes, and back. The engine only ever
// sees internal codes; display labels are restored at the export layer.
var campaignDisplayToCode = map[string]string{
	"No Depositantes":  "non_depositors",
	"Reactivación":     "reactivation",
	"Segundo Depósito": "second_deposit",
	"Tercer Depósito":  "third_deposit",
	"Rejected":         "rejected",
}

// Segment table labels used by the lead warehouse, normalized to the same codes.
var segmentLabelToCode = map[string]string{
	"Non Depositors Telemarketing": "non_depositors",
	"Reactivation":                 "reactivation",
	"Days since FTD Telemarketing": "second_deposit",
	"Days sice STD Telemarketing":  "third_deposit",
	"TeleMarketing Rejected":       "rejected",
}

var campaignCodeToDisplay = map[string]string{
	"non_depositors": "No Depositantes",
	"reactivation":   "Reactivación",
	"second_deposit": "Segundo Depósito",
	"third_deposit":  "Tercer Depósito",
	"rejected":       "Rejected",
}

// NormalizeCampaignCode converts a display label to its internal code.
// Unknown labels pass through unchanged; an empty label defaults to
// reactivation, matching the warehouse convention for untagged leads.
func NormalizeCampaignCode(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "reactivation"
	}
	if code, ok := campaignDisplayToCode[label]; ok {
		return code
	}
	if code, ok := segmentLabelToCode[label]; ok {
		return code
	}
	return label
}

// CampaignDisplayName converts an internal campaign code back to its
// display label. Unknown codes pass through unchanged.
func CampaignDisplayName(code string) string {
	if display, ok := campaignCodeToDisplay[code]; ok {
		return display
	}
	return code
}

// Lead is a single candidate for assignment, as loaded from a campaign
// segment table. Immutable once pooled.
type Lead struct {
	UserID       int64
	Campaign     string // internal code
	Username     string
	FullName     string
	Phone        string
	Level        int
	Currency     string
	LastActivity string // date, YYYY-MM-DD
}

// Operator is a telesales executive from the roster sheet, with the
// ordered list of campaigns they work (internal codes, roster order).
type Operator struct {
	Name      string
	PanelUser string
	Campaigns []string
}

// Assignment is one lead handed to one operator. Campaign is the
// campaign the operator receives the lead under, which in the
// completion pass may differ from the lead's origin campaign.
type Assignment struct {
	Campaign string
	Operator string
	Lead     Lead
}

// AssignmentParams holds the per-run parameters read from the
// configuration spreadsheet (variable/value/type rows).
type AssignmentParams struct {
	DaysAgoToDiscard         int
	UsersToAssignPerOperator int
	CurrenciesToFilter       []string
	PriorityCurrencies       []string
	MaxPriorityCurrenciesPct float64
	SmallCurrenciesToLimit   []string
	MaxSmallCurrenciesPct    float64
	BigCurrenciesToLimit     []string
	MaxBigCurrenciesPct      float64
	RelevantCurrencies       []string
	ExtraUsersCampaign       []string
}
