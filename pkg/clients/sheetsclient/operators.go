package sheetsclient

import (
	"fmt"
	"strings"

	"github.com/jortega/tlmkt-assign/pkg/core/model"
)

const (
	roleTelesales = "Ejecutivo de Televentas"
	statusActive  = "Activo"
)

// roster column headers as they appear in the sheet.
const (
	colName      = "Nombre y Apellido"
	colPanelUser = "Usuario DotPanel"
	colCampaigns = "Campaña"
	colRole      = "Cargo"
	colStatus    = "Estatus"
)

// ListOperators reads the roster tab and returns the active telesales
// operators in sheet order, with their campaign lists normalized to
// internal codes.
func (c *Client) ListOperators(spreadsheetID, tab string) ([]model.Operator, error) {
	rows, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster tab %q: %w", tab, err)
	}

	return parseOperators(rows)
}

// parseOperators converts raw roster rows into operators. The first row
// is the header; rows whose role or status do not match the telesales
// filter are skipped.
func parseOperators(rows [][]interface{}) ([]model.Operator, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("roster sheet is empty")
	}

	cols, err := headerIndex(rows[0], colName, colPanelUser, colCampaigns, colRole, colStatus)
	if err != nil {
		return nil, err
	}

	var operators []model.Operator
	for _, row := range rows[1:] {
		if cellString(row, cols[colRole]) != roleTelesales {
			continue
		}
		if cellString(row, cols[colStatus]) != statusActive {
			continue
		}

		name := cellString(row, cols[colName])
		if name == "" {
			continue
		}

		operators = append(operators, model.Operator{
			Name:      name,
			PanelUser: cellString(row, cols[colPanelUser]),
			Campaigns: parseCampaignList(cellString(row, cols[colCampaigns])),
		})
	}

	return operators, nil
}

// parseCampaignList splits a comma-separated campaign cell and
// normalizes each entry to its internal code, preserving order.
func parseCampaignList(cell string) []string {
	var campaigns []string
	for _, part := range strings.Split(cell, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		campaigns = append(campaigns, model.NormalizeCampaignCode(part))
	}
	return campaigns
}

// headerIndex maps required header names to their column positions.
func headerIndex(header []interface{}, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, cell := range header {
		if s, ok := cell.(string); ok {
			cols[strings.TrimSpace(s)] = i
		}
	}

	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("sheet is missing column %q", name)
		}
	}

	return cols, nil
}

// cellString returns the trimmed string value of a cell, or empty when
// the row is short or the cell is not a string.
func cellString(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	if s, ok := row[idx].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
