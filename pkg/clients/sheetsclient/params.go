package sheetsclient

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jortega/tlmkt-assign/pkg/core/model"
)

// GetAssignmentParams reads the parameters tab (variable/value/type
// rows) and returns the typed run parameters.
func (c *Client) GetAssignmentParams(spreadsheetID, tab string) (*model.AssignmentParams, error) {
	rows, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters tab %q: %w", tab, err)
	}

	return parseAssignmentParams(rows)
}

// GetSegmentTables reads the segments tab and returns the warehouse
// table names holding each campaign's candidate leads, in sheet order.
func (c *Client) GetSegmentTables(spreadsheetID, tab string) ([]string, error) {
	rows, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to read segments tab %q: %w", tab, err)
	}

	return parseSegmentTables(rows)
}

// parseAssignmentParams converts variable/value/type rows into typed
// parameters. Every field of the result must be present in the sheet;
// a missing variable is a configuration error.
func parseAssignmentParams(rows [][]interface{}) (*model.AssignmentParams, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parameters sheet is empty")
	}

	cols, err := headerIndex(rows[0], "variable", "value", "type")
	if err != nil {
		return nil, err
	}

	values := make(map[string]interface{})
	for _, row := range rows[1:] {
		name := cellString(row, cols["variable"])
		if name == "" {
			continue
		}

		raw := cellString(row, cols["value"])
		typed, err := coerceParamValue(raw, cellString(row, cols["type"]))
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}

		values[name] = typed
	}

	params := &model.AssignmentParams{}
	fields := []struct {
		name string
		set  func(interface{}) bool
	}{
		{"days_ago_to_discard", func(v interface{}) bool { return setInt(&params.DaysAgoToDiscard, v) }},
		{"users_to_assign_per_operator", func(v interface{}) bool { return setInt(&params.UsersToAssignPerOperator, v) }},
		{"currencies_to_filter", func(v interface{}) bool { return setList(&params.CurrenciesToFilter, v) }},
		{"priority_currencies", func(v interface{}) bool { return setList(&params.PriorityCurrencies, v) }},
		{"max_priority_currencies_percent", func(v interface{}) bool { return setFloat(&params.MaxPriorityCurrenciesPct, v) }},
		{"small_currencies_to_limit", func(v interface{}) bool { return setList(&params.SmallCurrenciesToLimit, v) }},
		{"max_small_currencies_percent", func(v interface{}) bool { return setFloat(&params.MaxSmallCurrenciesPct, v) }},
		{"big_currencies_to_limit", func(v interface{}) bool { return setList(&params.BigCurrenciesToLimit, v) }},
		{"max_big_currencies_percent", func(v interface{}) bool { return setFloat(&params.MaxBigCurrenciesPct, v) }},
		{"relevant_currencies", func(v interface{}) bool { return setList(&params.RelevantCurrencies, v) }},
		{"extra_users_campaign", func(v interface{}) bool { return setList(&params.ExtraUsersCampaign, v) }},
	}

	for _, field := range fields {
		v, ok := values[field.name]
		if !ok {
			return nil, fmt.Errorf("parameters sheet is missing variable %q", field.name)
		}
		if !field.set(v) {
			return nil, fmt.Errorf("parameter %q has the wrong type", field.name)
		}
	}

	return params, nil
}

// coerceParamValue converts a raw cell value according to the declared
// type column: int, float, str or list(str).
func coerceParamValue(raw, typeName string) (interface{}, error) {
	switch typeName {
	case "int":
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid int value %q: %w", raw, err)
		}
		return n, nil
	case "float":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float value %q: %w", raw, err)
		}
		return f, nil
	case "str":
		return raw, nil
	case "list(str)":
		if raw == "" {
			return []string{}, nil
		}
		parts := strings.Split(raw, ",")
		items := make([]string, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part != "" {
				items = append(items, part)
			}
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unknown parameter type %q", typeName)
	}
}

func setInt(dst *int, v interface{}) bool {
	n, ok := v.(int)
	if ok {
		*dst = n
	}
	return ok
}

func setFloat(dst *float64, v interface{}) bool {
	switch f := v.(type) {
	case float64:
		*dst = f
		return true
	case int:
		// int cells are acceptable where a float is expected
		*dst = float64(f)
		return true
	}
	return false
}

func setList(dst *[]string, v interface{}) bool {
	items, ok := v.([]string)
	if ok {
		*dst = items
	}
	return ok
}

// parseSegmentTables extracts the table_name column.
func parseSegmentTables(rows [][]interface{}) ([]string, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("segments sheet is empty")
	}

	cols, err := headerIndex(rows[0], "table_name")
	if err != nil {
		return nil, err
	}

	var tables []string
	for _, row := range rows[1:] {
		table := cellString(row, cols["table_name"])
		if table != "" {
			tables = append(tables, table)
		}
	}

	return tables, nil
}
