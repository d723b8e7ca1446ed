package google

import (
	"fmt"
	"strconv"
	"strings"

	"garage/internal/core"
	"garage/internal/records"
)

// parseValues splits a values response into a header row and data rows.
func parseValues(values [][]interface{}) ([]string, []records.Row) {
	if len(values) == 0 {
		return nil, nil
	}
	headers := make([]string, len(values[0]))
	for i, v := range values[0] {
		headers[i] = strings.TrimSpace(toString(v))
	}
	rows := make([]records.Row, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := make(records.Row, len(raw))
		for i, v := range raw {
			row[i] = toCell(v)
		}
		rows = append(rows, row)
	}
	return headers, rows
}

func toCell(v interface{}) records.Cell {
	switch x := v.(type) {
	case nil:
		return records.Empty()
	case float64:
		return records.Number(x)
	case string:
		return records.Text(x)
	default:
		return records.Text(toString(x))
	}
}

func toString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// extent returns the used height and the widest row of values.
func extent(values [][]interface{}) (rows, cols int) {
	for _, r := range values {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return len(values), cols
}

// buildGrid lays out headers and rows from A1 and pads the result with empty
// strings up to the previous extent so stale cells are cleared.
func buildGrid(headers []string, rows []records.Row, oldRows, oldCols int) [][]interface{} {
	width := len(headers)
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	if oldCols > width {
		width = oldCols
	}
	height := len(rows) + 1
	if oldRows > height {
		height = oldRows
	}

	grid := make([][]interface{}, height)
	for i := range grid {
		line := make([]interface{}, width)
		for j := range line {
			line[j] = ""
		}
		grid[i] = line
	}
	for j, h := range headers {
		grid[0][j] = literal(h)
	}
	for i, r := range rows {
		for j, c := range r {
			grid[i+1][j] = toValue(c)
		}
	}
	return grid
}

// toValue converts a cell for a USER_ENTERED update. Numbers and dates are
// sent for Sheets to parse; text is sent as a literal when Sheets would
// otherwise read it as a formula, number, boolean or time.
func toValue(c records.Cell) interface{} {
	if n, ok := c.Number(); ok {
		return n
	}
	if c.Kind() == records.KindText {
		return literal(c.String())
	}
	return c.String()
}

// literal prefixes s with an apostrophe when Sheets would reinterpret it.
// Text holding a full calendar date is left alone: Load renders date cells
// as text, and saving them back must keep them dates.
func literal(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsRune("=+-@'", rune(s[0])) {
		return "'" + s
	}
	if _, ok := core.ParseDate(s); ok {
		return s
	}
	if reinterpreted(s) {
		return "'" + s
	}
	return s
}

func reinterpreted(s string) bool {
	t := strings.TrimSpace(s)
	if strings.EqualFold(t, "true") || strings.EqualFold(t, "false") {
		return true
	}
	numeric := strings.NewReplacer("$", "", ",", "", "%", "", " ", "").Replace(t)
	if numeric != "" {
		if _, err := strconv.ParseFloat(numeric, 64); err == nil {
			return true
		}
	}
	digits, separators := 0, 0
	for _, r := range t {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune("/-.: ", r):
			separators++
		default:
			return false
		}
	}
	return digits > 0 && separators > 0
}
