package records

import "garage/internal/core"

// TotalCost sums the parsed amounts of column costColumn over rows. Cells that
// are empty, missing or unparseable contribute nothing; a negative column
// index yields zero.
func TotalCost(rows []Row, costColumn int) core.Money {
	var total core.Money
	if costColumn < 0 {
		return total
	}
	for _, r := range rows {
		if costColumn >= len(r) {
			continue
		}
		if m, ok := CellAmount(r[costColumn]); ok {
			total = total.Add(m)
		}
	}
	return total
}

// CellAmount extracts a monetary amount from a cell using core.ParseMoney.
func CellAmount(c Cell) (core.Money, bool) {
	if c.IsEmpty() {
		return core.Money{}, false
	}
	return core.ParseMoney(c.String())
}

// Summary is the refresh-time view of a table: totals over every row and over
// the rows matching the current filter, computed with the same column.
type Summary struct {
	HasCost   bool
	Total     core.Money
	Filtered  core.Money
	TotalRows int
	ShownRows int
}

// Summary computes grand and filtered totals for term.
func (s *Store) Summary(term string) Summary {
	_, all := s.Snapshot()
	shown := s.Rows(term)
	col := s.cls.CostColumn
	return Summary{
		HasCost:   s.cls.HasCost(),
		Total:     TotalCost(all, col),
		Filtered:  TotalCost(shown, col),
		TotalRows: len(all),
		ShownRows: len(shown),
	}
}
