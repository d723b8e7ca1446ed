// Package records holds the in-memory table engine: the cell model, column
// role inference, recency tagging, the row store and cost aggregation.
package records

import (
	"strconv"
	"strings"
	"time"

	"garage/internal/core"
)

// Kind discriminates the value held by a Cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
	KindDate
)

// Cell is a single table value. The zero Cell is empty, which is distinct
// from a zero number. Blank text is not a separate kind: Text("") yields the
// empty cell, so a blank spreadsheet cell and a cleared one compare equal.
type Cell struct {
	kind Kind
	text string
	num  float64
	date core.Date
}

// Row is an ordered sequence of cells aligned positionally to the headers.
type Row []Cell

func Empty() Cell { return Cell{} }

// Text returns a text cell. The empty string yields an empty cell.
func Text(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{kind: KindText, text: s}
}

func Number(f float64) Cell { return Cell{kind: KindNumber, num: f} }

// DateCell returns a date cell truncated to the calendar day of t.
func DateCell(t time.Time) Cell {
	if t.IsZero() {
		return Cell{}
	}
	return Cell{kind: KindDate, date: core.DateOf(t)}
}

// TextRow builds a row of text cells, as produced by free-form entry.
func TextRow(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = Text(v)
	}
	return row
}

func (c Cell) Kind() Kind { return c.kind }

func (c Cell) IsEmpty() bool { return c.kind == KindEmpty }

func (c Cell) Number() (float64, bool) {
	return c.num, c.kind == KindNumber
}

// Date returns the date held by a date cell.
func (c Cell) Date() (core.Date, bool) {
	return c.date, c.kind == KindDate
}

// String is the display form: dates as YYYY-MM-DD, numbers without exponent,
// empty cells as "".
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindDate:
		return c.date.String()
	default:
		return ""
	}
}

// Equal compares kind and value.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindText:
		return c.text == o.text
	case KindNumber:
		return c.num == o.num
	case KindDate:
		return c.date.Equal(o.date.Time)
	default:
		return true
	}
}

// containsFold reports whether the display form of c contains lowerTerm.
func (c Cell) containsFold(lowerTerm string) bool {
	return strings.Contains(strings.ToLower(c.String()), lowerTerm)
}

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Equal compares two rows cell by cell.
func (r Row) Equal(o Row) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if !r[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Strings returns the display form of every cell.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.String()
	}
	return out
}
