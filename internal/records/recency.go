package records

import (
	"time"

	"garage/internal/core"
)

// RecencyTag buckets a row's date relative to a reference instant.
type RecencyTag int

const (
	Unclassifiable RecencyTag = iota
	New
	Recent
	Old
)

func (t RecencyTag) String() string {
	switch t {
	case New:
		return "new"
	case Recent:
		return "recent"
	case Old:
		return "old"
	default:
		return "unclassifiable"
	}
}

// RecencyPolicy holds the bucket edges in whole days of age.
//
// A date younger than NewDays is New (future dates included), a date aged
// NewDays up to and including OldDays is Recent, anything older is Old.
type RecencyPolicy struct {
	NewDays int
	OldDays int
}

// DefaultRecency is the 90/180 day policy.
var DefaultRecency = RecencyPolicy{NewDays: 90, OldDays: 180}

// Classify tags a cell. Date cells are used as is; text cells are parsed as
// YYYY-MM-DD or MM/DD/YYYY. Anything else is Unclassifiable.
func (p RecencyPolicy) Classify(c Cell, now time.Time) RecencyTag {
	d, ok := cellDate(c)
	if !ok {
		return Unclassifiable
	}
	return p.ClassifyDate(d, now)
}

// ClassifyDate tags an already parsed date.
func (p RecencyPolicy) ClassifyDate(d core.Date, now time.Time) RecencyTag {
	age := core.DaysBetween(d, core.DateOf(now))
	switch {
	case age < p.NewDays:
		return New
	case age <= p.OldDays:
		return Recent
	default:
		return Old
	}
}

func cellDate(c Cell) (core.Date, bool) {
	switch c.Kind() {
	case KindDate:
		return c.Date()
	case KindText:
		return core.ParseDate(c.String())
	default:
		return core.Date{}, false
	}
}
