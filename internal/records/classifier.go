package records

import "strings"

// ColumnRole is the semantic category inferred for a column from its header.
type ColumnRole int

const (
	RoleDefault ColumnRole = iota
	RoleDate
	RoleCost
	RoleStatus
)

func (r ColumnRole) String() string {
	switch r {
	case RoleDate:
		return "date"
	case RoleCost:
		return "cost"
	case RoleStatus:
		return "status"
	default:
		return "default"
	}
}

// Keyword sets, tested in this order. The first set containing a substring
// of the lower-cased header decides the header's role.
var (
	dateKeywords   = []string{"date", "day", "when"}
	costKeywords   = []string{"cost", "price", "amount", "total", "charge", "fee"}
	statusKeywords = []string{"status", "condition", "maintenance", "service", "repair", "mileage", "odometer"}
)

// Classification is the role assignment of one header row. DateColumn and
// CostColumn are -1 when no header matched.
type Classification struct {
	DateColumn    int
	CostColumn    int
	StatusColumns []int
	width         int
}

// ClassifyColumns assigns roles to headers. Date and cost are singular: when
// several headers match, the last one in column order holds the role and the
// earlier ones fall back to default. Any number of status columns is allowed.
func ClassifyColumns(headers []string) Classification {
	c := Classification{DateColumn: -1, CostColumn: -1, width: len(headers)}
	for i, h := range headers {
		lower := strings.ToLower(h)
		switch {
		case containsAny(lower, dateKeywords):
			c.DateColumn = i
		case containsAny(lower, costKeywords):
			c.CostColumn = i
		case containsAny(lower, statusKeywords):
			c.StatusColumns = append(c.StatusColumns, i)
		}
	}
	return c
}

// Role returns the role of column i. Out-of-range columns are default.
func (c Classification) Role(i int) ColumnRole {
	switch {
	case i < 0 || i >= c.width:
		return RoleDefault
	case i == c.DateColumn:
		return RoleDate
	case i == c.CostColumn:
		return RoleCost
	}
	for _, s := range c.StatusColumns {
		if s == i {
			return RoleStatus
		}
	}
	return RoleDefault
}

// Roles returns the role of every column in order.
func (c Classification) Roles() []ColumnRole {
	out := make([]ColumnRole, c.width)
	for i := range out {
		out[i] = c.Role(i)
	}
	return out
}

func (c Classification) HasDate() bool { return c.DateColumn >= 0 }

func (c Classification) HasCost() bool { return c.CostColumn >= 0 }

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
