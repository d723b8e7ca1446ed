package core

import "time"

// UpcomingService is the projection of one maintenance type for a vehicle.
// The Last* and NextDue* fields are absent (zero/nil) when no record of the
// vehicle carries a service type textually equal to TypeName.
type UpcomingService struct {
	TypeName         string
	IntervalMonths   int
	IntervalDistance int
	LastServiceDate  Date
	LastDistance     *int64
	NextDueDate      Date
	NextDueDistance  *int64
}

// HasHistory reports whether a matching record was found.
func (u UpcomingService) HasHistory() bool {
	return !u.LastServiceDate.IsEmpty()
}

// Overdue reports whether the next-due date is strictly before the day of now.
func (u UpcomingService) Overdue(now time.Time) bool {
	if u.NextDueDate.IsEmpty() {
		return false
	}
	return u.NextDueDate.Before(DateOf(now).Time)
}
