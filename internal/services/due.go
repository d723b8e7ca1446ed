// Package services provides business logic and orchestration services.
package services

import (
	"time"

	"garage/internal/core"
)

// AddMonthsClamped moves d forward by months, keeping the day of month where
// possible. A day that does not exist in the target month is clamped to that
// month's last day, so Jan 31 plus one month is the last day of February.
func AddMonthsClamped(d core.Date, months int) core.Date {
	if d.IsEmpty() {
		return d
	}
	y, m, day := d.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return core.NewDate(first.Year(), int(first.Month()), day)
}

// project builds one UpcomingService per maintenance type, in name order.
// Records match a type only when their service type equals the type name
// exactly. The last date and the last distance are each the maximum over the
// matching records, independently of one another.
func project(types []core.MaintenanceType, recs []core.MaintenanceRecord) []core.UpcomingService {
	out := make([]core.UpcomingService, 0, len(types))
	for _, mt := range sortedTypes(types) {
		u := core.UpcomingService{
			TypeName:         mt.Name,
			IntervalMonths:   mt.IntervalMonths,
			IntervalDistance: mt.IntervalDistance,
		}
		for _, r := range recs {
			if r.ServiceType != mt.Name {
				continue
			}
			if u.LastServiceDate.IsEmpty() || r.ServiceDate.After(u.LastServiceDate.Time) {
				u.LastServiceDate = r.ServiceDate
			}
			if r.Distance != nil && (u.LastDistance == nil || *r.Distance > *u.LastDistance) {
				d := *r.Distance
				u.LastDistance = &d
			}
		}
		if u.HasHistory() && mt.IntervalMonths > 0 {
			u.NextDueDate = AddMonthsClamped(u.LastServiceDate, mt.IntervalMonths)
		}
		if u.LastDistance != nil && mt.IntervalDistance > 0 {
			next := *u.LastDistance + int64(mt.IntervalDistance)
			u.NextDueDistance = &next
		}
		out = append(out, u)
	}
	return out
}
