package domain

import "time"

// IsUpcoming reports whether start falls on a calendar day after now's day.
// Both dates are taken in now's location.
func IsUpcoming(start, now time.Time) bool {
	sy, sm, sd := start.In(now.Location()).Date()
	ny, nm, nd := now.Date()

	if sy != ny {
		return sy > ny
	}
	if sm != nm {
		return sm > nm
	}
	return sd > nd
}

// UpcomingBoundary returns the first instant that IsUpcoming treats as
// upcoming: midnight at the start of the day after now.
func UpcomingBoundary(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}
