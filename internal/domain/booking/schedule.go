package booking

import "time"

// NearestBookings determines, from an item's approved bookings ordered by
// end ascending, the most recently completed booking and the soonest
// upcoming one relative to now. Either result may be nil.
//
// A single approved booking is always classified as "last", even when its
// start is still in the future. Existing clients depend on this, so it is
// kept as is.
func NearestBookings(approved []*Booking, now time.Time) (last, next *Booking) {
	switch len(approved) {
	case 0:
		return nil, nil
	case 1:
		return approved[0], nil
	}

	last = approved[0]
	next = approved[len(approved)-1]
	for _, b := range approved {
		if b.End().Before(now) && b.End().After(last.End()) {
			last = b
		}
		if b.Start().After(now) && b.End().Before(next.End()) {
			next = b
		}
	}
	return last, next
}
