package booking

import (
	"fmt"
	"time"
)

// Policy holds the temporal and party-size booking rules. The values are
// fixed product decisions surfaced as configuration rather than re-derived.
type Policy struct {
	// MinLeadMinutes is the minimum interval between "now" and the reserved
	// time for same-day bookings. Future days carry no lead restriction.
	MinLeadMinutes int

	// MaxOnlineParty is the party size at which self-service booking cuts
	// off. Parties of this size or larger are routed to offline contact,
	// never to allocation.
	MaxOnlineParty int
}

func DefaultPolicy() Policy {
	return Policy{
		MinLeadMinutes: 60,
		MaxOnlineParty: 23,
	}
}

// ValidateTime checks a candidate date+time against now. The caller supplies
// now already converted to the restaurant's civil timezone; the rules never
// consult the process-local zone.
//
// Exactly MinLeadMinutes ahead is acceptable; one minute less is not.
func ValidateTime(d Date, t ClockTime, now time.Time, pol Policy) Outcome {
	today := DateOf(now)
	if d.Before(today) {
		return invalid("cannot book in the past")
	}
	if d.Equal(today) {
		lead := t.MinutesIntoDay() - (now.Hour()*60 + now.Minute())
		if lead < pol.MinLeadMinutes {
			return invalid(fmt.Sprintf("must book at least %d minutes ahead", pol.MinLeadMinutes))
		}
	}
	return valid()
}

// ExceedsOnlineLimit is the hard ceiling on self-service party size. When it
// reports true the allocation pipeline must not run at all.
func ExceedsOnlineLimit(guestCount int, pol Policy) bool {
	return guestCount >= pol.MaxOnlineParty
}
