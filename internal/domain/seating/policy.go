package seating

// Policy holds the allocation tuning knobs that used to live inline in the
// selection logic. Values are product decisions, not derived.
type Policy struct {
	// SmallPartyMax is the party size up to which any adequate single table
	// is acceptable, even a generously oversized one.
	SmallPartyMax int

	// SingleTableSlack bounds how oversized a single table may be and still
	// count as a reasonable fit: capacity <= guestCount * SingleTableSlack.
	SingleTableSlack float64

	// MaxSuggestions caps how many candidate sets each combination group
	// carries for display.
	MaxSuggestions int

	// MaxCombinableTables guards the exhaustive pair/triple enumeration.
	// Beyond this many tables the quadratic/cubic search is skipped.
	MaxCombinableTables int
}

func DefaultPolicy() Policy {
	return Policy{
		SmallPartyMax:       4,
		SingleTableSlack:    1.5,
		MaxSuggestions:      3,
		MaxCombinableTables: 50,
	}
}
