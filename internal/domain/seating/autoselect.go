package seating

// AutoSelect picks the default selection for a party. The decision ladder is
// an ordered list of strategies, first match wins:
//
//  1. small party: smallest adequate single table
//  2. reasonably sized single table (not grossly oversized)
//  3. server-supplied combination hints, single then double then triple
//  4. locally enumerated pair, then triple, in table order
//
// When no strategy matches it returns an empty set, which callers must treat
// as "cannot auto-seat" rather than an error.
func AutoSelect(tables []Table, hints Combinations, guestCount int, pol Policy) TableSet {
	if guestCount <= 0 {
		return nil
	}
	in := selectInput{tables: tables, hints: hints, guestCount: guestCount, pol: pol}
	strategies := []selectStrategy{
		smallPartySingle,
		reasonableSingle,
		hintedCombination,
		enumeratedCombination,
	}
	for _, s := range strategies {
		if set, ok := s(in); ok {
			return set
		}
	}
	return nil
}

type selectInput struct {
	tables     []Table
	hints      Combinations
	guestCount int
	pol        Policy
}

type selectStrategy func(selectInput) (TableSet, bool)

func smallPartySingle(in selectInput) (TableSet, bool) {
	if in.guestCount > in.pol.SmallPartyMax {
		return nil, false
	}
	return smallestSingle(in.tables, in.guestCount, 0)
}

func reasonableSingle(in selectInput) (TableSet, bool) {
	limit := float64(in.guestCount) * in.pol.SingleTableSlack
	return smallestSingle(in.tables, in.guestCount, limit)
}

// smallestSingle finds the tightest adequate table; a non-zero maxCapacity
// additionally bounds how large the table may be.
func smallestSingle(tables []Table, guestCount int, maxCapacity float64) (TableSet, bool) {
	var best *Table
	for i := range tables {
		t := tables[i]
		if t.Capacity < guestCount {
			continue
		}
		if maxCapacity > 0 && float64(t.Capacity) > maxCapacity {
			continue
		}
		if best == nil || t.Capacity < best.Capacity {
			best = &tables[i]
		}
	}
	if best == nil {
		return nil, false
	}
	return TableSet{*best}, true
}

// hintedCombination trusts server-precomputed groups but still rejects any
// hint that does not actually seat the party.
func hintedCombination(in selectInput) (TableSet, bool) {
	for _, group := range [][]TableSet{in.hints.Single, in.hints.Double, in.hints.Triple} {
		for _, set := range group {
			if set.TotalCapacity() >= in.guestCount {
				return set, true
			}
		}
	}
	return nil, false
}

// enumeratedCombination falls back to the first adequate pair, then triple,
// in ascending table order.
func enumeratedCombination(in selectInput) (TableSet, bool) {
	tables := in.tables
	for i := 0; i < len(tables); i++ {
		for j := i + 1; j < len(tables); j++ {
			if tables[i].Capacity+tables[j].Capacity >= in.guestCount {
				return TableSet{tables[i], tables[j]}, true
			}
		}
	}
	for i := 0; i < len(tables); i++ {
		for j := i + 1; j < len(tables); j++ {
			for k := j + 1; k < len(tables); k++ {
				if tables[i].Capacity+tables[j].Capacity+tables[k].Capacity >= in.guestCount {
					return TableSet{tables[i], tables[j], tables[k]}, true
				}
			}
		}
	}
	return nil, false
}
