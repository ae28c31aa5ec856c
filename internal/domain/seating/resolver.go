package seating

import "sort"

// Resolve builds the candidate table sets for a party: single tables first,
// then pairs and triples when no single table is a sensible fit.
// It never fails; when nothing can seat the party every group is empty and
// the caller presents a no-availability state.
func Resolve(tables []Table, guestCount int, pol Policy) Combinations {
	var out Combinations
	if guestCount <= 0 || len(tables) == 0 {
		return out
	}

	out.Single = capGroup(adequateSingles(tables, guestCount), pol.MaxSuggestions)

	// Pairs and triples are only worth showing when no single table covers
	// the party at a sensible size; offering two 12-tops to a couple helps
	// nobody.
	if coveredBySingle(tables, guestCount, pol) {
		return out
	}
	if len(tables) > pol.MaxCombinableTables {
		return out
	}

	out.Double = capGroup(adequatePairs(tables, guestCount), pol.MaxSuggestions)
	out.Triple = capGroup(adequateTriples(tables, guestCount), pol.MaxSuggestions)
	return out
}

// adequateSingles returns singleton sets for every table that can seat the
// party, tightest fit first. Ties keep input order so output is stable.
func adequateSingles(tables []Table, guestCount int) []TableSet {
	var sets []TableSet
	for _, t := range tables {
		if t.Capacity >= guestCount {
			sets = append(sets, TableSet{t})
		}
	}
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i][0].Capacity < sets[j][0].Capacity
	})
	return sets
}

func adequatePairs(tables []Table, guestCount int) []TableSet {
	var sets []TableSet
	for i := 0; i < len(tables); i++ {
		for j := i + 1; j < len(tables); j++ {
			if tables[i].Capacity+tables[j].Capacity >= guestCount {
				sets = append(sets, TableSet{tables[i], tables[j]})
			}
		}
	}
	sortByCapacity(sets)
	return sets
}

func adequateTriples(tables []Table, guestCount int) []TableSet {
	var sets []TableSet
	for i := 0; i < len(tables); i++ {
		for j := i + 1; j < len(tables); j++ {
			for k := j + 1; k < len(tables); k++ {
				if tables[i].Capacity+tables[j].Capacity+tables[k].Capacity >= guestCount {
					sets = append(sets, TableSet{tables[i], tables[j], tables[k]})
				}
			}
		}
	}
	sortByCapacity(sets)
	return sets
}

func sortByCapacity(sets []TableSet) {
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].TotalCapacity() < sets[j].TotalCapacity()
	})
}

// coveredBySingle reports whether some single table already seats the party
// acceptably: any adequate table for a small party, or a reasonably sized
// one (capacity within SingleTableSlack of the party) otherwise.
func coveredBySingle(tables []Table, guestCount int, pol Policy) bool {
	for _, t := range tables {
		if t.Capacity < guestCount {
			continue
		}
		if guestCount <= pol.SmallPartyMax {
			return true
		}
		if float64(t.Capacity) <= float64(guestCount)*pol.SingleTableSlack {
			return true
		}
	}
	return false
}

func capGroup(sets []TableSet, max int) []TableSet {
	if max > 0 && len(sets) > max {
		return sets[:max]
	}
	return sets
}
