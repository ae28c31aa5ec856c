package seating

// Selection holds the table set the guest currently has chosen for one
// booking attempt. Not safe for concurrent use; the planner serializes
// access.
type Selection struct {
	tables TableSet
}

// Toggle implements the single-table tap behavior: tapping the only selected
// table clears the selection, tapping anything else replaces the selection
// with just that table. Ad hoc multi-select by toggling is intentionally not
// supported; multi-table selection goes through SetCombination.
func (s *Selection) Toggle(t Table) {
	if len(s.tables) == 1 && s.tables[0].ID == t.ID {
		s.tables = nil
		return
	}
	s.tables = TableSet{t}
}

// SetCombination replaces the selection wholesale with the given set.
func (s *Selection) SetCombination(set TableSet) {
	s.tables = append(TableSet(nil), set...)
}

func (s *Selection) Clear() {
	s.tables = nil
}

func (s *Selection) IsSelected(t Table) bool {
	return s.tables.Contains(t.ID)
}

func (s *Selection) IsCombinationSelected(set TableSet) bool {
	return len(s.tables) > 0 && s.tables.Equal(set)
}

// Tables returns a copy of the current selection.
func (s *Selection) Tables() TableSet {
	return append(TableSet(nil), s.tables...)
}

func (s *Selection) TotalCapacity() int {
	return s.tables.TotalCapacity()
}

func (s *Selection) IsAdequate(guestCount int) bool {
	return len(s.tables) > 0 && s.TotalCapacity() >= guestCount
}
