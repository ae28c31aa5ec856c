package seating

// Table is an availability snapshot of a physical table. The client never
// mutates tables, it only selects them.
type Table struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	AreaID   string `json:"area_id"`
	Type     string `json:"type"`
}

// TableSet is a set of tables assigned (or proposed) for one party.
// Invariant: no duplicate table ids.
type TableSet []Table

func (s TableSet) TotalCapacity() int {
	total := 0
	for _, t := range s {
		total += t.Capacity
	}
	return total
}

func (s TableSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for _, t := range s {
		ids = append(ids, t.ID)
	}
	return ids
}

func (s TableSet) Contains(id string) bool {
	for _, t := range s {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Equal reports set equality by table id, order-independent.
func (s TableSet) Equal(other TableSet) bool {
	if len(s) != len(other) {
		return false
	}
	for _, t := range s {
		if !other.Contains(t.ID) {
			return false
		}
	}
	return true
}

// Combinations holds ranked candidate sets grouped by cardinality.
// Groups may arrive precomputed from the server or be built locally by
// Resolve; members of a group are interchangeable.
type Combinations struct {
	Single []TableSet `json:"single"`
	Double []TableSet `json:"double"`
	Triple []TableSet `json:"triple"`
}

func (c Combinations) Empty() bool {
	return len(c.Single) == 0 && len(c.Double) == 0 && len(c.Triple) == 0
}
