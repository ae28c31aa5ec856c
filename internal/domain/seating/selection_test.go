package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionToggleReplacesAndClears(t *testing.T) {
	var s Selection
	a, b := tbl("a", 4), tbl("b", 6)

	s.Toggle(a)
	assert.True(t, s.IsSelected(a))
	assert.Equal(t, 4, s.TotalCapacity())

	// Toggling a different table replaces rather than extends.
	s.Toggle(b)
	assert.False(t, s.IsSelected(a))
	assert.True(t, s.IsSelected(b))

	// Toggling the sole selected table clears the selection.
	s.Toggle(b)
	assert.Empty(t, s.Tables())
	assert.Equal(t, 0, s.TotalCapacity())
}

func TestSelectionToggleAfterCombination(t *testing.T) {
	var s Selection
	a, b := tbl("a", 4), tbl("b", 6)
	s.SetCombination(TableSet{a, b})

	// With two tables selected, toggling one of them collapses the
	// selection to that single table.
	s.Toggle(a)
	require.Len(t, s.Tables(), 1)
	assert.True(t, s.IsSelected(a))
}

func TestSelectionCombination(t *testing.T) {
	var s Selection
	a, b, c := tbl("a", 2), tbl("b", 2), tbl("c", 2)

	s.SetCombination(TableSet{a, b, c})
	assert.Equal(t, 6, s.TotalCapacity())
	assert.True(t, s.IsCombinationSelected(TableSet{c, a, b}), "set equality ignores order")
	assert.False(t, s.IsCombinationSelected(TableSet{a, b}))

	s.SetCombination(TableSet{a})
	assert.False(t, s.IsSelected(b))
}

func TestSelectionAdequacy(t *testing.T) {
	var s Selection
	assert.False(t, s.IsAdequate(0), "empty selection seats nobody")

	s.SetCombination(TableSet{tbl("a", 4)})
	assert.True(t, s.IsAdequate(4))
	assert.False(t, s.IsAdequate(5))
}

func TestSelectionTablesReturnsCopy(t *testing.T) {
	var s Selection
	s.SetCombination(TableSet{tbl("a", 4), tbl("b", 2)})

	got := s.Tables()
	got[0] = tbl("z", 99)
	assert.True(t, s.IsSelected(tbl("a", 4)))
	assert.Equal(t, 6, s.TotalCapacity())
}
