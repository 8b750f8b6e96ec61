package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-parti/parti/errors"
)

func makeFrame(t *testing.T, cols []string, rows ...[]interface{}) *Frame {
	f, err := CreateFrame(cols...)
	require.Nil(t, err)
	for _, row := range rows {
		require.Nil(t, f.AppendRow(row...))
	}
	return f
}

func TestCombinePreservesFirstSeenColumnOrder(t *testing.T) {
	c := &Combiner{}
	agg := c.Zero()

	agg, err := c.Combine(agg, "a.csv", makeFrame(t, []string{"id", "value"}, []interface{}{"a", 1.0}))
	require.Nil(t, err)
	agg, err = c.Combine(agg, "b.csv", makeFrame(t, []string{"id", "value"}, []interface{}{"b", 2.0}))
	require.Nil(t, err)

	combined := agg.(*Frame)
	require.Equal(t, []string{"id", "value"}, combined.ColumnNames())
	require.Equal(t, 2, combined.NumRows())
	cell, err := combined.Cell(1, "value")
	require.Nil(t, err)
	require.Equal(t, 2.0, cell)
}

func TestCombineMismatchedColumnsIsMergeError(t *testing.T) {
	c := &Combiner{}
	agg := c.Zero()

	agg, err := c.Combine(agg, "a.csv", makeFrame(t, []string{"id", "value"}))
	require.Nil(t, err)
	_, err = c.Combine(agg, "b.csv", makeFrame(t, []string{"id", "amount"}))
	require.NotNil(t, err)
	require.IsType(t, errors.MergeError{}, err)
}

func TestCombineAllowNewColumnsUnions(t *testing.T) {
	c := &Combiner{AllowNewColumns: true}
	agg := c.Zero()

	agg, err := c.Combine(agg, "a.csv", makeFrame(t, []string{"id", "value"}, []interface{}{"a", 1.0}))
	require.Nil(t, err)
	agg, err = c.Combine(agg, "b.csv", makeFrame(t, []string{"id", "amount"}, []interface{}{"b", 3.0}))
	require.Nil(t, err)

	combined := agg.(*Frame)
	require.Equal(t, []string{"id", "value", "amount"}, combined.ColumnNames())
	require.Equal(t, 2, combined.NumRows())

	// pre-existing rows are padded with nil for new columns
	cell, err := combined.Cell(0, "amount")
	require.Nil(t, err)
	require.Nil(t, cell)
	// new rows carry nil for columns they lack
	cell, err = combined.Cell(1, "value")
	require.Nil(t, err)
	require.Nil(t, cell)
	cell, err = combined.Cell(1, "amount")
	require.Nil(t, err)
	require.Equal(t, 3.0, cell)
}

func TestCombineRowsAreOrderInsensitive(t *testing.T) {
	c := &Combiner{}
	parts := map[string]*Frame{
		"a.csv": makeFrame(t, []string{"id"}, []interface{}{"a"}),
		"b.csv": makeFrame(t, []string{"id"}, []interface{}{"b"}),
	}

	forward := c.Zero()
	var err error
	for _, key := range []string{"a.csv", "b.csv"} {
		forward, err = c.Combine(forward, key, parts[key].Clone())
		require.Nil(t, err)
	}
	backward := c.Zero()
	for _, key := range []string{"b.csv", "a.csv"} {
		backward, err = c.Combine(backward, key, parts[key].Clone())
		require.Nil(t, err)
	}

	// same multiset of rows either way
	rows := func(f *Frame) map[interface{}]bool {
		seen := make(map[interface{}]bool)
		require.Nil(t, f.ForEachRow(func(_ int, cells []interface{}) error {
			seen[cells[0]] = true
			return nil
		}))
		return seen
	}
	require.Equal(t, rows(forward.(*Frame)), rows(backward.(*Frame)))
}

func TestCombineRejectsNonFrames(t *testing.T) {
	c := &Combiner{}
	_, err := c.Combine(c.Zero(), "a.csv", 42)
	require.NotNil(t, err)
	require.IsType(t, errors.MergeError{}, err)
}
