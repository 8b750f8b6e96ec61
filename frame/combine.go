package frame

import (
	"fmt"
	"strings"

	"github.com/go-parti/parti/errors"
)

// Combiner merges Frames row-wise, preserving first-seen column order. It is
// the combine strategy used by tabular concatenated datasets. The merge is
// order-insensitive at the row level: combining the same set of partitions in
// any enumeration order yields the same multiset of rows (column order is
// fixed by the first partition combined).
type Combiner struct {
	// AllowNewColumns admits partitions whose column sets differ from the
	// aggregate. New columns are appended in first-seen order and absent
	// cells are nil. When false, any column mismatch is a merge error.
	AllowNewColumns bool
}

// Zero returns an empty Frame with no columns
func (c *Combiner) Zero() interface{} {
	f, _ := CreateFrame()
	return f
}

// Combine appends the rows of one loaded partition to the aggregate Frame
func (c *Combiner) Combine(agg interface{}, key string, value interface{}) (interface{}, error) {
	target, ok := agg.(*Frame)
	if !ok {
		return nil, errors.MergeError{Key: key, Reason: fmt.Sprintf("aggregate is %T, not a frame", agg)}
	}
	part, ok := value.(*Frame)
	if !ok {
		return nil, errors.MergeError{Key: key, Reason: fmt.Sprintf("partition value is %T, not a frame", value)}
	}
	// the first partition fixes the aggregate's column order
	if target.NumColumns() == 0 && target.NumRows() == 0 {
		target = part.Clone()
		return target, nil
	}
	missing, extra := diffColumns(target, part)
	if !c.AllowNewColumns && (len(missing) > 0 || len(extra) > 0) {
		return nil, errors.MergeError{Key: key, Reason: describeMismatch(missing, extra)}
	}
	for _, name := range extra {
		target.index[name] = len(target.cols)
		target.cols = append(target.cols, name)
	}
	// pad pre-existing rows out to the widened column set
	for i, row := range target.rows {
		for len(row) < len(target.cols) {
			row = append(row, nil)
		}
		target.rows[i] = row
	}
	// remap each partition row into aggregate column order
	err := part.ForEachRow(func(rowNum int, cells []interface{}) error {
		row := make([]interface{}, len(target.cols))
		for j, name := range target.cols {
			if idx, ok := part.index[name]; ok {
				row[j] = cells[idx]
			}
		}
		target.rows = append(target.rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

// diffColumns reports aggregate columns absent from the partition (missing)
// and partition columns absent from the aggregate (extra), in column order
func diffColumns(target *Frame, part *Frame) (missing []string, extra []string) {
	for _, name := range target.cols {
		if !part.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	for _, name := range part.cols {
		if !target.HasColumn(name) {
			extra = append(extra, name)
		}
	}
	return
}

func describeMismatch(missing []string, extra []string) string {
	parts := make([]string, 0, 2)
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("partition lacks columns %s", strings.Join(missing, ", ")))
	}
	if len(extra) > 0 {
		parts = append(parts, fmt.Sprintf("partition adds columns %s", strings.Join(extra, ", ")))
	}
	return strings.Join(parts, "; ")
}
