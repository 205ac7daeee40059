package table

import (
	"cmp"
	"fmt"
)

const (
	DefaultLeftSuffix  = "_internal"
	DefaultRightSuffix = "_external"
)

// JoinOptions controls how non-key columns present on both sides are renamed.
type JoinOptions struct {
	LeftSuffix  string
	RightSuffix string
}

func (j JoinOptions) leftSuffix() string {
	return cmp.Or(j.LeftSuffix, DefaultLeftSuffix)
}

func (j JoinOptions) rightSuffix() string {
	return cmp.Or(j.RightSuffix, DefaultRightSuffix)
}

// JoinStats counts the rows from each side that had no match on the other side.
type JoinStats struct {
	LeftUnmatched  int
	RightUnmatched int
}

func joinColumns(left, right *Table, key string, opts JoinOptions) ([]string, error) {
	var columns []string
	for _, column := range left.columns {
		if column != key && right.HasColumn(column) {
			column += opts.leftSuffix()
		}

		columns = append(columns, column)
	}

	for _, column := range right.columns {
		if column == key {
			continue
		}

		if left.HasColumn(column) {
			column += opts.rightSuffix()
		}

		columns = append(columns, column)
	}

	seen := make(map[string]bool, len(columns))
	for _, column := range columns {
		if seen[column] {
			return nil, fmt.Errorf("column %q is ambiguous after applying join suffixes", column)
		}

		seen[column] = true
	}

	return columns, nil
}

// InnerJoin joins [left] and [right] on [key], keeping only rows whose key exists on both sides.
// Output rows follow [left]'s row order, output columns are [left]'s columns followed by [right]'s non-key columns.
// Non-key columns present on both sides are suffixed according to [opts].
// If no keys match, the result has neither rows nor columns.
func InnerJoin(left, right *Table, key string, opts JoinOptions) (*Table, JoinStats, error) {
	leftKeyIdx := left.ColumnIndex(key)
	if leftKeyIdx < 0 {
		return nil, JoinStats{}, fmt.Errorf("key column %q does not exist on the left table", key)
	}

	rightKeyIdx := right.ColumnIndex(key)
	if rightKeyIdx < 0 {
		return nil, JoinStats{}, fmt.Errorf("key column %q does not exist on the right table", key)
	}

	columns, err := joinColumns(left, right, key, opts)
	if err != nil {
		return nil, JoinStats{}, err
	}

	rightRowsByKey := make(map[string][]int, len(right.rows))
	for i, row := range right.rows {
		rightRowsByKey[row[rightKeyIdx]] = append(rightRowsByKey[row[rightKeyIdx]], i)
	}

	var stats JoinStats
	matchedRight := make(map[int]bool, len(right.rows))
	var rows [][]string
	for _, leftRow := range left.rows {
		matches, ok := rightRowsByKey[leftRow[leftKeyIdx]]
		if !ok {
			stats.LeftUnmatched++
			continue
		}

		for _, rightIdx := range matches {
			matchedRight[rightIdx] = true
			row := make([]string, 0, len(columns))
			row = append(row, leftRow...)
			for i, value := range right.rows[rightIdx] {
				if i != rightKeyIdx {
					row = append(row, value)
				}
			}

			rows = append(rows, row)
		}
	}

	stats.RightUnmatched = len(right.rows) - len(matchedRight)
	if len(rows) == 0 {
		return Empty(), stats, nil
	}

	joined, err := New(columns, rows)
	if err != nil {
		return nil, JoinStats{}, fmt.Errorf("failed to build joined table: %w", err)
	}

	return joined, stats, nil
}
