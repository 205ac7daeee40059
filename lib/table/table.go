package table

import (
	"fmt"
	"slices"
)

// Table is an in-memory tabular dataset. Column order and row order are preserved as loaded.
type Table struct {
	columns []string
	// index - column name -> position in `columns`, kept in sync by the constructors.
	index map[string]int
	rows  [][]string
}

// New builds a table from a header and its rows. Short rows are padded with empty values, long rows are rejected.
func New(columns []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, column := range columns {
		if column == "" {
			return nil, fmt.Errorf("column at position %d has an empty name", i)
		}

		if _, ok := index[column]; ok {
			return nil, fmt.Errorf("duplicate column %q", column)
		}

		index[column] = i
	}

	normalized := make([][]string, 0, len(rows))
	for i, row := range rows {
		if len(row) > len(columns) {
			return nil, fmt.Errorf("row %d has %d values, expected at most %d", i, len(row), len(columns))
		}

		if len(row) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, row)
			row = padded
		}

		normalized = append(normalized, row)
	}

	return &Table{
		columns: slices.Clone(columns),
		index:   index,
		rows:    normalized,
	}, nil
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return &Table{index: map[string]int{}}
}

func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

func (t *Table) NumColumns() int {
	return len(t.columns)
}

func (t *Table) NumRows() int {
	return len(t.rows)
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of [name] or -1 if it does not exist.
func (t *Table) ColumnIndex(name string) int {
	if idx, ok := t.index[name]; ok {
		return idx
	}

	return -1
}

// Rows returns the underlying rows in order. Callers must not modify them.
func (t *Table) Rows() [][]string {
	return t.rows
}

// MissingColumns returns the entries of [required] that are not present, sorted.
func (t *Table) MissingColumns(required []string) []string {
	var missing []string
	for _, column := range required {
		if !t.HasColumn(column) && !slices.Contains(missing, column) {
			missing = append(missing, column)
		}
	}

	slices.Sort(missing)
	return missing
}

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) {
	return t.NumRows(), t.NumColumns()
}

func (t *Table) String() string {
	return fmt.Sprintf("(%d, %d)", t.NumRows(), t.NumColumns())
}
