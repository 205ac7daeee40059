package table

import "fmt"

// DropDuplicates keeps the first row seen for every distinct value of [key] and returns the number of rows removed.
// The receiver is left untouched.
func (t *Table) DropDuplicates(key string) (*Table, int, error) {
	idx := t.ColumnIndex(key)
	if idx < 0 {
		return nil, 0, fmt.Errorf("key column %q does not exist", key)
	}

	seen := make(map[string]struct{}, len(t.rows))
	rows := make([][]string, 0, len(t.rows))
	for _, row := range t.rows {
		if _, ok := seen[row[idx]]; ok {
			continue
		}

		seen[row[idx]] = struct{}{}
		rows = append(rows, row)
	}

	return &Table{
		columns: t.Columns(),
		index:   t.index,
		rows:    rows,
	}, len(t.rows) - len(rows), nil
}
