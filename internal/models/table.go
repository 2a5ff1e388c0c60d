package models

// Row maps a column name to its cell value. Every value is a normalized
// string by the time a row leaves the transform stage.
type Row map[string]string

// Table is an ordered, sheet-shaped collection of rows. Columns carries the
// authoritative column order; Row maps are only looked up through it, so
// unknown columns survive every stage with their position intact.
type Table struct {
	Columns []string
	Rows    []Row
}

func NewTable(columns ...string) Table {
	return Table{Columns: columns}
}

// Clone returns a deep copy. Stages copy before mutating so reruns stay
// keyed only on the raw input.
func (t Table) Clone() Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		clone := make(Row, len(row))
		for k, v := range row {
			clone[k] = v
		}
		out.Rows = append(out.Rows, clone)
	}
	return out
}

func (t Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Column returns the named column's values in row order. Missing cells read
// as the empty string.
func (t Table) Column(name string) []string {
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		values = append(values, row[name])
	}
	return values
}

// AppendColumn adds an empty column at the end of the column order. Adding
// an existing column is a no-op.
func (t *Table) AppendColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
	for _, row := range t.Rows {
		row[name] = ""
	}
}

// SetColumn overwrites the named column in row order, appending the column
// first when absent. Extra values beyond the row count are ignored.
func (t *Table) SetColumn(name string, values []string) {
	t.AppendColumn(name)
	for i, row := range t.Rows {
		if i >= len(values) {
			break
		}
		row[name] = values[i]
	}
}

// AddRow appends a row built from values in column order.
func (t *Table) AddRow(values ...string) {
	row := make(Row, len(t.Columns))
	for i, col := range t.Columns {
		if i < len(values) {
			row[col] = values[i]
		} else {
			row[col] = ""
		}
	}
	t.Rows = append(t.Rows, row)
}

// IsEmpty reports whether every cell of the row is empty under the given
// column order.
func (r Row) IsEmpty(columns []string) bool {
	for _, col := range columns {
		if r[col] != "" {
			return false
		}
	}
	return true
}
