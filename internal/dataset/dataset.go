// Package dataset holds the immutable rows loaded from a JSON input and the
// helpers that give every row a display form and a content identity.
package dataset

// Dataset is the ordered, immutable collection of rows loaded at startup.
type Dataset struct {
	rows    []Row
	columns []string
}

// New wraps rows into a Dataset. The offered columns are the keys of the
// first row only; keys that appear only in later rows are never columns.
func New(rows []Row) *Dataset {
	d := &Dataset{rows: rows}
	if len(rows) > 0 {
		d.columns = rows[0].Keys()
	}
	return d
}

// Rows returns the rows in load order. The returned slice is a copy.
func (d *Dataset) Rows() []Row {
	if d == nil {
		return nil
	}
	out := make([]Row, len(d.rows))
	copy(out, d.rows)
	return out
}

// Columns returns every column offered by the dataset, in first-row order.
func (d *Dataset) Columns() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

func (d *Dataset) Empty() bool { return d.Len() == 0 || len(d.columns) == 0 }
