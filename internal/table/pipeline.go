package table

import (
	"sort"
	"strings"

	"github.com/baaaaaaaka/jsonview/internal/dataset"
)

// Query is everything the pipeline needs from the view state.
type Query struct {
	// Columns are the visible columns; the filter only looks at these.
	Columns      []string
	Filter       string
	SortColumn   string
	Ascending    bool
	BookmarkOnly bool
	Bookmarks    map[dataset.ID]struct{}
}

// RenderSet runs filter, sort and bookmark filter, in that order, over rows.
// The input slice is never modified.
func RenderSet(rows []dataset.Row, q Query) []dataset.Row {
	out := Filter(rows, q.Columns, q.Filter)
	if q.SortColumn != "" {
		out = Sort(out, q.SortColumn, q.Ascending)
	}
	if q.BookmarkOnly {
		out = OnlyBookmarked(out, q.Bookmarks)
	}
	return out
}

// Filter keeps rows where some column contains text, ignoring case.
func Filter(rows []dataset.Row, columns []string, text string) []dataset.Row {
	out := make([]dataset.Row, 0, len(rows))
	if text == "" {
		return append(out, rows...)
	}
	needle := strings.ToLower(text)
	for _, row := range rows {
		for _, col := range columns {
			if strings.Contains(strings.ToLower(row.Value(col)), needle) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// Sort returns a stably sorted copy of rows ordered by column. A missing
// value sorts as the empty string. If any two values cannot be compared the
// copy is returned in its original order.
func Sort(rows []dataset.Row, column string, ascending bool) []dataset.Row {
	out := make([]dataset.Row, len(rows))
	copy(out, rows)

	keys := make([]any, len(rows))
	for i, row := range rows {
		v, ok := row.Get(column)
		if !ok {
			v = ""
		}
		keys[i] = v
	}

	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	failed := false
	sort.SliceStable(idx, func(i, j int) bool {
		if failed {
			return false
		}
		a, b := keys[idx[i]], keys[idx[j]]
		if !ascending {
			a, b = b, a
		}
		c, err := compareValues(a, b)
		if err != nil {
			failed = true
			return false
		}
		return c < 0
	})
	if failed {
		return out
	}
	for i, k := range idx {
		out[i] = rows[k]
	}
	return out
}

// OnlyBookmarked keeps rows whose identity is in bookmarks.
func OnlyBookmarked(rows []dataset.Row, bookmarks map[dataset.ID]struct{}) []dataset.Row {
	out := make([]dataset.Row, 0, len(rows))
	for _, row := range rows {
		if _, ok := bookmarks[row.ID()]; ok {
			out = append(out, row)
		}
	}
	return out
}
