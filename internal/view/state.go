// Package view holds the viewer state and its transitions. Nothing here
// touches the terminal; the tui package drives these from key actions.
package view

import (
	"github.com/baaaaaaaka/jsonview/internal/dataset"
	"github.com/baaaaaaaka/jsonview/internal/table"
)

// State is the mutable state of one viewing session.
//
// When displayed is non-empty, 0 <= Scroll <= Selected < Scroll+viewH and
// Selected < len(displayed) after Clamp. Both are 0 when displayed is empty.
type State struct {
	Filter       string
	SortColumn   string
	Ascending    bool
	Columns      []string
	Bookmarks    map[dataset.ID]struct{}
	BookmarkOnly bool
	Selected     int
	Scroll       int

	all []string
}

// New returns the default state showing every column.
func New(columns []string) *State {
	all := append([]string(nil), columns...)
	return &State{
		Ascending: true,
		Columns:   append([]string(nil), all...),
		Bookmarks: map[dataset.ID]struct{}{},
		all:       all,
	}
}

// AllColumns returns every column the dataset offers.
func (s *State) AllColumns() []string { return append([]string(nil), s.all...) }

// Query describes the pipeline run for the current state.
func (s *State) Query() table.Query {
	return table.Query{
		Columns:      s.Columns,
		Filter:       s.Filter,
		SortColumn:   s.SortColumn,
		Ascending:    s.Ascending,
		BookmarkOnly: s.BookmarkOnly,
		Bookmarks:    s.Bookmarks,
	}
}

// Displayed runs the pipeline for rows.
func (s *State) Displayed(rows []dataset.Row) []dataset.Row {
	return table.RenderSet(rows, s.Query())
}

// Clamp restores the selection and scroll invariants for n displayed rows
// and a viewport of viewH rows.
func (s *State) Clamp(n, viewH int) {
	if n <= 0 {
		s.Selected = 0
		s.Scroll = 0
		return
	}
	if viewH < 1 {
		viewH = 1
	}
	s.Selected = clamp(s.Selected, 0, n-1)
	if s.Selected < s.Scroll {
		s.Scroll = s.Selected
	} else if s.Selected >= s.Scroll+viewH {
		s.Scroll = s.Selected - viewH + 1
	}
	s.Scroll = clamp(s.Scroll, 0, max(0, n-viewH))
	if s.Scroll > s.Selected {
		s.Scroll = s.Selected
	}
}

// Move shifts the selection by delta rows.
func (s *State) Move(delta, n, viewH int) {
	if n <= 0 {
		return
	}
	s.Selected += delta
	s.Clamp(n, viewH)
}

func (s *State) Home(n, viewH int) {
	s.Selected = 0
	s.Clamp(n, viewH)
}

func (s *State) End(n, viewH int) {
	s.Selected = n - 1
	s.Clamp(n, viewH)
}

func (s *State) resetCursor() {
	s.Selected = 0
	s.Scroll = 0
}

// SetFilter replaces the filter text and moves to the top.
func (s *State) SetFilter(text string) {
	s.Filter = text
	s.resetCursor()
}

func (s *State) ClearFilter() { s.SetFilter("") }

// ApplySort sets the sort column and direction and moves to the top.
func (s *State) ApplySort(column string, ascending bool) {
	s.SortColumn = column
	s.Ascending = ascending
	s.resetCursor()
}

// SetColumns replaces the visible columns. An empty list falls back to all
// columns. A sort on a column that is no longer visible is cleared.
func (s *State) SetColumns(columns []string) {
	if len(columns) == 0 {
		columns = s.all
	}
	s.Columns = append([]string(nil), columns...)
	if s.SortColumn != "" && !contains(s.Columns, s.SortColumn) {
		s.SortColumn = ""
	}
}

// Bookmarked reports whether id is bookmarked.
func (s *State) Bookmarked(id dataset.ID) bool {
	_, ok := s.Bookmarks[id]
	return ok
}

// ToggleBookmark flips the bookmark of id and reports the new state.
func (s *State) ToggleBookmark(id dataset.ID) bool {
	if s.Bookmarks == nil {
		s.Bookmarks = map[dataset.ID]struct{}{}
	}
	if _, ok := s.Bookmarks[id]; ok {
		delete(s.Bookmarks, id)
		return false
	}
	s.Bookmarks[id] = struct{}{}
	return true
}

// NextBookmark moves the selection to the next bookmarked row after the
// current one, wrapping around. The selection is unchanged when no
// displayed row is bookmarked.
func (s *State) NextBookmark(displayed []dataset.Row, viewH int) bool {
	n := len(displayed)
	if n == 0 || len(s.Bookmarks) == 0 {
		return false
	}
	for step := 1; step <= n; step++ {
		idx := (s.Selected + step) % n
		if s.Bookmarked(displayed[idx].ID()) {
			s.Selected = idx
			s.Clamp(n, viewH)
			return true
		}
	}
	return false
}

// ToggleBookmarkOnly flips bookmark-only mode and moves to the top.
func (s *State) ToggleBookmarkOnly() {
	s.BookmarkOnly = !s.BookmarkOnly
	s.resetCursor()
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
