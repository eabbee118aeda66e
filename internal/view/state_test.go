package view

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/baaaaaaaka/jsonview/internal/dataset"
)

func rowsOf(t *testing.T, input string) []dataset.Row {
	t.Helper()
	ds, err := dataset.Parse(strings.NewReader(input))
	require.NoError(t, err)
	return ds.Rows()
}

func TestNewDefaults(t *testing.T) {
	s := New([]string{"a", "b"})
	assert.True(t, s.Ascending)
	assert.Equal(t, []string{"a", "b"}, s.Columns)
	assert.Empty(t, s.SortColumn)
	assert.Empty(t, s.Bookmarks)
}

func TestMoveAndPage(t *testing.T) {
	s := New([]string{"a"})
	s.Move(1, 10, 3)
	assert.Equal(t, 1, s.Selected)
	assert.Equal(t, 0, s.Scroll)

	s.Move(3, 10, 3)
	assert.Equal(t, 4, s.Selected)
	assert.Equal(t, 2, s.Scroll)

	s.Move(100, 10, 3)
	assert.Equal(t, 9, s.Selected)
	assert.Equal(t, 7, s.Scroll)

	s.Move(-3, 10, 3)
	assert.Equal(t, 6, s.Selected)
	assert.Equal(t, 6, s.Scroll)

	s.Home(10, 3)
	assert.Equal(t, 0, s.Selected)
	assert.Equal(t, 0, s.Scroll)

	s.End(10, 3)
	assert.Equal(t, 9, s.Selected)
	assert.Equal(t, 7, s.Scroll)
}

func TestClampEmptyDisplayed(t *testing.T) {
	s := New([]string{"a"})
	s.Selected, s.Scroll = 5, 3
	s.Clamp(0, 10)
	assert.Equal(t, 0, s.Selected)
	assert.Equal(t, 0, s.Scroll)

	s.Move(1, 0, 10)
	assert.Equal(t, 0, s.Selected)
}

func TestClampAfterShrink(t *testing.T) {
	s := New([]string{"a"})
	s.Selected, s.Scroll = 40, 35
	s.Clamp(5, 10)
	assert.Equal(t, 4, s.Selected)
	assert.Equal(t, 0, s.Scroll)
}

func TestFilterAndSortResetCursor(t *testing.T) {
	s := New([]string{"a"})
	s.Selected, s.Scroll = 4, 2
	s.SetFilter("x")
	assert.Equal(t, "x", s.Filter)
	assert.Zero(t, s.Selected)
	assert.Zero(t, s.Scroll)

	s.Selected = 3
	s.ApplySort("a", false)
	assert.Equal(t, "a", s.SortColumn)
	assert.False(t, s.Ascending)
	assert.Zero(t, s.Selected)

	s.Selected = 2
	s.ClearFilter()
	assert.Empty(t, s.Filter)
	assert.Zero(t, s.Selected)
}

func TestSetColumnsFallsBackAndClearsSort(t *testing.T) {
	s := New([]string{"a", "b", "c"})
	s.ApplySort("b", true)

	s.SetColumns([]string{"c", "a"})
	assert.Equal(t, []string{"c", "a"}, s.Columns)
	assert.Empty(t, s.SortColumn, "hidden sort column is cleared")

	s.SetColumns(nil)
	assert.Equal(t, []string{"a", "b", "c"}, s.Columns)
}

func TestScenarioFilterSortBookmarks(t *testing.T) {
	rows := rowsOf(t, `[{"a":1,"b":"x"},{"a":2,"b":"y"},{"a":3,"b":"x"}]`)
	s := New([]string{"a", "b"})

	s.SetFilter("x")
	shown := s.Displayed(rows)
	require.Len(t, shown, 2)
	assert.Equal(t, "1", shown[0].Value("a"))
	assert.Equal(t, "3", shown[1].Value("a"))

	s.ApplySort("a", false)
	shown = s.Displayed(rows)
	assert.Equal(t, "3", shown[0].Value("a"))
	assert.Equal(t, "1", shown[1].Value("a"))

	s.ToggleBookmark(shown[1].ID())
	s.ToggleBookmarkOnly()
	shown = s.Displayed(rows)
	require.Len(t, shown, 1)
	assert.Equal(t, "1", shown[0].Value("a"))
}

func TestNextBookmarkWraps(t *testing.T) {
	rows := rowsOf(t, `[{"a":1},{"a":2},{"a":3},{"a":4}]`)
	s := New([]string{"a"})
	s.ToggleBookmark(rows[0].ID())
	s.ToggleBookmark(rows[2].ID())

	require.True(t, s.NextBookmark(rows, 10))
	assert.Equal(t, 2, s.Selected)
	require.True(t, s.NextBookmark(rows, 10))
	assert.Equal(t, 0, s.Selected)
}

func TestNextBookmarkWithoutBookmarks(t *testing.T) {
	rows := rowsOf(t, `[{"a":1},{"a":2}]`)
	s := New([]string{"a"})
	s.Selected = 1
	assert.False(t, s.NextBookmark(rows, 10))
	assert.Equal(t, 1, s.Selected)
	assert.False(t, s.NextBookmark(nil, 10))
}

func TestNextBookmarkOnlySelf(t *testing.T) {
	rows := rowsOf(t, `[{"a":1},{"a":2}]`)
	s := New([]string{"a"})
	s.Selected = 1
	s.ToggleBookmark(rows[1].ID())
	assert.True(t, s.NextBookmark(rows, 10))
	assert.Equal(t, 1, s.Selected)
}

func TestToggleColumn(t *testing.T) {
	cols, ok := ToggleColumn([]string{"a", "b"}, "a")
	assert.True(t, ok)
	assert.Equal(t, []string{"b"}, cols)

	cols, ok = ToggleColumn(cols, "b")
	assert.False(t, ok, "last column cannot be removed")
	assert.Equal(t, []string{"b"}, cols)

	cols, ok = ToggleColumn(cols, "a")
	assert.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, cols, "enabled columns are appended")
}

func TestMoveColumn(t *testing.T) {
	cols, idx := MoveColumn([]string{"a", "b", "c"}, 0, 1)
	assert.Equal(t, []string{"b", "a", "c"}, cols)
	assert.Equal(t, 1, idx)

	cols, idx = MoveColumn(cols, 1, -1)
	assert.Equal(t, []string{"a", "b", "c"}, cols)
	assert.Equal(t, 0, idx)

	cols, idx = MoveColumn(cols, 0, -1)
	assert.Equal(t, []string{"a", "b", "c"}, cols)
	assert.Equal(t, 0, idx)
}

func TestBookmarkToggleIsInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New([]string{"a"})
		n := rapid.IntRange(0, 10).Draw(t, "n")
		for i := 0; i < n; i++ {
			s.ToggleBookmark(dataset.ID(fmt.Sprint(rapid.IntRange(0, 5).Draw(t, fmt.Sprintf("pre%d", i)))))
		}
		id := dataset.ID(fmt.Sprint(rapid.IntRange(0, 5).Draw(t, "id")))
		before := s.Bookmarked(id)
		size := len(s.Bookmarks)
		s.ToggleBookmark(id)
		s.ToggleBookmark(id)
		if s.Bookmarked(id) != before || len(s.Bookmarks) != size {
			t.Fatalf("expected toggle twice to restore bookmark state")
		}
	})
}

func TestClampInvariantProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New([]string{"a"})
		n := rapid.IntRange(0, 50).Draw(t, "n")
		viewH := rapid.IntRange(1, 20).Draw(t, "viewH")
		steps := rapid.SliceOfN(rapid.IntRange(-30, 30), 0, 20).Draw(t, "steps")
		for _, d := range steps {
			s.Move(d, n, viewH)
			if n == 0 {
				if s.Selected != 0 || s.Scroll != 0 {
					t.Fatalf("expected zero cursor for empty view")
				}
				continue
			}
			if s.Selected < 0 || s.Selected >= n {
				t.Fatalf("selected %d out of range %d", s.Selected, n)
			}
			if s.Scroll < 0 || s.Scroll > s.Selected || s.Selected >= s.Scroll+viewH {
				t.Fatalf("scroll %d does not show selected %d (viewH %d)", s.Scroll, s.Selected, viewH)
			}
		}
	})
}

func TestNextBookmarkProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 15).Draw(t, "n")
		rows := make([]dataset.Row, n)
		s := New([]string{"i"})
		for i := range rows {
			row, err := dataset.NewRow([]string{"i"}, map[string]any{"i": i})
			if err != nil {
				t.Fatalf("new row: %v", err)
			}
			rows[i] = row
			if rapid.Bool().Draw(t, fmt.Sprintf("mark%d", i)) {
				s.ToggleBookmark(row.ID())
			}
		}
		s.Selected = rapid.IntRange(0, n-1).Draw(t, "sel")
		start := s.Selected
		moved := s.NextBookmark(rows, n)
		if !moved {
			if s.Selected != start || len(s.Bookmarks) != 0 {
				t.Fatalf("expected a move when bookmarks exist")
			}
			return
		}
		if !s.Bookmarked(rows[s.Selected].ID()) {
			t.Fatalf("expected a bookmarked selection")
		}
		for step := 1; (start+step)%n != s.Selected; step++ {
			if s.Bookmarked(rows[(start+step)%n].ID()) {
				t.Fatalf("skipped bookmarked row %d", (start+step)%n)
			}
		}
	})
}
