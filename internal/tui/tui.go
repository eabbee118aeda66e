// Package tui runs the interactive table viewer on a tcell screen.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"

	"github.com/baaaaaaaka/jsonview/internal/clipboard"
	"github.com/baaaaaaaka/jsonview/internal/dataset"
	"github.com/baaaaaaaka/jsonview/internal/export"
	"github.com/baaaaaaaka/jsonview/internal/logging"
	"github.com/baaaaaaaka/jsonview/internal/table"
	"github.com/baaaaaaaka/jsonview/internal/view"
)

var errQuit = errors.New("quit")

var newScreen = tcell.NewScreen

var (
	headerStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy).Bold(true)
	selectedStyle  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	highlightStyle = tcell.StyleDefault.Reverse(true)
	titleStyle     = tcell.StyleDefault.Bold(true)
	dimStyle       = tcell.StyleDefault.Dim(true)
	footerStyle    = tcell.StyleDefault.Reverse(true)
)

type ExportFunc func(format export.Format, path string, columns []string, rows []dataset.Row) error

type Options struct {
	Dataset          *dataset.Dataset
	MaxColumnWidth   int
	SQLiteExportName string
	CSVExportName    string
	// Clipboard is nil when the platform has none; ClipboardErr says why.
	Clipboard    clipboard.Copier
	ClipboardErr error
	// Export defaults to export.Write.
	Export ExportFunc
}

type uiEvent struct {
	when time.Time
	kind string
}

func (e *uiEvent) When() time.Time { return e.when }

type viewer struct {
	screen    tcell.Screen
	opts      Options
	rows      []dataset.Row
	state     *view.State
	displayed []dataset.Row
	status    string
	log       logr.Logger
}

// Run shows the dataset until the user quits or ctx is cancelled. Quitting
// returns nil; cancellation returns ctx.Err().
func Run(ctx context.Context, opts Options) error {
	if opts.Dataset == nil {
		return errors.New("dataset is required")
	}
	opts = withDefaults(opts)

	screen, err := newScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			screen.PostEvent(&uiEvent{when: time.Now(), kind: "quit"})
		case <-done:
		}
	}()

	v := newViewer(ctx, screen, opts)
	if opts.Dataset.Empty() {
		return interrupted(ctx, waitAnyKey(screen))
	}

	v.log.Info("viewer started", "rows", len(v.rows), "columns", len(v.state.Columns))
	for {
		v.refresh()
		v.draw()

		switch ev := screen.PollEvent().(type) {
		case nil:
			return interrupted(ctx, errInterrupted)
		case *uiEvent:
			if ev.kind == "quit" {
				return interrupted(ctx, errInterrupted)
			}
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if err := v.handleKey(keyOf(ev)); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return interrupted(ctx, err)
			}
		}
	}
}

func newViewer(ctx context.Context, screen tcell.Screen, opts Options) *viewer {
	return &viewer{
		screen: screen,
		opts:   opts,
		rows:   opts.Dataset.Rows(),
		state:  view.New(opts.Dataset.Columns()),
		log:    logging.FromContext(ctx).WithName("tui"),
	}
}

func withDefaults(opts Options) Options {
	if opts.MaxColumnWidth <= 0 {
		opts.MaxColumnWidth = 40
	}
	if opts.SQLiteExportName == "" {
		opts.SQLiteExportName = "export.sqlite3"
	}
	if opts.CSVExportName == "" {
		opts.CSVExportName = "export.csv"
	}
	if opts.Export == nil {
		opts.Export = export.Write
	}
	return opts
}

func interrupted(ctx context.Context, err error) error {
	if errors.Is(err, errInterrupted) {
		return ctx.Err()
	}
	return err
}

func waitAnyKey(screen tcell.Screen) error {
	for {
		screen.Clear()
		writeText(screen, 0, 0, "No data loaded.", titleStyle)
		writeText(screen, 0, 1, "Press any key to exit.", dimStyle)
		screen.Show()
		switch ev := screen.PollEvent().(type) {
		case nil:
			return errInterrupted
		case *uiEvent:
			if ev.kind == "quit" {
				return errInterrupted
			}
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			return nil
		}
	}
}

// viewHeight is the number of data rows that fit between the header and
// the footer.
func (v *viewer) viewHeight() int {
	_, h := v.screen.Size()
	return max(1, h-1-footerHeight)
}

func (v *viewer) refresh() {
	v.displayed = v.state.Displayed(v.rows)
	v.state.Clamp(len(v.displayed), v.viewHeight())
}

func (v *viewer) handleKey(k key) error {
	id, ok := keyBindings[k]
	if !ok {
		return nil
	}
	v.status = ""
	return v.dispatch(id)
}

func (v *viewer) dispatch(id actionID) error {
	fn, ok := actions[id]
	if !ok {
		return nil
	}
	v.log.V(1).Info("action", "id", string(id))
	v.refresh()
	return fn(v)
}

func (v *viewer) move(delta int) {
	v.state.Move(delta, len(v.displayed), v.viewHeight())
}

func (v *viewer) selectedRow() (dataset.Row, bool) {
	if len(v.displayed) == 0 {
		return dataset.Row{}, false
	}
	return v.displayed[v.state.Selected], true
}

func (v *viewer) setStatus(msg string) { v.status = msg }

func (v *viewer) draw() {
	screen := v.screen
	screen.HideCursor()
	screen.Clear()
	w, _ := screen.Size()

	cols := v.state.Columns
	widths := table.Layout(v.displayed, cols, v.opts.MaxColumnWidth, w-2)

	header := "  " + joinCells(cols, widths)
	writeText(screen, 0, 0, padRight(header, w), headerStyle)

	viewH := v.viewHeight()
	end := min(len(v.displayed), v.state.Scroll+viewH)
	cells := make([]string, len(cols))
	for i := v.state.Scroll; i < end; i++ {
		row := v.displayed[i]
		for c, col := range cols {
			cells[c] = row.Value(col)
		}
		mark := "  "
		if v.state.Bookmarked(row.ID()) {
			mark = "* "
		}
		style := tcell.StyleDefault
		if i == v.state.Selected {
			style = selectedStyle
		}
		writeText(screen, 0, 1+i-v.state.Scroll, padRight(mark+joinCells(cells, widths), w), style)
	}
	if len(v.displayed) == 0 {
		writeText(screen, 2, 1, "No matching rows.", dimStyle)
	}

	active := indicators(v.state.Filter, v.state.SortColumn, v.state.Ascending, v.state.BookmarkOnly)
	drawStatusLines(screen, buildFooter(w, helpItems, active, v.status))
	screen.Show()
}

// joinCells lays values out in columns of the given widths, separated by
// one space.
func joinCells(values []string, widths []int) string {
	out := make([]byte, 0, 64)
	for i, val := range values {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, fit(val, widths[i])...)
	}
	return string(out)
}
