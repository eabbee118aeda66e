package tui

import (
	"fmt"

	"github.com/baaaaaaaka/jsonview/internal/export"
)

type actionID string

const (
	actionUp             actionID = "up"
	actionDown           actionID = "down"
	actionPageUp         actionID = "page_up"
	actionPageDown       actionID = "page_down"
	actionHome           actionID = "home"
	actionEnd            actionID = "end"
	actionFilter         actionID = "filter"
	actionResetFilter    actionID = "reset_filter"
	actionSort           actionID = "sort"
	actionHideColumns    actionID = "hide_columns"
	actionReorderColumns actionID = "reorder_columns"
	actionExportSQLite   actionID = "export_sqlite"
	actionExportCSV      actionID = "export_csv"
	actionCopyRow        actionID = "copy_row"
	actionBookmark       actionID = "bookmark"
	actionNextBookmark   actionID = "next_bookmark"
	actionShowBookmarks  actionID = "show_bookmarks"
	actionRowDetails     actionID = "row_details"
	actionPalette        actionID = "palette"
	actionQuit           actionID = "quit"
)

type actionFunc func(v *viewer) error

// actions is filled in init because the palette action dispatches back
// into it.
var actions map[actionID]actionFunc

func init() {
	actions = map[actionID]actionFunc{
		actionUp:             func(v *viewer) error { v.move(-1); return nil },
		actionDown:           func(v *viewer) error { v.move(1); return nil },
		actionPageUp:         func(v *viewer) error { v.move(-v.viewHeight()); return nil },
		actionPageDown:       func(v *viewer) error { v.move(v.viewHeight()); return nil },
		actionHome:           func(v *viewer) error { v.state.Home(len(v.displayed), v.viewHeight()); return nil },
		actionEnd:            func(v *viewer) error { v.state.End(len(v.displayed), v.viewHeight()); return nil },
		actionFilter:         runFilter,
		actionResetFilter:    func(v *viewer) error { v.state.ClearFilter(); return nil },
		actionSort:           runSort,
		actionHideColumns:    runHideColumns,
		actionReorderColumns: runReorderColumns,
		actionExportSQLite:   runExport(export.FormatSQLite, "Export to SQLite3 file (enter filename):", func(o Options) string { return o.SQLiteExportName }),
		actionExportCSV:      runExport(export.FormatCSV, "Export to CSV file (enter filename):", func(o Options) string { return o.CSVExportName }),
		actionCopyRow:        runCopyRow,
		actionBookmark:       runBookmark,
		actionNextBookmark:   func(v *viewer) error { v.state.NextBookmark(v.displayed, v.viewHeight()); return nil },
		actionShowBookmarks:  func(v *viewer) error { v.state.ToggleBookmarkOnly(); return nil },
		actionRowDetails:     runRowDetails,
		actionPalette:        runPaletteAction,
		actionQuit:           func(*viewer) error { return errQuit },
	}
}

var keyBindings = map[key]actionID{
	{kind: keyUp}:    actionUp,
	runeKey('k'):     actionUp,
	{kind: keyDown}:  actionDown,
	runeKey('j'):     actionDown,
	{kind: keyPgUp}:  actionPageUp,
	{kind: keyPgDn}:  actionPageDown,
	{kind: keyHome}:  actionHome,
	runeKey('g'):     actionHome,
	{kind: keyEnd}:   actionEnd,
	runeKey('G'):     actionEnd,
	runeKey('/'):     actionFilter,
	runeKey('r'):     actionResetFilter,
	runeKey('s'):     actionSort,
	runeKey('S'):     actionSort,
	runeKey('h'):     actionHideColumns,
	runeKey('H'):     actionHideColumns,
	runeKey('o'):     actionReorderColumns,
	runeKey('e'):     actionExportSQLite,
	runeKey('x'):     actionExportCSV,
	runeKey('c'):     actionCopyRow,
	runeKey('b'):     actionBookmark,
	runeKey('B'):     actionNextBookmark,
	runeKey('m'):     actionShowBookmarks,
	runeKey('d'):     actionRowDetails,
	{kind: keyEnter}: actionRowDetails,
	runeKey(':'):     actionPalette,
	runeKey('q'):     actionQuit,
	runeKey('Q'):     actionQuit,
	{kind: keyCtrlC}: actionQuit,
}

func runFilter(v *viewer) error {
	text, ok, err := editFilter(v.screen, v.state.Filter)
	if err != nil || !ok {
		return err
	}
	v.state.SetFilter(text)
	return nil
}

func runSort(v *viewer) error {
	cols := v.state.Columns
	current := v.state.SortColumn
	if current == "" && len(cols) > 0 {
		current = cols[0]
	}
	col, asc, ok, err := pickSort(v.screen, cols, current, v.state.Ascending)
	if err != nil || !ok {
		return err
	}
	v.state.ApplySort(col, asc)
	return nil
}

func runHideColumns(v *viewer) error {
	cols, ok, err := toggleColumns(v.screen, v.state.AllColumns(), v.state.Columns)
	if err != nil || !ok {
		return err
	}
	v.state.SetColumns(cols)
	return nil
}

func runReorderColumns(v *viewer) error {
	cols, err := reorderColumns(v.screen, v.state.Columns)
	if err != nil {
		return err
	}
	v.state.SetColumns(cols)
	return nil
}

func runExport(format export.Format, title string, defaultName func(Options) string) actionFunc {
	return func(v *viewer) error {
		name, ok, err := promptFilename(v.screen, title, defaultName(v.opts))
		if err != nil || !ok {
			return err
		}
		if err := v.opts.Export(format, name, v.state.Columns, v.displayed); err != nil {
			v.log.Error(err, "export failed", "format", string(format), "path", name)
			v.setStatus(fmt.Sprintf("Export failed: %v", err))
			return nil
		}
		v.log.Info("exported rows", "format", string(format), "path", name, "rows", len(v.displayed))
		v.setStatus(fmt.Sprintf("Exported %d rows to %s", len(v.displayed), name))
		return nil
	}
}

func runCopyRow(v *viewer) error {
	row, ok := v.selectedRow()
	if !ok {
		return nil
	}
	if v.opts.Clipboard == nil {
		reason := "clipboard not available"
		if v.opts.ClipboardErr != nil {
			reason = v.opts.ClipboardErr.Error()
		}
		v.setStatus("Cannot copy: " + reason)
		return nil
	}
	text, err := row.PrettyJSON()
	if err == nil {
		err = v.opts.Clipboard.Copy(text)
	}
	if err != nil {
		v.log.Error(err, "copy row failed")
		v.setStatus(fmt.Sprintf("Copy failed: %v", err))
		return nil
	}
	v.setStatus("Row copied to clipboard")
	return nil
}

func runBookmark(v *viewer) error {
	row, ok := v.selectedRow()
	if !ok {
		return nil
	}
	v.state.ToggleBookmark(row.ID())
	return nil
}

func runRowDetails(v *viewer) error {
	row, ok := v.selectedRow()
	if !ok {
		return nil
	}
	text, err := row.PrettyJSON()
	if err != nil {
		v.setStatus(fmt.Sprintf("Cannot show row: %v", err))
		return nil
	}
	return showDetail(v.screen, text)
}

func runPaletteAction(v *viewer) error {
	id, ok, err := runPalette(v.screen)
	if err != nil || !ok {
		return err
	}
	return v.dispatch(id)
}
