package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

type paletteEntry struct {
	name        string
	description string
	action      actionID
}

var paletteEntries = []paletteEntry{
	{name: "Filter", description: "Filter/search rows", action: actionFilter},
	{name: "Reset filter", description: "Clear filter", action: actionResetFilter},
	{name: "Sort", description: "Sort by column", action: actionSort},
	{name: "Hide columns", description: "Show/hide columns", action: actionHideColumns},
	{name: "Reorder columns", description: "Change column order", action: actionReorderColumns},
	{name: "Export SQLite", description: "Export to SQLite3", action: actionExportSQLite},
	{name: "Export CSV", description: "Export to CSV", action: actionExportCSV},
	{name: "Copy row", description: "Copy selected row to clipboard", action: actionCopyRow},
	{name: "Bookmark", description: "Bookmark/unbookmark row", action: actionBookmark},
	{name: "Next bookmark", description: "Jump to next bookmark", action: actionNextBookmark},
	{name: "Show bookmarks", description: "Toggle show only bookmarks", action: actionShowBookmarks},
	{name: "Row details", description: "Show row details", action: actionRowDetails},
	{name: "Quit", description: "Exit the viewer", action: actionQuit},
}

// paletteCandidates returns the entries whose name or description contains
// query, ignoring case, in registry order.
func paletteCandidates(entries []paletteEntry, query string) []paletteEntry {
	needle := strings.ToLower(query)
	out := make([]paletteEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.name), needle) || strings.Contains(strings.ToLower(e.description), needle) {
			out = append(out, e)
		}
	}
	return out
}

type palette struct {
	entries []paletteEntry
	query   string
	list    listState
	chosen  actionID
}

func (p *palette) candidates() []paletteEntry { return paletteCandidates(p.entries, p.query) }

func (p *palette) draw(screen tcell.Screen) {
	_, h := screen.Size()
	writeText(screen, 0, 0, "Command palette (type to search, Enter: run, Esc: cancel)", titleStyle)
	cands := p.candidates()
	nameW := 0
	for _, e := range cands {
		nameW = max(nameW, displayWidth(e.name))
	}
	items := make([]string, len(cands))
	for i, e := range cands {
		items[i] = padRight(e.name, nameW) + "  " + e.description
	}
	drawList(screen, 1, max(1, h-3), items, &p.list)
	if len(cands) == 0 {
		writeText(screen, 0, 1, "No matching commands.", dimStyle)
	}
	end := writeText(screen, 0, h-1, "> "+p.query, tcell.StyleDefault)
	screen.ShowCursor(end, h-1)
}

func (p *palette) handle(k key) bool {
	switch {
	case k.kind == keyEsc:
		return true
	case k.kind == keyEnter:
		cands := p.candidates()
		if len(cands) == 0 {
			return false
		}
		p.chosen = cands[p.list.selected].action
		return true
	case k.kind == keyUp:
		p.list.move(-1, len(p.candidates()))
	case k.kind == keyDown:
		p.list.move(1, len(p.candidates()))
	case k.kind == keyBackspace:
		if r := []rune(p.query); len(r) > 0 {
			p.query = string(r[:len(r)-1])
		}
		p.list = listState{}
	case k.printable():
		p.query += string(k.r)
		p.list = listState{}
	}
	return false
}

// runPalette shows the command palette and returns the chosen action.
func runPalette(screen tcell.Screen) (actionID, bool, error) {
	p := &palette{entries: paletteEntries}
	if err := runModal(screen, p); err != nil {
		return "", false, err
	}
	return p.chosen, p.chosen != "", nil
}
