package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/baaaaaaaka/jsonview/internal/view"
)

type sortPicker struct {
	columns   []string
	list      listState
	ascending bool
	chosen    string
}

func direction(ascending bool) string {
	if ascending {
		return "ASC"
	}
	return "DESC"
}

func (p *sortPicker) draw(screen tcell.Screen) {
	_, h := screen.Size()
	title := fmt.Sprintf("Sort by column (s: toggle ASC/DESC, Enter: apply, q/Esc: cancel): %s", direction(p.ascending))
	writeText(screen, 0, 0, title, titleStyle)
	items := make([]string, len(p.columns))
	for i, col := range p.columns {
		marker := "  "
		if i == p.list.selected {
			marker = "->"
		}
		items[i] = marker + " " + col
	}
	drawList(screen, 1, h-1, items, &p.list)
}

func (p *sortPicker) handle(k key) bool {
	switch {
	case k.kind == keyEsc || k.is('q'):
		return true
	case k.kind == keyUp || k.is('k'):
		p.list.move(-1, len(p.columns))
	case k.kind == keyDown || k.is('j'):
		p.list.move(1, len(p.columns))
	case k.is('s') || k.is('S'):
		p.ascending = !p.ascending
	case k.kind == keyEnter || k.is(' '):
		if len(p.columns) > 0 {
			p.chosen = p.columns[p.list.selected]
		}
		return true
	}
	return false
}

// pickSort lets the user choose a sort column among columns, starting on
// current, and a direction. ok is false when cancelled.
func pickSort(screen tcell.Screen, columns []string, current string, ascending bool) (string, bool, bool, error) {
	p := &sortPicker{columns: columns, ascending: ascending}
	for i, col := range columns {
		if col == current {
			p.list.selected = i
			break
		}
	}
	if err := runModal(screen, p); err != nil {
		return "", ascending, false, err
	}
	if p.chosen == "" {
		return "", ascending, false, nil
	}
	return p.chosen, p.ascending, true, nil
}

type columnToggler struct {
	all     []string
	visible []string
	list    listState
	notice  string
	apply   bool
}

func (c *columnToggler) draw(screen tcell.Screen) {
	_, h := screen.Size()
	writeText(screen, 0, 0, "Show/hide columns (Space: toggle, Enter: apply, q/Esc: cancel)", titleStyle)
	shown := make(map[string]bool, len(c.visible))
	for _, col := range c.visible {
		shown[col] = true
	}
	items := make([]string, len(c.all))
	for i, col := range c.all {
		marker := "[ ]"
		if shown[col] {
			marker = "[x]"
		}
		items[i] = marker + " " + col
	}
	listH := h - 1
	if c.notice != "" {
		listH--
		writeText(screen, 0, h-1, c.notice, dimStyle)
	}
	drawList(screen, 1, listH, items, &c.list)
}

func (c *columnToggler) handle(k key) bool {
	c.notice = ""
	switch {
	case k.kind == keyEsc || k.is('q'):
		return true
	case k.kind == keyEnter:
		c.apply = true
		return true
	case k.kind == keyUp || k.is('k'):
		c.list.move(-1, len(c.all))
	case k.kind == keyDown || k.is('j'):
		c.list.move(1, len(c.all))
	case k.is(' '):
		if len(c.all) == 0 {
			return false
		}
		next, ok := view.ToggleColumn(c.visible, c.all[c.list.selected])
		if !ok {
			c.notice = "At least one column must stay visible."
		}
		c.visible = next
	}
	return false
}

// toggleColumns edits which of all columns are visible. ok is false when
// cancelled.
func toggleColumns(screen tcell.Screen, all, visible []string) ([]string, bool, error) {
	c := &columnToggler{all: all, visible: append([]string(nil), visible...)}
	if err := runModal(screen, c); err != nil {
		return visible, false, err
	}
	if !c.apply {
		return visible, false, nil
	}
	return c.visible, true, nil
}

type columnReorderer struct {
	columns []string
	list    listState
	confirm bool
}

func (r *columnReorderer) draw(screen tcell.Screen) {
	_, h := screen.Size()
	writeText(screen, 0, 0, "Reorder columns (Up/Down: select, Left/Right: move, Enter: confirm, q/Esc: cancel)", titleStyle)
	drawList(screen, 1, h-1, r.columns, &r.list)
}

func (r *columnReorderer) handle(k key) bool {
	switch {
	case k.kind == keyEsc || k.is('q'):
		return true
	case k.kind == keyEnter:
		r.confirm = true
		return true
	case k.kind == keyUp:
		r.list.move(-1, len(r.columns))
	case k.kind == keyDown:
		r.list.move(1, len(r.columns))
	case k.kind == keyLeft:
		r.columns, r.list.selected = view.MoveColumn(r.columns, r.list.selected, -1)
	case k.kind == keyRight:
		r.columns, r.list.selected = view.MoveColumn(r.columns, r.list.selected, 1)
	}
	return false
}

// reorderColumns lets the user rearrange columns. Cancelling returns the
// original order.
func reorderColumns(screen tcell.Screen, columns []string) ([]string, error) {
	r := &columnReorderer{columns: append([]string(nil), columns...)}
	if err := runModal(screen, r); err != nil {
		return columns, err
	}
	if !r.confirm {
		return columns, nil
	}
	return r.columns, nil
}

type rowDetail struct {
	text  string
	lines []string
	width int
	// scroll is the first wrapped line shown.
	scroll int
	viewH  int
}

func (d *rowDetail) layout(screen tcell.Screen) {
	w, h := screen.Size()
	if w-2 != d.width || d.lines == nil {
		d.width = w - 2
		d.lines = buildWrappedLines([]string{d.text}, max(1, d.width))
	}
	d.viewH = max(1, h-2)
	d.scroll = clamp(d.scroll, 0, d.maxScroll())
}

func (d *rowDetail) maxScroll() int { return max(0, len(d.lines)-d.viewH) }

func (d *rowDetail) draw(screen tcell.Screen) {
	d.layout(screen)
	_, h := screen.Size()
	writeText(screen, 0, 0, "Row details (q/Esc: close, Up/Down/PgUp/PgDn: scroll)", titleStyle)
	end := min(len(d.lines), d.scroll+d.viewH)
	for i := d.scroll; i < end; i++ {
		writeText(screen, 0, 1+i-d.scroll, d.lines[i], tcell.StyleDefault)
	}
	if len(d.lines) > 0 {
		pos := fmt.Sprintf("lines %d-%d of %d", d.scroll+1, end, len(d.lines))
		writeText(screen, 0, h-1, pos, dimStyle)
	}
}

func (d *rowDetail) handle(k key) bool {
	maxScroll := d.maxScroll()
	switch {
	case k.kind == keyEsc || k.is('q'):
		return true
	case k.kind == keyUp || k.is('k'):
		d.scroll = clamp(d.scroll-1, 0, maxScroll)
	case k.kind == keyDown || k.is('j'):
		d.scroll = clamp(d.scroll+1, 0, maxScroll)
	case k.kind == keyPgUp:
		d.scroll = clamp(d.scroll-d.viewH, 0, maxScroll)
	case k.kind == keyPgDn:
		d.scroll = clamp(d.scroll+d.viewH, 0, maxScroll)
	case k.kind == keyHome || k.is('g'):
		d.scroll = 0
	case k.kind == keyEnd || k.is('G'):
		d.scroll = maxScroll
	}
	return false
}

func showDetail(screen tcell.Screen, text string) error {
	return runModal(screen, &rowDetail{text: text})
}
