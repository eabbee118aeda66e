package tui

import (
	"errors"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// errInterrupted ends every loop when the screen is finalized or the
// context is cancelled while waiting for input.
var errInterrupted = errors.New("interrupted")

// modal is a sub-screen that owns the terminal until it is done.
type modal interface {
	draw(screen tcell.Screen)
	// handle reacts to one key and reports whether the modal is finished.
	handle(k key) bool
}

func runModal(screen tcell.Screen, m modal) error {
	for {
		screen.HideCursor()
		screen.Clear()
		m.draw(screen)
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
			k := keyOf(ev)
			if k.kind == keyCtrlC {
				k = key{kind: keyEsc}
			}
			if m.handle(k) {
				return nil
			}
		}
	}
}

type listState struct {
	selected int
	scroll   int
}

func (s *listState) move(delta, nItems int) {
	if nItems <= 0 {
		s.selected = 0
		return
	}
	s.selected = ((s.selected+delta)%nItems + nItems) % nItems
}

func (s *listState) ensureVisible(viewH int, nItems int) {
	if nItems <= 0 || viewH <= 0 {
		s.scroll = 0
		return
	}
	maxScroll := max(0, nItems-viewH)
	if s.selected < s.scroll {
		s.scroll = s.selected
	} else if s.selected >= s.scroll+viewH {
		s.scroll = s.selected - viewH + 1
	}
	s.scroll = clamp(s.scroll, 0, maxScroll)
}

// drawList renders items from row y down, keeping the selection in view.
func drawList(screen tcell.Screen, y, viewH int, items []string, state *listState) {
	state.ensureVisible(viewH, len(items))
	w, _ := screen.Size()
	end := min(len(items), state.scroll+viewH)
	for i := state.scroll; i < end; i++ {
		style := tcell.StyleDefault
		if i == state.selected {
			style = highlightStyle
		}
		writeText(screen, 0, y+i-state.scroll, padRight(truncate(items[i], w), w), style)
	}
}

// lineEditor is a one-line text input used by the filter and file name
// prompts. Only printable ASCII is accepted.
type lineEditor struct {
	title  string
	hint   string
	text   string
	result string
	ok     bool
}

func (e *lineEditor) draw(screen tcell.Screen) {
	writeText(screen, 0, 0, e.title, titleStyle)
	end := writeText(screen, 0, 1, e.text, tcell.StyleDefault)
	if e.hint != "" {
		writeText(screen, 0, 3, e.hint, dimStyle)
	}
	screen.ShowCursor(end, 1)
}

func (e *lineEditor) handle(k key) bool {
	switch {
	case k.kind == keyEsc:
		e.ok = false
		return true
	case k.kind == keyEnter:
		e.result = e.text
		e.ok = true
		return true
	case k.kind == keyBackspace:
		if r := []rune(e.text); len(r) > 0 {
			e.text = string(r[:len(r)-1])
		}
	case k.printable():
		e.text += string(k.r)
	}
	return false
}

// editFilter asks for new filter text seeded with current. ok is false when
// the edit was cancelled.
func editFilter(screen tcell.Screen, current string) (string, bool, error) {
	e := &lineEditor{
		title: "Filter rows (Enter: apply, Esc: cancel):",
		hint:  "Matches any visible column, ignoring case. Empty shows all rows.",
		text:  current,
	}
	if err := runModal(screen, e); err != nil {
		return current, false, err
	}
	return e.result, e.ok, nil
}

// promptFilename asks for an export file name. An empty answer picks def.
func promptFilename(screen tcell.Screen, title, def string) (string, bool, error) {
	e := &lineEditor{
		title: title,
		hint:  "Enter: export, Esc: cancel. Empty uses " + def + ".",
		text:  def,
	}
	if err := runModal(screen, e); err != nil {
		return "", false, err
	}
	if !e.ok {
		return "", false, nil
	}
	name := strings.TrimSpace(e.result)
	if name == "" {
		name = def
	}
	return name, true, nil
}
