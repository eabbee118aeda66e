package tui

import "github.com/gdamore/tcell/v2"

type keyKind int

const (
	keyOther keyKind = iota
	keyRune
	keyUp
	keyDown
	keyLeft
	keyRight
	keyPgUp
	keyPgDn
	keyHome
	keyEnd
	keyEnter
	keyEsc
	keyBackspace
	keyCtrlC
)

// key is a terminal key press reduced to what the viewer reacts to.
type key struct {
	kind keyKind
	r    rune
}

func runeKey(r rune) key { return key{kind: keyRune, r: r} }

func keyOf(ev *tcell.EventKey) key {
	k := ev.Key()
	if k == tcell.KeyEnter || k == tcell.KeyCtrlJ || k == tcell.KeyCtrlM {
		return key{kind: keyEnter}
	}
	if k == tcell.KeyBackspace || k == tcell.KeyBackspace2 {
		return key{kind: keyBackspace}
	}
	switch k {
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case '\n', '\r':
			return key{kind: keyEnter}
		default:
			return runeKey(r)
		}
	case tcell.KeyUp:
		return key{kind: keyUp}
	case tcell.KeyDown:
		return key{kind: keyDown}
	case tcell.KeyLeft:
		return key{kind: keyLeft}
	case tcell.KeyRight:
		return key{kind: keyRight}
	case tcell.KeyPgUp:
		return key{kind: keyPgUp}
	case tcell.KeyPgDn:
		return key{kind: keyPgDn}
	case tcell.KeyHome:
		return key{kind: keyHome}
	case tcell.KeyEnd:
		return key{kind: keyEnd}
	case tcell.KeyEscape:
		return key{kind: keyEsc}
	case tcell.KeyCtrlC:
		return key{kind: keyCtrlC}
	}
	return key{kind: keyOther}
}

// printable reports whether k types a printable ASCII character.
func (k key) printable() bool {
	return k.kind == keyRune && k.r >= 0x20 && k.r <= 0x7e
}

func (k key) is(r rune) bool { return k.kind == keyRune && k.r == r }
