package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

const footerHeight = 2

var helpItems = []string{
	"/ Filter", "r Reset", "s Sort", "h Hide", "o Reorder", "e Export sqlite", "x Export CSV",
	"c Copy", "b Bookmark", "B Next bm", "m Show bm", "d/Enter Details", ": Cmd palette", "q Quit",
}

type statusToken struct {
	text  string
	style tcell.Style
}

type statusLine struct {
	groups    []statusToken
	right     string
	rightBold bool
}

// indicators lists the active view modifiers shown in the footer.
func indicators(filter, sortColumn string, ascending, bookmarkOnly bool) []string {
	var out []string
	if filter != "" {
		out = append(out, fmt.Sprintf("[Filter: %s]", filter))
	}
	if sortColumn != "" {
		out = append(out, fmt.Sprintf("[Sort: %s %s]", sortColumn, direction(ascending)))
	}
	if bookmarkOnly {
		out = append(out, "[Bookmarks only]")
	}
	return out
}

// buildFooter packs the help items into exactly footerHeight lines. When
// any indicator or message is active it replaces the last line.
func buildFooter(width int, help, active []string, message string) []statusLine {
	tokens := make([]statusToken, 0, len(help))
	for _, item := range help {
		tokens = append(tokens, statusToken{text: item, style: footerStyle})
	}
	lines := packStatusLines(width, tokens)
	for len(lines) < footerHeight {
		lines = append([]statusLine{{}}, lines...)
	}
	lines = lines[len(lines)-footerHeight:]

	if len(active) == 0 && message == "" {
		return lines
	}
	last := statusLine{right: message, rightBold: true}
	for _, ind := range active {
		last.groups = append(last.groups, statusToken{text: ind, style: footerStyle.Bold(true)})
	}
	lines[len(lines)-1] = last
	return lines
}

func packStatusLines(width int, tokens []statusToken) []statusLine {
	if width <= 0 {
		return []statusLine{{}}
	}
	lines := []statusLine{}
	var current statusLine
	curWidth := 0

	for _, tok := range tokens {
		tokenWidth := displayWidth(tok.text)
		if tokenWidth == 0 {
			continue
		}
		if tokenWidth > width {
			if len(current.groups) > 0 {
				lines = append(lines, current)
				current = statusLine{}
				curWidth = 0
			}
			lines = append(lines, statusLine{groups: []statusToken{tok}})
			continue
		}

		addWidth := tokenWidth
		if len(current.groups) > 0 {
			addWidth += 2
		}
		if curWidth+addWidth > width && len(current.groups) > 0 {
			lines = append(lines, current)
			current = statusLine{}
			curWidth = 0
			addWidth = tokenWidth
		}
		current.groups = append(current.groups, tok)
		curWidth += addWidth
	}
	if len(current.groups) > 0 || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

// drawStatusLines draws lines at the bottom of the screen.
func drawStatusLines(screen tcell.Screen, lines []statusLine) {
	w, h := screen.Size()
	if h <= 0 || len(lines) == 0 {
		return
	}
	if len(lines) > h {
		lines = lines[len(lines)-h:]
	}

	startY := h - len(lines)
	for i, line := range lines {
		y := startY + i
		fillLine(screen, y, footerStyle)

		spaceLimit := w
		rightText := ""
		if line.right != "" {
			rightText = truncate(line.right, w)
			spaceLimit = max(0, w-displayWidth(rightText))
		}

		x := 0
		for gi, tok := range line.groups {
			if x >= spaceLimit {
				break
			}
			if gi > 0 {
				if x+2 > spaceLimit {
					break
				}
				x += 2
			}
			text := truncate(tok.text, spaceLimit-x)
			if text == "" {
				continue
			}
			x = writeText(screen, x, y, text, tok.style)
		}

		if rightText != "" {
			style := footerStyle
			if line.rightBold {
				style = style.Bold(true)
			}
			writeText(screen, max(0, w-displayWidth(rightText)), y, rightText, style)
		}
	}
}
