package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// writeText draws text starting at (x, y) and returns the column after the
// last cell written. Text past the right edge is dropped.
func writeText(screen tcell.Screen, x, y int, text string, style tcell.Style) int {
	w, _ := screen.Size()
	offset := 0
	for _, ch := range text {
		width := runewidth.RuneWidth(ch)
		if width == 0 {
			continue
		}
		if x+offset+width > w {
			break
		}
		screen.SetContent(x+offset, y, ch, nil, style)
		offset += width
	}
	return x + offset
}

// fillLine paints the whole row y with style.
func fillLine(screen tcell.Screen, y int, style tcell.Style) {
	w, _ := screen.Size()
	for x := 0; x < w; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

func buildWrappedLines(lines []string, width int) []string {
	if width <= 0 {
		return nil
	}
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		out = append(out, wrapText(ln, width)...)
	}
	return out
}

func wrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	if s == "" {
		return []string{""}
	}
	out := []string{}
	for _, ln := range strings.Split(s, "\n") {
		if ln == "" {
			out = append(out, "")
			continue
		}
		var buf strings.Builder
		curWidth := 0
		for _, ch := range ln {
			chWidth := runewidth.RuneWidth(ch)
			if chWidth == 0 {
				buf.WriteRune(ch)
				continue
			}
			if curWidth+chWidth > width && curWidth > 0 {
				out = append(out, buf.String())
				buf.Reset()
				curWidth = 0
			}
			buf.WriteRune(ch)
			curWidth += chWidth
		}
		out = append(out, buf.String())
	}
	return out
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if displayWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "")
}

func padRight(s string, width int) string {
	if displayWidth(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-displayWidth(s))
}

// fit truncates or pads s to exactly width cells. Control characters are
// shown as spaces so embedded newlines cannot break the grid.
func fit(s string, width int) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
	return padRight(truncate(s, width), width)
}

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
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
