// Package table turns dataset rows into the displayed sequence and computes
// the column widths the terminal grid is drawn with.
package table

import (
	"github.com/mattn/go-runewidth"

	"github.com/baaaaaaaka/jsonview/internal/dataset"
)

// MinColumnWidth is the narrowest a column is squeezed to.
const MinColumnWidth = 3

// Layout computes one width per column so that the widths plus one
// separator cell between each pair fit into totalWidth. When even
// MinColumnWidth per column does not fit, the result overflows.
func Layout(rows []dataset.Row, columns []string, maxColWidth, totalWidth int) []int {
	n := len(columns)
	widths := make([]int, n)
	if n == 0 {
		return widths
	}
	if maxColWidth < MinColumnWidth {
		maxColWidth = MinColumnWidth
	}

	sum := 0
	for i, col := range columns {
		w := runewidth.StringWidth(col)
		for _, row := range rows {
			if vw := runewidth.StringWidth(row.Value(col)); vw > w {
				w = vw
			}
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		widths[i] = w
		sum += w
	}

	if sum+(n-1) <= totalWidth {
		return widths
	}

	budget := totalWidth - (n - 1)
	for i, w := range widths {
		scaled := MinColumnWidth
		if sum > 0 && budget > 0 {
			scaled = w * budget / sum
		}
		if scaled < MinColumnWidth {
			scaled = MinColumnWidth
		}
		widths[i] = scaled
	}
	return shrink(widths, budget)
}

// shrink takes one cell at a time from the first widest column until the
// widths fit budget or every column is at MinColumnWidth.
func shrink(widths []int, budget int) []int {
	for total(widths) > budget {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= MinColumnWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

func total(widths []int) int {
	sum := 0
	for _, w := range widths {
		sum += w
	}
	return sum
}
