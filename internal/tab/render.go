// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package tab

import "strings"

// CursorMark is printed under the cursor column.
const CursorMark = "*"

// Segments is the number of wrapped lines the full grid renders to.
func (g *Grid) Segments() int {
	return g.HighWaterMark()/g.lineWidth + 1
}

// CursorSegment is the segment holding the cursor. A cursor on a segment
// boundary belongs to the segment that starts there.
func (g *Grid) CursorSegment() int {
	return g.cursor / g.lineWidth
}

// Render draws the grid as wrapped text. Each segment is one row per string
// of `label|tokens`. With windowed set only the cursor segment and its
// neighbours are drawn. With markCursor set a `*` line follows the cursor
// segment, aligned under the cursor column.
//
// The final segment drawn ends with a newline; every other segment is
// followed by a blank line.
func Render(g *Grid, windowed, markCursor bool) string {
	first, last := 0, g.Segments()-1
	cur := g.CursorSegment()
	if windowed {
		first = max(cur-1, 0)
		last = min(cur+1, last)
	}

	var b strings.Builder
	for k := first; k <= last; k++ {
		start := k * g.lineWidth
		end := min(start+g.lineWidth, len(g.cells))

		for j, label := range g.labels {
			b.WriteString(label)
			b.WriteByte('|')
			for _, c := range g.cells[start:end] {
				b.WriteString(c[j])
			}
			b.WriteByte('\n')
		}

		if markCursor && k == cur {
			b.WriteString(strings.Repeat(" ", g.cursor-start+len(g.labels[0])+1))
			b.WriteString(CursorMark)
		}

		if k == last {
			b.WriteByte('\n')
		} else {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// String renders the whole grid with the cursor marked.
func (g *Grid) String() string {
	return Render(g, false, true)
}
