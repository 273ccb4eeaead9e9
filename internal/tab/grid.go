// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package tab

import (
	"fmt"
	"slices"
	"strconv"
)

// DefaultLineWidth is the number of chord columns per rendered line.
const DefaultLineWidth = 78

// DefaultTuning is standard six-string tuning, highest-pitched string first.
var DefaultTuning = []string{"e", "B", "G", "D", "A", "E"}

// Grid is a tablature under edit. The zero value is not usable; create grids
// with New or NewDefault.
//
// A Grid is owned by a single editing session and is not safe for concurrent
// use.
type Grid struct {
	cells     []Chord
	cursor    int
	labels    []string
	lineWidth int
}

// New returns a one-column blank grid with the given string labels and
// wrap width. The number of labels fixes the string count.
func New(labels []string, lineWidth int) (*Grid, error) {
	if len(labels) == 0 {
		return nil, &InvalidTuningError{}
	}
	if lineWidth <= 0 {
		return nil, fmt.Errorf("line width must be > 0, got %d", lineWidth)
	}
	g := &Grid{
		labels:    slices.Clone(labels),
		lineWidth: lineWidth,
	}
	g.cells = []Chord{BlankChord(len(labels))}
	return g, nil
}

// NewDefault returns a blank six-string grid in standard tuning.
func NewDefault() *Grid {
	g, _ := New(DefaultTuning, DefaultLineWidth)
	return g
}

// FromChords builds a grid holding exactly the given chords, with the cursor
// at column 0. Every chord is validated; an empty slice yields a one-column
// blank grid.
func FromChords(labels []string, lineWidth int, chords []Chord) (*Grid, error) {
	g, err := New(labels, lineWidth)
	if err != nil {
		return nil, err
	}
	if len(chords) == 0 {
		return g, nil
	}
	cells := make([]Chord, len(chords))
	for i, c := range chords {
		if err := c.Validate(len(labels)); err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		cells[i] = c.Clone()
	}
	g.cells = cells
	return g, nil
}

// StringCount is the number of tokens in every chord of the grid.
func (g *Grid) StringCount() int { return len(g.labels) }

// Labels returns a copy of the string labels.
func (g *Grid) Labels() []string { return slices.Clone(g.labels) }

// LineWidth is the maximum number of columns per rendered segment.
func (g *Grid) LineWidth() int { return g.lineWidth }

// Cursor is the current write position.
func (g *Grid) Cursor() int { return g.cursor }

// HighWaterMark is the largest column ever written or reached by the cursor.
func (g *Grid) HighWaterMark() int { return len(g.cells) - 1 }

// Len is the number of columns in the grid, HighWaterMark()+1.
func (g *Grid) Len() int { return len(g.cells) }

// Chord returns a copy of the chord at column i.
func (g *Grid) Chord(i int) (Chord, error) {
	if i < 0 || i >= len(g.cells) {
		return nil, &OutOfRangeError{Cursor: i}
	}
	return g.cells[i].Clone(), nil
}

// Chords returns a copy of every column in order.
func (g *Grid) Chords() []Chord {
	out := make([]Chord, len(g.cells))
	for i, c := range g.cells {
		out[i] = c.Clone()
	}
	return out
}

// Relabel replaces the string labels. The string count cannot change.
func (g *Grid) Relabel(labels []string) error {
	if len(labels) != len(g.labels) {
		return &InvalidTuningError{Got: len(labels), Want: len(g.labels)}
	}
	g.labels = slices.Clone(labels)
	return nil
}

// WriteChord overwrites the column under the cursor. The cursor does not
// advance.
func (g *Grid) WriteChord(c Chord) error {
	return g.WriteChordAt(c, g.cursor)
}

// WriteChordAt overwrites column index, growing the grid with blank chords if
// index lies past the high water mark. The grid is unchanged on error.
func (g *Grid) WriteChordAt(c Chord, index int) error {
	if index < 0 {
		return &OutOfRangeError{Cursor: index}
	}
	if err := c.Validate(len(g.labels)); err != nil {
		return err
	}
	g.growTo(index)
	g.cells[index] = c.Clone()
	return nil
}

// Forward moves the cursor n columns right. Moving past the end extends the
// tab with blank chords.
func (g *Grid) Forward(n int) error {
	if n <= 0 {
		return &InvalidMoveError{Input: strconv.Itoa(n)}
	}
	g.cursor += n
	g.growTo(g.cursor)
	return nil
}

// Backward moves the cursor n columns left. A move that would pass column 0
// fails and leaves the cursor where it was.
func (g *Grid) Backward(n int) error {
	if n <= 0 {
		return &InvalidMoveError{Input: strconv.Itoa(n)}
	}
	if g.cursor-n < 0 {
		return &OutOfRangeError{Cursor: g.cursor, Delta: n}
	}
	g.cursor -= n
	return nil
}

// Move applies a signed cursor delta: positive moves forward, negative moves
// backward. Zero is rejected.
func (g *Grid) Move(delta int) error {
	switch {
	case delta > 0:
		return g.Forward(delta)
	case delta < 0:
		return g.Backward(-delta)
	default:
		return &InvalidMoveError{Input: "0"}
	}
}

// Equal reports whether both grids hold the same labels and chords. Cursor
// and line width are presentation state and are not compared.
func (g *Grid) Equal(o *Grid) bool {
	if !slices.Equal(g.labels, o.labels) || len(g.cells) != len(o.cells) {
		return false
	}
	for i := range g.cells {
		if !g.cells[i].Equal(o.cells[i]) {
			return false
		}
	}
	return true
}

// growTo appends blank chords until the high water mark reaches index.
func (g *Grid) growTo(index int) {
	for len(g.cells) <= index {
		g.cells = append(g.cells, BlankChord(len(g.labels)))
	}
}

// ParseCount converts a user supplied move count. An empty string means 1.
func ParseCount(s string) (int, error) {
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, &InvalidMoveError{Input: s}
	}
	return n, nil
}
