// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package tab

import (
	"slices"
	"strconv"
	"strings"
)

// Blank is the token for a string that is not played.
const Blank = "-"

// Alphabet lists every token a chord may contain: no-play, hammer-on,
// pull-off, muted, and frets 0 through 24.
//
// Frets 10-24 are accepted but occupy more than one display column, so a tab
// holding them renders misaligned and does not survive a save/load cycle.
var Alphabet = func() []string {
	a := []string{Blank, "h", "p", "x"}
	for fret := 0; fret <= 24; fret++ {
		a = append(a, strconv.Itoa(fret))
	}
	return a
}()

var alphabetSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Alphabet))
	for _, t := range Alphabet {
		m[t] = struct{}{}
	}
	return m
}()

// ValidToken reports whether t belongs to the alphabet.
func ValidToken(t string) bool {
	_, ok := alphabetSet[t]
	return ok
}

// Chord is one vertical slice of a tab: a token per string, highest-pitched
// string first.
type Chord []string

// BlankChord returns a chord of n no-play tokens.
func BlankChord(n int) Chord {
	c := make(Chord, n)
	for i := range c {
		c[i] = Blank
	}
	return c
}

// ParseChord splits a whitespace separated token list into a chord.
func ParseChord(s string) Chord {
	return Chord(strings.Fields(s))
}

// Validate checks the chord against a string count and the alphabet.
// Length is checked before tokens.
func (c Chord) Validate(n int) error {
	if len(c) != n {
		return &InvalidChordError{Kind: WrongLength, Got: len(c), Want: n}
	}
	for _, t := range c {
		if !ValidToken(t) {
			return &InvalidChordError{Kind: IllegalToken, Token: t}
		}
	}
	return nil
}

// Clone returns a copy that shares no storage with c.
func (c Chord) Clone() Chord {
	return slices.Clone(c)
}

// Equal reports whether both chords hold the same tokens.
func (c Chord) Equal(o Chord) bool {
	return slices.Equal(c, o)
}

func (c Chord) String() string {
	return strings.Join(c, " ")
}
