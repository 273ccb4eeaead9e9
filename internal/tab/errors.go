// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package tab

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is. The concrete error types below
// unwrap to them.
var (
	ErrInvalidChord  = errors.New("invalid chord")
	ErrInvalidMove   = errors.New("invalid move")
	ErrOutOfRange    = errors.New("position out of range")
	ErrInvalidTuning = errors.New("invalid tuning")
)

// ChordErrorKind distinguishes the two ways a chord can be rejected.
type ChordErrorKind int

const (
	// WrongLength means the chord does not hold one token per string.
	WrongLength ChordErrorKind = iota + 1
	// IllegalToken means a token is outside the allowed alphabet.
	IllegalToken
)

func (k ChordErrorKind) String() string {
	switch k {
	case WrongLength:
		return "wrong length"
	case IllegalToken:
		return "illegal token"
	default:
		return "unknown"
	}
}

// InvalidChordError is returned when a chord fails validation.
type InvalidChordError struct {
	Kind  ChordErrorKind
	Got   int    // number of tokens supplied (WrongLength)
	Want  int    // string count of the grid (WrongLength)
	Token string // offending token (IllegalToken)
}

func (e *InvalidChordError) Error() string {
	if e.Kind == WrongLength {
		return fmt.Sprintf("invalid chord: got %d finger positions, expected %d", e.Got, e.Want)
	}
	return fmt.Sprintf("invalid chord: illegal finger position %q", e.Token)
}

func (e *InvalidChordError) Unwrap() error { return ErrInvalidChord }

// InvalidMoveError is returned for a cursor move that is not a positive count.
type InvalidMoveError struct {
	Input string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move: count must be an integer > 0, got %s", e.Input)
}

func (e *InvalidMoveError) Unwrap() error { return ErrInvalidMove }

// OutOfRangeError is returned when a position falls outside the grid. Delta
// is set for a backward move that would pass column 0.
type OutOfRangeError struct {
	Cursor int
	Delta  int
}

func (e *OutOfRangeError) Error() string {
	if e.Delta == 0 {
		return fmt.Sprintf("column %d is out of range", e.Cursor)
	}
	return fmt.Sprintf("requested backwards move is out of range: index = %d, num = %d", e.Cursor, e.Delta)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// InvalidTuningError is returned when string labels cannot be applied to a grid.
type InvalidTuningError struct {
	Got  int
	Want int
}

func (e *InvalidTuningError) Error() string {
	if e.Want == 0 {
		return "invalid tuning: at least one string label is required"
	}
	return fmt.Sprintf("invalid tuning: got %d string labels, grid has %d strings", e.Got, e.Want)
}

func (e *InvalidTuningError) Unwrap() error { return ErrInvalidTuning }
