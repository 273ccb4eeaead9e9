// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package tabfile

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedHeader    = errors.New("tab file incorrectly formatted")
	ErrUnterminatedHeader = errors.New("end of file reached before end of header")
	ErrMismatchedTuning   = errors.New("tab file incorrectly formatted or has mismatched tuning")
	ErrFileConflict       = errors.New("file already exists")
)

// MalformedHeaderError reports a missing rule line or metadata field.
type MalformedHeaderError struct {
	Line  int
	Field string // "rule", "title", "author" or "date"
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("line %d: expected %s: %v", e.Line, e.Field, ErrMalformedHeader)
}

func (e *MalformedHeaderError) Unwrap() error { return ErrMalformedHeader }

// UnterminatedHeaderError reports input that ends before the closing rule.
type UnterminatedHeaderError struct {
	Line int
}

func (e *UnterminatedHeaderError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, ErrUnterminatedHeader)
}

func (e *UnterminatedHeaderError) Unwrap() error { return ErrUnterminatedHeader }

// MismatchedTuningError reports a body row that does not carry the expected
// string label, or a run whose rows differ in length.
type MismatchedTuningError struct {
	Line   int
	Label  string
	Ragged bool
}

func (e *MismatchedTuningError) Error() string {
	if e.Ragged {
		return fmt.Sprintf("line %d: row for string %q differs in length: %v", e.Line, e.Label, ErrMismatchedTuning)
	}
	return fmt.Sprintf("line %d: expected row for string %q: %v", e.Line, e.Label, ErrMismatchedTuning)
}

func (e *MismatchedTuningError) Unwrap() error { return ErrMismatchedTuning }

// FileConflictError is returned by SaveToPath when the target exists and the
// conflict resolver did not choose to overwrite or rename.
type FileConflictError struct {
	Path string
}

func (e *FileConflictError) Error() string {
	return fmt.Sprintf("%v: '%s'", ErrFileConflict, e.Path)
}

func (e *FileConflictError) Unwrap() error { return ErrFileConflict }
