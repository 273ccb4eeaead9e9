// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package shell

import (
	"errors"
	"io/fs"

	"github.com/toeirei/guitab/internal/i18n"
	"github.com/toeirei/guitab/internal/tab"
	"github.com/toeirei/guitab/internal/tabfile"
)

// Describe turns an error from the tab core into a translated message. path
// names the file involved, if any.
func Describe(err error, path string) string {
	var (
		chordErr      *tab.InvalidChordError
		moveErr       *tab.InvalidMoveError
		rangeErr      *tab.OutOfRangeError
		tuningErr     *tab.InvalidTuningError
		headerErr     *tabfile.MalformedHeaderError
		unterminated  *tabfile.UnterminatedHeaderError
		mismatchedErr *tabfile.MismatchedTuningError
		conflictErr   *tabfile.FileConflictError
		pathErr       *fs.PathError
	)
	switch {
	case errors.As(err, &headerErr):
		return i18n.T("file.malformed_header", map[string]any{"Path": path, "Line": headerErr.Line, "Field": headerErr.Field})
	case errors.As(err, &unterminated):
		return i18n.T("file.unterminated_header", map[string]any{"Path": path})
	case errors.As(err, &mismatchedErr):
		return i18n.T("file.mismatched_tuning", map[string]any{"Path": path, "Line": mismatchedErr.Line, "Label": mismatchedErr.Label})
	case errors.As(err, &conflictErr):
		return i18n.T("file.conflict", map[string]any{"Path": conflictErr.Path})
	case errors.As(err, &chordErr):
		if chordErr.Kind == tab.WrongLength {
			return i18n.T("chord.wrong_length", map[string]any{"Got": chordErr.Got, "Want": chordErr.Want})
		}
		return i18n.T("chord.illegal_token", map[string]any{"Token": chordErr.Token})
	case errors.As(err, &moveErr):
		return i18n.T("move.invalid", map[string]any{"Input": moveErr.Input})
	case errors.As(err, &rangeErr):
		return i18n.T("move.out_of_range", map[string]any{"Cursor": rangeErr.Cursor, "Delta": rangeErr.Delta})
	case errors.As(err, &tuningErr):
		return i18n.T("tuning.invalid", map[string]any{"Want": tuningErr.Want, "Got": tuningErr.Got})
	case errors.As(err, &pathErr):
		return i18n.T("file.error", map[string]any{"Path": pathErr.Path, "Err": pathErr.Err})
	default:
		return i18n.T("error.generic", map[string]any{"Err": err})
	}
}
