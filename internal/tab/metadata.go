// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package tab

import (
	"slices"
	"strings"
	"time"
)

// DateLayout is the format used for the default tab date.
const DateLayout = "2006-01-02"

// Metadata describes a tab. It is set independently of the grid and only
// persisted when the tab is saved.
type Metadata struct {
	Title  string
	Author string
	Date   string
	Tuning []string
}

// DefaultMetadata returns the metadata of a fresh tab dated now.
func DefaultMetadata(now time.Time) Metadata {
	return Metadata{
		Title:  "My Tab",
		Author: "Me",
		Date:   now.Format(DateLayout),
		Tuning: slices.Clone(DefaultTuning),
	}
}

// Equal reports field equality.
func (m Metadata) Equal(o Metadata) bool {
	return m.Title == o.Title && m.Author == o.Author && m.Date == o.Date &&
		slices.Equal(m.Tuning, o.Tuning)
}

// TrimField drops leading blanks, which a tab file header does not keep.
func TrimField(v string) string {
	return strings.TrimLeft(v, " \t\f")
}

// Trimmed returns m with TrimField applied to title, author and date.
func (m Metadata) Trimmed() Metadata {
	m.Title, m.Author, m.Date = TrimField(m.Title), TrimField(m.Author), TrimField(m.Date)
	return m
}
