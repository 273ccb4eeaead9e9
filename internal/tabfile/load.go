// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package tabfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/toeirei/guitab/internal/tab"
)

var (
	titleRe  = regexp.MustCompile(`(?i)^title\s*:\s*(.*)$`)
	authorRe = regexp.MustCompile(`(?i)^author\s*:\s*(.*)$`)
	dateRe   = regexp.MustCompile(`(?i)^date\s*:\s*(.*)$`)
	// markerRe matches a cursor marker line left in a file.
	markerRe = regexp.MustCompile(`^\s*\*\s*$`)
)

// lineReader numbers lines and strips line terminators.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func (r *lineReader) next() (string, bool) {
	if !r.sc.Scan() {
		return "", false
	}
	r.line++
	return strings.TrimRight(r.sc.Text(), "\r"), true
}

// stopped explains why next returned false: a read error if there was one,
// otherwise the format error for a premature end of input.
func (r *lineReader) stopped(eof error) error {
	if err := r.sc.Err(); err != nil {
		return fmt.Errorf("read tab: %w", err)
	}
	return eof
}

// LoadFromPath opens path and parses it with LoadFromStream.
func LoadFromPath(path string, labels []string, lineWidth int) (*tab.Grid, tab.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, tab.Metadata{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, m, err := LoadFromStream(f, labels, lineWidth)
	if err != nil {
		return nil, tab.Metadata{}, fmt.Errorf("%s: %w", path, err)
	}
	return g, m, nil
}

// LoadFromStream parses a tab file. labels is the tuning of the session the
// tab is loaded into; every body row must carry the matching label. The
// returned grid has its cursor at column 0 and spans every column parsed.
func LoadFromStream(r io.Reader, labels []string, lineWidth int) (*tab.Grid, tab.Metadata, error) {
	if len(labels) == 0 {
		return nil, tab.Metadata{}, &tab.InvalidTuningError{}
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lr := &lineReader{sc: sc}

	meta, err := readHeader(lr)
	if err != nil {
		return nil, tab.Metadata{}, err
	}
	meta.Tuning = slices.Clone(labels)

	chords, err := readBody(lr, labels)
	if err != nil {
		return nil, tab.Metadata{}, err
	}
	if err := sc.Err(); err != nil {
		return nil, tab.Metadata{}, fmt.Errorf("read tab: %w", err)
	}

	g, err := tab.FromChords(labels, lineWidth, chords)
	if err != nil {
		return nil, tab.Metadata{}, err
	}
	return g, meta, nil
}

func readHeader(lr *lineReader) (tab.Metadata, error) {
	var m tab.Metadata
	line, ok := lr.next()
	if !ok {
		return m, lr.stopped(&MalformedHeaderError{Line: 1, Field: "rule"})
	}
	if line != RuleLine {
		return m, &MalformedHeaderError{Line: 1, Field: "rule"}
	}

	fields := []struct {
		name string
		re   *regexp.Regexp
		dst  *string
	}{
		{"title", titleRe, &m.Title},
		{"author", authorRe, &m.Author},
		{"date", dateRe, &m.Date},
	}
	for _, f := range fields {
		line, ok := lr.next()
		if !ok {
			return m, lr.stopped(&MalformedHeaderError{Line: lr.line + 1, Field: f.name})
		}
		match := f.re.FindStringSubmatch(line)
		if match == nil {
			return m, &MalformedHeaderError{Line: lr.line, Field: f.name}
		}
		*f.dst = match[1]
	}

	// Anything up to the closing rule is free-form notes.
	for {
		line, ok := lr.next()
		if !ok {
			return m, lr.stopped(&UnterminatedHeaderError{Line: lr.line})
		}
		if line == RuleLine {
			return m, nil
		}
	}
}

func readBody(lr *lineReader, labels []string) ([]tab.Chord, error) {
	var chords []tab.Chord
	rows := make([][]rune, len(labels))
	for {
		line, ok := lr.next()
		if !ok {
			return chords, nil
		}
		if skippable(line) {
			continue
		}

		for j, label := range labels {
			if j > 0 {
				if line, ok = lr.next(); !ok {
					return nil, lr.stopped(&MismatchedTuningError{Line: lr.line + 1, Label: label})
				}
			}
			prefix := label + "|"
			if !strings.HasPrefix(line, prefix) {
				return nil, &MismatchedTuningError{Line: lr.line, Label: label}
			}
			rows[j] = []rune(line[len(prefix):])
			if len(rows[j]) != len(rows[0]) {
				return nil, &MismatchedTuningError{Line: lr.line, Label: label, Ragged: true}
			}
		}

		for c := range rows[0] {
			chord := make(tab.Chord, len(labels))
			for j := range labels {
				chord[j] = string(rows[j][c])
			}
			chords = append(chords, chord)
		}
	}
}

// skippable reports blank separator lines and stray cursor markers.
func skippable(line string) bool {
	return strings.TrimSpace(line) == "" || markerRe.MatchString(line)
}
