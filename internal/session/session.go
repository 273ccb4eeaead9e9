// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

// Package session ties a grid to its metadata and target file for the
// duration of one editing session.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/toeirei/guitab/internal/i18n"
	"github.com/toeirei/guitab/internal/logging"
	"github.com/toeirei/guitab/internal/recent"
	"github.com/toeirei/guitab/internal/tab"
	"github.com/toeirei/guitab/internal/tabfile"
)

// Recorder is notified of every file saved or loaded.
type Recorder interface {
	Touch(ctx context.Context, e recent.Entry) error
}

// Options configure a new session. Zero fields fall back to defaults.
type Options struct {
	Tuning    []string
	LineWidth int
	Filename  string
	Title     string
	Author    string
	Date      string
	Recorder  Recorder
	Resolver  tabfile.ConflictResolver
	Now       func() time.Time
}

// Session owns one grid and its metadata. It is driven by a single command
// loop and is not safe for concurrent use.
type Session struct {
	grid      *tab.Grid
	meta      tab.Metadata
	filename  string
	lineWidth int
	recorder  Recorder
	resolver  tabfile.ConflictResolver
}

// New starts a session on a blank one-column grid.
func New(opts Options) (*Session, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.Tuning) == 0 {
		opts.Tuning = tab.DefaultTuning
	}
	if opts.LineWidth == 0 {
		opts.LineWidth = tab.DefaultLineWidth
	}
	if opts.Filename == "" {
		opts.Filename = "myTab.txt"
	}

	g, err := tab.New(opts.Tuning, opts.LineWidth)
	if err != nil {
		return nil, err
	}
	meta := tab.DefaultMetadata(opts.Now())
	if opts.Title != "" {
		meta.Title = opts.Title
	}
	if opts.Author != "" {
		meta.Author = opts.Author
	}
	if opts.Date != "" {
		meta.Date = opts.Date
	}

	return &Session{
		grid:      g,
		meta:      meta.Trimmed(),
		filename:  opts.Filename,
		lineWidth: opts.LineWidth,
		recorder:  opts.Recorder,
		resolver:  opts.Resolver,
	}, nil
}

// Grid is the tab under edit. The pointer changes when a file is loaded.
func (s *Session) Grid() *tab.Grid { return s.grid }

// Metadata returns the current metadata; Tuning mirrors the grid labels.
func (s *Session) Metadata() tab.Metadata {
	m := s.meta
	m.Tuning = s.grid.Labels()
	return m
}

// Filename is the default save target.
func (s *Session) Filename() string { return s.filename }

// SetResolver replaces the save conflict policy.
func (s *Session) SetResolver(r tabfile.ConflictResolver) { s.resolver = r }

// SetTitle, SetAuthor, SetDate and SetFilename ignore multi-line values with
// a warning, since each must fit on one header line.
func (s *Session) SetTitle(v string)    { s.setText("title", tab.TrimField(v), &s.meta.Title) }
func (s *Session) SetAuthor(v string)   { s.setText("author", tab.TrimField(v), &s.meta.Author) }
func (s *Session) SetDate(v string)     { s.setText("date", tab.TrimField(v), &s.meta.Date) }
func (s *Session) SetFilename(v string) { s.setText("filename", v, &s.filename) }

func (s *Session) setText(field, v string, dst *string) {
	if strings.ContainsAny(v, "\r\n") {
		logging.Warnf("%s", i18n.T("metadata.multiline", map[string]any{"Field": field}))
		return
	}
	*dst = v
}

// SetTuning relabels the strings. The string count cannot change.
func (s *Session) SetTuning(labels []string) error {
	return s.grid.Relabel(labels)
}

// SetInfo applies loosely typed metadata such as values decoded from YAML or
// JSON. Unknown fields and values of the wrong type are skipped with a
// warning and leave the previous value in place.
func (s *Session) SetInfo(fields map[string]any) {
	for field, value := range fields {
		if field == "tuning" {
			labels, ok := value.([]string)
			if !ok {
				logging.Warnf("%s", i18n.T("metadata.not_string", map[string]any{"Field": field}))
				continue
			}
			if err := s.SetTuning(labels); err != nil {
				logging.Warnf("%v", err)
			}
			continue
		}

		var set func(string)
		switch field {
		case "title":
			set = s.SetTitle
		case "author":
			set = s.SetAuthor
		case "date":
			set = s.SetDate
		case "filename":
			set = s.SetFilename
		default:
			logging.Warnf("%s", i18n.T("metadata.unknown_field", map[string]any{"Field": field}))
			continue
		}
		str, ok := value.(string)
		if !ok {
			logging.Warnf("%s", i18n.T("metadata.not_string", map[string]any{"Field": field}))
			continue
		}
		set(str)
	}
}

// Save writes the tab to name, or to the session filename when name is
// empty. It returns the path written, which the conflict resolver may have
// changed, and which becomes the session filename. A failed or aborted save
// leaves the filename alone.
func (s *Session) Save(ctx context.Context, name string) (string, error) {
	if name == "" {
		name = s.filename
	}
	written, err := tabfile.SaveToPath(name, s.grid, s.Metadata(), s.resolver)
	if err != nil {
		return "", err
	}
	s.filename = written
	s.record(ctx, written)
	return written, nil
}

// Load replaces the grid with the tab in path. The file must use the session
// tuning. With overwriteMetadata the file's title, author and date replace
// the session's and path becomes the session filename; otherwise the file's
// metadata is discarded. The session is unchanged on error.
func (s *Session) Load(ctx context.Context, path string, overwriteMetadata bool) error {
	g, m, err := tabfile.LoadFromPath(path, s.grid.Labels(), s.lineWidth)
	if err != nil {
		return err
	}
	s.grid = g
	if overwriteMetadata {
		s.meta.Title = m.Title
		s.meta.Author = m.Author
		s.meta.Date = m.Date
		s.filename = path
	}
	s.record(ctx, path)
	return nil
}

// Reset discards the grid and starts again from one blank column.
func (s *Session) Reset() error {
	g, err := tab.New(s.grid.Labels(), s.lineWidth)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.grid = g
	return nil
}

func (s *Session) record(ctx context.Context, path string) {
	if s.recorder == nil {
		return
	}
	e := recent.Entry{
		Path:    path,
		Title:   s.meta.Title,
		Author:  s.meta.Author,
		Columns: s.grid.Len(),
	}
	if err := s.recorder.Touch(ctx, e); err != nil {
		logging.Warnf("recent: could not record %s: %v", path, err)
	}
}
