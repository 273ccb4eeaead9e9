// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package tabfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/toeirei/guitab/internal/tab"
)

// RuleLine opens and closes the header.
var RuleLine = strings.Repeat("=", 80)

// Action is a conflict resolver's decision about an existing target file.
type Action int

const (
	Abort Action = iota
	Overwrite
	Rename
)

// Resolution tells SaveToPath how to proceed. Path is the new target when
// Action is Rename.
type Resolution struct {
	Action Action
	Path   string
}

// ConflictResolver decides what to do when the save target already exists.
type ConflictResolver interface {
	ResolveConflict(path string) (Resolution, error)
}

// ResolverFunc adapts a function to ConflictResolver.
type ResolverFunc func(path string) (Resolution, error)

func (f ResolverFunc) ResolveConflict(path string) (Resolution, error) { return f(path) }

// FailOnConflict refuses to touch existing files.
var FailOnConflict ConflictResolver = ResolverFunc(func(string) (Resolution, error) {
	return Resolution{Action: Abort}, nil
})

// OverwriteOnConflict replaces existing files.
var OverwriteOnConflict ConflictResolver = ResolverFunc(func(string) (Resolution, error) {
	return Resolution{Action: Overwrite}, nil
})

// Format returns the complete file text for a grid and its metadata. The
// cursor marker is never written.
func Format(g *tab.Grid, m tab.Metadata) string {
	var b strings.Builder
	b.WriteString(RuleLine + "\n")
	b.WriteString("Title : " + m.Title + "\n")
	b.WriteString("Author: " + m.Author + "\n")
	b.WriteString("Date  : " + m.Date + "\n")
	b.WriteString(RuleLine + "\n\n")
	b.WriteString(tab.Render(g, false, false))
	return b.String()
}

// SaveToStream writes the tab file to w.
func SaveToStream(w io.Writer, g *tab.Grid, m tab.Metadata) error {
	if _, err := io.WriteString(w, Format(g, m)); err != nil {
		return fmt.Errorf("write tab: %w", err)
	}
	return nil
}

// SaveToPath writes the tab file to path without clobbering an existing file
// unless the resolver says so. It returns the path actually written, which
// differs from path after a Rename. A nil resolver behaves like
// FailOnConflict.
func SaveToPath(path string, g *tab.Grid, m tab.Metadata, r ConflictResolver) (string, error) {
	if r == nil {
		r = FailOnConflict
	}
	for {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return path, writeAndClose(f, g, m)
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("create %s: %w", path, err)
		}

		res, err := r.ResolveConflict(path)
		if err != nil {
			return "", err
		}
		switch res.Action {
		case Overwrite:
			f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
			if err != nil {
				return "", fmt.Errorf("open %s: %w", path, err)
			}
			return path, writeAndClose(f, g, m)
		case Rename:
			if res.Path == "" {
				return "", &FileConflictError{Path: path}
			}
			path = res.Path
		default:
			return "", &FileConflictError{Path: path}
		}
	}
}

func writeAndClose(f *os.File, g *tab.Grid, m tab.Metadata) error {
	if err := SaveToStream(f, g, m); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f.Name(), err)
	}
	return nil
}
