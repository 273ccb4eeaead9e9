// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package recent

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func withTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), "sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestTouchAndList_MostRecentFirst(t *testing.T) {
	s := withTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"a.txt", "b.txt", "c.txt"} {
		e := Entry{Path: name, Title: name, Columns: i + 1, OpenedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.Touch(ctx, e); err != nil {
			t.Fatalf("Touch %s: %v", name, err)
		}
	}

	got, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || filepath.Base(got[0].Path) != "c.txt" || filepath.Base(got[1].Path) != "b.txt" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if !filepath.IsAbs(got[0].Path) {
		t.Fatalf("paths should be stored absolute, got %s", got[0].Path)
	}
}

func TestTouch_ReplacesExistingPath(t *testing.T) {
	s := withTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	_ = s.Touch(ctx, Entry{Path: "song.txt", Title: "old", OpenedAt: base})
	_ = s.Touch(ctx, Entry{Path: "other.txt", Title: "other", OpenedAt: base.Add(time.Minute)})
	if err := s.Touch(ctx, Entry{Path: "song.txt", Title: "new", Columns: 9, OpenedAt: base.Add(2 * time.Minute)}); err != nil {
		t.Fatalf("Touch: %v", err)
	}

	got, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Title != "new" || got[0].Columns != 9 {
		t.Fatalf("entry not replaced: %+v", got[0])
	}
}

func TestForget(t *testing.T) {
	s := withTestStore(t)
	ctx := context.Background()
	_ = s.Touch(ctx, Entry{Path: "gone.txt"})
	if err := s.Forget(ctx, "gone.txt"); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	got, _ := s.List(ctx, 0)
	if len(got) != 0 {
		t.Fatalf("expected empty index, got %+v", got)
	}
}

func TestOpen_UnsupportedType(t *testing.T) {
	if _, err := Open(context.Background(), "oracle", "x"); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestOpen_CreatesDirectoryForFileDSN(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "recent.db")
	s, err := Open(context.Background(), "sqlite", dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if err := s.Touch(context.Background(), Entry{Path: "x.txt"}); err != nil {
		t.Fatalf("Touch on file DSN: %v", err)
	}
}
