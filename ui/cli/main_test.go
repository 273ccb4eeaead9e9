// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toeirei/guitab/internal/config"
	"github.com/toeirei/guitab/internal/tab"
	"github.com/toeirei/guitab/internal/tabfile"
)

// isolate points every config, cache and working directory at temp dirs and
// resets package state after the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	work := t.TempDir()
	testChdir(t, work)
	t.Cleanup(func() {
		closeServices()
		verbose = false
		cfgFile = ""
		appConfig = config.Config{}
	})
	return work
}

// executeCommand runs a fresh root command with args and returns its output.
func executeCommand(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"render", "new", "write", "view", "recent", "version"} {
		found := false
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Fatalf("subcommand %q not registered", name)
		}
	}
}

func TestLangFlagListsLocales(t *testing.T) {
	f := NewRootCmd().PersistentFlags().Lookup("lang")
	if f == nil {
		t.Fatalf("lang flag not registered")
	}
	if !strings.Contains(f.Usage, "de, en") {
		t.Fatalf("lang usage should list the bundled locales, got %q", f.Usage)
	}
}

func TestVersionFlagAndCommand(t *testing.T) {
	isolate(t)
	out, err := executeCommand(t, nil, "-V")
	if err != nil {
		t.Fatalf("-V: %v", err)
	}
	v, _, _ := resolveBuildVersion(nil)
	if !strings.HasPrefix(out, v) {
		t.Fatalf("expected version %q, got %q", v, out)
	}

	out, err = executeCommand(t, nil, "version", "--no-recent")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "version: ") || !strings.Contains(out, "commit: ") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestNewWriteRender(t *testing.T) {
	isolate(t)

	out, err := executeCommand(t, nil, "new", "song.txt", "--columns", "3", "--title", "Hi", "--date", "2019-04-09", "--no-recent")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !strings.Contains(out, "Saved tab to song.txt") {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = executeCommand(t, nil, "render", "song.txt", "--no-recent")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "e|---\nB|---\nG|---\nD|---\nA|---\nE|---\n  *\n"; out != want {
		t.Fatalf("got %q want %q", out, want)
	}

	if _, err := executeCommand(t, nil, "write", "song.txt", "1", "0", "1", "0", "2", "3", "x", "--no-recent"); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err = executeCommand(t, nil, "render", "song.txt", "--no-marker", "--no-recent")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "e|-0-\nB|-1-\nG|-0-\nD|-2-\nA|-3-\nE|-x-\n\n"; out != want {
		t.Fatalf("got %q want %q", out, want)
	}

	out, err = executeCommand(t, nil, "render", "song.txt", "--cursor", "2", "--no-recent")
	if err != nil {
		t.Fatalf("render --cursor: %v", err)
	}
	if !strings.HasSuffix(out, "    *\n") {
		t.Fatalf("marker not under column 2: %q", out)
	}

	g, m, err := tabfile.LoadFromPath("song.txt", tab.DefaultTuning, tab.DefaultLineWidth)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if m.Title != "Hi" || m.Date != "2019-04-09" || m.Author != "Me" || g.Len() != 3 {
		t.Fatalf("unexpected file contents %+v len=%d", m, g.Len())
	}
}

func TestNew_Conflict(t *testing.T) {
	isolate(t)
	if _, err := executeCommand(t, nil, "new", "a.txt", "--no-recent"); err != nil {
		t.Fatalf("new: %v", err)
	}
	_, err := executeCommand(t, nil, "new", "a.txt", "--no-recent")
	if !errors.Is(err, tabfile.ErrFileConflict) {
		t.Fatalf("expected ErrFileConflict, got %v", err)
	}
	if err.Error() != "File already exists: 'a.txt'" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if _, err := executeCommand(t, nil, "new", "a.txt", "--force", "--title", "Again", "--no-recent"); err != nil {
		t.Fatalf("new --force: %v", err)
	}
	_, m, err := tabfile.LoadFromPath("a.txt", tab.DefaultTuning, tab.DefaultLineWidth)
	if err != nil || m.Title != "Again" {
		t.Fatalf("force did not overwrite: %+v %v", m, err)
	}
}

func TestCommandErrors(t *testing.T) {
	isolate(t)
	if _, err := executeCommand(t, nil, "new", "a.txt", "--no-recent"); err != nil {
		t.Fatalf("new: %v", err)
	}

	_, err := executeCommand(t, nil, "render", "missing.txt", "--no-recent")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}

	_, err = executeCommand(t, nil, "write", "a.txt", "0", "-", "-", "-", "-", "-", "99", "--no-recent")
	if !errors.Is(err, tab.ErrInvalidChord) {
		t.Fatalf("expected ErrInvalidChord, got %v", err)
	}
	if err.Error() != "Invalid finger position provided: 99" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	_, err = executeCommand(t, nil, "write", "a.txt", "-1", "-", "-", "-", "-", "-", "0", "--no-recent")
	if err == nil {
		t.Fatalf("expected error for negative index")
	}

	_, err = executeCommand(t, nil, "render", "a.txt", "--cursor", "5", "--no-recent")
	if !errors.Is(err, tab.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}

	_, err = executeCommand(t, nil, "render", "a.txt", "--tuning", "E,A,D,G", "--no-recent")
	if !errors.Is(err, tabfile.ErrMismatchedTuning) {
		t.Fatalf("expected ErrMismatchedTuning, got %v", err)
	}
}

func TestConfigFlag(t *testing.T) {
	isolate(t)
	_, err := executeCommand(t, nil, "version", "--config", "nope.yaml")
	if err == nil || !strings.Contains(err.Error(), "--config") {
		t.Fatalf("expected --config error, got %v", err)
	}

	if err := os.WriteFile("custom.yaml", []byte("tab:\n  line_width: 2\nrecent:\n  enabled: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := executeCommand(t, nil, "new", "w.txt", "--columns", "3", "--config", "custom.yaml"); err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := executeCommand(t, nil, "render", "w.txt", "--config", "custom.yaml", "--no-marker")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "e|--\nB|--\n") || !strings.Contains(out, "\n\ne|-\n") {
		t.Fatalf("line width from config not applied: %q", out)
	}
}

func TestDefaultConfigWritten(t *testing.T) {
	isolate(t)
	if _, err := executeCommand(t, nil, "version", "--line-width", "40", "--no-recent"); err != nil {
		t.Fatalf("version: %v", err)
	}
	path, err := config.GetConfigPath(false)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if !strings.Contains(string(data), "line_width: 78") {
		t.Fatalf("flags leaked into the default config:\n%s", data)
	}
}

func TestRootRunsShell(t *testing.T) {
	isolate(t)
	in := strings.NewReader("chord 0 1 0 2 3 x\nquit\n")
	out, err := executeCommand(t, in, "song.txt", "--no-recent")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	if !strings.HasPrefix(out, "Welcome to guitab") {
		t.Fatalf("unexpected output %q", out)
	}
	g, _, err := tabfile.LoadFromPath("song.txt", tab.DefaultTuning, tab.DefaultLineWidth)
	if err != nil {
		t.Fatalf("quit did not save song.txt: %v", err)
	}
	if c, _ := g.Chord(0); c.String() != "0 1 0 2 3 x" {
		t.Fatalf("unexpected chord %v", c)
	}

	// Loading an existing file keeps its contents; bye leaves it untouched.
	in = strings.NewReader("print\nbye\n")
	out, err = executeCommand(t, in, "song.txt", "--no-recent")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	if !strings.Contains(out, "B|1\n") {
		t.Fatalf("print did not show the loaded tab: %q", out)
	}
}

func TestRootRejectsBadFile(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("bad.txt", []byte("nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := executeCommand(t, strings.NewReader(""), "bad.txt", "--no-recent")
	if !errors.Is(err, tabfile.ErrMalformedHeader) {
		t.Fatalf("expected ErrMalformedHeader, got %v", err)
	}
}

func TestRecent(t *testing.T) {
	home := isolate(t)
	t.Setenv("GUITAB_RECENT_DSN", filepath.Join(home, "recent.db"))

	out, err := executeCommand(t, nil, "recent", "--no-recent")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if !strings.Contains(out, "disabled") {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = executeCommand(t, nil, "recent")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if !strings.Contains(out, "No recent tabs.") {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := executeCommand(t, nil, "new", "one.txt", "--title", "First"); err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := executeCommand(t, nil, "new", "two.txt", "--title", "Second"); err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err = executeCommand(t, nil, "recent", "--limit", "1")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if !strings.Contains(out, "two.txt") || strings.Contains(out, "one.txt") {
		t.Fatalf("unexpected recent output %q", out)
	}

	if _, err := executeCommand(t, nil, "recent", "--forget", "two.txt"); err != nil {
		t.Fatalf("recent --forget: %v", err)
	}
	out, err = executeCommand(t, nil, "recent")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if !strings.Contains(out, "one.txt") || strings.Contains(out, "two.txt") {
		t.Fatalf("unexpected recent output %q", out)
	}
}

// testChdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir for Go < 1.24).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
