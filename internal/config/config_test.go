// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/cobra"
	cfg "github.com/toeirei/guitab/internal/config"
)

// isolate points the user config dir at a temp dir and runs from another one
// so no real guitab.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	testChdir(t, t.TempDir())
	return tmp
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)
	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Tab.LineWidth != 78 || got.Tab.Filename != "myTab.txt" {
		t.Fatalf("unexpected tab defaults: %+v", got.Tab)
	}
	if !slices.Equal(got.Tab.Tuning, []string{"e", "B", "G", "D", "A", "E"}) {
		t.Fatalf("unexpected tuning: %v", got.Tab.Tuning)
	}
	if got.Metadata.Author != "Me" || got.Metadata.Title != "My Tab" {
		t.Fatalf("unexpected metadata defaults: %+v", got.Metadata)
	}
	if !got.Recent.Enabled || got.Recent.Type != "sqlite" || got.Recent.Limit != 10 {
		t.Fatalf("unexpected recent defaults: %+v", got.Recent)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	isolate(t)
	yaml := "tab:\n  line_width: 40\n  tuning: [d, A, F, D, A, D]\nmetadata:\n  author: Jane\nlanguage: de\n"
	file := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Tab.LineWidth != 40 || got.Language != "de" || got.Metadata.Author != "Jane" {
		t.Fatalf("file values not applied: %+v", got)
	}
	if got.Tab.Tuning[0] != "d" || got.Tab.Filename != "myTab.txt" {
		t.Fatalf("expected file tuning and default filename, got %+v", got.Tab)
	}
}

func TestLoadConfig_MissingExplicitFileFails(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &missing); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoadConfig_EnvAndFlags(t *testing.T) {
	isolate(t)
	t.Setenv("GUITAB_PAGER", "more")
	t.Setenv("GUITAB_TAB_LINE_WIDTH", "60")

	cmd := &cobra.Command{}
	cmd.Flags().Int("line-width", 78, "")
	cmd.Flags().Bool("no-recent", false, "")
	if err := cmd.Flags().Parse([]string{"--line-width", "32", "--no-recent"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Pager != "more" {
		t.Fatalf("env not applied: pager=%q", got.Pager)
	}
	if got.Tab.LineWidth != 32 {
		t.Fatalf("flag should beat env: line width=%d", got.Tab.LineWidth)
	}
	if got.Recent.Enabled {
		t.Fatalf("--no-recent should disable the recent index")
	}
}

func TestWriteConfigFile_CreatesFile(t *testing.T) {
	isolate(t)
	c := cfg.Config{}
	c.Tab.LineWidth = 78
	c.Language = "en"

	path, err := cfg.WriteConfigFile(&c, false)
	if err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}
	want, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	if path != want {
		t.Fatalf("wrote %s, want %s", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &path)
	if err != nil {
		t.Fatalf("LoadConfig of written file: %v\n%s", err, data)
	}
	if got.Tab.LineWidth != 78 || got.Language != "en" {
		t.Fatalf("round trip mismatch: %+v", got)
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
