// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"bytes"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
)

// swapLogger replaces L with a buffer-backed logger for the test.
func swapLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	t.Cleanup(func() { L = prev })
	return &buf
}

func TestLoggingHelpers_WriteToBuffer(t *testing.T) {
	buf := swapLogger(t)
	L.SetLevel(clog.DebugLevel)

	Debugf("hello %s", "dbg")
	Infof("info %d", 1)
	Warnf("warn")
	Errorf("err %v", "E")

	out := buf.String()
	for _, want := range []string{"hello dbg", "info 1", "warn", "err E"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output: %s", want, out)
		}
	}
}

func TestSetLevel(t *testing.T) {
	buf := swapLogger(t)
	if err := SetLevel("warn"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	Infof("quiet")
	Warnf("loud")
	out := buf.String()
	if strings.Contains(out, "quiet") || !strings.Contains(out, "loud") {
		t.Fatalf("level not applied: %s", out)
	}
	if err := SetLevel("chatty"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestSetDebug(t *testing.T) {
	buf := swapLogger(t)
	SetDebug(true)
	Debugf("visible")
	SetDebug(false)
	Debugf("hidden")
	out := buf.String()
	if !strings.Contains(out, "visible") || strings.Contains(out, "hidden") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestSetOutput(t *testing.T) {
	swapLogger(t)
	var buf bytes.Buffer
	SetOutput(&buf)
	Warnf("redirected")
	if !strings.Contains(buf.String(), "redirected") {
		t.Fatalf("output not redirected: %q", buf.String())
	}
}
