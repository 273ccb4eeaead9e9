// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package shell

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/shlex"
	"golang.org/x/term"
)

// Pager shows a long text to the user.
type Pager func(text string) error

// Clipboard copies text to the system clipboard.
type Clipboard func(text string) error

// SystemClipboard writes to the OS clipboard.
var SystemClipboard Clipboard = clipboard.WriteAll

// WriterPager prints text straight to w.
func WriterPager(w io.Writer) Pager {
	return func(text string) error {
		_, err := io.WriteString(w, text)
		return err
	}
}

// CommandPager pipes text through command (for example "less -R") when out
// is a terminal, and prints it directly otherwise.
func CommandPager(command string, out *os.File) Pager {
	direct := WriterPager(out)
	if strings.TrimSpace(command) == "" || !term.IsTerminal(int(out.Fd())) {
		return direct
	}
	return func(text string) error {
		argv, err := shlex.Split(command)
		if err != nil || len(argv) == 0 {
			return direct(text)
		}
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdin = strings.NewReader(text)
		cmd.Stdout = out
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("pager %s: %w", argv[0], err)
		}
		return nil
	}
}
