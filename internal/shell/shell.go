// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

// Package shell is the interactive guitab prompt. Each input line is split
// like a shell command line and dispatched through a small cobra command
// tree that calls into the editing session.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/shlex"

	"github.com/toeirei/guitab/internal/i18n"
	"github.com/toeirei/guitab/internal/recent"
	"github.com/toeirei/guitab/internal/session"
	"github.com/toeirei/guitab/internal/tab"
	"github.com/toeirei/guitab/internal/tabfile"
)

// Lister lists recently used tab files.
type Lister interface {
	List(ctx context.Context, limit int) ([]recent.Entry, error)
}

// Shell reads commands from in and writes tabs and messages to out.
type Shell struct {
	sess        *session.Session
	in          *bufio.Reader
	out         io.Writer
	pager       Pager
	clipboard   Clipboard
	recent      Lister
	recentLimit int
	errStyle    lipgloss.Style
	okStyle     lipgloss.Style
	done        bool
}

// Option customises a Shell.
type Option func(*Shell)

// WithPager sets how the full tab is shown by print.
func WithPager(p Pager) Option { return func(sh *Shell) { sh.pager = p } }

// WithClipboard sets the clipboard used by copy.
func WithClipboard(c Clipboard) Option { return func(sh *Shell) { sh.clipboard = c } }

// WithRecent enables the recent command.
func WithRecent(l Lister, limit int) Option {
	return func(sh *Shell) {
		sh.recent = l
		sh.recentLimit = limit
	}
}

// New creates a shell for sess. Save conflicts are resolved by asking the
// user on in/out.
func New(sess *session.Session, in io.Reader, out io.Writer, opts ...Option) *Shell {
	r := lipgloss.NewRenderer(out)
	sh := &Shell{
		sess:        sess,
		in:          bufio.NewReader(in),
		out:         out,
		pager:       WriterPager(out),
		clipboard:   SystemClipboard,
		recentLimit: 10,
		errStyle:    r.NewStyle().Foreground(lipgloss.Color("196")),
		okStyle:     r.NewStyle().Foreground(lipgloss.Color("40")),
	}
	for _, o := range opts {
		o(sh)
	}
	sess.SetResolver(tabfile.ResolverFunc(sh.promptConflict))
	return sh
}

// Done reports whether a quit command has run.
func (sh *Shell) Done() bool { return sh.done }

// Run greets the user and processes lines until a quit command or end of
// input.
func (sh *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(sh.out, i18n.T("shell.welcome"))
	for !sh.done {
		fmt.Fprint(sh.out, i18n.T("shell.prompt"))
		line, err := sh.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(sh.out)
				break
			}
			return err
		}
		sh.Exec(ctx, line)
	}
	fmt.Fprintln(sh.out, i18n.T("shell.goodbye"))
	return nil
}

// Exec runs a single command line. Errors are reported to the user and
// returned.
func (sh *Shell) Exec(ctx context.Context, line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		sh.report(err, "")
		return err
	}
	if len(args) == 0 {
		return nil
	}
	root := sh.commands()
	root.SetArgs(args)
	err = root.ExecuteContext(ctx)
	var r reported
	if err != nil && !errors.As(err, &r) {
		sh.report(err, "")
	}
	return err
}

// reported marks an error that has already been shown to the user.
type reported struct{ error }

func (r reported) Unwrap() error { return r.error }

// readLine returns the next input line without its terminator. A final
// line with no newline is returned before io.EOF.
func (sh *Shell) readLine() (string, error) {
	line, err := sh.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (sh *Shell) report(err error, path string) {
	fmt.Fprintln(sh.out, sh.errStyle.Render(Describe(err, path)))
}

func (sh *Shell) fail(err error, path string) error {
	sh.report(err, path)
	return reported{err}
}

func (sh *Shell) notify(msg string) {
	fmt.Fprintln(sh.out, sh.okStyle.Render(msg))
}

// showWindow prints the cursor line and its neighbours.
func (sh *Shell) showWindow() {
	fmt.Fprintln(sh.out, tab.Render(sh.sess.Grid(), true, true))
}

// promptConflict asks whether to overwrite an existing file. Answering n
// asks for another name; end of input aborts the save.
func (sh *Shell) promptConflict(path string) (tabfile.Resolution, error) {
	for {
		fmt.Fprint(sh.out, i18n.T("file.conflict_prompt", map[string]any{"Path": path}))
		answer, err := sh.readLine()
		if err != nil {
			fmt.Fprintln(sh.out)
			return tabfile.Resolution{Action: tabfile.Abort}, nil
		}
		switch strings.ToLower(answer) {
		case "y":
			return tabfile.Resolution{Action: tabfile.Overwrite}, nil
		case "n":
			fmt.Fprint(sh.out, i18n.T("file.rename_prompt"))
			name, err := sh.readLine()
			if err != nil || name == "" {
				return tabfile.Resolution{Action: tabfile.Abort}, nil
			}
			return tabfile.Resolution{Action: tabfile.Rename, Path: name}, nil
		default:
			fmt.Fprintln(sh.out, i18n.T("file.invalid_choice"))
		}
	}
}
