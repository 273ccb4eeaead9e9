// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package shell

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/toeirei/guitab/internal/i18n"
	"github.com/toeirei/guitab/internal/tab"
)

// commands builds a fresh command tree for one input line.
func (sh *Shell) commands() *cobra.Command {
	root := &cobra.Command{
		Use:                "guitab",
		Short:              "Interactive guitar tab editor",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(sh.out, sh.errStyle.Render(i18n.T("shell.unknown_command", map[string]any{"Command": args[0]})))
			return reported{fmt.Errorf("unknown command %q", args[0])}
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(sh.out)
	root.SetErr(sh.out)

	// Text arguments may start with '-', so flag parsing is off for them.
	text := func(use, alias, short string, args cobra.PositionalArgs, run func(cmd *cobra.Command, args []string) error) *cobra.Command {
		return &cobra.Command{
			Use:                use,
			Aliases:            []string{alias},
			Short:              short,
			Args:               args,
			DisableFlagParsing: true,
			RunE:               run,
		}
	}

	root.AddCommand(
		text("chord TOKEN...", "c", "Write a chord at the cursor, one token per string from high e to low E", cobra.ArbitraryArgs, sh.runChord),
		text("forward [N]", "f", "Move the cursor N counts forward (default 1), extending the tab", cobra.MaximumNArgs(1), func(cmd *cobra.Command, args []string) error {
			return sh.runMove(args, true)
		}),
		text("backward [N]", "b", "Move the cursor N counts back (default 1)", cobra.MaximumNArgs(1), func(cmd *cobra.Command, args []string) error {
			return sh.runMove(args, false)
		}),
		text("title WORDS...", "t", "Set the tab title", cobra.MinimumNArgs(1), func(cmd *cobra.Command, args []string) error {
			sh.sess.SetTitle(strings.Join(args, " "))
			return nil
		}),
		text("author WORDS...", "a", "Set the tab author", cobra.MinimumNArgs(1), func(cmd *cobra.Command, args []string) error {
			sh.sess.SetAuthor(strings.Join(args, " "))
			return nil
		}),
		text("date DATE", "D", "Set the tab date", cobra.ExactArgs(1), func(cmd *cobra.Command, args []string) error {
			sh.sess.SetDate(args[0])
			return nil
		}),
		text("file NAME...", "o", "Set the file the tab is saved to", cobra.MinimumNArgs(1), func(cmd *cobra.Command, args []string) error {
			sh.sess.SetFilename(strings.Join(args, " "))
			return nil
		}),
		text("tuning LABEL...", "u", "Relabel the strings, highest-pitched first", cobra.MinimumNArgs(1), func(cmd *cobra.Command, args []string) error {
			if err := sh.sess.SetTuning(args); err != nil {
				return sh.fail(err, "")
			}
			return nil
		}),
		&cobra.Command{
			Use:     "info",
			Aliases: []string{"i"},
			Short:   "Show the tab metadata",
			Args:    cobra.NoArgs,
			RunE:    sh.runInfo,
		},
		&cobra.Command{
			Use:     "print",
			Aliases: []string{"p"},
			Short:   "Show the entire tab",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return sh.pager(tab.Render(sh.sess.Grid(), false, true) + "\n")
			},
		},
		&cobra.Command{
			Use:     "show",
			Aliases: []string{"w"},
			Short:   "Show the lines around the cursor",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				sh.showWindow()
				return nil
			},
		},
		text("save [NAME...]", "s", "Save the tab, optionally under a new file name", cobra.ArbitraryArgs, func(cmd *cobra.Command, args []string) error {
			return sh.runSave(cmd, args, false)
		}),
		text("quit [NAME...]", "q", "Save the tab then quit", cobra.ArbitraryArgs, func(cmd *cobra.Command, args []string) error {
			return sh.runSave(cmd, args, true)
		}),
		&cobra.Command{
			Use:     "bye",
			Aliases: []string{"d"},
			Short:   "Quit without saving",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				sh.done = true
				return nil
			},
		},
		text("load NAME...", "l", "Load tab data from a file, keeping the current title, author and date", cobra.MinimumNArgs(1), func(cmd *cobra.Command, args []string) error {
			return sh.runLoad(cmd, args, false)
		}),
		text("loadall NAME...", "L", "Load tab data and metadata from a file", cobra.MinimumNArgs(1), func(cmd *cobra.Command, args []string) error {
			return sh.runLoad(cmd, args, true)
		}),
		&cobra.Command{
			Use:   "new",
			Short: "Discard the tab and start again",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := sh.sess.Reset(); err != nil {
					return sh.fail(err, "")
				}
				sh.showWindow()
				return nil
			},
		},
		&cobra.Command{
			Use:   "copy",
			Short: "Copy the tab to the clipboard",
			Args:  cobra.NoArgs,
			RunE:  sh.runCopy,
		},
		&cobra.Command{
			Use:   "recent",
			Short: "List recently used tab files",
			Args:  cobra.NoArgs,
			RunE:  sh.runRecent,
		},
	)
	return root
}

func (sh *Shell) runChord(cmd *cobra.Command, args []string) error {
	if err := sh.sess.Grid().WriteChord(tab.ParseChord(strings.Join(args, " "))); err != nil {
		return sh.fail(err, "")
	}
	sh.showWindow()
	return nil
}

func (sh *Shell) runMove(args []string, forward bool) error {
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	n, err := tab.ParseCount(arg)
	if err == nil {
		if forward {
			err = sh.sess.Grid().Forward(n)
		} else {
			err = sh.sess.Grid().Backward(n)
		}
	}
	if err != nil {
		return sh.fail(err, "")
	}
	sh.showWindow()
	return nil
}

func (sh *Shell) runInfo(cmd *cobra.Command, args []string) error {
	m := sh.sess.Metadata()
	g := sh.sess.Grid()
	w := tabwriter.NewWriter(sh.out, 0, 0, 1, ' ', 0)
	fmt.Fprintf(w, "Title:\t%s\n", m.Title)
	fmt.Fprintf(w, "Author:\t%s\n", m.Author)
	fmt.Fprintf(w, "Date:\t%s\n", m.Date)
	fmt.Fprintf(w, "Tuning:\t%s\n", strings.Join(m.Tuning, " "))
	fmt.Fprintf(w, "File:\t%s\n", sh.sess.Filename())
	fmt.Fprintf(w, "Counts:\t%d (cursor at %d)\n", g.Len(), g.Cursor())
	return w.Flush()
}

func (sh *Shell) runSave(cmd *cobra.Command, args []string, quit bool) error {
	name := strings.Join(args, " ")
	if name == "" {
		name = sh.sess.Filename()
	}
	written, err := sh.sess.Save(cmd.Context(), name)
	if err != nil {
		return sh.fail(err, name)
	}
	sh.notify(i18n.T("file.saved", map[string]any{"Path": written}))
	if quit {
		sh.done = true
	}
	return nil
}

func (sh *Shell) runLoad(cmd *cobra.Command, args []string, all bool) error {
	path := strings.Join(args, " ")
	if err := sh.sess.Load(cmd.Context(), path, all); err != nil {
		return sh.fail(err, path)
	}
	sh.notify(i18n.T("file.loaded", map[string]any{"Path": path, "Columns": sh.sess.Grid().Len()}))
	return nil
}

func (sh *Shell) runCopy(cmd *cobra.Command, args []string) error {
	g := sh.sess.Grid()
	if err := sh.clipboard(tab.Render(g, false, false)); err != nil {
		fmt.Fprintln(sh.out, sh.errStyle.Render(i18n.T("clipboard.error", map[string]any{"Err": err})))
		return reported{err}
	}
	sh.notify(i18n.T("clipboard.copied", map[string]any{"Columns": g.Len()}))
	return nil
}

func (sh *Shell) runRecent(cmd *cobra.Command, args []string) error {
	if sh.recent == nil {
		fmt.Fprintln(sh.out, i18n.T("recent.disabled"))
		return nil
	}
	entries, err := sh.recent.List(cmd.Context(), sh.recentLimit)
	if err != nil {
		return sh.fail(err, "")
	}
	if len(entries) == 0 {
		fmt.Fprintln(sh.out, i18n.T("recent.empty"))
		return nil
	}
	w := tabwriter.NewWriter(sh.out, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.OpenedAt.Local().Format("2006-01-02 15:04"), e.Title, e.Columns, e.Path)
	}
	return w.Flush()
}
