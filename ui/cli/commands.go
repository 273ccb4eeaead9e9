// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/toeirei/guitab/internal/i18n"
	"github.com/toeirei/guitab/internal/logging"
	"github.com/toeirei/guitab/internal/recent"
	"github.com/toeirei/guitab/internal/shell"
	"github.com/toeirei/guitab/internal/tab"
	"github.com/toeirei/guitab/internal/tabfile"
	"github.com/toeirei/guitab/internal/tui"
)

// userError carries a translated message for err.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func describe(err error, path string) error {
	return &userError{msg: shell.Describe(err, path), err: err}
}

// loadTab reads path with the configured tuning and line width.
func loadTab(path string) (*tab.Grid, tab.Metadata, error) {
	g, m, err := tabfile.LoadFromPath(path, appConfig.Tab.Tuning, appConfig.Tab.LineWidth)
	if err != nil {
		return nil, m, describe(err, path)
	}
	return g, m, nil
}

// touchRecent records path in the recent index when it is enabled.
func touchRecent(cmd *cobra.Command, path string, g *tab.Grid, m tab.Metadata) {
	if recentStore == nil {
		return
	}
	e := recent.Entry{Path: path, Title: m.Title, Author: m.Author, Columns: g.Len()}
	if err := recentStore.Touch(cmd.Context(), e); err != nil {
		logging.Warnf("could not record %s in recent tabs: %v", path, err)
	}
}

func newRenderCmd() *cobra.Command {
	var (
		window   bool
		cursor   int
		noMarker bool
	)
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Print a tab file",
		Long: `Loads FILE and prints its tab. With --window only the line holding the
cursor and its neighbours are printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := loadTab(args[0])
			if err != nil {
				return err
			}
			if cursor != 0 {
				if cursor < 0 || cursor > g.HighWaterMark() {
					return describe(&tab.OutOfRangeError{Cursor: cursor}, args[0])
				}
				if err := g.Move(cursor); err != nil {
					return describe(err, args[0])
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), tab.Render(g, window, !noMarker))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&window, "window", "w", false, "Print only the lines around the cursor")
	cmd.Flags().IntVarP(&cursor, "cursor", "c", 0, "Column to place the cursor on")
	cmd.Flags().BoolVar(&noMarker, "no-marker", false, "Do not mark the cursor")
	return cmd
}

func newNewCmd() *cobra.Command {
	var (
		title, author, date string
		columns             int
		force               bool
	)
	cmd := &cobra.Command{
		Use:   "new FILE",
		Short: "Create a blank tab file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if columns < 1 {
				return describe(&tab.InvalidMoveError{Input: strconv.Itoa(columns)}, "")
			}
			g, err := tab.New(appConfig.Tab.Tuning, appConfig.Tab.LineWidth)
			if err != nil {
				return describe(err, "")
			}
			if columns > 1 {
				if err := g.Forward(columns - 1); err != nil {
					return describe(err, "")
				}
			}

			m := tab.DefaultMetadata(time.Now())
			m.Title, m.Author = appConfig.Metadata.Title, appConfig.Metadata.Author
			if title != "" {
				m.Title = title
			}
			if author != "" {
				m.Author = author
			}
			if date != "" {
				m.Date = date
			}
			m.Tuning = g.Labels()
			m = m.Trimmed()

			var r tabfile.ConflictResolver = tabfile.FailOnConflict
			if force {
				r = tabfile.OverwriteOnConflict
			}
			path, err := tabfile.SaveToPath(args[0], g, m, r)
			if err != nil {
				return describe(err, args[0])
			}
			touchRecent(cmd, path, g, m)
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("file.saved", map[string]any{"Path": path}))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Tab title")
	cmd.Flags().StringVar(&author, "author", "", "Tab author")
	cmd.Flags().StringVar(&date, "date", "", "Tab date (defaults to today)")
	cmd.Flags().IntVar(&columns, "columns", 1, "Number of blank counts")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func newWriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write FILE INDEX TOKEN...",
		Short: "Write a chord into a tab file",
		Long: `Writes one chord at column INDEX of FILE, extending the tab if needed.
Give one token per string from the highest-pitched string down.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return describe(&tab.InvalidMoveError{Input: args[1]}, path)
			}
			g, m, err := loadTab(path)
			if err != nil {
				return err
			}
			if err := g.WriteChordAt(tab.ParseChord(strings.Join(args[2:], " ")), index); err != nil {
				return describe(err, path)
			}
			if _, err := tabfile.SaveToPath(path, g, m, tabfile.OverwriteOnConflict); err != nil {
				return describe(err, path)
			}
			touchRecent(cmd, path, g, m)
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("file.saved", map[string]any{"Path": path}))
			return nil
		},
	}
}

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view FILE",
		Short: "Browse a tab file full screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, m, err := loadTab(args[0])
			if err != nil {
				return err
			}
			touchRecent(cmd, args[0], g, m)
			return tui.Run(g, m)
		},
	}
}

func newRecentCmd() *cobra.Command {
	var (
		limit  int
		forget string
	)
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently used tab files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if recentStore == nil {
				fmt.Fprintln(out, i18n.T("recent.disabled"))
				return nil
			}
			if forget != "" {
				return recentStore.Forget(cmd.Context(), forget)
			}
			if !cmd.Flags().Changed("limit") {
				limit = appConfig.Recent.Limit
			}
			entries, err := recentStore.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, i18n.T("recent.empty"))
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", e.OpenedAt.Local().Format("2006-01-02 15:04"), e.Title, e.Author, e.Columns, e.Path)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of entries")
	cmd.Flags().StringVar(&forget, "forget", "", "Remove FILE from the list")
	return cmd
}
