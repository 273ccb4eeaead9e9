// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for guitab using Cobra. It
// defines the root command, which starts the interactive tab shell, the
// one-shot subcommands and the shared startup sequence.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toeirei/guitab/buildvars"
	"github.com/toeirei/guitab/internal/config"
	"github.com/toeirei/guitab/internal/i18n"
	"github.com/toeirei/guitab/internal/logging"
	"github.com/toeirei/guitab/internal/recent"
	"github.com/toeirei/guitab/internal/session"
	"github.com/toeirei/guitab/internal/shell"
)

var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)
var cfgFile string
var verbose bool

var appConfig config.Config

// recentStore is nil when the index is disabled or could not be opened.
var recentStore *recent.Store

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	explicit, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, config.Defaults(), explicit)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if err := logging.SetLevel(appConfig.LogLevel); err != nil {
		logging.Warnf("invalid log level %q, keeping the default", appConfig.LogLevel)
	}
	if verbose {
		logging.SetDebug(true)
	}

	// Persist a default config on first run so users have a file to edit.
	if explicit == nil && !userConfigExists() {
		defaults, err := config.LoadConfig[config.Config](nil, config.Defaults(), nil)
		if err == nil {
			var path string
			path, err = config.WriteConfigFile(&defaults, false)
			if err == nil {
				logging.Debugf("wrote default config to %s", path)
			}
		}
		if err != nil {
			logging.Warnf("could not write default config file: %v", err)
		}
	}

	i18n.Init(appConfig.Language)
	if _, ok := i18n.GetAvailableLocales()[appConfig.Language]; !ok {
		logging.Warnf("no %q messages, using %q (available: %s)",
			appConfig.Language, i18n.GetLang(), strings.Join(i18n.Locales(), ", "))
	}

	if appConfig.Recent.Enabled && recentStore == nil {
		store, err := recent.Open(cmd.Context(), appConfig.Recent.Type, appConfig.Recent.Dsn)
		if err != nil {
			logging.Warnf("recent tabs index unavailable: %v", err)
		} else {
			recentStore = store
		}
	}
	return nil
}

func userConfigExists() bool {
	path, err := config.GetConfigPath(false)
	if err != nil {
		return false
	}
	for _, p := range []string{path, filepath.Base(path)} {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}

func closeServices() {
	if recentStore == nil {
		return
	}
	if err := recentStore.Close(); err != nil {
		logging.Errorf("closing recent tabs index: %v", err)
	}
	recentStore = nil
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	defer closeServices()
	return NewRootCmd().ExecuteContext(context.Background())
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// newSession starts an editing session from the loaded configuration.
func newSession() (*session.Session, error) {
	opts := session.Options{
		Tuning:    appConfig.Tab.Tuning,
		LineWidth: appConfig.Tab.LineWidth,
		Filename:  appConfig.Tab.Filename,
		Title:     appConfig.Metadata.Title,
		Author:    appConfig.Metadata.Author,
	}
	if recentStore != nil {
		opts.Recorder = recentStore
	}
	return session.New(opts)
}

// runShell starts the interactive prompt, loading file first when given. A
// file that does not exist yet becomes the save target of a new tab.
func runShell(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := []shell.Option{shell.WithPager(pagerFor(out))}
	if recentStore != nil {
		opts = append(opts, shell.WithRecent(recentStore, appConfig.Recent.Limit))
	}
	sh := shell.New(sess, cmd.InOrStdin(), out, opts...)

	if len(args) == 1 {
		err := sess.Load(cmd.Context(), args[0], true)
		switch {
		case errors.Is(err, os.ErrNotExist):
			sess.SetFilename(args[0])
		case err != nil:
			return describe(err, args[0])
		}
	}
	return sh.Run(cmd.Context())
}

func pagerFor(out io.Writer) shell.Pager {
	if f, ok := out.(*os.File); ok {
		return shell.CommandPager(appConfig.Pager, f)
	}
	return shell.WriterPager(out)
}

// NewRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guitab [FILE]",
		Short: "guitab is an interactive guitar tablature editor.",
		Long: `guitab writes guitar tabs one chord at a time from the command line.
Tabs are saved as plain text that can be read in any editor.

Running without a subcommand starts the interactive prompt, loading FILE
if it exists.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: setupDefaultServices,
		RunE:              runShell,
	}

	v, c, d := resolveBuildVersion(nil)
	compositeVersion := v
	if c != "" && c != "dev" {
		compositeVersion = compositeVersion + " (" + c + ")"
	}
	if d != "" {
		compositeVersion = compositeVersion + " built: " + d
	}
	cmd.Version = compositeVersion
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("version", "V", false, "Print version and exit")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("lang", "en", fmt.Sprintf("Message language (%s)", strings.Join(i18n.Locales(), ", ")))
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().Int("line-width", 78, "Counts per tab line")
	cmd.PersistentFlags().StringSlice("tuning", []string{"e", "B", "G", "D", "A", "E"}, "String labels, highest-pitched first")
	cmd.PersistentFlags().String("pager", "less", "Command used by print to page long tabs")
	cmd.PersistentFlags().Bool("no-recent", false, "Do not record or list recently used tabs")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
			return nil
		},
	}

	cmd.AddCommand(
		newRenderCmd(),
		newNewCmd(),
		newWriteCmd(),
		newViewCmd(),
		newRecentCmd(),
		versionCmd,
	)
	return cmd
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault("dev")
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if resolvedVersion == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Some build paths only record our version as a dependency.
		if resolvedVersion == "dev" {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}

		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// As a last resort show the commit given via ldflags.
	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}

const modulePath = "github.com/toeirei/guitab"
