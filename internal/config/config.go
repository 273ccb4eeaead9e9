// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads guitab settings from defaults, config files, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the full set of guitab settings.
type Config struct {
	Tab struct {
		LineWidth int      `mapstructure:"line_width" yaml:"line_width"`
		Tuning    []string `mapstructure:"tuning" yaml:"tuning"`
		Filename  string   `mapstructure:"filename" yaml:"filename"`
	} `mapstructure:"tab" yaml:"tab"`
	Metadata struct {
		Author string `mapstructure:"author" yaml:"author"`
		Title  string `mapstructure:"title" yaml:"title"`
	} `mapstructure:"metadata" yaml:"metadata"`
	Language string `mapstructure:"language" yaml:"language"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	Pager    string `mapstructure:"pager" yaml:"pager"`
	Recent   struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Type    string `mapstructure:"type" yaml:"type"`
		Dsn     string `mapstructure:"dsn" yaml:"dsn"`
		Limit   int    `mapstructure:"limit" yaml:"limit"`
	} `mapstructure:"recent" yaml:"recent"`
}

// FlagBindings maps command-line flag names to config keys.
var FlagBindings = map[string]string{
	"line-width": "tab.line_width",
	"tuning":     "tab.tuning",
	"lang":       "language",
	"log-level":  "log_level",
	"pager":      "pager",
	"no-recent":  "recent.disabled",
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	dsn := "guitab-recent.db"
	if dir, err := os.UserCacheDir(); err == nil {
		dsn = filepath.Join(dir, "guitab", "recent.db")
	}
	return map[string]any{
		"tab.line_width":  78,
		"tab.tuning":      []string{"e", "B", "G", "D", "A", "E"},
		"tab.filename":    "myTab.txt",
		"metadata.author": "Me",
		"metadata.title":  "My Tab",
		"language":        "en",
		"log_level":       "info",
		"pager":           "less",
		"recent.enabled":  true,
		"recent.type":     "sqlite",
		"recent.dsn":      dsn,
		"recent.limit":    10,
	}
}

// GetConfigPath returns the full path for the user or system configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "guitab")
		default: // Linux, macOS, etc.
			configDir = "/etc/guitab"
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(dir, "guitab")
	}
	return filepath.Join(configDir, "guitab.yaml"), nil
}

// LoadConfig resolves T from defaults, guitab.yaml in the user config dir,
// the system config dir or the working directory, an explicit file, GUITAB_*
// environment variables and the flags of cmd named in FlagBindings.
//
// A missing config file is not an error unless explicitFile names it.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("guitab")
	v.SetConfigType("yaml")
	if explicitFile != nil {
		v.SetConfigFile(*explicitFile)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	v.SetEnvPrefix("guitab")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		var bindErr error
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key, ok := FlagBindings[f.Name]
			if !ok || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(key, f)
		})
		if bindErr != nil {
			return c, bindErr
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if v.GetBool("recent.disabled") {
		disableRecent(&c)
	}
	return c, nil
}

// disableRecent switches off the recent index on a *Config; other T are left alone.
func disableRecent(c any) {
	if cfg, ok := c.(*Config); ok {
		cfg.Recent.Enabled = false
	}
}

// WriteConfigFile writes c as YAML to the user or system config path,
// creating the directory if needed.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
