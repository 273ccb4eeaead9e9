// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

// Package i18n provides translated user-facing messages. It uses the go-i18n
// library to load the embedded YAML locale files.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	lang      string
)

// Init loads every embedded locale and selects the bundled locale closest
// to l. Unknown languages fall back to English.
func Init(l string) {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, _ := localeFS.ReadFile("locales/" + f.Name())
		bundle.MustParseMessageFileBytes(data, f.Name())
	}

	tags := bundle.LanguageTags()
	lang = language.English.String()
	if tag, err := language.Parse(l); err == nil {
		if _, idx, conf := language.NewMatcher(tags).Match(tag); conf != language.No {
			lang = tags[idx].String()
		}
	}
	localizer = i18n.NewLocalizer(bundle, lang)
}

// GetLang returns the active locale code.
func GetLang() string {
	if localizer == nil {
		Init("en")
	}
	return lang
}

// GetAvailableLocales maps each embedded locale code to its display name.
func GetAvailableLocales() map[string]string {
	out := make(map[string]string)
	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		code := strings.TrimSuffix(f.Name(), ".yaml")
		tag, err := language.Parse(code)
		if err != nil {
			out[code] = code
			continue
		}
		out[code] = display.Self.Name(tag)
	}
	return out
}

// Locales returns the embedded locale codes in sorted order.
func Locales() []string {
	var codes []string
	for code := range GetAvailableLocales() {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// T translates messageID. A single map argument is used as template data;
// any other arguments are applied fmt-style to the translated text. Unknown
// IDs are returned unchanged.
func T(messageID string, args ...any) string {
	if localizer == nil {
		Init("en")
	}
	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(args) == 1 {
		if data, ok := args[0].(map[string]any); ok {
			cfg.TemplateData = data
			args = nil
		}
	}
	msg, err := localizer.Localize(cfg)
	if err != nil {
		return messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
