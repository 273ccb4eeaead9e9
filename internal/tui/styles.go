// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import "github.com/charmbracelet/lipgloss"

// colorPalette defines the core colors used in the viewer.
const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // Teal
	colorSpecial   = lipgloss.Color("208") // Orange
	colorWhite     = lipgloss.Color("231")
)

var (
	// Title bar
	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(0, 1)

	// Author and date next to the title
	subtitleStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	// The tab itself
	bodyStyle = lipgloss.NewStyle().Padding(0, 1)

	// Cursor position in the status line
	statusStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorWhite).
			Background(colorHighlight)

	// Key help
	footerStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	// Column contents under the cursor
	chordStyle = lipgloss.NewStyle().Foreground(colorSpecial)
)
