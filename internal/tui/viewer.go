// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui is a read-only full screen viewer for a tab. The cursor can be
// moved around the existing columns but the tab is never modified.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/toeirei/guitab/internal/i18n"
	"github.com/toeirei/guitab/internal/logging"
	"github.com/toeirei/guitab/internal/tab"
)

// chromeHeight is the number of lines used by header, status and footer.
const chromeHeight = 3

// Model is the bubbletea model of the viewer.
type Model struct {
	grid   *tab.Grid
	meta   tab.Metadata
	vp     viewport.Model
	width  int
	height int
}

// New returns a viewer on a copy of g, starting at g's cursor.
func New(g *tab.Grid, meta tab.Metadata) (*Model, error) {
	c, err := tab.FromChords(g.Labels(), g.LineWidth(), g.Chords())
	if err != nil {
		return nil, err
	}
	if g.Cursor() > 0 {
		if err := c.Forward(g.Cursor()); err != nil {
			return nil, err
		}
	}
	m := &Model{
		grid:  c,
		meta:  meta,
		vp:    viewport.New(80, 20),
		width: 80,
	}
	m.refresh()
	return m, nil
}

// Cursor is the column currently marked.
func (m *Model) Cursor() int { return m.grid.Cursor() }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-chromeHeight, 1)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		hwm := m.grid.HighWaterMark()
		cur := m.grid.Cursor()
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.move(-min(1, cur))
		case "right", "l":
			m.move(min(1, hwm-cur))
		case "[":
			m.move(-min(m.grid.LineWidth(), cur))
		case "]":
			m.move(min(m.grid.LineWidth(), hwm-cur))
		case "home", "g":
			m.move(-cur)
		case "end", "G":
			m.move(hwm - cur)
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// move shifts the cursor by delta, which the caller keeps inside the
// existing columns so the copy never grows.
func (m *Model) move(delta int) {
	if delta == 0 {
		return
	}
	_ = m.grid.Move(delta)
	m.refresh()
}

// refresh redraws the tab and scrolls so the cursor segment, marker row
// included, is visible. Every segment but the last takes one row per string
// plus the marker row and a blank separator.
func (m *Model) refresh() {
	m.vp.SetContent(strings.TrimSuffix(tab.Render(m.grid, false, true), "\n"))

	n := m.grid.StringCount()
	top := m.grid.CursorSegment() * (n + 2)
	bottom := top + n
	switch {
	case top < m.vp.YOffset:
		m.vp.SetYOffset(top)
	case bottom >= m.vp.YOffset+m.vp.Height:
		m.vp.SetYOffset(bottom - m.vp.Height + 1)
	}
}

func (m *Model) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(m.meta.Title),
		subtitleStyle.Render(fmt.Sprintf("%s  %s", m.meta.Author, m.meta.Date)),
	)

	chord, _ := m.grid.Chord(m.grid.Cursor())
	status := statusStyle.Render(fmt.Sprintf("%d/%d", m.grid.Cursor()+1, m.grid.Len())) +
		" " + chordStyle.Render(chord.String())

	footer := footerStyle.Render(alignFooter(i18n.T("viewer.help"), strings.Join(m.grid.Labels(), " "), m.width))

	return lipgloss.JoinVertical(lipgloss.Left, header, bodyStyle.Render(m.vp.View()), status, footer)
}

// Run shows g full screen until the user quits.
func Run(g *tab.Grid, meta tab.Metadata) error {
	m, err := New(g, meta)
	if err != nil {
		return err
	}
	// Log lines on stderr would tear the alternate screen.
	logging.SetOutput(io.Discard)
	defer logging.SetOutput(os.Stderr)

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
