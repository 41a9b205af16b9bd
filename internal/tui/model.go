// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/passvault/internal/app"
)

const defaultListWidth = 72

// Model renders a [Controller] as a bubbletea program. It keeps no state of
// its own apart from the terminal size and the saving spinner.
type Model struct {
	ctrl    *Controller
	spinner spinner.Model
	width   int
	height  int
}

func NewModel(ctrl *Controller) Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return Model{ctrl: ctrl, spinner: s}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.ctrl.Init(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.ctrl.Update(msg)
}

func (m Model) View() string {
	if m.ctrl.Quitting() {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	switch m.ctrl.Mode() {
	case ModeLocked:
		b.WriteString(m.lockedView())
	case ModeInsert:
		b.WriteString(m.formView())
	case ModeDetail:
		b.WriteString(m.detailView())
	default:
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if m.ctrl.Mode() == ModeCommand {
		b.WriteString(":" + m.ctrl.command + "\n")
		if c := m.ctrl.completions(); len(c) > 1 {
			b.WriteString(helpStyle.Render(strings.Join(c, "  ")) + "\n")
		}
	}

	if status := m.ctrl.Status(); status != "" {
		if status == app.MsgSaving {
			status = m.spinner.View() + " " + status
		}
		b.WriteString(statusStyle.Render(status) + "\n")
	}

	b.WriteString(helpStyle.Render(helpFor(m.ctrl.Mode())))

	return appStyle.Render(b.String())
}

func (m Model) headerView() string {
	c := m.ctrl
	header := titleStyle.Render("passvault") + " " + modeStyle.Render(c.Mode().String())
	if path := c.vault.Path(); path != "" {
		header += " " + helpStyle.Render(path)
	}
	if c.vault.IsUnlocked() {
		header += fmt.Sprintf("  %d entries", c.vault.Len())
	}
	if c.vault.Dirty() {
		header += " " + dirtyStyle.Render("[+]")
	}
	return header
}

func (m Model) listWidth() int {
	if m.width <= 8 {
		return defaultListWidth
	}
	return m.width - 6
}

func (m Model) listView() string {
	c := m.ctrl
	var b strings.Builder

	if c.Mode() == ModeSearch || c.query != "" {
		cursor := ""
		if c.Mode() == ModeSearch {
			cursor = "_"
		}
		b.WriteString("/" + c.query + cursor + "\n\n")
	}

	if len(c.entries) == 0 {
		if c.query != "" {
			b.WriteString("no matches\n")
		} else {
			b.WriteString("no entries, press n to add one\n")
		}
		return b.String()
	}

	width := m.listWidth()
	titleWidth := max(width/3, 8)
	userWidth := max(width/4, 8)
	urlWidth := max(width-titleWidth-userWidth-6, 8)

	for i, e := range c.entries {
		line := fmt.Sprintf("%-*s  %-*s  %s",
			titleWidth, fitText(e.Title, titleWidth),
			userWidth, fitText(e.Username, userWidth),
			fitText(e.URL, urlWidth))

		if i == c.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) detailView() string {
	e := m.ctrl.detail

	password := maskedPassword
	if m.ctrl.detailReveal {
		password = e.Password.String()
	}

	lines := []string{
		titleStyle.Render(e.Title),
		"",
		field("URL", valueOrDash(e.URL)),
		field("Username", valueOrDash(e.Username)),
		field("Password", valueOrDash(password)),
		field("Notes", valueOrDash(e.Notes)),
		field("Tags", valueOrDash(strings.Join(e.Tags, ", "))),
		field("Created", e.CreatedAt.Local().Format("2006-01-02 15:04")),
		field("Modified", e.ModifiedAt.Local().Format("2006-01-02 15:04")),
	}

	return strings.Join(lines, "\n") + "\n"
}

func (m Model) formView() string {
	f := m.ctrl.form
	var b strings.Builder

	if f.editingID == "" {
		b.WriteString(titleStyle.Render("New entry") + "\n\n")
	} else {
		b.WriteString(titleStyle.Render("Edit entry") + "\n\n")
	}

	for i := range fieldCount {
		marker := "  "
		if i == f.focus {
			marker = "> "
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, marker, field(fieldLabels[i], f.view(i))) + "\n")
	}

	return b.String()
}

func (m Model) lockedView() string {
	typed := strings.Repeat("•", utf8.RuneCount(m.ctrl.unlock))
	return lockedBoxStyle.Render(titleStyle.Render("Vault locked") + "\n\nMaster password: " + typed) + "\n"
}

func helpFor(mode Mode) string {
	switch mode {
	case ModeSearch:
		return "type to filter  enter keep  esc clear"
	case ModeInsert:
		return "tab/shift+tab field  ctrl+s save  ctrl+g generate  ctrl+r reveal  esc cancel"
	case ModeDetail:
		return "e edit  y copy password  Y copy username  ctrl+r reveal  q/esc back"
	case ModeCommand:
		return "tab complete  enter run  esc cancel"
	case ModeLocked:
		return "enter unlock  ctrl+c quit"
	default:
		return "j/k move  / search  n new  e edit  enter open  d delete  y/Y copy  : command  ctrl+l lock  q quit"
	}
}
