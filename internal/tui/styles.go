// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle       = lipgloss.NewStyle().Padding(1, 2)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	modeStyle      = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	dirtyStyle     = lipgloss.NewStyle().Bold(true)
	selectedStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle     = lipgloss.NewStyle().Faint(true).Width(10)
	helpStyle      = lipgloss.NewStyle().Faint(true)
	statusStyle    = lipgloss.NewStyle().Italic(true)
	lockedBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)
