// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the full screen interface for ctrl and blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, ctrl *Controller) error {
	finalModel, err := tea.NewProgram(NewModel(ctrl), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	if _, ok := finalModel.(Model); !ok {
		return tea.ErrProgramKilled
	}

	return nil
}
