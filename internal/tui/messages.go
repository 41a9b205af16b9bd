// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

// saveRequestMsg runs a save after the "Saving..." status was rendered.
type saveRequestMsg struct {
	quit bool
}

type clearStatusMsg struct {
	seq int
}

type clearClipboardMsg struct {
	seq int
}

type autoLockMsg struct{}
