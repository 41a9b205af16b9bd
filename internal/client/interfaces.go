// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"io"
)

// Client defines the lifecycle contract of a runnable passvault application.
type Client interface {
	// Run unlocks the vault and blocks in the terminal UI until the user
	// quits.
	Run(ctx context.Context) error

	// Export writes every entry of the vault to path in format.
	Export(ctx context.Context, format, path string, out io.Writer) error

	// Import previews the file at path, adds its entries and saves the vault.
	Import(ctx context.Context, path string, skipDuplicates bool, out io.Writer) error

	// History prints the most recent journal records.
	History(ctx context.Context, limit int, out io.Writer) error

	// Close locks the vault and releases the journal and log file.
	Close() error
}

// Prompter asks the user for secrets outside the terminal UI.
type Prompter interface {
	// ReadPassword shows prompt and reads a line without echo. The caller
	// wipes the returned slice.
	ReadPassword(prompt string) ([]byte, error)

	// Notify shows a one-line message, for example after a failed attempt.
	Notify(msg string)
}
