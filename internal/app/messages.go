// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// passvault TUI and command-line interface.
//
// All Msg* constants are human-readable message strings shown in the TUI
// status line or printed by CLI commands. Keeping them in one place ensures
// consistent wording between both front ends.
package app

const (
	// MsgWrongPassword is shown when the master password does not unlock
	// the vault.
	MsgWrongPassword = "wrong password"

	// MsgCorruptFile is shown when the vault file cannot be parsed.
	MsgCorruptFile = "vault file is corrupt or unsupported"

	// MsgMissingFile is shown when the vault file does not exist.
	MsgMissingFile = "vault file does not exist"

	// MsgAlreadyExists is shown when creating a vault over an existing file.
	MsgAlreadyExists = "vault file already exists"

	// MsgLocked is shown when an operation needs an unlocked vault.
	MsgLocked = "vault is locked"

	// MsgIOError is shown when reading or writing a file fails.
	MsgIOError = "file could not be read or written"

	// MsgCryptoError is shown when key derivation or encryption fails.
	MsgCryptoError = "encryption failed"

	// MsgNotFound is shown when the selected entry no longer exists.
	MsgNotFound = "entry not found"

	// MsgInvalidEntry is shown when an entry draft fails validation, for
	// example an empty title.
	MsgInvalidEntry = "invalid entry: title is required"

	// MsgUnrecognizedFormat is shown when an import file matches no known
	// format.
	MsgUnrecognizedFormat = "unrecognized import format"

	// MsgUnknownExportFormat is shown for an export format other than
	// firefox, json or csv.
	MsgUnknownExportFormat = "unknown export format (use firefox, json or csv)"

	// MsgUnsavedChanges is shown when quitting with a dirty vault.
	MsgUnsavedChanges = "unsaved changes: use :w to save, :wq to save and quit or :q! to discard"

	// MsgPlaintextWarning accompanies every export.
	MsgPlaintextWarning = "WARNING: the export contains unencrypted passwords, delete it when done"

	// MsgSaving is rendered while a save is pending.
	MsgSaving = "Saving..."

	// MsgSaved is shown after a successful save.
	MsgSaved = "Saved"

	// MsgNothingSelected is shown for entry actions on an empty list.
	MsgNothingSelected = "no entry selected"

	// MsgUnknownCommand prefixes an unrecognized ':' command.
	MsgUnknownCommand = "unknown command"

	// MsgExportUsage and MsgImportUsage describe the command arguments.
	MsgExportUsage = "usage: export <firefox|json|csv> <path>"
	MsgImportUsage = "usage: import <path> [--skip-duplicates]"

	// MsgPasswordCopied and MsgUsernameCopied confirm clipboard copies.
	MsgPasswordCopied = "password copied"
	MsgUsernameCopied = "username copied"

	// MsgClipboardUnavailable is shown when the system clipboard cannot be
	// used.
	MsgClipboardUnavailable = "clipboard is not available"

	// MsgVaultLocked is shown after a manual or automatic lock.
	MsgVaultLocked = "vault locked"

	// MsgLockFailed is shown when the vault stays unlocked because saving
	// before the lock failed.
	MsgLockFailed = "vault not locked: save failed"

	// MsgPasswordMismatch is printed when the confirmation of a new master
	// password differs.
	MsgPasswordMismatch = "passwords do not match"

	// MsgPasswordTooShort is printed when a new master password is shorter
	// than the minimum length.
	MsgPasswordTooShort = "master password must be at least 8 characters"
)
