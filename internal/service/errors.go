// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Errors surfaced by the vault and transfer services. Every error returned by
// a service matches exactly one of these with [errors.Is].
var (
	// ErrWrongPassword is returned when the vault cannot be authenticated
	// with the supplied password. A tampered ciphertext looks the same.
	ErrWrongPassword = errors.New("wrong password")

	// ErrCorruptFile is returned when the vault file is unreadable or its
	// container or payload structure is invalid.
	ErrCorruptFile = errors.New("vault file is corrupt")

	// ErrMissingFile is returned when opening a vault that does not exist.
	ErrMissingFile = errors.New("vault file does not exist")

	// ErrAlreadyExists is returned when creating a vault over an existing
	// file.
	ErrAlreadyExists = errors.New("vault file already exists")

	// ErrNotFound is returned when an entry ID does not exist in the vault.
	ErrNotFound = errors.New("entry not found")

	// ErrLocked is returned by entry operations while the vault is locked.
	ErrLocked = errors.New("vault is locked")

	// ErrAlreadyOpen is returned when creating or opening while another
	// vault session is unlocked.
	ErrAlreadyOpen = errors.New("vault is already open")

	// ErrIO is returned when a filesystem operation fails. The on-disk vault
	// is left as it was.
	ErrIO = errors.New("i/o error")

	// ErrCrypto is returned when key derivation or encryption fails.
	ErrCrypto = errors.New("crypto error")

	// ErrInvalidDraft is returned when an entry draft fails validation.
	ErrInvalidDraft = errors.New("invalid entry")

	// ErrUnrecognizedFormat is returned when an import file matches none of
	// the known formats.
	ErrUnrecognizedFormat = errors.New("unrecognized import format")

	// ErrUnknownExportFormat is returned for an export format name that is
	// not supported.
	ErrUnknownExportFormat = errors.New("unknown export format")
)
