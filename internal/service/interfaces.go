// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/passvault/models"
)

// VaultService owns the decrypted entries of one vault file and is the only
// component that writes the vault to disk.
//
// The service is either Locked (no key, no entries in memory) or Unlocked.
// Create and Open move it to Unlocked; Lock moves it back and wipes every
// secret it holds. Entry operations on a locked service return [ErrLocked].
//
// Mutations only change memory and mark the vault dirty. Save is the single
// persistence path: it encrypts the whole entry set with a fresh nonce and
// atomically replaces the vault file.
type VaultService interface {
	// Create initialises a new empty vault at path protected by password and
	// writes it immediately with owner-only permissions. A fresh salt is
	// generated; it stays the same for the lifetime of the vault.
	// Returns [ErrAlreadyExists] if a file is already present at path.
	Create(ctx context.Context, path string, password []byte) error

	// Open reads and decrypts the vault at path.
	// Returns [ErrMissingFile] if the file does not exist, [ErrCorruptFile]
	// if it cannot be read or parsed and [ErrWrongPassword] if the password
	// does not authenticate the ciphertext.
	Open(ctx context.Context, path string, password []byte) error

	// Unlock reopens the vault that was last locked with [VaultService.Lock].
	Unlock(ctx context.Context, password []byte) error

	// Lock destroys the session key and wipes all decrypted entries. Unsaved
	// changes are discarded.
	Lock()

	// IsUnlocked reports whether a vault is open.
	IsUnlocked() bool

	// Dirty reports whether there are mutations not yet saved.
	Dirty() bool

	// Path returns the path of the open (or last locked) vault.
	Path() string

	// Len returns the number of entries in the open vault.
	Len() int

	// List returns copies of the entries matching query (see
	// [models.Entry.Matches]) in store order. It is recomputed on every call.
	List(query string) []models.Entry

	// Get returns a copy of the entry with the given ID.
	// Returns [ErrNotFound] if no such entry exists.
	Get(id string) (models.Entry, error)

	// Add validates draft, stores it as a new entry with a fresh ID and
	// returns the ID. Returns [ErrInvalidDraft] when validation fails.
	Add(ctx context.Context, draft models.EntryDraft) (string, error)

	// Restore is Add with explicit timestamps, used by import to keep the
	// original creation and modification times.
	Restore(ctx context.Context, draft models.EntryDraft, createdAt, modifiedAt time.Time) (string, error)

	// Update replaces every editable field of the entry with id by draft and
	// refreshes its modification time. The ID and creation time never change.
	Update(ctx context.Context, id string, draft models.EntryDraft) error

	// Remove deletes the entry immediately. There is no undo.
	Remove(ctx context.Context, id string) error

	// Save persists the vault atomically. On failure the previous file is
	// left intact and the vault stays dirty.
	// Returns [ErrIO] or [ErrCrypto].
	Save(ctx context.Context) error
}

// TransferService moves entries between the open vault and plaintext
// foreign files.
type TransferService interface {
	// Export writes entries to path in format with owner-only permissions.
	// The file holds secrets in clear; warning the user is up to the caller.
	// Returns [ErrIO] on filesystem failures.
	Export(ctx context.Context, entries []models.Entry, format models.ExportFormat, path string) error

	// Preview reads the file at path, detects its format, parses it and
	// classifies every candidate as fresh or duplicate against the open
	// vault. Nothing is changed.
	// Returns [ErrIO] when the file cannot be read and
	// [ErrUnrecognizedFormat] when no format matches.
	Preview(ctx context.Context, path string) (models.ImportPreview, error)

	// Apply adds the candidates of preview to the vault. Duplicates are
	// added as new entries unless skipDuplicates is set, in which case they
	// are counted as skipped. Existing entries are never modified.
	Apply(ctx context.Context, preview models.ImportPreview, skipDuplicates bool) (models.ImportResult, error)
}

// IDGenerator produces unique entry identifiers.
type IDGenerator interface {
	Generate() string
}
