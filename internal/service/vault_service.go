// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/passvault/internal/crypto"
	"github.com/MKhiriev/passvault/internal/logger"
	"github.com/MKhiriev/passvault/internal/store"
	"github.com/MKhiriev/passvault/internal/validators"
	"github.com/MKhiriev/passvault/models"
)

// KDFSettings are the Argon2id costs used for newly created vaults. Zero
// values fall back to the crypto defaults. Existing vaults keep the
// parameters stored in their container.
type KDFSettings struct {
	Iterations  uint32
	MemoryKiB   uint32
	Parallelism uint8
}

type vaultService struct {
	validator validators.Validator
	journal   store.Journal
	ids       IDGenerator
	kdf       KDFSettings
	logger    *logger.Logger
	now       func() time.Time

	file    *store.VaultFile
	session *crypto.Session
	entries []models.Entry
	dirty   bool
}

// NewVaultService returns a locked [VaultService].
func NewVaultService(validator validators.Validator, journal store.Journal, ids IDGenerator, kdf KDFSettings, log *logger.Logger) VaultService {
	return &vaultService{
		validator: validator,
		journal:   journal,
		ids:       ids,
		kdf:       kdf,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *vaultService) Create(ctx context.Context, path string, password []byte) error {
	if s.IsUnlocked() {
		return ErrAlreadyOpen
	}

	file := store.NewVaultFile(path)
	exists, err := file.Exists()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, path)
	}

	params, err := crypto.NewKDFParams(s.kdf.Iterations, s.kdf.MemoryKiB, s.kdf.Parallelism)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	session, err := crypto.NewSession(password, params)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	s.file = file
	s.session = session
	s.entries = []models.Entry{}

	if err = s.persist(); err != nil {
		s.Lock()
		return err
	}

	s.logger.Info().Str("func", "vaultService.Create").Str("path", path).Msg("vault created")
	s.record(ctx, models.JournalRecord{Kind: models.JournalCreate, Path: path})

	return nil
}

func (s *vaultService) Open(ctx context.Context, path string, password []byte) error {
	if s.IsUnlocked() {
		return ErrAlreadyOpen
	}

	file := store.NewVaultFile(path)
	exists, err := file.Exists()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptFile, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	s.file = file

	data, err := file.Read()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptFile, err)
	}

	container, err := store.DecodeContainer(data)
	if err != nil {
		s.logger.Err(err).Str("func", "vaultService.Open").Str("path", path).Msg("invalid vault container")
		return fmt.Errorf("%w: %w", ErrCorruptFile, err)
	}

	session, err := crypto.NewSession(password, container.KDF)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	plaintext, err := session.Open(container.Cipher.Nonce, container.Ciphertext)
	defer crypto.Zero(plaintext)
	if err != nil {
		session.Destroy()
		if errors.Is(err, crypto.ErrAuthentication) {
			s.logger.Warn().Str("func", "vaultService.Open").Str("path", path).Msg("vault authentication failed")
			return ErrWrongPassword
		}
		return fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	entries, err := store.DeserializePayload(plaintext)
	if err != nil {
		session.Destroy()
		return fmt.Errorf("%w: %w", ErrCorruptFile, err)
	}

	s.session = session
	s.entries = entries
	s.dirty = false

	s.logger.Info().Str("func", "vaultService.Open").Str("path", path).Int("entries", len(entries)).Msg("vault opened")
	s.record(ctx, models.JournalRecord{Kind: models.JournalOpen, Path: path, Entries: len(entries)})

	return nil
}

func (s *vaultService) Unlock(ctx context.Context, password []byte) error {
	if s.file == nil {
		return ErrMissingFile
	}
	return s.Open(ctx, s.file.Path(), password)
}

func (s *vaultService) Lock() {
	if s.session != nil {
		s.session.Destroy()
		s.session = nil
	}

	wipeEntries(s.entries)
	s.entries = nil
	s.dirty = false
}

func (s *vaultService) IsUnlocked() bool {
	return s.session != nil
}

func (s *vaultService) Dirty() bool {
	return s.dirty
}

func (s *vaultService) Path() string {
	if s.file == nil {
		return ""
	}
	return s.file.Path()
}

func (s *vaultService) Len() int {
	return len(s.entries)
}

func (s *vaultService) List(query string) []models.Entry {
	result := make([]models.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Matches(query) {
			result = append(result, e.Clone())
		}
	}
	return result
}

func (s *vaultService) Get(id string) (models.Entry, error) {
	if !s.IsUnlocked() {
		return models.Entry{}, ErrLocked
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return s.entries[idx].Clone(), nil
}

func (s *vaultService) Add(ctx context.Context, draft models.EntryDraft) (string, error) {
	now := s.now()
	return s.Restore(ctx, draft, now, now)
}

func (s *vaultService) Restore(ctx context.Context, draft models.EntryDraft, createdAt, modifiedAt time.Time) (string, error) {
	if !s.IsUnlocked() {
		return "", ErrLocked
	}
	if err := s.validator.Validate(ctx, draft); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	entry := models.Entry{
		ID:         s.ids.Generate(),
		CreatedAt:  createdAt.UTC(),
		ModifiedAt: modifiedAt.UTC(),
	}
	applyDraft(&entry, draft)

	s.entries = append(s.entries, entry)
	s.dirty = true

	return entry.ID, nil
}

func (s *vaultService) Update(ctx context.Context, id string, draft models.EntryDraft) error {
	if !s.IsUnlocked() {
		return ErrLocked
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := s.validator.Validate(ctx, draft); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	entry := &s.entries[idx]
	entry.Password.Wipe()
	applyDraft(entry, draft)
	entry.ModifiedAt = s.now()
	s.dirty = true

	return nil
}

func (s *vaultService) Remove(ctx context.Context, id string) error {
	if !s.IsUnlocked() {
		return ErrLocked
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.entries[idx].Password.Wipe()
	s.entries = slices.Delete(s.entries, idx, idx+1)
	s.dirty = true

	return nil
}

func (s *vaultService) Save(ctx context.Context) error {
	if !s.IsUnlocked() {
		return ErrLocked
	}

	if err := s.persist(); err != nil {
		s.logger.Err(err).Str("func", "vaultService.Save").Str("path", s.file.Path()).Msg("vault save failed")
		return err
	}
	s.dirty = false

	s.logger.Info().Str("func", "vaultService.Save").Str("path", s.file.Path()).Int("entries", len(s.entries)).Msg("vault saved")
	s.record(ctx, models.JournalRecord{Kind: models.JournalSave, Path: s.file.Path(), Entries: len(s.entries)})

	return nil
}

// persist encrypts the current entries and atomically replaces the vault
// file. The plaintext payload is wiped on every path.
func (s *vaultService) persist() error {
	plaintext, err := store.SerializePayload(s.entries)
	defer crypto.Zero(plaintext)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	nonce, ciphertext, err := s.session.Seal(plaintext)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	data, err := store.EncodeContainer(store.NewContainer(s.session.Params(), nonce, ciphertext))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	if err = s.file.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return nil
}

func (s *vaultService) indexOf(id string) int {
	return slices.IndexFunc(s.entries, func(e models.Entry) bool { return e.ID == id })
}

func (s *vaultService) record(ctx context.Context, rec models.JournalRecord) {
	rec.At = s.now()
	if err := s.journal.Record(ctx, rec); err != nil {
		s.logger.Warn().Err(err).Str("kind", string(rec.Kind)).Msg("failed to write journal record")
	}
}

// applyDraft copies the editable fields of draft into e. The password is
// copied so the caller may wipe its draft afterwards.
func applyDraft(e *models.Entry, draft models.EntryDraft) {
	e.Title = strings.TrimSpace(draft.Title)
	e.URL = strings.TrimSpace(draft.URL)
	e.Username = strings.TrimSpace(draft.Username)
	e.Password = draft.Password.Clone()
	e.Notes = draft.Notes
	e.Tags = cleanTags(draft.Tags)
}

func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func wipeEntries(entries []models.Entry) {
	for i := range entries {
		entries[i].Password.Wipe()
	}
}
