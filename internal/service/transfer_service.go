// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/passvault/internal/crypto"
	"github.com/MKhiriev/passvault/internal/logger"
	"github.com/MKhiriev/passvault/internal/store"
	"github.com/MKhiriev/passvault/internal/validators"
	"github.com/MKhiriev/passvault/models"
)

type transferService struct {
	vault     VaultService
	validator validators.Validator
	journal   store.Journal
	now       func() time.Time
}

// NewTransferService returns a [TransferService] importing into and
// exporting from vault.
func NewTransferService(vault VaultService, validator validators.Validator, journal store.Journal) TransferService {
	return &transferService{
		vault:     vault,
		validator: validator,
		journal:   journal,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (t *transferService) Export(ctx context.Context, entries []models.Entry, format models.ExportFormat, path string) error {
	log := logger.FromContext(ctx)

	data, err := encodeExport(entries, format, t.now())
	defer crypto.Zero(data)
	if err != nil {
		if errors.Is(err, ErrUnknownExportFormat) {
			return err
		}
		return fmt.Errorf("%w: encode %s export: %w", ErrIO, format, err)
	}

	if err = store.WriteFileAtomic(path, data, store.FileMode); err != nil {
		log.Err(err).Str("func", "transferService.Export").Str("path", path).Msg("failed to write export")
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	log.Info().Str("func", "transferService.Export").
		Str("format", string(format)).
		Str("path", path).
		Int("entries", len(entries)).
		Msg("entries exported")
	t.record(ctx, models.JournalRecord{
		Kind:    models.JournalExport,
		Format:  string(format),
		Path:    path,
		Entries: len(entries),
	})

	return nil
}

func (t *transferService) Preview(ctx context.Context, path string) (models.ImportPreview, error) {
	if !t.vault.IsUnlocked() {
		return models.ImportPreview{}, ErrLocked
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return models.ImportPreview{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer crypto.Zero(contents)

	guess, err := DetectFormat(contents)
	if err != nil {
		return models.ImportPreview{}, err
	}

	parsed, err := Parse(ctx, contents, guess, t.validator)
	if err != nil {
		return models.ImportPreview{}, err
	}

	existing := t.vault.List("")
	defer wipeEntries(existing)

	fresh, dups := FindDuplicates(parsed.Candidates, existing)

	logger.FromContext(ctx).Info().Str("func", "transferService.Preview").
		Str("format", string(guess.Format)).
		Int("fresh", len(fresh)).
		Int("duplicates", len(dups)).
		Int("skipped", parsed.Skipped).
		Msg("import previewed")

	return models.ImportPreview{
		Path:       path,
		Format:     guess.Format,
		Fresh:      fresh,
		Duplicates: dups,
		Skipped:    parsed.Skipped,
	}, nil
}

func (t *transferService) Apply(ctx context.Context, preview models.ImportPreview, skipDuplicates bool) (models.ImportResult, error) {
	result := models.ImportResult{Skipped: preview.Skipped}

	add := func(c models.ImportCandidate) error {
		if err := t.add(ctx, c); err != nil {
			if errors.Is(err, ErrInvalidDraft) {
				result.Skipped++
				return nil
			}
			return err
		}
		result.Added++
		return nil
	}

	// Fresh records and duplicates are applied in file order.
	type pending struct {
		candidate models.ImportCandidate
		duplicate bool
	}
	queue := make([]pending, 0, preview.Total())
	for _, c := range preview.Fresh {
		queue = append(queue, pending{candidate: c})
	}
	for _, c := range preview.Duplicates {
		queue = append(queue, pending{candidate: c, duplicate: true})
	}
	slices.SortStableFunc(queue, func(a, b pending) int {
		return cmp.Compare(a.candidate.Position, b.candidate.Position)
	})

	for _, p := range queue {
		if p.duplicate && skipDuplicates {
			result.Skipped++
			continue
		}
		if err := add(p.candidate); err != nil {
			return result, err
		}
	}

	t.record(ctx, models.JournalRecord{
		Kind:    models.JournalImport,
		Format:  string(preview.Format),
		Path:    preview.Path,
		Added:   result.Added,
		Skipped: result.Skipped,
	})

	return result, nil
}

func (t *transferService) add(ctx context.Context, c models.ImportCandidate) error {
	draft := c.Draft()
	defer draft.Password.Wipe()

	if c.CreatedAt == nil && c.ModifiedAt == nil {
		_, err := t.vault.Add(ctx, draft)
		return err
	}

	now := t.now()
	created, modified := now, now
	if c.CreatedAt != nil {
		created = *c.CreatedAt
		modified = created
	}
	if c.ModifiedAt != nil {
		modified = *c.ModifiedAt
	}

	_, err := t.vault.Restore(ctx, draft, created, modified)
	return err
}

func (t *transferService) record(ctx context.Context, rec models.JournalRecord) {
	rec.At = t.now()
	if err := t.journal.Record(ctx, rec); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("kind", string(rec.Kind)).Msg("failed to write journal record")
	}
}

// FindDuplicates partitions candidates into fresh ones and duplicates of
// existing entries. Two records are duplicates when both their usernames
// (case-insensitive) and URLs (case- and trailing-slash-insensitive) match.
// Duplicates carry the ID and title of the entry they match.
func FindDuplicates(candidates []models.ImportCandidate, existing []models.Entry) (fresh, duplicates []models.ImportCandidate) {
	index := make(map[duplicateKey]models.Entry, len(existing))
	for _, e := range existing {
		key := newDuplicateKey(e.Username, e.URL)
		if _, ok := index[key]; !ok {
			index[key] = e
		}
	}

	for _, c := range candidates {
		if e, ok := index[newDuplicateKey(c.Username, c.URL)]; ok {
			c.Duplicate = true
			c.ExistingID = e.ID
			c.ExistingTitle = e.Title
			duplicates = append(duplicates, c)
			continue
		}
		fresh = append(fresh, c)
	}

	return fresh, duplicates
}

type duplicateKey struct {
	username string
	url      string
}

func newDuplicateKey(username, url string) duplicateKey {
	return duplicateKey{
		username: strings.ToLower(strings.TrimSpace(username)),
		url:      NormalizeURL(url),
	}
}

// NormalizeURL lowercases u and drops surrounding spaces and trailing
// slashes for duplicate comparison.
func NormalizeURL(u string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(u)), "/")
}
