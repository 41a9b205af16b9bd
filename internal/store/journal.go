// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/passvault/internal/logger"
	"github.com/MKhiriev/passvault/models"
)

type journalRepository struct {
	*DB
	logger *logger.Logger
}

// NewJournal returns a [Journal] backed by db.
func NewJournal(db *DB, logger *logger.Logger) Journal {
	return &journalRepository{
		DB:     db,
		logger: logger,
	}
}

// NewSQLiteJournal connects to the SQLite database at dsn, applies
// migrations and returns a ready [Journal].
func NewSQLiteJournal(ctx context.Context, dsn string, log *logger.Logger) (Journal, error) {
	db, err := NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return NewJournal(db, log), nil
}

func (j *journalRepository) Record(ctx context.Context, rec models.JournalRecord) error {
	query, args, err := buildInsertJournalQuery(rec)
	if err != nil {
		j.logger.Err(err).Str("func", "journalRepository.Record").Msg("failed to build insert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = j.DB.ExecContext(ctx, query, args...); err != nil {
		j.logger.Err(err).
			Str("func", "journalRepository.Record").
			Str("kind", string(rec.Kind)).
			Msg("failed to insert journal record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (j *journalRepository) List(ctx context.Context, limit int) ([]models.JournalRecord, error) {
	query, args, err := buildListJournalQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := j.DB.QueryContext(ctx, query, args...)
	if err != nil {
		j.logger.Err(err).Str("func", "journalRepository.List").Msg("failed to query journal")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.JournalRecord
	for rows.Next() {
		var (
			rec  models.JournalRecord
			kind string
		)
		if err = rows.Scan(&rec.ID, &kind, &rec.Format, &rec.Path, &rec.Entries, &rec.Added, &rec.Skipped, &rec.At); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		rec.Kind = models.JournalKind(kind)
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return records, nil
}

func (j *journalRepository) Close() error {
	return j.DB.Close()
}

type nopJournal struct{}

// NopJournal returns a [Journal] that drops every record. It is used when no
// journal database is configured.
func NopJournal() Journal {
	return nopJournal{}
}

func (nopJournal) Record(context.Context, models.JournalRecord) error { return nil }

func (nopJournal) List(context.Context, int) ([]models.JournalRecord, error) { return nil, nil }

func (nopJournal) Close() error { return nil }
