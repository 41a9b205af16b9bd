// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/journal_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/passvault/models"
)

// Journal records metadata about vault operations (create, open, save,
// export, import) for the history command. It never stores entry contents.
type Journal interface {
	// Record appends rec to the journal. rec.ID is ignored and assigned by
	// the database.
	Record(ctx context.Context, rec models.JournalRecord) error

	// List returns the most recent records, newest first. A non-positive
	// limit returns every record.
	List(ctx context.Context, limit int) ([]models.JournalRecord, error)

	// Close releases the underlying connection.
	Close() error
}
