// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/passvault/models"
)

const journalTable = "journal"

var journalColumns = []string{"kind", "format", "path", "entries", "added", "skipped", "created_at"}

// SQLite uses "?" placeholders.
var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildInsertJournalQuery(rec models.JournalRecord) (string, []any, error) {
	return sqlite.
		Insert(journalTable).
		Columns(journalColumns...).
		Values(string(rec.Kind), rec.Format, rec.Path, rec.Entries, rec.Added, rec.Skipped, rec.At).
		ToSql()
}

func buildListJournalQuery(limit int) (string, []any, error) {
	query := sqlite.
		Select(append([]string{"id"}, journalColumns...)...).
		From(journalTable).
		OrderBy("id DESC")

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	return query.ToSql()
}
