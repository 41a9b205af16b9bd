// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// JournalKind names a vault operation recorded in the activity journal.
type JournalKind string

const (
	JournalCreate JournalKind = "create"
	JournalOpen   JournalKind = "open"
	JournalSave   JournalKind = "save"
	JournalExport JournalKind = "export"
	JournalImport JournalKind = "import"
)

// JournalRecord is one row of the activity journal. It only describes an
// operation (what, where, how many) and never carries entry contents.
type JournalRecord struct {
	ID      int64
	Kind    JournalKind
	Format  string
	Path    string
	Entries int
	Added   int
	Skipped int
	At      time.Time
}
