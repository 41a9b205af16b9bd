// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ExportFormat is the target format of an export.
type ExportFormat string

const (
	// ExportFirefox writes url,username,password CSV accepted by browser
	// password managers.
	ExportFirefox ExportFormat = "firefox"
	// ExportCSV writes every entry field as CSV.
	ExportCSV ExportFormat = "csv"
	// ExportJSON writes a full backup document that imports back losslessly.
	ExportJSON ExportFormat = "json"
)

// ImportFormat is the format recognised by import detection.
type ImportFormat string

const (
	ImportJSON        ImportFormat = "json"
	ImportFirefoxFull ImportFormat = "firefox-full"
	ImportFirefox     ImportFormat = "firefox"
	ImportGeneric     ImportFormat = "generic"
)

// Canonical column names used by CSV detection and parsing.
const (
	ColumnTitle      = "title"
	ColumnURL        = "url"
	ColumnUsername   = "username"
	ColumnPassword   = "password"
	ColumnNotes      = "notes"
	ColumnTags       = "tags"
	ColumnCreatedAt  = "created_at"
	ColumnModifiedAt = "modified_at"
)

// FormatGuess is the outcome of format detection. Columns maps canonical
// column names to their index in a CSV record and is empty for JSON.
type FormatGuess struct {
	Format  ImportFormat
	Columns map[string]int
}

// ImportCandidate is a record parsed from a foreign file, not yet part of
// the vault. Duplicate, ExistingID and ExistingTitle are filled by duplicate
// detection.
type ImportCandidate struct {
	Title      string
	URL        string
	Username   string
	Password   Secret
	Notes      string
	Tags       []string
	CreatedAt  *time.Time
	ModifiedAt *time.Time

	// Position is the record's index among the usable records of the file.
	Position int

	Duplicate     bool
	ExistingID    string
	ExistingTitle string
}

// Draft converts the candidate into an [EntryDraft]. The password is copied.
func (c ImportCandidate) Draft() EntryDraft {
	return EntryDraft{
		Title:    c.Title,
		URL:      c.URL,
		Username: c.Username,
		Password: c.Password.Clone(),
		Notes:    c.Notes,
		Tags:     c.Tags,
	}
}

// ParseResult holds the candidates parsed from a file and the number of
// malformed rows that were skipped.
type ParseResult struct {
	Candidates []ImportCandidate
	Skipped    int
}

// ImportPreview is the dry-run report shown before an import is applied.
type ImportPreview struct {
	Path       string
	Format     ImportFormat
	Fresh      []ImportCandidate
	Duplicates []ImportCandidate
	Skipped    int
}

// Total returns the number of parsed records, excluding malformed rows.
func (p ImportPreview) Total() int {
	return len(p.Fresh) + len(p.Duplicates)
}

// Wipe overwrites the passwords held by the preview.
func (p ImportPreview) Wipe() {
	for _, c := range p.Fresh {
		c.Password.Wipe()
	}
	for _, c := range p.Duplicates {
		c.Password.Wipe()
	}
}

// ImportResult reports what an applied import did. Skipped counts both
// skipped duplicates and malformed rows.
type ImportResult struct {
	Added   int
	Skipped int
}
