// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/passvault/models"
)

const backupVersion = 1

// csvTagSeparator joins tags in the extended CSV. Import also accepts ';'.
const csvTagSeparator = ","

// backupDocument is the JSON export schema. It is also recognised by import.
type backupDocument struct {
	Version    int            `json:"version"`
	ExportedAt time.Time      `json:"exported_at"`
	Entries    []models.Entry `json:"entries"`
}

var (
	firefoxHeader = []string{models.ColumnURL, models.ColumnUsername, models.ColumnPassword}
	csvHeader     = []string{
		models.ColumnTitle,
		models.ColumnURL,
		models.ColumnUsername,
		models.ColumnPassword,
		models.ColumnNotes,
		models.ColumnTags,
		models.ColumnCreatedAt,
		models.ColumnModifiedAt,
	}
)

// ExportFormats lists the canonical export format names.
var ExportFormats = []models.ExportFormat{models.ExportFirefox, models.ExportJSON, models.ExportCSV}

// ParseExportFormat resolves a user-supplied format name, accepting the
// aliases ff, chrome (firefox) and extended (csv).
func ParseExportFormat(s string) (models.ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "firefox", "ff", "chrome":
		return models.ExportFirefox, nil
	case "json":
		return models.ExportJSON, nil
	case "csv", "extended":
		return models.ExportCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExportFormat, s)
	}
}

// encodeExport renders entries in format. The result holds secrets in
// clear.
func encodeExport(entries []models.Entry, format models.ExportFormat, now time.Time) ([]byte, error) {
	switch format {
	case models.ExportFirefox:
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{e.URL, e.Username, e.Password.String()})
		}
		return encodeCSV(firefoxHeader, rows)

	case models.ExportCSV:
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{
				e.Title,
				e.URL,
				e.Username,
				e.Password.String(),
				e.Notes,
				strings.Join(e.Tags, csvTagSeparator),
				e.CreatedAt.Format(time.RFC3339Nano),
				e.ModifiedAt.Format(time.RFC3339Nano),
			})
		}
		return encodeCSV(csvHeader, rows)

	case models.ExportJSON:
		if entries == nil {
			entries = []models.Entry{}
		}
		return json.MarshalIndent(backupDocument{
			Version:    backupVersion,
			ExportedAt: now,
			Entries:    entries,
		}, "", "  ")

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExportFormat, format)
	}
}

func encodeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
