// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"slices"
	"strings"

	"github.com/MKhiriev/passvault/models"
)

// formatDetector is one step of the detection chain. It reports ok=false
// when the content does not look like its format.
type formatDetector struct {
	format models.ImportFormat
	detect func(contents []byte, header []string) (columns map[string]int, ok bool)
}

// detectors is tried in order; the first match wins. Exact schemas come
// before the generic column heuristic.
var detectors = []formatDetector{
	{format: models.ImportJSON, detect: detectJSON},
	{format: models.ImportFirefoxFull, detect: detectFirefoxFull},
	{format: models.ImportFirefox, detect: detectFirefox},
	{format: models.ImportGeneric, detect: detectGeneric},
}

// columnAliases maps canonical column names to the header names accepted by
// the generic heuristic. Matching is case-insensitive.
var columnAliases = map[string][]string{
	models.ColumnTitle:      {"title", "name"},
	models.ColumnURL:        {"url", "website", "site", "uri", "login_uri"},
	models.ColumnUsername:   {"username", "login", "email", "user", "login_username"},
	models.ColumnPassword:   {"password", "pass", "pwd", "login_password"},
	models.ColumnNotes:      {"notes", "note", "comment", "comments"},
	models.ColumnTags:       {"tags", "tag", "labels", "categories"},
	models.ColumnCreatedAt:  {"created_at", "created"},
	models.ColumnModifiedAt: {"modified_at", "modified", "updated_at"},
}

var requiredColumns = []string{models.ColumnURL, models.ColumnUsername, models.ColumnPassword}

// firefoxMarkers are header names only present in Firefox's full export.
var firefoxMarkers = []string{"httprealm", "formactionorigin", "guid"}

// DetectFormat sniffs contents and returns the matching import format with
// its column layout. Returns [ErrUnrecognizedFormat] when neither a known
// schema nor the generic heuristic (url, username and password columns)
// matches.
func DetectFormat(contents []byte) (models.FormatGuess, error) {
	header := readHeader(contents)

	for _, d := range detectors {
		if columns, ok := d.detect(contents, header); ok {
			return models.FormatGuess{Format: d.format, Columns: columns}, nil
		}
	}

	return models.FormatGuess{}, ErrUnrecognizedFormat
}

func detectJSON(contents []byte, _ []string) (map[string]int, bool) {
	trimmed := bytes.TrimSpace(trimBOM(contents))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var probe struct {
		Version int             `json:"version"`
		Entries json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, false
	}

	entries := bytes.TrimSpace(probe.Entries)
	if probe.Version != backupVersion || len(entries) == 0 || entries[0] != '[' {
		return nil, false
	}

	return map[string]int{}, true
}

func detectFirefoxFull(_ []byte, header []string) (map[string]int, bool) {
	hasMarker := slices.ContainsFunc(header, func(h string) bool {
		return slices.Contains(firefoxMarkers, h)
	})
	if !hasMarker {
		return nil, false
	}

	columns, ok := exactColumns(header)
	if !ok {
		return nil, false
	}
	if idx := slices.Index(header, "timecreated"); idx >= 0 {
		columns[models.ColumnCreatedAt] = idx
	}
	if idx := slices.Index(header, "timepasswordchanged"); idx >= 0 {
		columns[models.ColumnModifiedAt] = idx
	}

	return columns, true
}

func detectFirefox(_ []byte, header []string) (map[string]int, bool) {
	if len(header) != len(requiredColumns) {
		return nil, false
	}
	return exactColumns(header)
}

func detectGeneric(_ []byte, header []string) (map[string]int, bool) {
	columns := make(map[string]int)
	for canonical, aliases := range columnAliases {
		for _, alias := range aliases {
			if idx := slices.Index(header, alias); idx >= 0 {
				columns[canonical] = idx
				break
			}
		}
	}

	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, false
		}
	}

	return columns, true
}

// exactColumns locates url, username and password by their exact names.
func exactColumns(header []string) (map[string]int, bool) {
	columns := make(map[string]int, len(requiredColumns))
	for _, col := range requiredColumns {
		idx := slices.Index(header, col)
		if idx < 0 {
			return nil, false
		}
		columns[col] = idx
	}
	return columns, true
}

// readHeader returns the first CSV record with names trimmed and lowercased,
// or nil when contents has no parsable first record.
func readHeader(contents []byte) []string {
	r := newCSVReader(trimBOM(contents))
	record, err := r.Read()
	if err != nil && err != io.EOF {
		return nil
	}

	header := make([]string, len(record))
	for i, h := range record {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return header
}

func newCSVReader(contents []byte) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(contents))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r
}

func trimBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))
}
