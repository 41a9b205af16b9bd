// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/passvault/internal/validators"
	"github.com/MKhiriev/passvault/models"
)

const defaultImportTitle = "Imported Entry"

// Parse turns contents into import candidates according to guess. Rows that
// cannot be read or miss required values are skipped and counted. The
// validator decides which candidates are usable.
func Parse(ctx context.Context, contents []byte, guess models.FormatGuess, validator validators.Validator) (models.ParseResult, error) {
	if guess.Format == models.ImportJSON {
		return parseJSON(ctx, contents, validator)
	}
	return parseCSV(ctx, contents, guess.Columns, validator)
}

func parseJSON(ctx context.Context, contents []byte, validator validators.Validator) (models.ParseResult, error) {
	var doc backupDocument
	if err := json.Unmarshal(trimBOM(contents), &doc); err != nil {
		return models.ParseResult{}, fmt.Errorf("%w: %w", ErrUnrecognizedFormat, err)
	}

	var result models.ParseResult
	for _, e := range doc.Entries {
		c := models.ImportCandidate{
			Title:    e.Title,
			URL:      e.URL,
			Username: e.Username,
			Password: e.Password,
			Notes:    e.Notes,
			Tags:     e.Tags,
		}
		if !e.CreatedAt.IsZero() {
			c.CreatedAt = &e.CreatedAt
		}
		if !e.ModifiedAt.IsZero() {
			c.ModifiedAt = &e.ModifiedAt
		}
		if c.Title == "" {
			c.Title = titleFromURL(c.URL)
		}

		// A backup is lossless: entries without password or URL are kept.
		if err := validator.Validate(ctx, c, validators.FieldLength); err != nil {
			c.Password.Wipe()
			result.Skipped++
			continue
		}
		c.Position = len(result.Candidates)
		result.Candidates = append(result.Candidates, c)
	}

	return result, nil
}

func parseCSV(ctx context.Context, contents []byte, columns map[string]int, validator validators.Validator) (models.ParseResult, error) {
	minFields := 0
	for _, col := range requiredColumns {
		idx, ok := columns[col]
		if !ok {
			return models.ParseResult{}, fmt.Errorf("%w: missing %s column", ErrUnrecognizedFormat, col)
		}
		minFields = max(minFields, idx+1)
	}

	r := newCSVReader(trimBOM(contents))
	if _, err := r.Read(); err != nil {
		return models.ParseResult{}, fmt.Errorf("%w: %w", ErrUnrecognizedFormat, err)
	}

	var result models.ParseResult
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(record) < minFields {
			result.Skipped++
			continue
		}

		c := candidateFromRecord(record, columns)
		if err = validator.Validate(ctx, c); err != nil {
			c.Password.Wipe()
			result.Skipped++
			continue
		}
		c.Position = len(result.Candidates)
		result.Candidates = append(result.Candidates, c)
	}

	return result, nil
}

func candidateFromRecord(record []string, columns map[string]int) models.ImportCandidate {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	c := models.ImportCandidate{
		Title:    field(models.ColumnTitle),
		URL:      field(models.ColumnURL),
		Username: field(models.ColumnUsername),
		Password: models.NewSecret(field(models.ColumnPassword)),
		Notes:    field(models.ColumnNotes),
		Tags:     models.ParseTags(field(models.ColumnTags)),
	}
	if c.Title == "" {
		c.Title = titleFromURL(c.URL)
	}
	c.CreatedAt = parseTimestamp(field(models.ColumnCreatedAt))
	c.ModifiedAt = parseTimestamp(field(models.ColumnModifiedAt))

	return c
}

// parseTimestamp accepts RFC 3339 timestamps and Unix milliseconds (as used
// by Firefox). It returns nil for empty or unparsable values.
func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t = t.UTC()
		return &t
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
		t := time.UnixMilli(ms).UTC()
		return &t
	}

	return nil
}

// titleFromURL derives an entry title from a URL host: the scheme, path,
// port and a leading "www." are dropped and the first letter capitalised.
func titleFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultImportTitle
	}

	host := strings.ToLower(raw)
	if !strings.Contains(host, "://") {
		host = "//" + host
	}
	if u, err := url.Parse(host); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	} else {
		host = strings.TrimPrefix(host, "//")
		host, _, _ = strings.Cut(host, "/")
		host, _, _ = strings.Cut(host, ":")
	}
	host = strings.TrimPrefix(host, "www.")

	first, size := utf8.DecodeRuneInString(host)
	if first == utf8.RuneError {
		return defaultImportTitle
	}

	return string(unicode.ToUpper(first)) + host[size:]
}
