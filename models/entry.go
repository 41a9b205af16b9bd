// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"strings"
	"time"
)

// Entry is a single credential stored in the vault.
//
// ID is assigned once when the entry is added and is never reused or edited.
// CreatedAt and ModifiedAt are kept in UTC.
type Entry struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	URL        string    `json:"url,omitempty"`
	Username   string    `json:"username"`
	Password   Secret    `json:"password"`
	Notes      string    `json:"notes,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Clone returns a deep copy of e. Mutating the copy (including wiping its
// password) never affects the original.
func (e Entry) Clone() Entry {
	c := e
	c.Password = e.Password.Clone()
	c.Tags = slices.Clone(e.Tags)
	return c
}

// Matches reports whether query is a case-insensitive substring of the
// entry's title, URL, username or any tag. An empty query matches every
// entry.
func (e Entry) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	if strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.URL), q) ||
		strings.Contains(strings.ToLower(e.Username), q) {
		return true
	}

	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}

	return false
}

// EntryDraft is the user-editable part of an [Entry]. It is the input of
// add and update operations.
type EntryDraft struct {
	Title    string
	URL      string
	Username string
	Password Secret
	Notes    string
	Tags     []string
}

// DraftFromEntry builds an editable draft pre-filled with e's fields. The
// password is copied.
func DraftFromEntry(e Entry) EntryDraft {
	return EntryDraft{
		Title:    e.Title,
		URL:      e.URL,
		Username: e.Username,
		Password: e.Password.Clone(),
		Notes:    e.Notes,
		Tags:     slices.Clone(e.Tags),
	}
}

// ParseTags splits a comma (or semicolon) separated list into trimmed,
// non-empty tags. It returns nil when no tag remains.
func ParseTags(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})

	var tags []string
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			tags = append(tags, t)
		}
	}

	return tags
}
