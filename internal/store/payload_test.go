// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/passvault/models"
)

func TestPayload_RoundTripPreservesOrderAndFields(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 30, 0, 123456789, time.UTC)
	entries := []models.Entry{
		{
			ID:         "b",
			Title:      "GitLab",
			URL:        "https://gitlab.com",
			Username:   "alice",
			Password:   models.NewSecret("s3cr3t"),
			Notes:      "line1\nline2",
			Tags:       []string{"work", "code"},
			CreatedAt:  now,
			ModifiedAt: now.Add(time.Hour),
		},
		{
			ID:         "a",
			Title:      "Bank",
			Username:   "bob",
			Password:   models.NewSecret("pässwörd\"<>"),
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}

	data, err := SerializePayload(entries)
	require.NoError(t, err)

	got, err := DeserializePayload(data)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestPayload_Empty(t *testing.T) {
	data, err := SerializePayload(nil)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"entries": []`)

	got, err := DeserializePayload(data)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeserializePayload_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"missing id", `{"version":1,"entries":[{"title":"x"}]}`},
		{"duplicate id", `{"version":1,"entries":[{"id":"1"},{"id":"1"}]}`},
		{"newer version", `{"version":9,"entries":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeserializePayload([]byte(tt.data))
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}
