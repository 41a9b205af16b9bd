// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/passvault/models"
)

// ---------------------------------------------------------------------------
// EntryDraft
// ---------------------------------------------------------------------------

func TestEntryValidator_Draft(t *testing.T) {
	v := NewEntryValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		draft   models.EntryDraft
		fields  []string
		wantErr error
	}{
		{
			name:  "valid",
			draft: models.EntryDraft{Title: "Example", Username: "alice", Password: models.NewSecret("s3cret")},
		},
		{
			name:  "password is optional for drafts",
			draft: models.EntryDraft{Title: "Wifi note"},
		},
		{
			name:    "blank title",
			draft:   models.EntryDraft{Title: "   "},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "notes too long",
			draft:   models.EntryDraft{Title: "x", Notes: strings.Repeat("a", maxFieldLength+1)},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "explicit password field",
			draft:   models.EntryDraft{Title: "x"},
			fields:  []string{FieldPassword},
			wantErr: ErrEmptyPassword,
		},
		{
			name:    "unknown field",
			draft:   models.EntryDraft{Title: "x"},
			fields:  []string{"color"},
			wantErr: ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.draft, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEntryValidator_DraftPointer(t *testing.T) {
	err := NewEntryValidator().Validate(context.Background(), &models.EntryDraft{})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

// ---------------------------------------------------------------------------
// ImportCandidate
// ---------------------------------------------------------------------------

func TestEntryValidator_Candidate(t *testing.T) {
	v := NewEntryValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ImportCandidate{
		URL: "https://example.com", Password: models.NewSecret("pw"),
	}))
	assert.NoError(t, v.Validate(ctx, &models.ImportCandidate{
		Username: "alice", Password: models.NewSecret("pw"),
	}))
	assert.ErrorIs(t, v.Validate(ctx, models.ImportCandidate{
		URL: "https://example.com", Username: "alice",
	}), ErrEmptyPassword)
	assert.ErrorIs(t, v.Validate(ctx, models.ImportCandidate{
		Password: models.NewSecret("pw"),
	}), ErrNoIdentity)
}

func TestEntryValidator_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, NewEntryValidator().Validate(context.Background(), 42), ErrUnsupportedType)
}
