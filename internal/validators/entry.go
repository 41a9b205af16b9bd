// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/passvault/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldTitle targets the entry label shown in the list.
	FieldTitle = "title"

	// FieldPassword targets the secret itself.
	FieldPassword = "password"

	// FieldIdentity requires at least one of URL and username, so that an
	// imported record can be told apart from others.
	FieldIdentity = "identity"

	// FieldLength caps every free-text field at maxFieldLength bytes.
	FieldLength = "length"
)

const maxFieldLength = 64 * 1024

// EntryValidator validates entry drafts before they reach the vault and
// import candidates before they are offered for import.
type EntryValidator struct{}

// NewEntryValidator returns a [Validator] for [models.EntryDraft] and
// [models.ImportCandidate] values.
func NewEntryValidator() Validator {
	return &EntryValidator{}
}

func (v *EntryValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.EntryDraft:
		return v.validateDraft(value, fields...)
	case *models.EntryDraft:
		return v.validateDraft(*value, fields...)

	case models.ImportCandidate:
		return v.validateCandidate(value, fields...)
	case *models.ImportCandidate:
		return v.validateCandidate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *EntryValidator) validateDraft(d models.EntryDraft, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldLength}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if strings.TrimSpace(d.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldPassword:
			if d.Password.IsEmpty() {
				return ErrEmptyPassword
			}
		case FieldIdentity:
			if strings.TrimSpace(d.URL) == "" && strings.TrimSpace(d.Username) == "" {
				return ErrNoIdentity
			}
		case FieldLength:
			if err := checkLength(d.Title, d.URL, d.Username, d.Password.String(), d.Notes, strings.Join(d.Tags, ",")); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *EntryValidator) validateCandidate(c models.ImportCandidate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassword, FieldIdentity, FieldLength}
	}

	return v.validateDraft(models.EntryDraft{
		Title:    c.Title,
		URL:      c.URL,
		Username: c.Username,
		Password: c.Password,
		Notes:    c.Notes,
		Tags:     c.Tags,
	}, fields...)
}

func checkLength(values ...string) error {
	for _, s := range values {
		if len(s) > maxFieldLength {
			return fmt.Errorf("%w: %d bytes, limit %d", ErrFieldTooLong, len(s), maxFieldLength)
		}
	}
	return nil
}
