// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/passvault/internal/app"
	"github.com/MKhiriev/passvault/internal/service"
)

var errorMessages = []struct {
	err error
	msg string
}{
	{service.ErrWrongPassword, app.MsgWrongPassword},
	{service.ErrCorruptFile, app.MsgCorruptFile},
	{service.ErrMissingFile, app.MsgMissingFile},
	{service.ErrAlreadyExists, app.MsgAlreadyExists},
	{service.ErrLocked, app.MsgLocked},
	{service.ErrNotFound, app.MsgNotFound},
	{service.ErrInvalidDraft, app.MsgInvalidEntry},
	{service.ErrUnrecognizedFormat, app.MsgUnrecognizedFormat},
	{service.ErrUnknownExportFormat, app.MsgUnknownExportFormat},
	{service.ErrIO, app.MsgIOError},
	{service.ErrCrypto, app.MsgCryptoError},
}

// humanizeError turns a service error into a status line message.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	for _, e := range errorMessages {
		if errors.Is(err, e.err) {
			return e.msg
		}
	}

	return err.Error()
}
