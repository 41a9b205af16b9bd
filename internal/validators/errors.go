// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle    = errors.New("title is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrNoIdentity    = errors.New("url or username is required")
	ErrFieldTooLong  = errors.New("field is too long")
)
