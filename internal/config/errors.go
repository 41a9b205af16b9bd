// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidCryptoConfigs indicates key derivation costs Argon2id
	// rejects (for example, memory below 8 KiB per lane).
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a negative auto-lock timeout).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidLogConfigs indicates an unknown log level.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
)
