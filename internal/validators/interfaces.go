// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks entry drafts and import candidates before they
// reach the vault.
//
// A draft typed in the TUI needs a title. An imported record needs a
// password and either a URL or a username; its title may be derived from
// the URL. Every text field is capped in both cases.
package validators

import "context"

// Validator checks a value and returns the first rule it breaks. Passing
// field names (FieldTitle, FieldPassword, ...) limits the check to those
// rules; with no names the default set for the value's type applies.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
