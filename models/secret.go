// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Secret holds sensitive text (passwords) as a mutable byte slice so that it
// can be overwritten once it is no longer needed. Go strings are immutable
// and cannot be wiped, so secrets are converted to string only at the
// rendering and clipboard boundaries.
//
// Secret marshals to and from a plain JSON string.
type Secret []byte

// NewSecret copies s into a new Secret.
func NewSecret(s string) Secret {
	if s == "" {
		return nil
	}
	return Secret(s)
}

// String returns the secret as a string. The returned value is a copy that
// cannot be wiped; callers should keep it short-lived.
func (s Secret) String() string {
	return string(s)
}

// Clone returns an independent copy of s.
func (s Secret) Clone() Secret {
	if s == nil {
		return nil
	}
	return append(Secret(nil), s...)
}

// Wipe overwrites every byte of s with zero.
func (s Secret) Wipe() {
	clear(s)
}

// IsEmpty reports whether the secret holds no bytes.
func (s Secret) IsEmpty() bool {
	return len(s) == 0
}

// MarshalText implements encoding.TextMarshaler.
func (s Secret) MarshalText() ([]byte, error) {
	return s, nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The input is copied,
// decoders are free to reuse their buffer.
func (s *Secret) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = nil
		return nil
	}
	*s = append(Secret(nil), b...)
	return nil
}
