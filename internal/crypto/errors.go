// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrKDF is returned when key derivation parameters are unusable
	// (unknown algorithm, empty salt, zero cost parameters).
	ErrKDF = errors.New("invalid key derivation parameters")

	// ErrAuthentication is returned by decryption when the authentication
	// tag does not verify. A wrong key and tampered ciphertext are
	// indistinguishable.
	ErrAuthentication = errors.New("ciphertext authentication failed")

	// ErrInvalidKey is returned when a key has the wrong length.
	ErrInvalidKey = errors.New("invalid key size")

	// ErrInvalidNonce is returned when a nonce has the wrong length.
	ErrInvalidNonce = errors.New("invalid nonce size")

	// ErrSessionClosed is returned when a destroyed session is used.
	ErrSessionClosed = errors.New("crypto session is closed")
)
