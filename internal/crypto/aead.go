// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// AlgorithmChaCha20Poly1305 is the only supported AEAD cipher.
const AlgorithmChaCha20Poly1305 = "chacha20poly1305"

// NonceSize is the ChaCha20-Poly1305 nonce length (96 bits).
const NonceSize = chacha20poly1305.NonceSize

// NewNonce returns a fresh random nonce. A nonce must never be reused with
// the same key, so every encryption asks for a new one.
func NewNonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return nonce, nil
}

// Encrypt seals plaintext with ChaCha20-Poly1305. The returned ciphertext
// carries the 16-byte authentication tag.
func Encrypt(key, nonce, plaintext []byte) ([]byte, error) {
	aead, err := newAEAD(key, nonce)
	if err != nil {
		return nil, err
	}

	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// Decrypt opens ciphertext produced by [Encrypt]. It returns
// [ErrAuthentication] and no plaintext when the tag does not verify.
func Decrypt(key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := newAEAD(key, nonce)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthentication
	}

	return plaintext, nil
}

func newAEAD(key, nonce []byte) (cipher.AEAD, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKey, len(key))
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidNonce, len(nonce))
	}

	return chacha20poly1305.New(key)
}
