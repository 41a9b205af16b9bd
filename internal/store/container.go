// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/passvault/internal/crypto"
	"github.com/MKhiriev/passvault/models"
)

// CurrentVersion is the newest container version this build writes and
// reads.
const CurrentVersion = 1

// NewContainer wraps ciphertext into a current-version container.
func NewContainer(kdf models.KDFParams, nonce, ciphertext []byte) models.Container {
	return models.Container{
		Version: CurrentVersion,
		KDF:     kdf,
		Cipher: models.CipherParams{
			Algorithm: crypto.AlgorithmChaCha20Poly1305,
			Nonce:     nonce,
		},
		Ciphertext: ciphertext,
	}
}

// EncodeContainer serializes c as indented JSON. Byte fields are written as
// base64.
func EncodeContainer(c models.Container) ([]byte, error) {
	if err := validateContainer(c); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode container: %w", err)
	}

	return data, nil
}

// DecodeContainer parses container bytes. Containers written by a newer
// version fail with [ErrUnsupportedVersion].
func DecodeContainer(data []byte) (models.Container, error) {
	var c models.Container
	if err := json.Unmarshal(data, &c); err != nil {
		return models.Container{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	if c.Version > CurrentVersion {
		return models.Container{}, fmt.Errorf("%w: file version %d, newest supported %d",
			ErrUnsupportedVersion, c.Version, CurrentVersion)
	}

	if err := validateContainer(c); err != nil {
		return models.Container{}, err
	}

	return c, nil
}

func validateContainer(c models.Container) error {
	switch {
	case c.Version <= 0:
		return fmt.Errorf("%w: missing version", ErrFormat)
	case c.Cipher.Algorithm != crypto.AlgorithmChaCha20Poly1305:
		return fmt.Errorf("%w: unsupported cipher %q", ErrFormat, c.Cipher.Algorithm)
	case len(c.Cipher.Nonce) != crypto.NonceSize:
		return fmt.Errorf("%w: nonce must be %d bytes", ErrFormat, crypto.NonceSize)
	case len(c.Ciphertext) == 0:
		return fmt.Errorf("%w: missing ciphertext", ErrFormat)
	}

	if err := crypto.ValidateKDFParams(c.KDF); err != nil {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return nil
}
