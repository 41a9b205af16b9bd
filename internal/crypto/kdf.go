// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/MKhiriev/passvault/models"
)

// AlgorithmArgon2id is the only supported key derivation algorithm.
const AlgorithmArgon2id = "argon2id"

const (
	// KeySize is the derived key length in bytes (256 bits).
	KeySize = 32
	// SaltSize is the length of a freshly generated salt.
	SaltSize = 16

	DefaultIterations  uint32 = 3
	DefaultMemoryKiB   uint32 = 64 * 1024 // 64 MiB
	DefaultParallelism uint8  = 4
)

// NewKDFParams returns Argon2id parameters with the given costs and a fresh
// random salt. Zero costs fall back to the defaults.
func NewKDFParams(iterations, memoryKiB uint32, parallelism uint8) (models.KDFParams, error) {
	if iterations == 0 {
		iterations = DefaultIterations
	}
	if memoryKiB == 0 {
		memoryKiB = DefaultMemoryKiB
	}
	if parallelism == 0 {
		parallelism = DefaultParallelism
	}

	salt, err := NewSalt()
	if err != nil {
		return models.KDFParams{}, err
	}

	params := models.KDFParams{
		Algorithm:   AlgorithmArgon2id,
		Salt:        salt,
		Iterations:  iterations,
		MemoryKiB:   memoryKiB,
		Parallelism: parallelism,
	}

	return params, ValidateKDFParams(params)
}

// DefaultKDFParams returns the default Argon2id parameters with a fresh salt.
func DefaultKDFParams() (models.KDFParams, error) {
	return NewKDFParams(DefaultIterations, DefaultMemoryKiB, DefaultParallelism)
}

// NewSalt reads [SaltSize] random bytes from the OS CSPRNG.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// ValidateKDFParams reports an [ErrKDF] when p cannot be used with Argon2id.
func ValidateKDFParams(p models.KDFParams) error {
	switch {
	case p.Algorithm != AlgorithmArgon2id:
		return fmt.Errorf("%w: unsupported algorithm %q", ErrKDF, p.Algorithm)
	case len(p.Salt) == 0:
		return fmt.Errorf("%w: empty salt", ErrKDF)
	case p.Iterations == 0:
		return fmt.Errorf("%w: iterations must be positive", ErrKDF)
	case p.Parallelism == 0:
		return fmt.Errorf("%w: parallelism must be positive", ErrKDF)
	case p.MemoryKiB < 8*uint32(p.Parallelism):
		return fmt.Errorf("%w: memory must be at least 8 KiB per lane", ErrKDF)
	}
	return nil
}

// DeriveKey derives a [KeySize] key from password using Argon2id. The same
// password and parameters always produce the same key.
func DeriveKey(password []byte, p models.KDFParams) ([]byte, error) {
	if err := ValidateKDFParams(p); err != nil {
		return nil, err
	}

	return argon2.IDKey(password, p.Salt, p.Iterations, p.MemoryKiB, p.Parallelism, KeySize), nil
}
