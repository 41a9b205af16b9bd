// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package keyring keeps vault master passwords in the OS keyring, keyed by
// the absolute vault path.
package keyring

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

const serviceName = "passvault"

// ErrNotFound is returned when no password is stored for a vault.
var ErrNotFound = errors.New("no password in keyring")

// Store reads and writes vault passwords in the OS keyring.
type Store struct {
	service string
}

// NewStore returns a keyring [Store].
func NewStore() *Store {
	return &Store{service: serviceName}
}

// Get returns the password stored for vaultPath.
func (s *Store) Get(vaultPath string) ([]byte, error) {
	secret, err := keyring.Get(s.service, vaultID(vaultPath))
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("keyring get: %w", err)
	}
	return []byte(secret), nil
}

// Set stores password for vaultPath, replacing any previous one.
func (s *Store) Set(vaultPath string, password []byte) error {
	if err := keyring.Set(s.service, vaultID(vaultPath), string(password)); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

// Delete removes the password stored for vaultPath. Deleting a missing
// password is not an error.
func (s *Store) Delete(vaultPath string) error {
	err := keyring.Delete(s.service, vaultID(vaultPath))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}

func vaultID(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
