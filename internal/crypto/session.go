// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/passvault/models"
)

// Session keeps the key derived for an unlocked vault. The key is sealed in
// a memguard enclave and is only decrypted into guarded memory for the
// duration of a single Seal or Open call.
type Session struct {
	enclave *memguard.Enclave
	params  models.KDFParams
}

// NewSession derives the vault key from password and params and seals it.
// The caller keeps ownership of password; the plain derived key is wiped
// before NewSession returns.
func NewSession(password []byte, params models.KDFParams) (*Session, error) {
	key, err := DeriveKey(password, params)
	if err != nil {
		return nil, err
	}

	// NewEnclave wipes key.
	enclave := memguard.NewEnclave(key)
	if enclave == nil {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidKey)
	}

	params.Salt = append([]byte(nil), params.Salt...)

	return &Session{enclave: enclave, params: params}, nil
}

// Params returns the KDF parameters the session key was derived with. The
// salt is reused for every save of the same vault.
func (s *Session) Params() models.KDFParams {
	p := s.params
	p.Salt = append([]byte(nil), s.params.Salt...)
	return p
}

// Seal encrypts plaintext under the session key with a fresh nonce.
func (s *Session) Seal(plaintext []byte) (nonce, ciphertext []byte, err error) {
	nonce, err = NewNonce()
	if err != nil {
		return nil, nil, err
	}

	err = s.withKey(func(key []byte) error {
		ciphertext, err = Encrypt(key, nonce, plaintext)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return nonce, ciphertext, nil
}

// Open decrypts ciphertext with the session key. It returns
// [ErrAuthentication] when the key does not match.
func (s *Session) Open(nonce, ciphertext []byte) (plaintext []byte, err error) {
	err = s.withKey(func(key []byte) error {
		plaintext, err = Decrypt(key, nonce, ciphertext)
		return err
	})
	return plaintext, err
}

// Destroy drops the sealed key. Further Seal or Open calls fail with
// [ErrSessionClosed].
func (s *Session) Destroy() {
	s.enclave = nil
	Zero(s.params.Salt)
}

func (s *Session) withKey(fn func(key []byte) error) error {
	if s == nil || s.enclave == nil {
		return ErrSessionClosed
	}

	buf, err := s.enclave.Open()
	if err != nil {
		return fmt.Errorf("open key enclave: %w", err)
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}
