// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// KDFParams describes how the vault key is derived from the master password.
// Byte slices are encoded as base64 strings in JSON.
type KDFParams struct {
	Algorithm   string `json:"algorithm"`
	Salt        []byte `json:"salt"`
	Iterations  uint32 `json:"iterations"`
	MemoryKiB   uint32 `json:"memory_kib"`
	Parallelism uint8  `json:"parallelism"`
}

// CipherParams identifies the AEAD cipher and the nonce used for the current
// ciphertext.
type CipherParams struct {
	Algorithm string `json:"algorithm"`
	Nonce     []byte `json:"nonce"`
}

// Container is the on-disk vault envelope. Only Ciphertext is secret; the
// rest is the public metadata needed to derive the key and decrypt.
type Container struct {
	Version    int          `json:"version"`
	KDF        KDFParams    `json:"kdf"`
	Cipher     CipherParams `json:"cipher"`
	Ciphertext []byte       `json:"ciphertext"`
}
