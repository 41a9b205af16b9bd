// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!@#$%^&*()-_=+[]{}<>?"

// DefaultPasswordLength is the length of generated passwords.
const DefaultPasswordLength = 20

// GeneratePassword returns a random password of length characters drawn
// uniformly from letters, digits and symbols.
func GeneratePassword(length int) ([]byte, error) {
	if length <= 0 {
		return nil, fmt.Errorf("password length must be positive, got %d", length)
	}

	limit := big.NewInt(int64(len(passwordAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			Zero(out)
			return nil, fmt.Errorf("generate password: %w", err)
		}
		out[i] = passwordAlphabet[n.Int64()]
	}

	return out, nil
}
