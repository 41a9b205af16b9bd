// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// Zero overwrites b with zeros.
func Zero(b []byte) {
	clear(b)
}
