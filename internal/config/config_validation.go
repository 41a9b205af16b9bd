// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// validate checks that the merged and defaulted [StructuredConfig] can be
// used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Crypto.MemoryKiB < 8*uint32(cfg.Crypto.Parallelism) {
		return fmt.Errorf("%w: memory_kib must be at least 8 * parallelism", ErrInvalidCryptoConfigs)
	}

	if cfg.App.VaultPath == "" {
		return fmt.Errorf("%w: empty vault path", ErrInvalidAppConfigs)
	}
	if cfg.App.AutoLockTimeout < 0 || cfg.App.ClipboardClearAfter < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidAppConfigs)
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogConfigs, err)
	}

	return nil
}
