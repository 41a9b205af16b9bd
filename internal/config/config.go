// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"path/filepath"
	"time"

	"github.com/MKhiriev/passvault/internal/crypto"
	"github.com/MKhiriev/passvault/internal/utils"
)

// Default values applied to fields no source has set.
const (
	DefaultAutoLockTimeout     = 5 * time.Minute
	DefaultClipboardClearAfter = 30 * time.Second
	DefaultLogLevel            = "info"

	defaultVaultFile   = "vault.pv"
	defaultJournalFile = "journal.db"
	defaultLogFile     = "passvault.log"
)

// JournalDisabled is the journal DSN that turns the operation journal off.
const JournalDisabled = "off"

// unsetDuration marks a timeout that a source left alone. Zero is a real
// setting: it turns the timer off.
const unsetDuration time.Duration = -1

// StructuredConfig is the top-level configuration container for passvault.
// It aggregates all sub-configurations and is populated by merging values
// from command-line flags, environment variables, and an optional JSON file.
//
// Struct tags:
//   - envPrefix : prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds vault location and session behaviour.
	App App `envPrefix:"APP_"`

	// Crypto holds the Argon2id costs used when a new vault is created.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Storage holds the operation journal settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Log holds the file logger settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the PASSVAULT_CONFIG environment variable or the
	// --config / -c flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds settings of the vault session.
type App struct {
	// VaultPath is the encrypted vault file.
	// Env: PASSVAULT_APP_VAULT_PATH
	VaultPath string `env:"VAULT_PATH"`

	// UseKeyring makes the client read and store the master password in
	// the OS keyring.
	// Env: PASSVAULT_APP_USE_KEYRING
	UseKeyring bool `env:"USE_KEYRING"`

	// AutoLockTimeout is the idle time after which the TUI locks the vault.
	// Env: PASSVAULT_APP_AUTO_LOCK_TIMEOUT
	AutoLockTimeout time.Duration `env:"AUTO_LOCK_TIMEOUT"`

	// ClipboardClearAfter is how long a copied password stays in the
	// clipboard.
	// Env: PASSVAULT_APP_CLIPBOARD_CLEAR_AFTER
	ClipboardClearAfter time.Duration `env:"CLIPBOARD_CLEAR_AFTER"`
}

// Crypto holds the key derivation costs for new vaults. Existing vaults
// keep the parameters stored in their file.
type Crypto struct {
	// Env: PASSVAULT_CRYPTO_ITERATIONS
	Iterations uint32 `env:"ITERATIONS"`

	// Env: PASSVAULT_CRYPTO_MEMORY_KIB
	MemoryKiB uint32 `env:"MEMORY_KIB"`

	// Env: PASSVAULT_CRYPTO_PARALLELISM
	Parallelism uint8 `env:"PARALLELISM"`
}

// Storage groups the configuration of local persistence besides the vault.
type Storage struct {
	Journal Journal `envPrefix:"JOURNAL_"`
}

// Journal holds the operation journal database settings.
type Journal struct {
	// DSN is the SQLite database file. "off" disables the journal.
	// Env: PASSVAULT_STORAGE_JOURNAL_DSN
	DSN string `env:"DSN"`
}

// Log holds the file logger settings. The terminal belongs to the TUI, so
// logs are only ever written to a file.
type Log struct {
	// Env: PASSVAULT_LOG_PATH
	Path string `env:"PATH"`

	// Env: PASSVAULT_LOG_LEVEL
	Level string `env:"LEVEL"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// flags, environment variables, and the JSON file named by either of them.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(flags *Flags) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(flags).
		withEnv().
		withJSON().
		build()
}

// newSourceConfig returns an empty config for one source, with both
// timeouts marked unset.
func newSourceConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			AutoLockTimeout:     unsetDuration,
			ClipboardClearAfter: unsetDuration,
		},
	}
}

// setDefaults fills every field left empty by all sources.
func (cfg *StructuredConfig) setDefaults() {
	dataDir := utils.DefaultDataDir()

	if cfg.App.VaultPath == "" {
		cfg.App.VaultPath = filepath.Join(dataDir, defaultVaultFile)
	}
	if cfg.App.AutoLockTimeout == unsetDuration {
		cfg.App.AutoLockTimeout = DefaultAutoLockTimeout
	}
	if cfg.App.ClipboardClearAfter == unsetDuration {
		cfg.App.ClipboardClearAfter = DefaultClipboardClearAfter
	}

	if cfg.Crypto.Iterations == 0 {
		cfg.Crypto.Iterations = crypto.DefaultIterations
	}
	if cfg.Crypto.MemoryKiB == 0 {
		cfg.Crypto.MemoryKiB = crypto.DefaultMemoryKiB
	}
	if cfg.Crypto.Parallelism == 0 {
		cfg.Crypto.Parallelism = crypto.DefaultParallelism
	}

	if cfg.Storage.Journal.DSN == "" {
		cfg.Storage.Journal.DSN = filepath.Join(dataDir, defaultJournalFile)
	}

	if cfg.Log.Path == "" {
		cfg.Log.Path = filepath.Join(dataDir, defaultLogFile)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}

	cfg.App.VaultPath = utils.ExpandPath(cfg.App.VaultPath)
	cfg.Log.Path = utils.ExpandPath(cfg.Log.Path)
	if cfg.Storage.Journal.DSN != JournalDisabled {
		cfg.Storage.Journal.DSN = utils.ExpandPath(cfg.Storage.Journal.DSN)
	}
}
