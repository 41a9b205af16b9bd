// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/MKhiriev/passvault/internal/app"
	"github.com/MKhiriev/passvault/internal/config"
	"github.com/MKhiriev/passvault/internal/crypto"
	"github.com/MKhiriev/passvault/internal/keyring"
	"github.com/MKhiriev/passvault/internal/logger"
	"github.com/MKhiriev/passvault/internal/service"
	"github.com/MKhiriev/passvault/internal/store"
	"github.com/MKhiriev/passvault/internal/tui"
)

const (
	minPasswordLength = 8
	maxUnlockAttempts = 3
)

var (
	ErrPasswordTooShort = errors.New(app.MsgPasswordTooShort)
	ErrPasswordMismatch = errors.New(app.MsgPasswordMismatch)
)

// App is the passvault process: one vault, one journal, one log file.
type App struct {
	cfg      *config.StructuredConfig
	services *service.Services
	keyring  *keyring.Store
	prompter Prompter
	logger   *logger.Logger
	closeLog func() error
}

// NewApp builds the application for cfg. The log goes to cfg.Log.Path, never
// to the terminal. A journal that cannot be opened is replaced by a no-op one
// so that the vault stays usable.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, prompter Prompter) (*App, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	if prompter == nil {
		prompter = NewTerminalPrompter()
	}

	log, closeLog := logger.NewFileLogger("passvault", cfg.Log.Path, cfg.Log.Level)

	journal := store.NopJournal()
	if cfg.Storage.Journal.DSN != config.JournalDisabled {
		j, err := store.NewSQLiteJournal(ctx, cfg.Storage.Journal.DSN, log)
		if err != nil {
			log.Warn().Err(err).Str("dsn", cfg.Storage.Journal.DSN).Msg("journal unavailable, continuing without it")
		} else {
			journal = j
		}
	}

	services := service.NewServices(journal, service.KDFSettings{
		Iterations:  cfg.Crypto.Iterations,
		MemoryKiB:   cfg.Crypto.MemoryKiB,
		Parallelism: cfg.Crypto.Parallelism,
	}, log)

	a := &App{
		cfg:      cfg,
		services: services,
		prompter: prompter,
		logger:   log,
		closeLog: closeLog,
	}
	if cfg.App.UseKeyring {
		a.keyring = keyring.NewStore()
	}

	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx = a.logger.WithContext(ctx)

	if err := a.unlock(ctx, true); err != nil {
		return err
	}
	defer a.services.Vault.Lock()

	ctrl := tui.NewController(ctx, a.services.Vault, a.services.Transfer, tui.Options{
		AutoLockTimeout:     a.cfg.App.AutoLockTimeout,
		ClipboardClearAfter: a.cfg.App.ClipboardClearAfter,
		Logger:              a.logger,
	})

	if err := tui.Run(ctx, ctrl); err != nil {
		a.logger.Err(err).Str("func", "App.Run").Msg("terminal UI failed")
		return fmt.Errorf("run terminal UI: %w", err)
	}

	return nil
}

func (a *App) Close() error {
	a.services.Vault.Lock()

	err := a.services.Journal.Close()
	if closeErr := a.closeLog(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	return err
}

// unlock opens the configured vault, trying the keyring first and then up
// to maxUnlockAttempts typed passwords. A missing vault is created when
// create is set.
func (a *App) unlock(ctx context.Context, create bool) error {
	path := a.cfg.App.VaultPath

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if !create {
			return fmt.Errorf("%w: %s", service.ErrMissingFile, path)
		}
		return a.create(ctx, path)
	}

	if a.openFromKeyring(ctx, path) {
		return nil
	}

	for attempt := 1; ; attempt++ {
		password, err := a.prompter.ReadPassword("Master password: ")
		if err != nil {
			return err
		}

		err = a.services.Vault.Open(ctx, path, password)
		if err == nil {
			a.remember(path, password)
			crypto.Zero(password)
			return nil
		}
		crypto.Zero(password)

		if !errors.Is(err, service.ErrWrongPassword) || attempt == maxUnlockAttempts {
			return err
		}
		a.prompter.Notify(app.MsgWrongPassword)
	}
}

func (a *App) openFromKeyring(ctx context.Context, path string) bool {
	if a.keyring == nil {
		return false
	}

	password, err := a.keyring.Get(path)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			a.logger.Warn().Err(err).Str("func", "App.openFromKeyring").Msg("keyring unavailable")
		}
		return false
	}
	defer crypto.Zero(password)

	err = a.services.Vault.Open(ctx, path, password)
	if err == nil {
		return true
	}

	if errors.Is(err, service.ErrWrongPassword) {
		a.logger.Warn().Str("func", "App.openFromKeyring").Msg("stale keyring password removed")
		if delErr := a.keyring.Delete(path); delErr != nil {
			a.logger.Warn().Err(delErr).Msg("failed to remove keyring password")
		}
	}

	return false
}

func (a *App) create(ctx context.Context, path string) error {
	a.prompter.Notify(fmt.Sprintf("Creating a new vault at %s", path))

	password, err := a.prompter.ReadPassword("New master password: ")
	if err != nil {
		return err
	}
	defer crypto.Zero(password)

	if utf8.RuneCount(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	confirm, err := a.prompter.ReadPassword("Confirm master password: ")
	if err != nil {
		return err
	}
	defer crypto.Zero(confirm)

	if subtle.ConstantTimeCompare(password, confirm) != 1 {
		return ErrPasswordMismatch
	}

	if err = a.services.Vault.Create(ctx, path, password); err != nil {
		return err
	}
	a.remember(path, password)

	return nil
}

func (a *App) remember(path string, password []byte) {
	if a.keyring == nil {
		return
	}
	if err := a.keyring.Set(path, password); err != nil {
		a.logger.Warn().Err(err).Str("func", "App.remember").Msg("failed to store password in keyring")
	}
}
