// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/MKhiriev/passvault/internal/app"
	"github.com/MKhiriev/passvault/internal/config"
	"github.com/MKhiriev/passvault/internal/keyring"
	"github.com/MKhiriev/passvault/internal/service"
	"github.com/MKhiriev/passvault/models"
)

const testPassword = "correct horse battery"

type fakePrompter struct {
	answers  []string
	prompts  []string
	notified []string
}

func (p *fakePrompter) ReadPassword(prompt string) ([]byte, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.answers) == 0 {
		return nil, errors.New("no more answers")
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return []byte(answer), nil
}

func (p *fakePrompter) Notify(msg string) {
	p.notified = append(p.notified, msg)
}

func testConfig(t *testing.T, dir string) *config.StructuredConfig {
	t.Helper()

	var cfg config.StructuredConfig
	cfg.App.VaultPath = filepath.Join(dir, "vault.pv")
	cfg.Crypto.Iterations = 1
	cfg.Crypto.MemoryKiB = 64
	cfg.Crypto.Parallelism = 1
	cfg.Storage.Journal.DSN = filepath.Join(dir, "journal.db")
	cfg.Log.Path = filepath.Join(dir, "passvault.log")
	cfg.Log.Level = "debug"

	return &cfg
}

func newTestApp(t *testing.T, cfg *config.StructuredConfig, answers ...string) (*App, *fakePrompter) {
	t.Helper()

	p := &fakePrompter{answers: answers}
	a, err := NewApp(context.Background(), cfg, p)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return a, p
}

// seedVault creates the configured vault with two entries.
func seedVault(t *testing.T, cfg *config.StructuredConfig) {
	t.Helper()
	ctx := context.Background()

	a, _ := newTestApp(t, cfg, testPassword, testPassword)
	require.NoError(t, a.unlock(ctx, true))

	for _, d := range []models.EntryDraft{
		{Title: "GitHub", URL: "https://github.com", Username: "alice", Password: models.NewSecret("gh-secret"), Notes: "2fa on"},
		{Title: "Bank", URL: "https://bank.example", Username: "alice", Password: models.NewSecret("b@nk"), Tags: []string{"money"}},
	} {
		_, err := a.services.Vault.Add(ctx, d)
		require.NoError(t, err)
	}
	require.NoError(t, a.services.Vault.Save(ctx))
	require.NoError(t, a.Close())
}

func TestNewApp_NilConfig(t *testing.T) {
	_, err := NewApp(context.Background(), nil, &fakePrompter{})
	assert.Error(t, err)
}

func TestNewApp_JournalDisabled(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	cfg.Storage.Journal.DSN = config.JournalDisabled

	a, _ := newTestApp(t, cfg)

	var out bytes.Buffer
	require.NoError(t, a.History(context.Background(), 10, &out))
	assert.Equal(t, "No history recorded.\n", out.String())
	_, err := os.Stat(filepath.Join(filepath.Dir(cfg.App.VaultPath), "journal.db"))
	assert.True(t, os.IsNotExist(err))
}

func TestUnlock_CreatesMissingVault(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	a, p := newTestApp(t, cfg, testPassword, testPassword)

	require.NoError(t, a.unlock(context.Background(), true))

	assert.True(t, a.services.Vault.IsUnlocked())
	info, err := os.Stat(cfg.App.VaultPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Equal(t, []string{"New master password: ", "Confirm master password: "}, p.prompts)
}

func TestUnlock_CreateRejectsBadPasswords(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		wantErr error
	}{
		{name: "too short", answers: []string{"short"}, wantErr: ErrPasswordTooShort},
		{name: "mismatch", answers: []string{testPassword, testPassword + "!"}, wantErr: ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, t.TempDir())
			a, _ := newTestApp(t, cfg, tt.answers...)

			err := a.unlock(context.Background(), true)
			assert.ErrorIs(t, err, tt.wantErr)

			_, statErr := os.Stat(cfg.App.VaultPath)
			assert.True(t, os.IsNotExist(statErr), "no vault is written")
		})
	}
}

func TestUnlock_MissingVaultWithoutCreate(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	a, p := newTestApp(t, cfg)

	err := a.unlock(context.Background(), false)
	assert.ErrorIs(t, err, service.ErrMissingFile)
	assert.Empty(t, p.prompts)
}

func TestUnlock_RetriesWrongPassword(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	seedVault(t, cfg)

	a, p := newTestApp(t, cfg, "nope", "still nope", testPassword)
	require.NoError(t, a.unlock(context.Background(), false))

	assert.Equal(t, 2, a.services.Vault.Len())
	assert.Equal(t, []string{app.MsgWrongPassword, app.MsgWrongPassword}, p.notified)
}

func TestUnlock_GivesUpAfterMaxAttempts(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	seedVault(t, cfg)

	a, p := newTestApp(t, cfg, "a", "b", "c", testPassword)
	err := a.unlock(context.Background(), false)

	assert.ErrorIs(t, err, service.ErrWrongPassword)
	assert.Len(t, p.prompts, maxUnlockAttempts)
	assert.False(t, a.services.Vault.IsUnlocked())
}

func TestUnlock_Keyring(t *testing.T) {
	gokeyring.MockInit()

	cfg := testConfig(t, t.TempDir())
	cfg.App.UseKeyring = true

	first, _ := newTestApp(t, cfg, testPassword, testPassword)
	require.NoError(t, first.unlock(context.Background(), true))
	require.NoError(t, first.Close())

	second, p := newTestApp(t, cfg)
	require.NoError(t, second.unlock(context.Background(), false))
	assert.Empty(t, p.prompts, "password comes from the keyring")
}

func TestUnlock_StaleKeyringPassword(t *testing.T) {
	gokeyring.MockInit()

	cfg := testConfig(t, t.TempDir())
	seedVault(t, cfg)

	store := keyring.NewStore()
	require.NoError(t, store.Set(cfg.App.VaultPath, []byte("outdated")))

	cfg.App.UseKeyring = true
	a, p := newTestApp(t, cfg, testPassword)
	require.NoError(t, a.unlock(context.Background(), false))

	assert.Len(t, p.prompts, 1)
	stored, err := store.Get(cfg.App.VaultPath)
	require.NoError(t, err)
	assert.Equal(t, testPassword, string(stored), "the typed password replaces the stale one")
}

func TestUnlock_KeyringUnavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no secret service"))

	cfg := testConfig(t, t.TempDir())
	seedVault(t, cfg)
	cfg.App.UseKeyring = true

	a, p := newTestApp(t, cfg, testPassword)
	require.NoError(t, a.unlock(context.Background(), false))
	assert.Len(t, p.prompts, 1)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	seedVault(t, cfg)

	a, _ := newTestApp(t, cfg, testPassword)
	path := filepath.Join(dir, "out.csv")

	var out bytes.Buffer
	require.NoError(t, a.Export(context.Background(), "firefox", path, &out))

	assert.Contains(t, out.String(), "Exported 2 entries to "+path)
	assert.Contains(t, out.String(), app.MsgPlaintextWarning)
	assert.False(t, a.services.Vault.IsUnlocked(), "vault is locked again")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gh-secret")
}

func TestExport_UnknownFormatFailsBeforePrompt(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	seedVault(t, cfg)

	a, p := newTestApp(t, cfg, testPassword)
	err := a.Export(context.Background(), "xml", "out.xml", &bytes.Buffer{})

	assert.ErrorIs(t, err, service.ErrUnknownExportFormat)
	assert.Empty(t, p.prompts)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	srcDir, dstDir := t.TempDir(), t.TempDir()

	src := testConfig(t, srcDir)
	seedVault(t, src)
	backup := filepath.Join(srcDir, "backup.json")

	exporter, _ := newTestApp(t, src, testPassword)
	require.NoError(t, exporter.Export(ctx, "json", backup, &bytes.Buffer{}))

	dst := testConfig(t, dstDir)
	creator, _ := newTestApp(t, dst, testPassword, testPassword)
	require.NoError(t, creator.unlock(ctx, true))
	require.NoError(t, creator.Close())

	importer, _ := newTestApp(t, dst, testPassword)
	var out bytes.Buffer
	require.NoError(t, importer.Import(ctx, backup, false, &out))
	assert.Contains(t, out.String(), "New:        2")
	assert.Contains(t, out.String(), "Duplicates: 0")
	assert.Contains(t, out.String(), "Imported 2 entries, skipped 0")

	check, _ := newTestApp(t, dst, testPassword)
	require.NoError(t, check.unlock(ctx, false))
	entries := check.services.Vault.List("")
	require.Len(t, entries, 2)
	assert.Equal(t, "GitHub", entries[0].Title)
	assert.Equal(t, "gh-secret", entries[0].Password.String())
	assert.Equal(t, "2fa on", entries[0].Notes)
	assert.Equal(t, []string{"money"}, entries[1].Tags)
}

func TestImport_SkipDuplicates(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	seedVault(t, cfg)

	path := filepath.Join(dir, "import.csv")
	csv := "url,username,password\n" +
		"https://github.com/,ALICE,other\n" +
		"https://new.example,bob,secret\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	a, _ := newTestApp(t, cfg, testPassword)
	var out bytes.Buffer
	require.NoError(t, a.Import(ctx, path, true, &out))

	assert.Contains(t, out.String(), "Duplicates: 1")
	assert.Contains(t, out.String(), "GitHub", "the matching entry is listed")
	assert.Contains(t, out.String(), "Duplicates will be skipped.")
	assert.Contains(t, out.String(), "Imported 1 entries, skipped 1")

	check, _ := newTestApp(t, cfg, testPassword)
	require.NoError(t, check.unlock(ctx, false))
	assert.Equal(t, 3, check.services.Vault.Len())
}

func TestImport_UnrecognizedFormat(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	seedVault(t, cfg)

	path := filepath.Join(dir, "notes.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o600))

	a, _ := newTestApp(t, cfg, testPassword)
	err := a.Import(context.Background(), path, false, &bytes.Buffer{})
	assert.ErrorIs(t, err, service.ErrUnrecognizedFormat)
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	seedVault(t, cfg)

	kept := filepath.Join(dir, "kept.csv")
	removed := filepath.Join(dir, "removed.json")

	a, _ := newTestApp(t, cfg, testPassword, testPassword)
	require.NoError(t, a.Export(ctx, "csv", kept, &bytes.Buffer{}))
	require.NoError(t, a.Export(ctx, "json", removed, &bytes.Buffer{}))
	require.NoError(t, os.Remove(removed))

	var out bytes.Buffer
	require.NoError(t, a.History(ctx, 0, &out))

	text := out.String()
	assert.Contains(t, text, "create")
	assert.Contains(t, text, "export")
	assert.Contains(t, text, kept)
	assert.Contains(t, text, removed)
	assert.Contains(t, text, "1 export file(s) still on disk")

	out.Reset()
	require.NoError(t, a.History(ctx, 1, &out))
	assert.Contains(t, out.String(), removed, "newest record first")
	assert.NotContains(t, out.String(), kept)
}
