// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaultFile_WriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vault.enc")
	f := NewVaultFile(path)

	exists, err := f.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, f.Write([]byte("first")))
	require.NoError(t, f.Write([]byte("second")))

	exists, err = f.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, FileMode, info.Mode().Perm())
}

// TestWriteFileAtomic_FailedRenameKeepsOldFile verifies that a crash between
// writing the temporary file and replacing the target leaves the previous
// file byte-identical and no temporary files behind.
func TestWriteFileAtomic_FailedRenameKeepsOldFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vault.enc")
	require.NoError(t, WriteFileAtomic(path, []byte("original"), FileMode))

	renameFile = func(string, string) error { return errors.New("simulated crash") }
	t.Cleanup(func() { renameFile = os.Rename })

	err := WriteFileAtomic(path, []byte("replacement"), FileMode)
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileAtomic_DirSyncError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vault.enc")

	syncDirectory = func(string) error { return errors.New("fsync unsupported") }
	t.Cleanup(func() { syncDirectory = syncDir })

	err := WriteFileAtomic(path, []byte("replacement"), FileMode)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync directory")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "replacement", string(data), "the rename already happened")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, FileMode, info.Mode().Perm())
}

func TestVaultFile_ReadMissing(t *testing.T) {
	_, err := NewVaultFile(filepath.Join(t.TempDir(), "nope")).Read()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
