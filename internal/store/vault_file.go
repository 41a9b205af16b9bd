// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileMode is the permission of every file holding vault data or exported
// secrets.
const FileMode os.FileMode = 0o600

// renameFile and syncDirectory are replaced in tests to simulate failures
// around the final rename.
var (
	renameFile    = os.Rename
	syncDirectory = syncDir
)

// VaultFile is the on-disk location of a vault container.
type VaultFile struct {
	path string
}

// NewVaultFile returns a handle for the vault at path. Nothing is touched on
// disk.
func NewVaultFile(path string) *VaultFile {
	return &VaultFile{path: path}
}

// Path returns the vault file path.
func (f *VaultFile) Path() string {
	return f.path
}

// Exists reports whether the vault file is present.
func (f *VaultFile) Exists() (bool, error) {
	_, err := os.Stat(f.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat vault file: %w", err)
}

// Read returns the raw container bytes.
func (f *VaultFile) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read vault file: %w", err)
	}
	return data, nil
}

// Write atomically replaces the vault file with data.
func (f *VaultFile) Write(data []byte) error {
	return WriteFileAtomic(f.path, data, FileMode)
}

// WriteFileAtomic writes data to a temporary file in the target directory,
// syncs it and renames it over path. A failure at any step leaves the
// previous file untouched. Missing parent directories are created with 0700.
//
// The rename is the commit point: an error from the directory sync that
// follows means the new content is in place but may not survive a crash.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	if err = tmpFile.Chmod(perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err = tmpFile.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = renameFile(tmpPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	if err = syncDirectory(dir); err != nil {
		return fmt.Errorf("sync directory %s: %w", dir, err)
	}

	return nil
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
