// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"github.com/spf13/pflag"
)

// Flags holds the persistent command-line flags shared by every passvault
// command.
type Flags struct {
	VaultPath  string
	ConfigPath string
	JournalDSN string
	UseKeyring bool
}

// BindFlags registers the persistent flags on fs.
//
// Flags:
//
//	-v/--vault    vault file path
//	-c/--config   json file path with configs
//	--journal     journal database DSN ("off" disables the journal)
//	--keyring     read and store the master password in the OS keyring
func BindFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVarP(&f.VaultPath, "vault", "v", "", "Vault file path")
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "JSON config file path")
	fs.StringVar(&f.JournalDSN, "journal", "", `Journal database DSN ("off" disables it)`)
	fs.BoolVar(&f.UseKeyring, "keyring", false, "Use the OS keyring for the master password")
}

func (f *Flags) structured() *StructuredConfig {
	cfg := newSourceConfig()
	cfg.App.VaultPath = f.VaultPath
	cfg.App.UseKeyring = f.UseKeyring
	cfg.Storage.Journal.DSN = f.JournalDSN
	cfg.JSONFilePath = f.ConfigPath

	return cfg
}
