// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the passvault application runtime.
//
// It wires configuration, file logging, the operation journal, the vault and
// transfer services and the OS keyring into one process lifecycle, unlocks
// (or creates) the vault and then either runs the terminal UI or performs a
// single export, import or history command.
package client
