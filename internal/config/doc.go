// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for passvault.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for every non-zero field):
//  1. Command-line flags
//  2. Environment variables (prefixed with PASSVAULT_)
//  3. JSON config file
//
// Fields left empty by every source receive defaults rooted in
// [utils.DefaultDataDir]. The main entry point is [GetStructuredConfig].
package config
