// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the vault codec. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrFormat is returned when a container or payload cannot be decoded or
	// violates the vault format (missing fields, unknown algorithms,
	// duplicate entry IDs).
	ErrFormat = errors.New("invalid vault format")

	// ErrUnsupportedVersion is returned when a container was written by a
	// newer format version. It wraps [ErrFormat]; newer files are never read
	// on a best-effort basis.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrFormat)
)

// Journal database errors. These are returned (or wrapped) by the journal
// repository when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement or query
	// against the journal database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when a result row cannot be scanned.
	ErrScanningRow = errors.New("error scanning row")
)
