// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	a := g.Generate()
	b := g.Generate()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "exports", "out.csv"), ExpandPath("~/exports/out.csv"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/tmp/x.json", ExpandPath(" /tmp//x.json "))
	assert.Equal(t, "~user/x", ExpandPath("~user/x"))
	assert.Equal(t, "", ExpandPath("  "))
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	assert.Equal(t, "/data/passvault", DefaultDataDir())

	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, ".local", "share", "passvault"), DefaultDataDir())
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, []string{"KIND", "PATH"}, [][]string{
		{"export", "/tmp/out.csv"},
		{"save"},
	})

	want := "+--------+--------------+\n" +
		"| KIND   | PATH         |\n" +
		"+--------+--------------+\n" +
		"| export | /tmp/out.csv |\n" +
		"| save   |              |\n" +
		"+--------+--------------+\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintTable_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil, [][]string{{"x"}})
	assert.Empty(t, buf.String())
}
