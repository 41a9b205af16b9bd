// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/passvault/internal/client"
	"github.com/MKhiriev/passvault/internal/config"
	"github.com/MKhiriev/passvault/models"
)

type fakeClient struct {
	calls  []string
	err    error
	closed bool
}

func (f *fakeClient) Run(context.Context) error {
	f.calls = append(f.calls, "run")
	return f.err
}

func (f *fakeClient) Export(_ context.Context, format, path string, out io.Writer) error {
	f.calls = append(f.calls, fmt.Sprintf("export %s %s", format, path))
	fmt.Fprintln(out, "exported")
	return f.err
}

func (f *fakeClient) Import(_ context.Context, path string, skip bool, _ io.Writer) error {
	f.calls = append(f.calls, fmt.Sprintf("import %s %t", path, skip))
	return f.err
}

func (f *fakeClient) History(_ context.Context, limit int, _ io.Writer) error {
	f.calls = append(f.calls, fmt.Sprintf("history %d", limit))
	return f.err
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

type harness struct {
	client *fakeClient
	cfg    *config.StructuredConfig
	out    bytes.Buffer
}

func run(t *testing.T, h *harness, args ...string) error {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	root := newRootCmd(models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"),
		func(_ context.Context, cfg *config.StructuredConfig) (client.Client, error) {
			h.cfg = cfg
			return h.client, nil
		})
	root.SetArgs(args)
	root.SetOut(&h.out)
	root.SetErr(&h.out)

	return root.ExecuteContext(context.Background())
}

func TestRoot_RunsTUI(t *testing.T) {
	h := &harness{client: &fakeClient{}}

	require.NoError(t, run(t, h))
	assert.Equal(t, []string{"run"}, h.client.calls)
	assert.True(t, h.client.closed)
}

func TestRoot_RejectsArgs(t *testing.T) {
	h := &harness{client: &fakeClient{}}

	assert.Error(t, run(t, h, "unexpected"))
	assert.Empty(t, h.client.calls)
}

func TestRoot_PersistentFlags(t *testing.T) {
	h := &harness{client: &fakeClient{}}
	vault := filepath.Join(t.TempDir(), "work.pv")

	require.NoError(t, run(t, h, "history", "-v", vault, "--journal", "off", "--keyring"))

	require.NotNil(t, h.cfg)
	assert.Equal(t, vault, h.cfg.App.VaultPath)
	assert.Equal(t, config.JournalDisabled, h.cfg.Storage.Journal.DSN)
	assert.True(t, h.cfg.App.UseKeyring)
}

func TestExportCommand(t *testing.T) {
	h := &harness{client: &fakeClient{}}

	require.NoError(t, run(t, h, "export", "json", "/tmp/backup.json"))
	assert.Equal(t, []string{"export json /tmp/backup.json"}, h.client.calls)
	assert.Equal(t, "exported\n", h.out.String())
}

func TestExportCommand_NeedsTwoArgs(t *testing.T) {
	h := &harness{client: &fakeClient{}}

	assert.Error(t, run(t, h, "export", "json"))
	assert.Empty(t, h.client.calls)
}

func TestImportCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "keep duplicates", args: []string{"import", "in.csv"}, want: "import in.csv false"},
		{name: "skip duplicates", args: []string{"import", "in.csv", "--skip-duplicates"}, want: "import in.csv true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &harness{client: &fakeClient{}}
			require.NoError(t, run(t, h, tt.args...))
			assert.Equal(t, []string{tt.want}, h.client.calls)
		})
	}
}

func TestHistoryCommand_Limit(t *testing.T) {
	h := &harness{client: &fakeClient{}}
	require.NoError(t, run(t, h, "history"))
	assert.Equal(t, []string{"history 20"}, h.client.calls)

	h = &harness{client: &fakeClient{}}
	require.NoError(t, run(t, h, "history", "--limit", "5"))
	assert.Equal(t, []string{"history 5"}, h.client.calls)
}

func TestCommand_PropagatesError(t *testing.T) {
	h := &harness{client: &fakeClient{err: errors.New("boom")}}

	err := run(t, h, "import", "in.csv")
	assert.EqualError(t, err, "boom")
	assert.True(t, h.client.closed)
}

func TestVersionCommand(t *testing.T) {
	h := &harness{client: &fakeClient{}}

	require.NoError(t, run(t, h, "version"))
	assert.Equal(t, "Build version: 1.2.3\nBuild date: 2026-10-01\nBuild commit: abc123\n", h.out.String())
	assert.Empty(t, h.client.calls)
}
