// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_Matches(t *testing.T) {
	e := Entry{
		Title:    "GitHub",
		URL:      "https://github.com",
		Username: "octocat",
		Notes:    "recovery codes in drawer",
		Tags:     []string{"work", "Code"},
	}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "empty query", query: "", want: true},
		{name: "blank query", query: "   ", want: true},
		{name: "title case insensitive", query: "GIT", want: true},
		{name: "url", query: "github.com", want: true},
		{name: "username", query: "octo", want: true},
		{name: "tag", query: "code", want: true},
		{name: "notes are not searched", query: "drawer", want: false},
		{name: "no match", query: "gitlab", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Matches(tt.query))
		})
	}
}

func TestEntry_CloneIsIndependent(t *testing.T) {
	e := Entry{ID: "1", Password: NewSecret("hunter2"), Tags: []string{"a"}}

	c := e.Clone()
	c.Password.Wipe()
	c.Tags[0] = "b"

	assert.Equal(t, "hunter2", e.Password.String())
	assert.Equal(t, []string{"a"}, e.Tags)
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"work", "dev", "misc"}, ParseTags(" work, dev ;misc,, "))
	assert.Nil(t, ParseTags(""))
	assert.Nil(t, ParseTags(" , ;"))
}

func TestSecret_JSON(t *testing.T) {
	type wrapper struct {
		Password Secret `json:"password"`
	}

	data, err := json.Marshal(wrapper{Password: NewSecret(`p"ss`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"password":"p\"ss"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal(data, &w))
	assert.Equal(t, `p"ss`, w.Password.String())
}

func TestSecret_Wipe(t *testing.T) {
	s := NewSecret("abc")
	s.Wipe()

	assert.Equal(t, Secret{0, 0, 0}, s)
	assert.False(t, s.IsEmpty())
	assert.True(t, Secret(nil).IsEmpty())
}

func TestImportPreview_Total(t *testing.T) {
	p := ImportPreview{
		Fresh:      []ImportCandidate{{}, {}},
		Duplicates: []ImportCandidate{{}},
		Skipped:    4,
	}

	assert.Equal(t, 3, p.Total())
}
