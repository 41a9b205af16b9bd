// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/passvault/models"
)

// Insert mode fields in focus order.
const (
	fieldTitle = iota
	fieldURL
	fieldUsername
	fieldPassword
	fieldNotes
	fieldTags
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "URL", "Username", "Password", "Notes", "Tags"}

const (
	formWidth   = 48
	notesHeight = 4
)

// entryForm is the Insert mode buffer. editingID is empty for a new entry.
//
// The widgets rewrite tabs (and, for single-line inputs, newlines) when a
// value is loaded, so a field that was never edited keeps its loaded value
// verbatim instead of whatever the widget displays.
type entryForm struct {
	inputs    []textinput.Model // indexed by field; the Notes slot is unused
	notes     textarea.Model
	loaded    [fieldCount]string
	edited    [fieldCount]bool
	focus     int
	editingID string
	reveal    bool
}

func newEntryForm(e *models.Entry) (entryForm, tea.Cmd) {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Prompt = ""
		inputs[i].Width = formWidth
	}
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'

	notes := textarea.New()
	notes.Prompt = ""
	notes.ShowLineNumbers = false
	notes.SetWidth(formWidth)
	notes.SetHeight(notesHeight)

	f := entryForm{inputs: inputs, notes: notes}
	if e != nil {
		f.editingID = e.ID
		f.loaded = [fieldCount]string{
			fieldTitle:    e.Title,
			fieldURL:      e.URL,
			fieldUsername: e.Username,
			fieldPassword: e.Password.String(),
			fieldNotes:    e.Notes,
			fieldTags:     strings.Join(e.Tags, ", "),
		}
		for i, v := range f.loaded {
			f.load(i, v)
		}
	}

	return f, f.inputs[fieldTitle].Focus()
}

func (f *entryForm) active() bool {
	return len(f.inputs) > 0
}

func (f *entryForm) load(field int, v string) {
	if field == fieldNotes {
		f.notes.SetValue(v)
		return
	}
	f.inputs[field].SetValue(v)
}

func (f *entryForm) shown(field int) string {
	if field == fieldNotes {
		return f.notes.Value()
	}
	return f.inputs[field].Value()
}

func (f *entryForm) setFocus(i int) tea.Cmd {
	if f.focus == fieldNotes {
		f.notes.Blur()
	} else {
		f.inputs[f.focus].Blur()
	}

	f.focus = (i + fieldCount) % fieldCount
	if f.focus == fieldNotes {
		return f.notes.Focus()
	}
	return f.inputs[f.focus].Focus()
}

func (f *entryForm) next() tea.Cmd {
	return f.setFocus(f.focus + 1)
}

func (f *entryForm) prev() tea.Cmd {
	return f.setFocus(f.focus - 1)
}

// update feeds msg to the focused widget and marks the field edited once
// its text changes.
func (f *entryForm) update(msg tea.Msg) tea.Cmd {
	before := f.shown(f.focus)

	var cmd tea.Cmd
	if f.focus == fieldNotes {
		f.notes, cmd = f.notes.Update(msg)
	} else {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}

	if f.shown(f.focus) != before {
		f.edited[f.focus] = true
	}
	return cmd
}

// value is what a save stores for field.
func (f *entryForm) value(field int) string {
	if f.editingID != "" && !f.edited[field] {
		return f.loaded[field]
	}
	return f.shown(field)
}

func (f *entryForm) setValue(field int, v string) {
	f.load(field, v)
	f.edited[field] = true
}

func (f *entryForm) view(field int) string {
	if field == fieldNotes {
		return f.notes.View()
	}
	return f.inputs[field].View()
}

func (f *entryForm) toggleReveal() {
	f.reveal = !f.reveal
	if f.reveal {
		f.inputs[fieldPassword].EchoMode = textinput.EchoNormal
	} else {
		f.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	}
}

// draft builds an entry draft from the buffer. The caller wipes the
// draft password.
func (f *entryForm) draft() models.EntryDraft {
	return models.EntryDraft{
		Title:    f.value(fieldTitle),
		URL:      f.value(fieldURL),
		Username: f.value(fieldUsername),
		Password: models.NewSecret(f.value(fieldPassword)),
		Notes:    f.value(fieldNotes),
		Tags:     models.ParseTags(f.value(fieldTags)),
	}
}

// reset drops the buffer, including the password.
func (f *entryForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.loaded[fieldPassword] = ""
	*f = entryForm{}
}
