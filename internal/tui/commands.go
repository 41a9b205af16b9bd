// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/passvault/internal/app"
	"github.com/MKhiriev/passvault/internal/service"
	"github.com/MKhiriev/passvault/internal/utils"
	"github.com/MKhiriev/passvault/models"
)

const (
	cmdWrite     = "w"
	cmdQuit      = "q"
	cmdWriteQuit = "wq"
	cmdExit      = "x"
	cmdForceQuit = "q!"
	cmdExport    = "export"
	cmdImport    = "import"

	flagSkipDuplicates = "--skip-duplicates"
)

var commandVocabulary = []string{cmdWrite, cmdQuit, cmdWriteQuit, cmdExit, cmdForceQuit, cmdExport, cmdImport}

var exportFormats = []string{string(models.ExportFirefox), string(models.ExportJSON), string(models.ExportCSV)}

// completion remembers the candidates of the last tab press so that
// repeated presses cycle through them.
type completion struct {
	prefix     string
	candidates []string
	index      int
}

func (c completion) active() bool {
	return len(c.candidates) > 0
}

func (c *Controller) enterCommand(initial string) {
	c.command = initial
	c.complete = completion{}
	c.mode = ModeCommand
}

func (c *Controller) handleCommand(msg tea.KeyMsg) tea.Cmd {
	if !key.Matches(msg, keys.tab) {
		c.complete = completion{}
	}

	switch {
	case key.Matches(msg, keys.back):
		c.command = ""
		c.mode = ModeNormal
	case key.Matches(msg, keys.enter):
		line := c.command
		c.command = ""
		c.mode = ModeNormal
		return c.execute(line)
	case key.Matches(msg, keys.tab):
		c.autocomplete()
	case key.Matches(msg, keys.backspace):
		if c.command == "" {
			c.mode = ModeNormal
			return nil
		}
		c.command = dropLastRune(c.command)
	default:
		if r := typedRunes(msg); len(r) > 0 {
			c.command += string(r)
		}
	}

	return nil
}

// autocomplete completes the command name, or the format token after
// "export ". Each further call selects the next candidate.
func (c *Controller) autocomplete() {
	if c.complete.active() {
		c.complete.index = (c.complete.index + 1) % len(c.complete.candidates)
		c.command = c.complete.prefix + c.complete.candidates[c.complete.index]
		return
	}

	prefix, word, vocabulary := "", c.command, commandVocabulary
	if rest, ok := strings.CutPrefix(c.command, cmdExport+" "); ok && !strings.Contains(rest, " ") {
		prefix, word, vocabulary = cmdExport+" ", rest, exportFormats
	} else if strings.Contains(c.command, " ") {
		return
	}

	var candidates []string
	for _, v := range vocabulary {
		if strings.HasPrefix(v, word) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return
	}

	c.complete = completion{prefix: prefix, candidates: candidates}
	c.command = prefix + candidates[0]
}

// completions returns the candidates being cycled, for rendering.
func (c *Controller) completions() []string {
	return c.complete.candidates
}

func (c *Controller) execute(line string) tea.Cmd {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name, args := fields[0], fields[1:]
	switch name {
	case cmdWrite:
		return c.requestSave(false)
	case cmdWriteQuit, cmdExit:
		return c.requestSave(true)
	case cmdQuit:
		return c.quit(false)
	case cmdForceQuit:
		return c.quit(true)
	case cmdExport:
		return c.export(args)
	case cmdImport:
		return c.importFile(args)
	default:
		return c.setStatus(fmt.Sprintf("%s: %s", app.MsgUnknownCommand, name))
	}
}

// requestSave shows the saving status and defers the save itself to the
// next update, so the status is rendered before the blocking write.
func (c *Controller) requestSave(quit bool) tea.Cmd {
	status := c.setStatus(app.MsgSaving)
	return tea.Batch(status, func() tea.Msg {
		return saveRequestMsg{quit: quit}
	})
}

func (c *Controller) export(args []string) tea.Cmd {
	if len(args) != 2 {
		return c.setStatus(app.MsgExportUsage)
	}

	format, err := service.ParseExportFormat(args[0])
	if err != nil {
		return c.setStatus(humanizeError(err))
	}

	path := utils.ExpandPath(args[1])
	entries := c.vault.List("")
	defer wipeAll(entries)

	if err = c.transfer.Export(c.ctx, entries, format, path); err != nil {
		c.log.Err(err).Str("func", "Controller.export").Str("path", path).Msg("export failed")
		return c.setStatus(humanizeError(err))
	}

	return c.setStatus(fmt.Sprintf("exported %d entries to %s. %s", len(entries), path, app.MsgPlaintextWarning))
}

func (c *Controller) importFile(args []string) tea.Cmd {
	skip := slices.Contains(args, flagSkipDuplicates)
	args = slices.DeleteFunc(slices.Clone(args), func(a string) bool { return a == flagSkipDuplicates })
	if len(args) != 1 {
		return c.setStatus(app.MsgImportUsage)
	}

	path := utils.ExpandPath(args[0])
	preview, err := c.transfer.Preview(c.ctx, path)
	if err != nil {
		return c.setStatus(humanizeError(err))
	}
	defer preview.Wipe()

	result, err := c.transfer.Apply(c.ctx, preview, skip)
	c.refresh()
	if err != nil {
		c.log.Err(err).Str("func", "Controller.importFile").Str("path", path).Msg("import failed")
		return c.setStatus(humanizeError(err))
	}

	return c.setStatus(fmt.Sprintf("imported %d entries (%d duplicates, %d skipped) from %s",
		result.Added, len(preview.Duplicates), result.Skipped, path))
}

func wipeAll(entries []models.Entry) {
	for _, e := range entries {
		e.Password.Wipe()
	}
}
