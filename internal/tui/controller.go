// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/passvault/internal/app"
	"github.com/MKhiriev/passvault/internal/crypto"
	"github.com/MKhiriev/passvault/internal/logger"
	"github.com/MKhiriev/passvault/internal/service"
	"github.com/MKhiriev/passvault/models"
)

// Mode is the interaction mode of the [Controller].
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeInsert
	ModeDetail
	ModeCommand
	ModeLocked
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeSearch:
		return "SEARCH"
	case ModeInsert:
		return "INSERT"
	case ModeDetail:
		return "DETAIL"
	case ModeCommand:
		return "COMMAND"
	case ModeLocked:
		return "LOCKED"
	default:
		return "UNKNOWN"
	}
}

const (
	statusTTL         = 4 * time.Second
	maxAutoLockPeriod = 15 * time.Second
)

// Options tune the session behaviour of a [Controller].
type Options struct {
	// AutoLockTimeout locks the vault after this much idle time. Zero
	// disables auto-lock.
	AutoLockTimeout time.Duration

	// ClipboardClearAfter empties the clipboard this long after a copy.
	// Zero keeps copied values.
	ClipboardClearAfter time.Duration

	Clipboard Clipboard
	Logger    *logger.Logger
}

// Controller is the modal state machine behind the TUI. It owns every
// transient buffer (query, command line, Insert form, unlock password) and
// performs all vault operations synchronously, one key press at a time.
//
// Entries kept for the list carry no passwords; a password is only held by
// the Insert form and by the entry shown in Detail mode.
type Controller struct {
	ctx      context.Context
	vault    service.VaultService
	transfer service.TransferService
	opts     Options
	log      *logger.Logger
	now      func() time.Time

	mode    Mode
	query   string
	entries []models.Entry
	cursor  int

	detail       models.Entry
	detailReveal bool
	form         entryForm
	command      string
	complete     completion
	unlock       []byte

	status    string
	statusSeq int
	copySeq   int
	lastInput time.Time
	quitting  bool
}

// NewController returns a controller for vault. It starts in Normal mode
// when the vault is unlocked and in Locked mode otherwise.
func NewController(ctx context.Context, vault service.VaultService, transfer service.TransferService, opts Options) *Controller {
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	c := &Controller{
		ctx:      ctx,
		vault:    vault,
		transfer: transfer,
		opts:     opts,
		log:      opts.Logger,
		now:      time.Now,
		mode:     ModeLocked,
	}
	c.lastInput = c.now()

	if vault.IsUnlocked() {
		c.mode = ModeNormal
		c.refresh()
	}

	return c
}

// Mode returns the current interaction mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Status returns the transient status message.
func (c *Controller) Status() string {
	return c.status
}

// Quitting reports whether the controller asked the program to exit.
func (c *Controller) Quitting() bool {
	return c.quitting
}

// Init starts the auto-lock timer.
func (c *Controller) Init() tea.Cmd {
	return c.scheduleAutoLock()
}

// Update applies one message and returns the follow-up command.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		c.lastInput = c.now()
		return c.handleKey(msg)

	case saveRequestMsg:
		return c.save(msg.quit)

	case clearStatusMsg:
		if msg.seq == c.statusSeq {
			c.status = ""
		}
		return nil

	case clearClipboardMsg:
		if msg.seq == c.copySeq {
			if err := c.opts.Clipboard.WriteAll(""); err != nil {
				c.log.Warn().Err(err).Msg("failed to clear clipboard")
			}
		}
		return nil

	case autoLockMsg:
		return c.checkAutoLock()
	}

	return nil
}

func (c *Controller) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.interrupt) {
		return c.quit(false)
	}

	switch c.mode {
	case ModeNormal:
		return c.handleNormal(msg)
	case ModeSearch:
		return c.handleSearch(msg)
	case ModeInsert:
		return c.handleInsert(msg)
	case ModeDetail:
		return c.handleDetail(msg)
	case ModeCommand:
		return c.handleCommand(msg)
	case ModeLocked:
		return c.handleLocked(msg)
	}

	return nil
}

// ── Normal ──

func (c *Controller) handleNormal(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.down):
		c.moveCursor(1)
	case key.Matches(msg, keys.up):
		c.moveCursor(-1)
	case key.Matches(msg, keys.top):
		c.cursor = 0
	case key.Matches(msg, keys.bottom):
		c.cursor = max(len(c.entries)-1, 0)

	case key.Matches(msg, keys.search):
		c.mode = ModeSearch
		c.query = ""
		c.refresh()

	case key.Matches(msg, keys.newEntry):
		return c.openForm("")

	case key.Matches(msg, keys.edit):
		e, ok := c.selected()
		if !ok {
			return c.setStatus(app.MsgNothingSelected)
		}
		return c.openForm(e.ID)

	case key.Matches(msg, keys.open):
		return c.openDetail()

	case key.Matches(msg, keys.delete):
		return c.deleteSelected()

	case key.Matches(msg, keys.copyPassword):
		return c.copySelected(true)

	case key.Matches(msg, keys.copyUsername):
		return c.copySelected(false)

	case key.Matches(msg, keys.command):
		c.enterCommand("")

	case key.Matches(msg, keys.quit):
		c.enterCommand("q")

	case key.Matches(msg, keys.back):
		if c.query != "" {
			c.query = ""
			c.refresh()
		}

	case key.Matches(msg, keys.lock):
		return c.lock()
	}

	return nil
}

func (c *Controller) moveCursor(delta int) {
	if len(c.entries) == 0 {
		c.cursor = 0
		return
	}
	c.cursor = min(max(c.cursor+delta, 0), len(c.entries)-1)
}

func (c *Controller) selected() (models.Entry, bool) {
	if c.cursor < 0 || c.cursor >= len(c.entries) {
		return models.Entry{}, false
	}
	return c.entries[c.cursor], true
}

// refresh recomputes the visible list from the vault. Passwords are
// dropped from the listed copies.
func (c *Controller) refresh() {
	entries := c.vault.List(c.query)
	for i := range entries {
		entries[i].Password.Wipe()
		entries[i].Password = nil
	}
	c.entries = entries

	if c.cursor >= len(c.entries) {
		c.cursor = len(c.entries) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

func (c *Controller) selectID(id string) {
	if idx := slices.IndexFunc(c.entries, func(e models.Entry) bool { return e.ID == id }); idx >= 0 {
		c.cursor = idx
	}
}

func (c *Controller) deleteSelected() tea.Cmd {
	e, ok := c.selected()
	if !ok {
		return c.setStatus(app.MsgNothingSelected)
	}

	if err := c.vault.Remove(c.ctx, e.ID); err != nil {
		c.log.Err(err).Str("func", "Controller.deleteSelected").Msg("failed to remove entry")
		return c.setStatus(humanizeError(err))
	}
	c.refresh()

	return c.setStatus(fmt.Sprintf("deleted %q", e.Title))
}

func (c *Controller) copySelected(password bool) tea.Cmd {
	e, ok := c.selected()
	if !ok {
		return c.setStatus(app.MsgNothingSelected)
	}

	if !password {
		return c.copyToClipboard(e.Username, app.MsgUsernameCopied)
	}

	full, err := c.vault.Get(e.ID)
	if err != nil {
		return c.setStatus(humanizeError(err))
	}
	defer full.Password.Wipe()

	return c.copyToClipboard(full.Password.String(), app.MsgPasswordCopied)
}

func (c *Controller) copyToClipboard(value, done string) tea.Cmd {
	if err := c.opts.Clipboard.WriteAll(value); err != nil {
		c.log.Warn().Err(err).Msg("failed to write clipboard")
		return c.setStatus(app.MsgClipboardUnavailable)
	}

	c.copySeq++
	status := c.setStatus(done)
	if c.opts.ClipboardClearAfter <= 0 {
		return status
	}

	seq := c.copySeq
	return tea.Batch(status, tea.Tick(c.opts.ClipboardClearAfter, func(time.Time) tea.Msg {
		return clearClipboardMsg{seq: seq}
	}))
}

// ── Search ──

func (c *Controller) handleSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.enter):
		c.mode = ModeNormal
	case key.Matches(msg, keys.back):
		c.query = ""
		c.mode = ModeNormal
		c.refresh()
	case key.Matches(msg, keys.backspace):
		c.query = dropLastRune(c.query)
		c.cursor = 0
		c.refresh()
	default:
		if r := typedRunes(msg); len(r) > 0 {
			c.query += string(r)
			c.cursor = 0
			c.refresh()
		}
	}

	return nil
}

// ── Insert ──

func (c *Controller) openForm(id string) tea.Cmd {
	var (
		form entryForm
		cmd  tea.Cmd
	)

	if id == "" {
		form, cmd = newEntryForm(nil)
	} else {
		e, err := c.vault.Get(id)
		if err != nil {
			return c.setStatus(humanizeError(err))
		}
		form, cmd = newEntryForm(&e)
		e.Password.Wipe()
	}

	c.form = form
	c.mode = ModeInsert
	return cmd
}

func (c *Controller) handleInsert(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.back):
		c.form.reset()
		c.mode = ModeNormal
		return nil
	case key.Matches(msg, keys.save):
		return c.saveForm()
	case key.Matches(msg, keys.tab):
		return c.form.next()
	case key.Matches(msg, keys.backtab):
		return c.form.prev()
	case key.Matches(msg, keys.reveal):
		c.form.toggleReveal()
		return nil
	case key.Matches(msg, keys.generate):
		if c.form.focus != fieldPassword {
			return nil
		}
		pw, err := crypto.GeneratePassword(crypto.DefaultPasswordLength)
		if err != nil {
			return c.setStatus(humanizeError(err))
		}
		c.form.setValue(fieldPassword, string(pw))
		crypto.Zero(pw)
		return nil
	}

	return c.form.update(msg)
}

func (c *Controller) saveForm() tea.Cmd {
	draft := c.form.draft()
	defer draft.Password.Wipe()

	id := c.form.editingID
	var err error
	if id == "" {
		id, err = c.vault.Add(c.ctx, draft)
	} else {
		err = c.vault.Update(c.ctx, id, draft)
	}

	if errors.Is(err, service.ErrInvalidDraft) {
		return c.setStatus(humanizeError(err))
	}

	editing := c.form.editingID != ""
	c.form.reset()
	c.mode = ModeNormal

	if err != nil {
		c.log.Err(err).Str("func", "Controller.saveForm").Msg("failed to store entry")
		return c.setStatus(humanizeError(err))
	}

	c.refresh()
	c.selectID(id)

	if editing {
		return c.setStatus(fmt.Sprintf("updated %q", draft.Title))
	}
	return c.setStatus(fmt.Sprintf("added %q", draft.Title))
}

// ── Detail ──

func (c *Controller) openDetail() tea.Cmd {
	e, ok := c.selected()
	if !ok {
		return c.setStatus(app.MsgNothingSelected)
	}

	full, err := c.vault.Get(e.ID)
	if err != nil {
		return c.setStatus(humanizeError(err))
	}

	c.detail = full
	c.detailReveal = false
	c.mode = ModeDetail
	return nil
}

func (c *Controller) closeDetail() {
	c.detail.Password.Wipe()
	c.detail = models.Entry{}
	c.detailReveal = false
	c.mode = ModeNormal
}

func (c *Controller) handleDetail(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.quit), key.Matches(msg, keys.back):
		c.closeDetail()
	case key.Matches(msg, keys.edit):
		id := c.detail.ID
		c.closeDetail()
		return c.openForm(id)
	case key.Matches(msg, keys.copyPassword):
		return c.copyToClipboard(c.detail.Password.String(), app.MsgPasswordCopied)
	case key.Matches(msg, keys.copyUsername):
		return c.copyToClipboard(c.detail.Username, app.MsgUsernameCopied)
	case key.Matches(msg, keys.reveal):
		c.detailReveal = !c.detailReveal
	}

	return nil
}

// ── Locked ──

func (c *Controller) handleLocked(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.enter):
		return c.tryUnlock()
	case key.Matches(msg, keys.back):
		crypto.Zero(c.unlock)
		c.unlock = nil
	case key.Matches(msg, keys.backspace):
		if _, size := utf8.DecodeLastRune(c.unlock); size > 0 {
			crypto.Zero(c.unlock[len(c.unlock)-size:])
			c.unlock = c.unlock[:len(c.unlock)-size]
		}
	default:
		for _, r := range typedRunes(msg) {
			c.unlock = utf8.AppendRune(c.unlock, r)
		}
	}

	return nil
}

func (c *Controller) tryUnlock() tea.Cmd {
	password := c.unlock
	c.unlock = nil
	defer crypto.Zero(password)

	if err := c.vault.Unlock(c.ctx, password); err != nil {
		return c.setStatus(humanizeError(err))
	}

	c.mode = ModeNormal
	c.cursor = 0
	c.refresh()
	return c.setStatus(fmt.Sprintf("unlocked %d entries", c.vault.Len()))
}

// lock saves pending changes, then wipes every buffer and locks the vault.
// The vault stays unlocked when the save fails.
func (c *Controller) lock() tea.Cmd {
	if c.mode == ModeLocked {
		return nil
	}

	if c.vault.Dirty() {
		if err := c.vault.Save(c.ctx); err != nil {
			c.log.Err(err).Str("func", "Controller.lock").Msg("failed to save before lock")
			return c.setStatus(app.MsgLockFailed)
		}
	}

	if c.form.active() {
		c.form.reset()
	}
	c.detail.Password.Wipe()
	c.detail = models.Entry{}
	c.entries = nil
	c.query = ""
	c.command = ""
	c.complete = completion{}
	c.cursor = 0

	c.vault.Lock()
	c.mode = ModeLocked

	return c.setStatus(app.MsgVaultLocked)
}

func (c *Controller) scheduleAutoLock() tea.Cmd {
	if c.opts.AutoLockTimeout <= 0 {
		return nil
	}

	return tea.Tick(min(c.opts.AutoLockTimeout, maxAutoLockPeriod), func(time.Time) tea.Msg {
		return autoLockMsg{}
	})
}

func (c *Controller) checkAutoLock() tea.Cmd {
	next := c.scheduleAutoLock()
	if c.mode == ModeLocked || c.opts.AutoLockTimeout <= 0 {
		return next
	}
	if c.now().Sub(c.lastInput) < c.opts.AutoLockTimeout {
		return next
	}

	c.log.Info().Str("func", "Controller.checkAutoLock").Msg("vault auto-locked")
	return tea.Batch(c.lock(), next)
}

// ── helpers ──

func (c *Controller) quit(force bool) tea.Cmd {
	if !force && c.vault.Dirty() {
		if c.form.active() {
			c.form.reset()
		}
		if c.mode == ModeDetail {
			c.closeDetail()
		}
		c.mode = ModeNormal
		return c.setStatus(app.MsgUnsavedChanges)
	}

	c.quitting = true
	return tea.Quit
}

func (c *Controller) save(quit bool) tea.Cmd {
	if err := c.vault.Save(c.ctx); err != nil {
		return c.setStatus(humanizeError(err))
	}

	if quit {
		c.quitting = true
		return tea.Quit
	}

	return c.setStatus(app.MsgSaved)
}

// setStatus shows msg until it is replaced or statusTTL passes.
func (c *Controller) setStatus(msg string) tea.Cmd {
	c.status = msg
	c.statusSeq++

	seq := c.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func dropLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
