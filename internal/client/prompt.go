// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalPrompter reads passwords from stdin and writes prompts to stderr,
// keeping stdout free for command output. When stdin is not a terminal the
// password is read as a plain line, which allows piping it in scripts.
type TerminalPrompter struct {
	in  *os.File
	out io.Writer
	buf *bufio.Reader
}

func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{in: os.Stdin, out: os.Stderr}
}

func (p *TerminalPrompter) ReadPassword(prompt string) ([]byte, error) {
	fmt.Fprint(p.out, prompt)

	fd := int(p.in.Fd())
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		return password, nil
	}

	if p.buf == nil {
		p.buf = bufio.NewReader(p.in)
	}
	line, err := p.buf.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	return bytes.TrimRight(line, "\r\n"), nil
}

func (p *TerminalPrompter) Notify(msg string) {
	fmt.Fprintln(p.out, msg)
}
