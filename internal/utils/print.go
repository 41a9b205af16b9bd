// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// PrintTable writes rows as a bordered text table with one column per
// header. Rows shorter than headers are padded with empty cells.
func PrintTable(w io.Writer, headers []string, rows [][]string) {
	cols := len(headers)
	if cols == 0 {
		return
	}

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, r := range rows {
		for i := 0; i < cols && i < len(r); i++ {
			widths[i] = max(widths[i], utf8.RuneCountInString(r[i]))
		}
	}

	sep := func() string {
		var b strings.Builder
		b.WriteString("+")
		for _, width := range widths {
			b.WriteString(strings.Repeat("-", width+2))
			b.WriteString("+")
		}
		return b.String()
	}()

	line := func(cells []string) string {
		var b strings.Builder
		b.WriteString("|")
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(" ")
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(cell)))
			b.WriteString(" |")
		}
		return b.String()
	}

	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, line(headers))
	fmt.Fprintln(w, sep)
	for _, r := range rows {
		fmt.Fprintln(w, line(r))
	}
	fmt.Fprintln(w, sep)
}
