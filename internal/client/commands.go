// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/MKhiriev/passvault/internal/app"
	"github.com/MKhiriev/passvault/internal/service"
	"github.com/MKhiriev/passvault/internal/utils"
	"github.com/MKhiriev/passvault/models"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func (a *App) Export(ctx context.Context, format, path string, out io.Writer) error {
	ctx = a.logger.WithContext(ctx)

	exportFormat, err := service.ParseExportFormat(format)
	if err != nil {
		return err
	}
	path = utils.ExpandPath(path)

	if err = a.unlock(ctx, false); err != nil {
		return err
	}
	defer a.services.Vault.Lock()

	entries := a.services.Vault.List("")
	defer func() {
		for _, e := range entries {
			e.Password.Wipe()
		}
	}()

	if err = a.services.Transfer.Export(ctx, entries, exportFormat, path); err != nil {
		return err
	}

	fmt.Fprintf(out, "Exported %d entries to %s (%s)\n", len(entries), path, exportFormat)
	fmt.Fprintln(out, app.MsgPlaintextWarning)

	return nil
}

func (a *App) Import(ctx context.Context, path string, skipDuplicates bool, out io.Writer) error {
	ctx = a.logger.WithContext(ctx)
	path = utils.ExpandPath(path)

	if err := a.unlock(ctx, false); err != nil {
		return err
	}
	defer a.services.Vault.Lock()

	preview, err := a.services.Transfer.Preview(ctx, path)
	if err != nil {
		return err
	}
	defer preview.Wipe()

	printPreview(out, preview, skipDuplicates)

	result, err := a.services.Transfer.Apply(ctx, preview, skipDuplicates)
	if err != nil {
		return err
	}

	if result.Added > 0 {
		if err = a.services.Vault.Save(ctx); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Imported %d entries, skipped %d\n", result.Added, result.Skipped)

	return nil
}

func printPreview(out io.Writer, preview models.ImportPreview, skipDuplicates bool) {
	fmt.Fprintf(out, "Format:     %s\n", preview.Format)
	fmt.Fprintf(out, "New:        %d\n", len(preview.Fresh))
	fmt.Fprintf(out, "Duplicates: %d\n", len(preview.Duplicates))
	if preview.Skipped > 0 {
		fmt.Fprintf(out, "Malformed:  %d (skipped)\n", preview.Skipped)
	}

	if len(preview.Duplicates) == 0 {
		return
	}

	rows := make([][]string, 0, len(preview.Duplicates))
	for _, c := range preview.Duplicates {
		rows = append(rows, []string{c.Title, c.Username, c.URL, c.ExistingTitle})
	}
	utils.PrintTable(out, []string{"TITLE", "USERNAME", "URL", "MATCHES"}, rows)

	if skipDuplicates {
		fmt.Fprintln(out, "Duplicates will be skipped.")
	} else {
		fmt.Fprintln(out, "Duplicates will be added as new entries (use --skip-duplicates to skip them).")
	}
}

// History prints the journal, newest first. Export files that still exist
// are flagged since they hold passwords in clear.
func (a *App) History(ctx context.Context, limit int, out io.Writer) error {
	records, err := a.services.Journal.List(a.logger.WithContext(ctx), limit)
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No history recorded.")
		return nil
	}

	rows := make([][]string, 0, len(records))
	lingering := 0
	for _, rec := range records {
		note := ""
		if rec.Kind == models.JournalExport && fileExists(rec.Path) {
			note = "plaintext file still on disk"
			lingering++
		}

		count := strconv.Itoa(rec.Entries)
		if rec.Kind == models.JournalImport {
			count = fmt.Sprintf("+%d / %d skipped", rec.Added, rec.Skipped)
		}

		rows = append(rows, []string{
			rec.At.Local().Format(historyTimeLayout),
			string(rec.Kind),
			rec.Format,
			rec.Path,
			count,
			note,
		})
	}

	utils.PrintTable(out, []string{"TIME", "OPERATION", "FORMAT", "PATH", "ENTRIES", "NOTE"}, rows)
	if lingering > 0 {
		fmt.Fprintf(out, "%d export file(s) still on disk. %s\n", lingering, app.MsgPlaintextWarning)
	}

	return nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
