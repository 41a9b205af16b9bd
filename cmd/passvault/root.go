// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/passvault/internal/client"
	"github.com/MKhiriev/passvault/internal/config"
	"github.com/MKhiriev/passvault/models"
)

const (
	ExportCmdExample = `# Back up the whole vault
passvault export json ~/passvault-backup.json

# Export for a browser password manager
passvault export firefox ./logins.csv`

	ImportCmdExample = `# Import a Firefox export, leaving out logins already in the vault
passvault import ./logins.csv --skip-duplicates`
)

type clientFactory func(ctx context.Context, cfg *config.StructuredConfig) (client.Client, error)

func newClient(ctx context.Context, cfg *config.StructuredConfig) (client.Client, error) {
	return client.NewApp(ctx, cfg, client.NewTerminalPrompter())
}

func newRootCmd(info models.AppBuildInfo, factory clientFactory) *cobra.Command {
	var flags config.Flags

	withClient := func(cmd *cobra.Command, fn func(ctx context.Context, c client.Client) error) error {
		cfg, err := config.GetStructuredConfig(&flags)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		c, err := factory(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer c.Close()

		return fn(cmd.Context(), c)
	}

	root := &cobra.Command{
		Use:           "passvault",
		Short:         "Local encrypted password vault",
		Long:          "passvault keeps credentials in a single encrypted file and edits them in a modal terminal UI.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, func(ctx context.Context, c client.Client) error {
				return c.Run(ctx)
			})
		},
	}
	config.BindFlags(root.PersistentFlags(), &flags)

	exportCmd := &cobra.Command{
		Use:     "export <firefox|json|csv> <path>",
		Short:   "Export every entry to a plaintext file",
		Example: ExportCmdExample,
		Args:    cobra.ExactArgs(2),
		ValidArgs: []string{
			string(models.ExportFirefox), string(models.ExportJSON), string(models.ExportCSV),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c client.Client) error {
				return c.Export(ctx, args[0], args[1], cmd.OutOrStdout())
			})
		},
	}

	var skipDuplicates bool
	importCmd := &cobra.Command{
		Use:     "import <path>",
		Short:   "Import entries from a CSV or JSON file",
		Long:    "Detects the file format, prints a preview with the duplicates found and adds the entries to the vault.",
		Example: ImportCmdExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c client.Client) error {
				return c.Import(ctx, args[0], skipDuplicates, cmd.OutOrStdout())
			})
		},
	}
	importCmd.Flags().BoolVar(&skipDuplicates, "skip-duplicates", false, "Do not add entries matching an existing username and URL")

	var limit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent vault operations",
		Long:  "Lists the operation journal and flags plaintext export files that are still on disk.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, func(ctx context.Context, c client.Client) error {
				return c.History(ctx, limit, cmd.OutOrStdout())
			})
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of records to show (0 shows all)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", info.BuildVersion())
			fmt.Fprintf(out, "Build date: %s\n", info.BuildDate())
			fmt.Fprintf(out, "Build commit: %s\n", info.BuildCommit())
		},
	}

	root.AddCommand(exportCmd, importCmd, historyCmd, versionCmd)

	return root
}
