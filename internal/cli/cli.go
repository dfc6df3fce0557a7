// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cli // import "github.com/citizencage/drupal-8-twig-helpers/internal/cli"

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/citizencage/drupal-8-twig-helpers/internal/cli/logger"
	"github.com/citizencage/drupal-8-twig-helpers/internal/config"
	"github.com/citizencage/drupal-8-twig-helpers/internal/storage"
	"github.com/citizencage/drupal-8-twig-helpers/internal/version"
)

var (
	flagConfigFile string
	flagDataFile   string
	flagDebugMode  bool

	logCloser io.Closer
)

var Cmd = cobra.Command{
	Use:   "projecthelper",
	Short: "Presentation helpers of the Drupal site theme.",
	Long: `Presentation helpers of the Drupal site theme.

Terms, path aliases and nodes are read from PostgreSQL database or, with
SITE_DATA_FILE or --data, from YAML export of the site content.`,
	Version: version.Version,

	PersistentPreRunE: persistentPreRunE,

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

var configDumpCmd = cobra.Command{
	Use:   "config-dump",
	Short: "Print parsed configuration values",
	Args:  cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), config.Opts)
	},
}

var migrateCmd = cobra.Command{
	Use:   "migrate",
	Short: "Run SQL migrations",
	Args:  cobra.ExactArgs(0),

	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorage(cmd.Context(),
			func(ctx context.Context, store *storage.Storage) error {
				return store.Migrate(ctx)
			})
	},
}

func init() {
	Cmd.PersistentFlags().StringVarP(&flagConfigFile, "config-file", "c", "",
		"Path to .env configuration file")
	Cmd.PersistentFlags().StringVarP(&flagDataFile, "data", "", "",
		"Path to YAML site data, overrides SITE_DATA_FILE")
	Cmd.PersistentFlags().BoolVarP(&flagDebugMode, "debug", "d", false,
		"Show debug logs")

	Cmd.AddCommand(&commaTermsCmd)
	Cmd.AddCommand(&configDumpCmd)
	Cmd.AddCommand(&formatPhoneCmd)
	Cmd.AddCommand(&infoCmd)
	Cmd.AddCommand(&migrateCmd)
	Cmd.AddCommand(&monthYearCmd)
	Cmd.AddCommand(&randHashCmd)
	Cmd.AddCommand(&renderCmd)
	Cmd.AddCommand(&statsCmd)
	Cmd.AddCommand(&termAliasCmd)
	Cmd.AddCommand(&termFromAliasCmd)
	Cmd.AddCommand(&termsCmd)
	Cmd.AddCommand(&tidCmd)
	Cmd.AddCommand(&truncateCmd)
	Cmd.AddCommand(&videoEmbedCmd)
}

func persistentPreRunE(cmd *cobra.Command, args []string) error {
	// Don't show usage on app errors.
	// https://github.com/spf13/cobra/issues/340#issuecomment-378726225
	cmd.SilenceUsage = true

	if err := config.Load(flagConfigFile); err != nil {
		return err
	} else if flagDebugMode {
		config.Opts.SetLogLevel("debug")
	}

	if flagDataFile != "" {
		if _, err := os.Stat(flagDataFile); err != nil {
			return fmt.Errorf("site data: %w", err)
		}
		config.Opts.SetSiteDataFile(flagDataFile)
	}

	closer, err := logger.InitializeDefaultLogger()
	if err != nil {
		return err
	}
	logCloser = closer
	return nil
}

func Execute() {
	if err := Cmd.ExecuteContext(context.Background()); err != nil {
		slog.Debug("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
