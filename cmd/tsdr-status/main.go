// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tsdr-status CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tsdr-status/internal/logging"
	"github.com/pdiddy/tsdr-status/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds the API key sources found at startup.
var loadedSecrets *secrets.Store

// logger is configured from --log-level and --log-format before any command runs.
var logger = zerolog.Nop()

// exitCodeError carries a process exit status for an outcome that has
// already been reported to the user.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// rootCmd is the base command for the tsdr-status CLI.
var rootCmd = &cobra.Command{
	Use:   "tsdr-status",
	Short: "Look up USPTO trademark case status",
	Long: `tsdr-status queries the USPTO Trademark Status and Document Retrieval (TSDR)
API for a single case, downloads the case document, and writes a one-row
summary spreadsheet.

The API key is read from --api-key, TSDR_STATUS_API_KEY, the api_key config
entry, USPTO_API_KEY (environment or .env), or .secrets/uspto-api-key.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log, err := logging.New(os.Stderr, viper.GetString("log_level"), viper.GetString("log_format"))
		if err != nil {
			return err
		}
		logger = log

		s, err := secrets.Load(viper.GetString("secrets_dir"), viper.GetString("env_file"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if names := s.Names(); len(names) > 0 {
			logger.Debug().Strs("secrets", names).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./tsdr-status.yaml or ~/.config/tsdr-status/tsdr-status.yaml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")
	flags.String("secrets-dir", ".secrets", "directory of secret files")
	flags.String("env-file", ".env", "dotenv file checked for USPTO_API_KEY")

	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_format", flags.Lookup("log-format"))
	viper.BindPFlag("secrets_dir", flags.Lookup("secrets-dir"))
	viper.BindPFlag("env_file", flags.Lookup("env-file"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tsdr-status")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tsdr-status"))
		}
	}

	viper.SetEnvPrefix("TSDR_STATUS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
