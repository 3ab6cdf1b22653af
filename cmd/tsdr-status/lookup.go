package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tsdr-status/internal/console"
	"github.com/pdiddy/tsdr-status/internal/lookup"
	"github.com/pdiddy/tsdr-status/internal/summary"
	"github.com/pdiddy/tsdr-status/internal/tsdr"
	"github.com/pdiddy/tsdr-status/pkg/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [case-id]",
	Short: "Fetch one case and write the summary spreadsheet",
	Long: `Lookup fetches the status of a trademark case, downloads its document as
<case-id>_document.pdf, and writes case_summary.xlsx. Without an argument the
case ID is read from standard input.

Exit status: 0 on success, 1 when the case status cannot be fetched, 2 when
no case ID is given, 3 when the summary cannot be written. A failed document
download is reported but does not change the exit status.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLookup,
}

func init() {
	flags := lookupCmd.Flags()
	flags.String("api-key", "", "USPTO API key")
	flags.String("base-url", tsdr.DefaultBaseURL, "TSDR API base URL")
	flags.Duration("timeout", tsdr.DefaultTimeout, "HTTP request timeout")
	flags.Int("max-retries", 1, "retries after an HTTP 429 response")
	flags.Duration("retry-after", tsdr.DefaultRetryAfter, "wait after a 429 without a Retry-After header")
	flags.String("output-dir", ".", "directory for the downloaded case document")
	flags.String("summary", summary.DefaultPath, "summary spreadsheet path")
	flags.Bool("no-document", false, "skip the case document download")
	flags.String("format", "text", "extra output of the fetched record: text or yaml")

	for key, flag := range map[string]string{
		"api_key":      "api-key",
		"base_url":     "base-url",
		"timeout":      "timeout",
		"max_retries":  "max-retries",
		"retry_after":  "retry-after",
		"output_dir":   "output-dir",
		"summary_path": "summary",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(lookupCmd)
}

// tsdrConfig assembles the fetcher configuration from flags, environment,
// config file, and the loaded secrets.
func tsdrConfig() types.TSDRConfig {
	apiKey := viper.GetString("api_key")
	if apiKey == "" && loadedSecrets != nil {
		apiKey = loadedSecrets.APIKey()
	}
	return types.TSDRConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: tsdr.DefaultUserAgent,
		},
		BaseURL:           viper.GetString("base_url"),
		APIKey:            apiKey,
		MaxRetries:        viper.GetInt("max_retries"),
		DefaultRetryAfter: viper.GetDuration("retry_after"),
		OutputDir:         viper.GetString("output_dir"),
	}
}

func runLookup(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "yaml" {
		return fmt.Errorf("invalid --format %q (want text or yaml)", format)
	}
	skipDocument, _ := cmd.Flags().GetBool("no-document")

	var caseID string
	if len(args) == 1 {
		caseID = args[0]
	} else {
		id, err := console.ReadCaseID(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		caseID = id
	}

	cfg := tsdrConfig()
	if cfg.APIKey == "" && strings.TrimSpace(caseID) != "" {
		logger.Warn().Msg("no USPTO API key configured; requests will likely be rejected")
	}

	client := tsdr.NewClient(&http.Client{Timeout: cfg.Timeout}, cfg, logger)
	runner := &lookup.Runner{
		Status:      client,
		Document:    client,
		SummaryPath: viper.GetString("summary_path"),
		Out:         cmd.OutOrStdout(),
		Log:         logger,
	}
	if skipDocument {
		runner.Document = nil
	}

	res := runner.Run(cmd.Context(), caseID)
	if res.Record != nil && format == "yaml" {
		data, err := yaml.Marshal(res.Record)
		if err != nil {
			return fmt.Errorf("marshaling record: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	}

	if code := res.Outcome.ExitCode(); code != 0 {
		return &exitCodeError{code: code}
	}
	return nil
}
