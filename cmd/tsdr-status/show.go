package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tsdr-status/internal/summary"
	"github.com/pdiddy/tsdr-status/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show [summary.xlsx]",
	Short: "Print the records stored in a summary spreadsheet",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().String("format", "table", "output format: table or yaml")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	path := summary.DefaultPath
	if len(args) == 1 {
		path = args[0]
	}
	format, _ := cmd.Flags().GetString("format")

	records, err := summary.Read(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "yaml":
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("marshaling records: %w", err)
		}
		fmt.Fprint(out, string(data))
	case "table":
		for _, rec := range records {
			fmt.Fprintln(out, renderRecord(rec))
		}
	default:
		return fmt.Errorf("invalid --format %q (want table or yaml)", format)
	}
	return nil
}

// renderRecord lays out one record as a two-column field/value table.
func renderRecord(rec types.CaseStatus) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("field", "value")
	values := rec.Values()
	for i, column := range types.CaseStatusColumns() {
		t.Row(column, values[i])
	}
	return t.String()
}
