package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkotov/fundlens/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <sprint-id>",
	Short: "Export a sprint's shortlist as CSV or a Markdown memo",
	Long: `Export writes the shortlist with resolved funding snapshots.

Formats:
  csv   flat table for spreadsheets
  md    research memo with summary table, company cards, and a
        conflict appendix

Example:
  fundlens export 4f7c... --format csv --out shortlist.csv
  fundlens export 4f7c... --format md`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or md")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	sprint, err := a.store.GetSprint(args[0])
	if err != nil {
		return err
	}

	rows := make([]export.Row, 0, len(sprint.Shortlist))
	for _, entry := range sprint.Shortlist {
		company, err := a.store.GetCompany(entry.CompanyID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: shortlisted company %s missing, skipping\n", entry.CompanyID)
			continue
		}
		rows = append(rows, export.Row{Company: *company, Entry: entry})
	}

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	switch exportFormat {
	case "csv":
		err = export.WriteCSV(out, rows)
	case "md":
		err = export.WriteMarkdown(out, *sprint, rows, time.Now())
	default:
		return fmt.Errorf("unknown format %q (want csv or md)", exportFormat)
	}
	if err != nil {
		return err
	}

	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s (%d companies)\n", exportOut, len(rows))
	}
	return nil
}
