package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkotov/fundlens/internal/verify"
)

var sourcesTimeout time.Duration

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources <company-id-or-name>",
	Short: "Check whether a company's snapshot sources are still reachable",
	Long: `Sources probes each source URL on the company's funding snapshot with a
HEAD request. Results are informational only; they never change the
snapshot's confidence.`,
	Args: cobra.ExactArgs(1),
	RunE: runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)

	sourcesCmd.Flags().DurationVar(&sourcesTimeout, "timeout", time.Minute, "check timeout")
}

func runSources(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	company, err := resolveCompany(a, args[0])
	if err != nil {
		return err
	}
	if company.FundingSnapshot == nil || len(company.FundingSnapshot.Sources) == 0 {
		fmt.Println("No snapshot sources to check. Run validate first.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), sourcesTimeout)
	defer cancel()

	checker := verify.NewChecker(a.cfg.HTTP, a.cfg.Concurrency.ValidationWorkers)
	results := checker.Check(ctx, company.FundingSnapshot.Sources)

	for _, result := range results {
		switch {
		case result.Reachable:
			fmt.Printf("  OK   %s\n", result.URL)
			if result.RedirectURL != "" && verbose {
				fmt.Printf("       redirected to %s\n", result.RedirectURL)
			}
		case result.Dead:
			fmt.Printf("  DEAD %s (%d)\n", result.URL, result.StatusCode)
		default:
			fmt.Printf("  ERR  %s (%s)\n", result.URL, result.Error)
		}
	}

	summary := verify.Summarize(results)
	fmt.Printf("\n%d sources: %d reachable, %d dead, %d errored\n",
		summary.Total, summary.Reachable, summary.Dead, summary.Failed)
	return nil
}
