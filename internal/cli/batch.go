package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkotov/fundlens/internal/research"
	"github.com/vkotov/fundlens/internal/worker"
)

var (
	batchConcurrency int
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <sprint-id>",
	Short: "Validate every company in a sprint in parallel",
	Long: `Batch runs funding validation for all of a sprint's companies with a
bounded worker pool. Per-company validation is serialized internally, so
re-running batch is safe.

Example:
  fundlens batch 4f7c... --concurrency 4
  fundlens batch 4f7c... --demo`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "worker count (default: config concurrency.validation_workers)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 15*time.Minute, "total batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	validator, err := a.newValidator()
	if err != nil {
		return err
	}

	companies, err := a.store.ListCompanies(args[0])
	if err != nil {
		return err
	}
	if len(companies) == 0 {
		fmt.Println("Sprint has no companies. Run discover first.")
		return nil
	}

	workers := batchConcurrency
	if workers <= 0 {
		workers = a.cfg.Concurrency.ValidationWorkers
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	ids := make([]string, 0, len(companies))
	names := make(map[string]string, len(companies))
	for _, company := range companies {
		ids = append(ids, company.ID)
		names[company.ID] = company.Name
	}

	pool := worker.NewPool(workers, func(ctx context.Context, companyID string) research.BatchResult {
		snapshot, err := validator.ValidateCompany(ctx, companyID)
		return research.BatchResult{
			CompanyID:   companyID,
			CompanyName: names[companyID],
			Snapshot:    snapshot,
			Err:         err,
		}
	})

	started := time.Now()
	results := pool.Run(ctx, ids)
	if err := a.store.Save(); err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].CompanyName < results[j].CompanyName })

	var failed int
	for _, result := range results {
		switch {
		case result.Err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.CompanyName, result.Err)
		case result.Snapshot == nil:
			fmt.Printf("  -  %-25s no funding evidence\n", result.CompanyName)
		default:
			marker := " "
			if result.Snapshot.HasConflicts {
				marker = "!"
			}
			fmt.Printf("  %s  %-25s %-10s %-12s confidence=%s\n",
				marker, result.CompanyName, result.Snapshot.LastRoundType,
				result.Snapshot.Amount, result.Snapshot.OverallConfidence)
		}
	}

	fmt.Fprintf(os.Stderr, "\nValidated %d companies in %s (%d failed)\n",
		len(results), time.Since(started).Round(time.Second), failed)
	return nil
}
