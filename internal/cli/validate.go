package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkotov/fundlens/internal/model"
)

var validateTimeout time.Duration

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <company-id-or-name>",
	Short: "Validate one company's funding against public sources",
	Long: `Validate fetches funding claims for a company, reconciles conflicting
sources into a single snapshot, and stores the result. Conflicts are kept
visible rather than averaged away.

Example:
  fundlens validate "Acme Robotics"
  fundlens validate demo-1 --demo`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().DurationVar(&validateTimeout, "timeout", 2*time.Minute, "validation timeout")
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	validator, err := a.newValidator()
	if err != nil {
		return err
	}

	company, err := resolveCompany(a, args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()

	snapshot, err := validator.ValidateCompany(ctx, company.ID)
	if err != nil {
		return err
	}
	if err := a.store.Save(); err != nil {
		return err
	}

	printSnapshot(company.Name, snapshot)
	return nil
}

func printSnapshot(companyName string, snapshot *model.FundingSnapshot) {
	fmt.Printf("%s\n", companyName)
	if snapshot == nil {
		fmt.Println("  No funding evidence found.")
		return
	}

	round := snapshot.LastRoundType
	if round == "" {
		round = "unknown round"
	}
	if snapshot.LastRoundDate != nil {
		round += " (" + snapshot.LastRoundDate.Format("Jan 2006") + ")"
	}
	fmt.Printf("  Last round:  %s\n", round)
	if snapshot.Amount != "" {
		fmt.Printf("  Amount:      %s\n", snapshot.Amount)
	}
	if snapshot.LeadInvestor != "" {
		fmt.Printf("  Lead:        %s\n", snapshot.LeadInvestor)
	}
	if snapshot.Valuation != "" {
		fmt.Printf("  Valuation:   %s (%s, %s confidence)\n",
			snapshot.Valuation, snapshot.ValuationBasis, snapshot.ValuationConfidence)
	}
	fmt.Printf("  Confidence:  %s\n", snapshot.OverallConfidence)
	fmt.Printf("  Freshness:   %s\n", snapshot.Freshness)

	if snapshot.HasConflicts {
		fmt.Printf("  Conflicts:   %s\n", snapshot.ResolutionNote)
	}
	if len(snapshot.Sources) > 0 {
		fmt.Println("  Sources:")
		for _, source := range snapshot.Sources {
			fmt.Printf("    [%s] %s\n", source.Category, source.URL)
		}
	}
}
