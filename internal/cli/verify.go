package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <company-id-or-name> <claim-id>",
	Short: "Mark one of a company's funding claims as verified",
	Long: `Verify records that a human checked a claim against its sources.
Verification is a status on the claim only; it never alters the
reconciled snapshot.

Claim IDs are shown by 'fundlens claims <company>'.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		company, err := resolveCompany(a, args[0])
		if err != nil {
			return err
		}
		if err := a.store.VerifyClaim(company.ID, args[1]); err != nil {
			return err
		}
		if err := a.store.Save(); err != nil {
			return err
		}

		fmt.Printf("Verified claim %s on %s\n", args[1], company.Name)
		return nil
	},
}

// claimsCmd represents the claims command
var claimsCmd = &cobra.Command{
	Use:   "claims <company-id-or-name>",
	Short: "List a company's funding claims with their IDs and statuses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		company, err := resolveCompany(a, args[0])
		if err != nil {
			return err
		}
		if len(company.Claims) == 0 {
			fmt.Println("No claims recorded. Run validate first.")
			return nil
		}

		for _, claim := range company.Claims {
			fmt.Printf("%s  [%s, %s]\n  %s\n", claim.ID, claim.Status, claim.Confidence, claim.Statement)
			for _, source := range claim.Sources {
				fmt.Printf("    [%s] %s\n", source.Category, source.URL)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(claimsCmd)
}
