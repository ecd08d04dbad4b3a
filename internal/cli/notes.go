package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// notesCmd represents the notes command
var notesCmd = &cobra.Command{
	Use:   "notes <company-id-or-name> <text>",
	Short: "Record thesis-fit notes on a company",
	Long: `Notes replace the company's thesis-fit notes wholesale. They appear on
the company's card in the exported Markdown memo. Pass an empty string
to clear them.

Example:
  fundlens notes "Acme Robotics" "Strong wedge, but churn in SMB segment unverified."`,
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
		if err := a.store.SetNotes(company.ID, args[1]); err != nil {
			return err
		}
		if err := a.store.Save(); err != nil {
			return err
		}

		if args[1] == "" {
			fmt.Printf("Cleared notes on %s\n", company.Name)
		} else {
			fmt.Printf("Updated notes on %s\n", company.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notesCmd)
}
