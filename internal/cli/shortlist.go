package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vkotov/fundlens/internal/model"
)

var (
	shortlistStatus    string
	shortlistRationale string
)

// shortlistCmd represents the shortlist command group
var shortlistCmd = &cobra.Command{
	Use:   "shortlist",
	Short: "Manage a sprint's shortlist",
}

var shortlistAddCmd = &cobra.Command{
	Use:   "add <sprint-id> <company-id-or-name>",
	Short: "Add a company to the shortlist",
	Long: `Add records a verdict on a company. Adding the same company again
updates the verdict in place.

Example:
  fundlens shortlist add 4f7c... "Acme Robotics" --status pursue --rationale "strong fit"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		company, err := resolveCompany(a, args[1])
		if err != nil {
			return err
		}

		status := model.ShortlistStatus(shortlistStatus)
		switch status {
		case model.ShortlistPursue, model.ShortlistWatch, model.ShortlistDeprioritize:
		default:
			return fmt.Errorf("invalid status %q (want pursue, watch, or deprioritize)", shortlistStatus)
		}

		if err := a.store.ShortlistAdd(args[0], company.ID, status, shortlistRationale); err != nil {
			return err
		}
		if err := a.store.Save(); err != nil {
			return err
		}

		fmt.Printf("Shortlisted %s as %s\n", company.Name, status)
		return nil
	},
}

var shortlistRemoveCmd = &cobra.Command{
	Use:   "remove <sprint-id> <company-id-or-name>",
	Short: "Remove a company from the shortlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		company, err := resolveCompany(a, args[1])
		if err != nil {
			return err
		}
		if err := a.store.ShortlistRemove(args[0], company.ID); err != nil {
			return err
		}
		if err := a.store.Save(); err != nil {
			return err
		}

		fmt.Printf("Removed %s from the shortlist\n", company.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shortlistCmd)
	shortlistCmd.AddCommand(shortlistAddCmd)
	shortlistCmd.AddCommand(shortlistRemoveCmd)

	shortlistAddCmd.Flags().StringVar(&shortlistStatus, "status", "pursue", "verdict: pursue, watch, or deprioritize")
	shortlistAddCmd.Flags().StringVar(&shortlistRationale, "rationale", "", "why this verdict")
}
