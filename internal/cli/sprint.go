package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vkotov/fundlens/internal/model"
)

var (
	sprintName      string
	sprintDesc      string
	sprintKeywords  []string
	sprintExclude   []string
	sprintStage     string
	sprintGeo       string
	sprintLastRaise string
)

// sprintCmd represents the sprint command group
var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Manage thesis sprints",
}

var sprintCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new thesis sprint",
	Long: `Create a research sprint around an investment thesis.

Example:
  fundlens sprint create "vertical robotics" \
    --desc "Robotics companies selling into one industry" \
    --keywords robotics,automation --stage "Series A-B" --geo US`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		sprint := model.ThesisSprint{
			ID:              uuid.NewString(),
			Name:            args[0],
			Description:     sprintDesc,
			KeywordsInclude: sprintKeywords,
			KeywordsExclude: sprintExclude,
			StageFocus:      sprintStage,
			Geography:       sprintGeo,
			LastRaiseFilter: sprintLastRaise,
			Status:          "active",
			CreatedAt:       time.Now().UTC(),
		}
		if err := a.store.CreateSprint(sprint); err != nil {
			return err
		}
		if err := a.store.Save(); err != nil {
			return err
		}

		fmt.Printf("Created sprint %s (%s)\n", sprint.Name, sprint.ID)
		return nil
	},
}

var sprintListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sprints, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		sprints := a.store.ListSprints()
		if len(sprints) == 0 {
			fmt.Println("No sprints yet. Create one with: fundlens sprint create <name>")
			return nil
		}

		for _, sprint := range sprints {
			fmt.Printf("%s  %-30s  %s  companies=%d shortlist=%d\n",
				sprint.ID, sprint.Name, sprint.CreatedAt.Format("2006-01-02"),
				len(sprint.CompanyIDs), len(sprint.Shortlist))
			if verbose && sprint.Description != "" {
				fmt.Printf("    %s\n", sprint.Description)
			}
		}
		return nil
	},
}

var sprintEditCmd = &cobra.Command{
	Use:   "edit <sprint-id>",
	Short: "Edit a sprint's thesis",
	Long: `Edit updates a sprint's thesis fields. Only flags given on the
command line change; everything else, including companies and the
shortlist, is left untouched.

Example:
  fundlens sprint edit 4f7c... --stage "Series B+" --keywords robotics,vision`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		err = a.store.UpdateSprint(args[0], func(sprint *model.ThesisSprint) {
			if flags.Changed("name") {
				sprint.Name = sprintName
			}
			if flags.Changed("desc") {
				sprint.Description = sprintDesc
			}
			if flags.Changed("keywords") {
				sprint.KeywordsInclude = sprintKeywords
			}
			if flags.Changed("exclude") {
				sprint.KeywordsExclude = sprintExclude
			}
			if flags.Changed("stage") {
				sprint.StageFocus = sprintStage
			}
			if flags.Changed("geo") {
				sprint.Geography = sprintGeo
			}
			if flags.Changed("last-raise") {
				sprint.LastRaiseFilter = sprintLastRaise
			}
		})
		if err != nil {
			return err
		}
		if err := a.store.Save(); err != nil {
			return err
		}

		fmt.Printf("Updated sprint %s\n", args[0])
		return nil
	},
}

var sprintDeleteCmd = &cobra.Command{
	Use:   "delete <sprint-id>",
	Short: "Delete a sprint and its companies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.store.DeleteSprint(args[0]); err != nil {
			return err
		}
		if err := a.store.Save(); err != nil {
			return err
		}

		fmt.Printf("Deleted sprint %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sprintCmd)
	sprintCmd.AddCommand(sprintCreateCmd)
	sprintCmd.AddCommand(sprintListCmd)
	sprintCmd.AddCommand(sprintEditCmd)
	sprintCmd.AddCommand(sprintDeleteCmd)

	for _, cmd := range []*cobra.Command{sprintCreateCmd, sprintEditCmd} {
		cmd.Flags().StringVar(&sprintDesc, "desc", "", "thesis description")
		cmd.Flags().StringSliceVar(&sprintKeywords, "keywords", nil, "keywords to include (comma-separated)")
		cmd.Flags().StringSliceVar(&sprintExclude, "exclude", nil, "keywords to exclude (comma-separated)")
		cmd.Flags().StringVar(&sprintStage, "stage", "", "stage focus (e.g. \"Series A-B\")")
		cmd.Flags().StringVar(&sprintGeo, "geo", "", "geography focus")
		cmd.Flags().StringVar(&sprintLastRaise, "last-raise", "", "last-raise recency filter (e.g. \"<18 months\")")
	}
	sprintEditCmd.Flags().StringVar(&sprintName, "name", "", "sprint name")
}

// resolveCompany accepts either a company ID or an exact name
func resolveCompany(a *app, idOrName string) (*model.Company, error) {
	if company, err := a.store.GetCompany(idOrName); err == nil {
		return company, nil
	}
	company, err := a.store.FindCompanyByName(idOrName)
	if err != nil {
		return nil, fmt.Errorf("no company with ID or name %q", idOrName)
	}
	return company, nil
}
