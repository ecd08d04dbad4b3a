package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkotov/fundlens/internal/discover"
	"github.com/vkotov/fundlens/internal/model"
	"github.com/vkotov/fundlens/internal/research"
)

var (
	discoverCount   int
	discoverTimeout time.Duration
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover <sprint-id>",
	Short: "Generate candidate companies for a sprint",
	Long: `Discover asks the configured LLM for companies matching the sprint's
thesis, scores their fit, and records them as pending candidates.

Candidates are bucketed by fit score: pursue (>=70), maybe (>=40), pass.

Example:
  fundlens discover 4f7c... --count 30
  fundlens discover 4f7c... --demo`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().IntVar(&discoverCount, "count", 30, "target number of candidates")
	discoverCmd.Flags().DurationVar(&discoverTimeout, "timeout", 3*time.Minute, "discovery timeout")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	sprintID := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), discoverTimeout)
	defer cancel()

	var added []model.Company
	if demo {
		added, err = demoCandidates(a, sprintID)
	} else {
		discoverer := research.NewDiscoverer(a.llm, a.store)
		added, err = discoverer.Discover(ctx, sprintID, discoverCount)
	}
	if err != nil {
		return err
	}
	if err := a.store.Save(); err != nil {
		return err
	}

	grouped := discover.NewBucketer(discover.DefaultThresholds()).Group(added)
	printBucket("PURSUE", grouped.Pursue)
	printBucket("MAYBE", grouped.Maybe)
	printBucket("PASS", grouped.Pass)

	fmt.Fprintf(os.Stderr, "\nAdded %d candidates to sprint %s\n", len(added), sprintID)
	return nil
}

func printBucket(label string, companies []model.Company) {
	if len(companies) == 0 {
		return
	}
	fmt.Printf("%s (%d)\n", label, len(companies))
	for _, company := range companies {
		line := fmt.Sprintf("  %3d  %-25s", company.FitScore, company.Name)
		if company.Stage != "" {
			line += "  " + company.Stage
		}
		fmt.Println(line)
		if verbose && len(company.FitReasons) > 0 {
			fmt.Printf("       %s\n", strings.Join(company.FitReasons, "; "))
		}
	}
	fmt.Println()
}

// demoCandidates seeds a fixed candidate set so the flow works offline
func demoCandidates(a *app, sprintID string) ([]model.Company, error) {
	fixtures := []model.Company{
		{Name: "Acme Robotics", Description: "Warehouse picking robots for grocery fulfilment.", Website: "https://acme.example", FitScore: 85, Stage: "Series B"},
		{Name: "Borealis Health", Description: "Remote patient monitoring for cardiology clinics.", Website: "https://borealis.example", FitScore: 62, Stage: "Series A"},
		{Name: "Canopy Freight", Description: "Spot-market pricing for regional trucking.", Website: "https://canopy.example", FitScore: 35, Stage: "Seed"},
	}

	added := make([]model.Company, 0, len(fixtures))
	for i, fixture := range fixtures {
		fixture.ID = fmt.Sprintf("demo-%d", i+1)
		fixture.ValidationStatus = model.ValidationPending
		if err := a.store.AddCompany(sprintID, fixture); err != nil {
			return added, err
		}
		added = append(added, fixture)
	}
	return added, nil
}
