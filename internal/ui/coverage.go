package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/mitplan/internal/summary"
)

func (a *App) coverageCmd() *cobra.Command {
	var (
		planID    string
		insight   bool
		modelFlag string
	)

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Show which boss attacks a plan mitigates",
		Long: `Print every boss attack with the mitigation active when it lands,
plus per-slot usage and any conflicting placements.

With --insight, an LLM reviews the plan and points out gaps.`,
		Example: `  mitplan coverage --plan sample-boss-p8s-prog-1736937000000
  mitplan coverage --plan sample-boss-p8s-prog-1736937000000 --insight`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if planID == "" {
				return errPlanRequired
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			model := modelFlag
			if model == "" {
				model = a.config.LLM.Model
			}

			if insight {
				fmt.Fprintln(cmd.ErrOrStderr(), "Generating insight...")
			}
			s, err := summary.Build(context.Background(), a.repo, a.catalog, summary.BuildOptions{
				PlanID:         planID,
				IncludeInsight: insight,
				Provider:       a.config.LLM.Provider,
				Model:          model,
				BaseURL:        a.config.LLM.BaseURL,
			})
			if err != nil {
				return err
			}

			PrintSummary(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.Flags().StringVar(&planID, "plan", "", "Saved plan ID")
	cmd.Flags().BoolVar(&insight, "insight", false, "Ask the LLM to review the plan")
	cmd.Flags().StringVar(&modelFlag, "model", "", "LLM model to use (from config if not set)")
	return cmd
}
