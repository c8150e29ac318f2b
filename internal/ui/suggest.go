package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/mitplan/internal/advisor"
	"github.com/javiermolinar/mitplan/internal/llm"
	"github.com/javiermolinar/mitplan/internal/timefmt"
)

func (a *App) suggestCmd() *cobra.Command {
	var (
		planID    string
		modelFlag string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "suggest [instructions]",
		Short: "Ask an LLM to propose mitigation for a plan",
		Long: `Use an LLM to propose placements for the attacks of a plan's boss.

Every proposal is checked against the cooldown rules. Rejected placements
are sent back to the model with the reason until it gets them right or the
retry limit is reached.

Examples:
  mitplan suggest --plan sample-boss-prog-1736937000000
  mitplan suggest --plan sample-boss-prog-1736937000000 "tanks cover the tankbusters"
  mitplan suggest --plan sample-boss-prog-1736937000000 --dry-run

Interactive mode:
  After the model proposes placements, you can:
  - [a]ccept: Add them to the plan
  - [m]odify: Give feedback and ask again
  - [c]ancel: Exit without saving`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := a.openSession(ctx, planID, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			model := modelFlag
			if model == "" {
				model = a.config.LLM.Model
			}
			client, err := llm.NewClient(a.config.LLM.Provider, model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			adv := advisor.New(client, a.config.LLM.Provider, s.board, a.logger)
			retries := a.config.LLM.MaxRetries
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Asking for suggestions...")
			result, err := adv.SuggestWithRetry(ctx, advisor.Request{Input: strings.Join(args, " ")}, retries)
			if err != nil {
				return fmt.Errorf("suggesting: %w", err)
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			for {
				printSuggestions(out, result)

				if dryRun {
					fmt.Fprintln(out, "\n(Dry run - plan not saved)")
					return nil
				}

				fmt.Fprint(out, "\n[a]ccept / [m]odify / [c]ancel: ")
				choice, err := reader.ReadString('\n')
				if err != nil && choice == "" {
					return fmt.Errorf("reading input: %w", err)
				}

				switch strings.TrimSpace(strings.ToLower(choice)) {
				case "a", "accept":
					if len(result.Accepted) == 0 {
						fmt.Fprintln(out, "Nothing to add. [m]odify or [c]ancel.")
						continue
					}
					placed, errs := adv.Apply(result)
					for _, e := range errs {
						fmt.Fprintf(out, "  skipped: %v\n", e)
					}
					if err := a.save(ctx, s); err != nil {
						return err
					}
					fmt.Fprintf(out, "\n%d placement(s) added to %s\n", len(placed), s.plan.ID)
					return nil

				case "m", "modify":
					fmt.Fprint(out, "What would you like to change? ")
					feedback, err := reader.ReadString('\n')
					if err != nil && feedback == "" {
						return fmt.Errorf("reading input: %w", err)
					}
					feedback = strings.TrimSpace(feedback)
					if feedback == "" {
						fmt.Fprintln(out, "No feedback provided, showing current suggestions...")
						continue
					}

					fmt.Fprintln(out, "\nAsking again...")
					result, err = adv.Continue(ctx, feedback, retries)
					if err != nil {
						return fmt.Errorf("suggesting: %w", err)
					}

				case "c", "cancel":
					fmt.Fprintln(out, "Suggestions discarded.")
					return nil

				default:
					fmt.Fprintln(out, "Invalid choice. Please enter 'a', 'm', or 'c'.")
				}
			}
		},
	}

	cmd.Flags().StringVar(&planID, "plan", "", "Saved plan ID")
	cmd.Flags().StringVar(&modelFlag, "model", "", "LLM model to use (from config if not set)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show suggestions without saving")
	return cmd
}

// printSuggestions shows one round of advisor output.
func printSuggestions(w io.Writer, result *advisor.Result) {
	fmt.Fprintln(w)
	if len(result.Accepted) == 0 {
		fmt.Fprintln(w, "No placements proposed.")
	} else {
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for _, s := range result.Accepted {
			fmt.Fprintf(w, "  %6s  %-8s %-20s %s\n",
				timefmt.Format(s.Start), s.Slot, truncate(s.AbilityName, 20), formatMuted(s.Reason))
		}
		fmt.Fprintln(w, strings.Repeat("-", 60))
		fmt.Fprintf(w, "Total: %d placement(s) after %d attempt(s)\n", len(result.Accepted), result.Attempts)
	}

	if len(result.Notes) > 0 {
		fmt.Fprintln(w, "\nNotes:")
		for _, n := range result.Notes {
			fmt.Fprintf(w, "  * %s\n", formatInsight(n))
		}
	}

	if result.HasValidationErrors() {
		fmt.Fprintln(w, "\nRejected (retry limit reached):")
		for _, ve := range result.ValidationErrors {
			fmt.Fprintf(w, "  - %s\n", ve.String())
		}
	}
}
