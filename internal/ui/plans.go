package ui

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/mitplan/internal/board"
	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/plan"
	"github.com/javiermolinar/mitplan/internal/timeline"
)

func (a *App) plansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Manage saved mitigation plans",
	}

	cmd.AddCommand(a.plansListCmd())
	cmd.AddCommand(a.plansNewCmd())
	cmd.AddCommand(a.plansShowCmd())
	cmd.AddCommand(a.plansPartyCmd())
	cmd.AddCommand(a.plansDeleteCmd())
	cmd.AddCommand(a.plansExportCmd())
	cmd.AddCommand(a.plansImportCmd())
	return cmd
}

func (a *App) plansListCmd() *cobra.Command {
	var boss string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved plans, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			var (
				plans []plan.Summary
				err   error
			)
			if boss != "" {
				plans, err = a.repo.ListPlansByBoss(ctx, boss)
			} else {
				plans, err = a.repo.ListPlans(ctx)
			}
			if err != nil {
				return fmt.Errorf("listing plans: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(plans) == 0 {
				fmt.Fprintln(out, "No saved plans.")
				return nil
			}
			for _, p := range plans {
				fmt.Fprintf(out, "  %-40s %-24s %-14s %3d  %s\n",
					p.ID, truncate(p.Name, 24), p.BossID, p.Placements,
					formatMuted(p.LastModified.Local().Format("2006-01-02 15:04")))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&boss, "boss", "", "Only plans for this timeline")
	return cmd
}

func (a *App) plansNewCmd() *cobra.Command {
	var (
		name  string
		boss  string
		party string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty plan",
		Example: `  mitplan plans new --name "Door boss prog" --boss sample-boss
  mitplan plans new --name "Dummy" --boss training-dummy --party "tank1=WAR healer1=WHM"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.createSession(name, boss, party)
			if err != nil {
				return err
			}
			if err := a.save(context.Background(), s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan %s\n", s.plan.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().StringVar(&boss, "boss", "", "Timeline ID or file (config default if empty)")
	cmd.Flags().StringVar(&party, "party", "", "Party overrides, e.g. tank1=WAR")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *App) plansShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <plan-id>",
		Short: "Show a plan's party and placements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(context.Background(), args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "=== %s === %s\n", formatHeader(s.plan.Name), formatMuted(s.plan.ID))
			fmt.Fprintf(out, "Boss:  %s\n", s.board.Timeline.Name)
			fmt.Fprintf(out, "Party: %s\n\n", s.board.Party.String(a.catalog))
			PrintEntries(out, s.board)
			return nil
		},
	}
}

func (a *App) plansPartyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "party <plan-id> <slot=JOB>...",
		Short: "Change the jobs in a plan's party",
		Long: `Seat jobs in party slots. Placements made by a slot's previous job
are removed. Leave the job empty (dps4=) to open a slot.`,
		Example: `  mitplan plans party sample-boss-prog-1736937000000 tank2=GNB dps4=`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := a.openSession(ctx, args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			changes, err := catalog.ParseParty(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			for slot := range changes {
				if !a.catalog.HasSlot(slot) {
					return fmt.Errorf("%w: %s", catalog.ErrUnknownSlot, slot)
				}
			}

			out := cmd.OutOrStdout()
			for _, slot := range a.catalog.Slots {
				job, ok := changes[slot]
				if !ok {
					continue
				}
				dropped, err := s.board.SetJob(slot, job)
				if err != nil {
					return err
				}
				if len(dropped) > 0 {
					fmt.Fprintf(out, "%s: removed %d placement(s)\n", slot, len(dropped))
				}
			}

			if err := a.save(ctx, s); err != nil {
				return err
			}
			fmt.Fprintf(out, "Party: %s\n", s.board.Party.String(a.catalog))
			return nil
		},
	}
}

func (a *App) plansDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <plan-id>",
		Short: "Delete a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.DeletePlan(context.Background(), args[0]); err != nil {
				return fmt.Errorf("deleting plan: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %s\n", args[0])
			return nil
		},
	}
}

func (a *App) plansExportCmd() *cobra.Command {
	var (
		output      string
		toClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "export <plan-id>",
		Short: "Export a plan as JSON",
		Long: `Write a plan as JSON to stdout, to a file, or to the clipboard.

Use --output - for stdout. Without --output the file is named after the plan.`,
		Example: `  mitplan plans export sample-boss-prog-1736937000000 --output -
  mitplan plans export sample-boss-prog-1736937000000 --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			p, err := a.repo.GetPlan(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("fetching plan: %w", err)
			}
			if p == nil {
				return fmt.Errorf("%w: %s", plan.ErrPlanNotFound, args[0])
			}

			var buf bytes.Buffer
			if err := p.Export(&buf); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case toClipboard:
				if err := clipboard.WriteAll(buf.String()); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintf(out, "Copied %s to clipboard\n", p.ID)
			case output == "-":
				_, err = out.Write(buf.Bytes())
				return err
			default:
				path := output
				if path == "" {
					path = p.FileName()
				}
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("writing export: %w", err)
				}
				fmt.Fprintf(out, "Exported %s to %s\n", p.ID, path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, - for stdout")
	cmd.Flags().BoolVar(&toClipboard, "copy", false, "Copy the JSON to the clipboard")
	return cmd
}

func (a *App) plansImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a plan from a JSON export",
		Long: `Import a plan exported by mitplan. Use - to read stdin. An existing
plan with the same ID is replaced. Placements the party cannot make are dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening import: %w", err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			p, err := plan.Import(in)
			if err != nil {
				return err
			}
			tl, err := timeline.Resolve(p.BossID)
			if err != nil {
				return fmt.Errorf("loading timeline: %w", err)
			}
			if err := catalog.Party(p.Party).Validate(a.catalog); err != nil {
				return fmt.Errorf("party: %w", err)
			}

			b, skipped := board.FromPlan(a.catalog, tl, p)
			s := &session{board: b, plan: p}
			if err := a.save(context.Background(), s); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %s (%d placements)\n", p.ID, b.Len())
			if len(skipped) > 0 {
				fmt.Fprintf(out, "%s %d placement(s) did not match the party\n", formatBad("Dropped"), len(skipped))
			}
			return nil
		},
	}
}
