package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/mitplan/internal/timefmt"
	"github.com/javiermolinar/mitplan/internal/timeline"
)

func (a *App) jobsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jobs [job]",
		Short: "List jobs, or the abilities of one job",
		Example: `  mitplan jobs
  mitplan jobs sch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				j, err := a.catalog.Job(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s\n", formatHeader(j.Name), formatMuted("("+j.ID+", "+j.Role+")"))
				PrintAbilities(out, a.catalog.JobAbilities(j.ID))
				return nil
			}

			role := ""
			for _, id := range a.catalog.JobIDs() {
				j, err := a.catalog.Job(id)
				if err != nil {
					return err
				}
				if j.Role != role {
					if role != "" {
						fmt.Fprintln(out)
					}
					role = j.Role
					fmt.Fprintln(out, formatHeader(strings.ToUpper(strings.ReplaceAll(role, "_", " "))))
				}
				fmt.Fprintf(out, "  %-4s %-14s %s\n", j.ID, j.Name,
					formatMuted(fmt.Sprintf("%d abilities", len(a.catalog.JobAbilities(j.ID)))))
			}
			return nil
		},
	}
}

func (a *App) timelinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timelines [timeline]",
		Short: "List boss timelines, or the attacks of one",
		Long: `List the built-in boss timelines. With an argument, print the attacks
of a built-in timeline or of a .yaml/.toml timeline file.`,
		Example: `  mitplan timelines
  mitplan timelines sample-boss
  mitplan timelines ./savage-door.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				tl, err := timeline.Resolve(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "=== %s === %s\n", formatHeader(tl.Name), formatMuted(timefmt.Format(tl.Duration)))
				for _, atk := range tl.Attacks {
					fmt.Fprintf(out, "  %6s  %-28s %s\n",
						timefmt.Format(atk.Time), atk.Name, formatAttackType(string(atk.Type)))
				}
				return nil
			}

			for _, id := range timeline.Available() {
				tl, err := timeline.Load(id)
				if err != nil {
					return err
				}
				marker := "  "
				if id == a.config.Planner.DefaultTimeline {
					marker = "* "
				}
				fmt.Fprintf(out, "%s%-16s %-24s %6s  %s\n", marker, id, tl.Name,
					timefmt.Format(tl.Duration), formatMuted(fmt.Sprintf("%d attacks", len(tl.Attacks))))
			}
			return nil
		},
	}
}
