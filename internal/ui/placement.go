package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/mitplan/internal/board"
	"github.com/javiermolinar/mitplan/internal/timefmt"
)

// abilityFlags are shared by the commands that name one ability.
type abilityFlags struct {
	plan    string
	boss    string
	party   string
	slot    string
	ability string
}

func (f *abilityFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.plan, "plan", "", "Saved plan ID (scratch board from config if empty)")
	cmd.Flags().StringVar(&f.boss, "boss", "", "Timeline ID or file for a scratch board")
	cmd.Flags().StringVar(&f.party, "party", "", "Party overrides for a scratch board, e.g. tank1=WAR")
	cmd.Flags().StringVar(&f.slot, "slot", "", "Party slot, e.g. tank1")
	cmd.Flags().StringVar(&f.ability, "ability", "", "Ability ID, e.g. rampart")
	_ = cmd.MarkFlagRequired("slot")
	_ = cmd.MarkFlagRequired("ability")
}

func (a *App) zonesCmd() *cobra.Command {
	var (
		f       abilityFlags
		exclude string
	)

	cmd := &cobra.Command{
		Use:   "zones",
		Short: "Show the legal start times for an ability",
		Long: `List the ranges of start times at which an ability can be placed
without colliding with its own cooldown.

Examples:
  mitplan zones --slot tank1 --ability rampart
  mitplan zones --plan p8s-prog-1736937000000 --slot healer1 --ability expedient`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.boardFor(context.Background(), f.plan, f.boss, f.party, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ab, err := b.Ability(strings.ToLower(f.slot), f.ability)
			if err != nil {
				return err
			}
			PrintZones(cmd.OutOrStdout(), ab, b.Zones(ab, exclude))
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&exclude, "exclude", "", "Placement ID to ignore, e.g. the one being moved")
	return cmd
}

func (a *App) checkCmd() *cobra.Command {
	var (
		f       abilityFlags
		at      string
		exclude string
		snap    bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether an ability can start at a given time",
		Long: `Report whether placing an ability at a time would be accepted.

Exits with an error when the placement is blocked.

Examples:
  mitplan check --slot tank1 --ability rampart --at 1:30
  mitplan check --slot tank1 --ability rampart --at 89 --snap`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := timefmt.Parse(at)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			b, err := a.boardFor(context.Background(), f.plan, f.boss, f.party, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ab, err := b.Ability(strings.ToLower(f.slot), f.ability)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if snap {
				p := b.Preview(ab, start, exclude)
				if p.Start != start {
					fmt.Fprintf(out, "snapped %s -> %s\n", timefmt.Format(start), timefmt.Format(p.Start))
				}
				start = p.Start
			}

			if err := b.Check(ab, start, exclude); err != nil {
				fmt.Fprintf(out, "%s %s at %s\n", formatBad("blocked:"), ab.Name, timefmt.Format(start))
				return err
			}
			fmt.Fprintf(out, "%s %s at %s\n", formatOK("ok:"), ab.Name, timefmt.Format(start))
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&at, "at", "", "Start time (seconds or M:SS)")
	cmd.Flags().StringVar(&exclude, "exclude", "", "Placement ID to ignore")
	cmd.Flags().BoolVar(&snap, "snap", false, "Snap the time to the nearest legal start first")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func (a *App) placeCmd() *cobra.Command {
	var (
		f    abilityFlags
		at   string
		name string
		snap bool
	)

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place an ability on a plan",
		Long: `Commit an ability at a start time. The placement is refused if the
ability would still be on cooldown or run past the end of the fight.

Use --plan new with --name (and optionally --boss and --party) to start a plan.

Examples:
  mitplan place --plan new --name "P8S prog" --boss sample-boss --slot tank1 --ability rampart --at 0:08
  mitplan place --plan sample-boss-p8s-prog-1736937000000 --slot healer1 --ability expedient --at 59 --snap`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := timefmt.Parse(at)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}

			ctx := context.Background()
			var s *session
			switch f.plan {
			case "":
				return errPlanRequired
			case newPlanID:
				s, err = a.createSession(name, f.boss, f.party)
			default:
				s, err = a.openSession(ctx, f.plan, cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}

			ab, err := s.board.Ability(strings.ToLower(f.slot), f.ability)
			if err != nil {
				return err
			}
			if snap {
				start = s.board.Preview(ab, start, "").Start
			}

			e, err := s.board.Place(ab, start)
			if err != nil {
				return err
			}
			if err := a.save(ctx, s); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if f.plan == newPlanID {
				fmt.Fprintf(out, "Created plan %s\n", s.plan.ID)
			}
			fmt.Fprintf(out, "Placed %s (%s) at %s [%s]\n",
				ab.Name, s.board.Catalog.SlotLabel(ab.Slot), timefmt.FormatSpan(e.Start, e.End()), e.ID)
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&at, "at", "", "Start time (seconds or M:SS)")
	cmd.Flags().StringVar(&name, "name", "", "Plan name when --plan new")
	cmd.Flags().BoolVar(&snap, "snap", false, "Snap the time to the nearest legal start first")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func (a *App) moveCmd() *cobra.Command {
	var (
		planID string
		at     string
		snap   bool
	)

	cmd := &cobra.Command{
		Use:   "move <placement-id>",
		Short: "Move a placement to a new start time",
		Example: `  mitplan move --plan sample-boss-p8s-prog-1736937000000 3f2a... --at 1:35
  mitplan move --plan sample-boss-p8s-prog-1736937000000 3f2a... --at 94 --snap`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := timefmt.Parse(at)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}

			ctx := context.Background()
			s, err := a.openSession(ctx, planID, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			id := args[0]
			e, ok := s.board.Find(id)
			if !ok {
				return fmt.Errorf("%w: %s", board.ErrPlacementNotFound, id)
			}
			if snap {
				start = s.board.Preview(e.Ability, start, id).Start
			}

			moved, err := s.board.Move(id, start)
			if err != nil {
				return err
			}
			if err := a.save(ctx, s); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s from %s to %s\n",
				moved.Ability.Name, timefmt.Format(e.Start), timefmt.Format(moved.Start))
			return nil
		},
	}

	cmd.Flags().StringVar(&planID, "plan", "", "Saved plan ID")
	cmd.Flags().StringVar(&at, "at", "", "New start time (seconds or M:SS)")
	cmd.Flags().BoolVar(&snap, "snap", false, "Snap the time to the nearest legal start first")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func (a *App) removeCmd() *cobra.Command {
	var planID string

	cmd := &cobra.Command{
		Use:   "remove <placement-id>...",
		Short: "Remove placements from a plan",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := a.openSession(ctx, planID, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := s.board.Remove(id); err != nil {
					return err
				}
			}
			if err := a.save(ctx, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d placement(s)\n", len(args))
			return nil
		},
	}

	cmd.Flags().StringVar(&planID, "plan", "", "Saved plan ID")
	return cmd
}

func (a *App) clearCmd() *cobra.Command {
	var (
		planID string
		slot   string
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every placement from a plan",
		Long: `Remove every placement from a plan, or only those of one slot.

Examples:
  mitplan clear --plan sample-boss-p8s-prog-1736937000000
  mitplan clear --plan sample-boss-p8s-prog-1736937000000 --slot tank2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			s, err := a.openSession(ctx, planID, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			removed := s.board.Len()
			if slot == "" {
				s.board.Clear()
			} else {
				entries := s.board.SlotEntries(strings.ToLower(slot))
				for _, e := range entries {
					if err := s.board.Remove(e.ID); err != nil {
						return err
					}
				}
				removed = len(entries)
			}

			if err := a.save(ctx, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d placement(s)\n", removed)
			return nil
		},
	}

	cmd.Flags().StringVar(&planID, "plan", "", "Saved plan ID")
	cmd.Flags().StringVar(&slot, "slot", "", "Only clear this party slot")
	return cmd
}

func (a *App) lanesCmd() *cobra.Command {
	var (
		planID string
		slot   string
	)

	cmd := &cobra.Command{
		Use:   "lanes",
		Short: "Show how a slot's placements stack into display lanes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openSession(context.Background(), planID, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			slots := s.board.Catalog.Slots
			if slot != "" {
				slots = []string{strings.ToLower(slot)}
			}

			out := cmd.OutOrStdout()
			for _, sl := range slots {
				lanes := s.board.Lanes(sl)
				if len(lanes) == 0 {
					continue
				}
				fmt.Fprintf(out, "%s %s\n", formatHeader(s.board.Catalog.SlotLabel(sl)),
					formatMuted(fmt.Sprintf("(%d lane(s))", lanes[0].TotalLanes)))
				for _, l := range lanes {
					e, _ := s.board.Find(l.ID)
					fmt.Fprintf(out, "  lane %d  %-11s  %s\n",
						l.Lane, timefmt.FormatSpan(l.Start, l.End()), e.Ability.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&planID, "plan", "", "Saved plan ID")
	cmd.Flags().StringVar(&slot, "slot", "", "Only show this party slot")
	return cmd
}
