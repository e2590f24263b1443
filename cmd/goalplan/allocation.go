package main

import (
	"fmt"

	"github.com/eshaffer321/goalplan-go/internal/cli"
	"github.com/eshaffer321/goalplan-go/internal/source"
	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	flagAllocProposed  float64
	flagAllocExclude   string
	flagAllocAvailable float64
	flagAllocGoal      string
	flagAllocApply     bool
)

var allocationCmd = &cobra.Command{
	Use:   "allocation",
	Short: "Check a proposed savings percentage against the owner's other goals",
	Long: `Check a proposed savings percentage against the owner's other goals.

With --goal the goal being edited is left out of the existing total. Adding
--apply stores the new percentage when the total stays within 100%.`,
	Args: cobra.NoArgs,
	RunE: runAllocation,
}

func init() {
	allocationCmd.Flags().Float64VarP(&flagAllocProposed, "proposed", "p", 0, "Proposed savings percentage (0-100)")
	allocationCmd.Flags().StringVar(&flagAllocExclude, "exclude", "", "Goal ID left out of the existing total (default --goal)")
	allocationCmd.Flags().Float64Var(&flagAllocAvailable, "available", 0, "Available money per month (default from the owner's records)")
	allocationCmd.Flags().StringVarP(&flagAllocGoal, "goal", "g", "", "Goal whose percentage is being changed")
	allocationCmd.Flags().BoolVar(&flagAllocApply, "apply", false, "Store the proposed percentage on --goal when it fits (sqlite source)")
	_ = allocationCmd.MarkFlagRequired("proposed")
	rootCmd.AddCommand(allocationCmd)
}

func runAllocation(cmd *cobra.Command, _ []string) error {
	if flagAllocApply && flagAllocGoal == "" {
		return fmt.Errorf("--apply needs --goal")
	}

	return withApp(cmd, func(a *app) error {
		ctx := cmd.Context()

		if flagAllocApply && a.store == nil {
			return fmt.Errorf("--apply needs the sqlite source, not %q", a.cfg.Source.Kind)
		}

		owner, exclude := flagOwner, flagAllocExclude
		if flagAllocGoal != "" {
			goal, err := a.src.Goal(ctx, flagAllocGoal)
			if err != nil {
				return err
			}
			if owner == "" {
				owner = goal.OwnerID
			}
			if exclude == "" {
				exclude = goal.ID
			}
		}

		allocs, err := source.Allocations(ctx, a.src, owner)
		if err != nil {
			return err
		}

		var available float64
		if cmd.Flags().Changed("available") {
			available = flagAllocAvailable
		} else {
			available, err = source.AvailableMoney(ctx, a.src, owner)
			if err != nil {
				return err
			}
		}

		summary, err := a.engine.ValidateAllocation(goalplan.AllocationRequest{
			Allocations:        allocs,
			AvailableMoney:     available,
			ExcludeGoalID:      exclude,
			ProposedPercentage: flagAllocProposed,
		})
		if err != nil {
			return err
		}

		if a.jsonOutput() {
			if err := a.writeJSON(summary); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(a.out)
			fmt.Fprint(a.out, cli.RenderAllocation(flagAllocProposed, summary))
		}

		if !flagAllocApply {
			return nil
		}
		if !summary.IsValid {
			return fmt.Errorf("not applied: goals of %s would total %s", owner, cli.FormatPercent(summary.ProposedNewTotalPercentage))
		}
		if err := a.store.UpdateSavingsPercentage(ctx, flagAllocGoal, flagAllocProposed); err != nil {
			return err
		}
		a.logger.Info("Savings percentage updated", "goal", flagAllocGoal, "percentage", flagAllocProposed)
		if !flagQuiet {
			pterm.Success.Printfln("Goal %s now saves %s of available money", flagAllocGoal, cli.FormatPercent(flagAllocProposed))
		}
		return nil
	})
}
