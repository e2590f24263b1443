package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <goal-id>",
	Short: "Delete a goal and its evaluation history from the local database",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		if a.store == nil {
			return fmt.Errorf("delete needs the sqlite source, not %q", a.cfg.Source.Kind)
		}

		ctx := cmd.Context()
		// Fails with goal not found before anything is removed
		goal, err := a.store.Goal(ctx, args[0])
		if err != nil {
			return err
		}
		if err := a.store.DeleteGoal(ctx, goal.ID); err != nil {
			return err
		}

		a.logger.Info("Goal deleted", "goal", goal.ID)
		if !flagQuiet {
			pterm.Success.Printfln("Deleted goal %q (%s)", goal.Name, goal.ID)
		}
		return nil
	})
}
