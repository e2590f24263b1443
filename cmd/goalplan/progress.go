package main

import (
	"fmt"

	"github.com/eshaffer321/goalplan-go/internal/cli"
	"github.com/eshaffer321/goalplan-go/internal/source"
	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress [goal-id]",
	Short: "Show time and savings progress of goals",
	Long:  "Show time and savings progress of one goal, or of every goal of the owner when no ID is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProgress,
}

func init() {
	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		ctx := cmd.Context()

		var inputs []goalplan.EvaluateInput
		if len(args) == 1 {
			in, err := source.LoadEvaluation(ctx, a.src, args[0])
			if err != nil {
				return err
			}
			inputs = append(inputs, in)
		} else {
			all, err := source.LoadOwnerEvaluations(ctx, a.src, flagOwner)
			if err != nil {
				return err
			}
			inputs = all
		}

		results := make([]goalplan.GoalProgress, 0, len(inputs))
		for _, in := range inputs {
			p, err := a.engine.Progress(in.Goal, in.Incomes, in.Expenses, a.now)
			if err != nil {
				return fmt.Errorf("goal %s: %w", in.Goal.ID, err)
			}
			results = append(results, p)
		}

		if a.jsonOutput() {
			return a.writeJSON(results)
		}

		for i, p := range results {
			name := inputs[i].Goal.Name
			if name == "" {
				name = inputs[i].Goal.ID
			}
			fmt.Fprintln(a.out)
			fmt.Fprint(a.out, cli.RenderProgress(name, p))
		}
		return nil
	})
}
