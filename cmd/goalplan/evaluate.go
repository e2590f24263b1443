package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/eshaffer321/goalplan-go/internal/cli"
	"github.com/eshaffer321/goalplan-go/internal/export"
	"github.com/eshaffer321/goalplan-go/internal/source"
	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	flagEvalAll       bool
	flagEvalScenarios bool
	flagEvalExport    string
	flagEvalExportDir string
	flagEvalNoRecord  bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [goal-id]",
	Short: "Evaluate whether a goal is achievable by its deadline",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEvaluate,
}

func init() {
	evaluateCmd.Flags().BoolVarP(&flagEvalAll, "all", "a", false, "Evaluate every goal of the owner")
	evaluateCmd.Flags().BoolVar(&flagEvalScenarios, "scenarios", false, "Generate alternatives even for achievable goals")
	evaluateCmd.Flags().StringVar(&flagEvalExport, "export", "", "Also export reports: json, csv or pdf")
	evaluateCmd.Flags().StringVar(&flagEvalExportDir, "export-dir", "", "Export directory (default from config or working directory)")
	evaluateCmd.Flags().BoolVar(&flagEvalNoRecord, "no-record", false, "Do not store the evaluation in history")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !flagEvalAll {
		return fmt.Errorf("a goal ID or --all is required")
	}

	return withApp(cmd, func(a *app) error {
		ctx := cmd.Context()

		var inputs []goalplan.EvaluateInput
		if flagEvalAll {
			all, err := source.LoadOwnerEvaluations(ctx, a.src, flagOwner)
			if err != nil {
				return err
			}
			inputs = all
		} else {
			in, err := source.LoadEvaluation(ctx, a.src, args[0])
			if err != nil {
				return err
			}
			inputs = []goalplan.EvaluateInput{in}
		}

		if len(inputs) == 0 {
			if !flagQuiet {
				pterm.Warning.Println("No goals found")
			}
			return nil
		}

		reports, err := a.evaluateAll(ctx, inputs)
		if err != nil {
			return err
		}

		if a.store != nil && !flagEvalNoRecord {
			for _, r := range reports {
				if err := a.store.RecordEvaluation(ctx, r); err != nil {
					a.logger.Warn("Failed to record evaluation", "goal", r.GoalID, "error", err)
				}
			}
		}

		if a.jsonOutput() {
			if len(reports) == 1 && !flagEvalAll {
				if err := a.writeJSON(reports[0]); err != nil {
					return err
				}
			} else if err := a.writeJSON(reports); err != nil {
				return err
			}
		} else {
			for _, r := range reports {
				fmt.Fprintln(a.out)
				fmt.Fprint(a.out, cli.RenderReport(r))
			}
		}

		if flagEvalExport != "" {
			dir := flagEvalExportDir
			if dir == "" {
				dir = a.cfg.Output.Dir
			}
			path, err := (&export.Exporter{Dir: dir}).Write(flagEvalExport, "goalplan_report", reports)
			if err != nil {
				return err
			}
			if !flagQuiet {
				pterm.Success.Printfln("Exported %d report(s) to %s", len(reports), path)
			}
		}
		return nil
	})
}

// evaluateAll evaluates goals concurrently and keeps the input order.
func (a *app) evaluateAll(ctx context.Context, inputs []goalplan.EvaluateInput) ([]*goalplan.FeasibilityReport, error) {
	reports := make([]*goalplan.FeasibilityReport, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i := range inputs {
		in := inputs[i]
		in.Now = a.now
		in.IncludeAllScenarios = flagEvalScenarios

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i], errs[i] = a.engine.Evaluate(ctx, in)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("goal %s: %w", inputs[i].Goal.ID, err)
		}
	}
	return reports, nil
}
