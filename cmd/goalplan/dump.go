package main

import (
	"github.com/eshaffer321/goalplan-go/internal/source"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <plan-file>",
	Short: "Write an owner's goals, incomes and expenses to a plan file",
	Long: `Write an owner's goals, incomes and expenses to a TOML, YAML or JSON plan
file, chosen by extension. The file can be loaded again with --source file or
imported with the import command.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		plan, err := source.BuildPlan(cmd.Context(), a.src, flagOwner)
		if err != nil {
			return err
		}
		if err := source.WritePlan(args[0], plan); err != nil {
			return err
		}

		a.logger.Debug("Plan written", "path", args[0], "owner", plan.Owner)
		if !flagQuiet {
			pterm.Success.Printfln("Wrote %d goals, %d incomes and %d expenses for %q to %s",
				len(plan.Goals), len(plan.Incomes), len(plan.Expenses), plan.Owner, args[0])
		}
		return nil
	})
}
