package main

import (
	"fmt"

	"github.com/eshaffer321/goalplan-go/internal/cli"
	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history <goal-id>",
	Short: "Show past evaluations of a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 10, "Number of evaluations to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		if a.store == nil {
			return fmt.Errorf("history needs the sqlite source, not %q", a.cfg.Source.Kind)
		}

		records, err := a.store.Evaluations(cmd.Context(), args[0], flagHistoryLimit)
		if err != nil {
			return err
		}

		if a.jsonOutput() {
			return a.writeJSON(records)
		}

		if len(records) == 0 {
			fmt.Fprintf(a.out, "  No evaluations recorded for %s\n", args[0])
			return nil
		}

		rows := make([][]string, 0, len(records))
		for _, r := range records {
			recommended := r.Recommended
			if recommended == "" {
				recommended = "-"
			}
			rows = append(rows, []string{
				r.EvaluatedAt.Format("2006-01-02 15:04"),
				cli.StatusLabel(r.Status),
				recommended,
			})
		}

		fmt.Fprintln(a.out)
		fmt.Fprint(a.out, cli.RenderTable(cli.Table{
			Title:   "History of " + args[0],
			Headers: []string{"Evaluated", "Status", "Recommended"},
			Rows:    rows,
		}))
		return nil
	})
}
