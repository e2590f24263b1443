package main

import (
	"fmt"

	"github.com/eshaffer321/goalplan-go/internal/config"
	"github.com/eshaffer321/goalplan-go/internal/source"
	"github.com/eshaffer321/goalplan-go/internal/store"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var flagImportDB string

var importCmd = &cobra.Command{
	Use:   "import <plan-file>",
	Short: "Import a TOML, YAML or JSON plan file into the local database",
	Long:  "Import a plan file into the local database, replacing the owner's goals, incomes and expenses.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&flagImportDB, "db", "", "Database path (default from config)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	plan, err := source.NewFileSource(args[0])
	if err != nil {
		return err
	}

	owner := plan.Plan().Owner
	if flagOwner != "" {
		owner = flagOwner
	}

	ctx := cmd.Context()
	goals, err := plan.Goals(ctx, "")
	if err != nil {
		return err
	}
	incomes, err := plan.Incomes(ctx, "")
	if err != nil {
		return err
	}
	expenses, err := plan.Expenses(ctx, "")
	if err != nil {
		return err
	}

	for _, g := range goals {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("goal %q: %w", g.Name, err)
		}
	}

	dbPath := flagImportDB
	if dbPath == "" {
		cfg.Source.Kind = config.SourceSQLite
		dbPath = config.DatabasePath(cfg)
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	summary, err := db.Import(ctx, owner, goals, incomes, expenses)
	if err != nil {
		return err
	}

	if !flagQuiet {
		pterm.Success.Printfln("Imported %d goals, %d incomes and %d expenses for %q into %s",
			summary.Goals, summary.Incomes, summary.Expenses, owner, dbPath)
	}
	return nil
}
