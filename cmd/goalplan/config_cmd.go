package main

import (
	"fmt"

	"github.com/eshaffer321/goalplan-go/internal/config"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	path := flagConfig
	if path == "" {
		path = config.ConfigPath()
	}
	fmt.Fprintf(out, "  Config file: %s\n", path)
	if flagConfig != "" || config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Engine]")
	fmt.Fprintf(out, "    Always generate scenarios: %v\n", cfg.Engine.AlwaysGenerateScenarios)
	fmt.Fprintf(out, "    Max alternatives:          %d\n", cfg.Engine.MaxAlternatives)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Source]")
	fmt.Fprintf(out, "    Kind: %s\n", cfg.Source.Kind)
	switch cfg.Source.Kind {
	case config.SourceSQLite:
		fmt.Fprintf(out, "    Database: %s\n", config.DatabasePath(cfg))
	case config.SourceFile:
		fmt.Fprintf(out, "    Path: %s\n", cfg.Source.Path)
	case config.SourceRemote:
		fmt.Fprintf(out, "    Base URL: %s\n", cfg.Source.BaseURL)
		if token := config.GetToken(cfg); token != "" {
			fmt.Fprintf(out, "    Token: %s\n", maskSecret(token))
		} else {
			fmt.Fprintln(out, "    Token: not configured")
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Retry]")
	fmt.Fprintf(out, "    Max retries: %d\n", cfg.Retry.MaxRetries)
	fmt.Fprintf(out, "    Wait:        %s - %s\n", cfg.Retry.RetryWait.Duration, cfg.Retry.MaxWait.Duration)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Sentry]")
	if dsn := config.GetSentryDSN(cfg); dsn != "" {
		fmt.Fprintf(out, "    DSN:         %s\n", maskSecret(dsn))
		fmt.Fprintf(out, "    Environment: %s\n", cfg.Sentry.Environment)
	} else {
		fmt.Fprintln(out, "    DSN: not configured")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Output]")
	fmt.Fprintf(out, "    Format: %s\n", cfg.Output.Format)
	if cfg.Output.Dir != "" {
		fmt.Fprintf(out, "    Export dir: %s\n", cfg.Output.Dir)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := flagConfig
	if path == "" {
		path = config.ConfigPath()
	}
	if err := config.SaveTo(path, config.DefaultConfig()); err != nil {
		return err
	}
	if !flagQuiet {
		pterm.Success.Printfln("Wrote default config to %s", path)
	}
	return nil
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
