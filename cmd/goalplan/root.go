package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/eshaffer321/goalplan-go/internal/cli"
	"github.com/eshaffer321/goalplan-go/internal/config"
	"github.com/eshaffer321/goalplan-go/internal/source"
	"github.com/eshaffer321/goalplan-go/internal/store"
	"github.com/eshaffer321/goalplan-go/internal/types"
	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagSource  string
	flagPath    string
	flagOwner   string
	flagOutput  string
	flagAsOf    string
	flagVerbose bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:           "goalplan",
	Short:         "Savings goal feasibility planner",
	Long:          "Check whether savings goals can be reached by their deadlines and what to change when they cannot.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/goalplan/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagSource, "source", "s", "", "Record source: file, sqlite or remote")
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "f", "", "Plan file or database path")
	rootCmd.PersistentFlags().StringVarP(&flagOwner, "owner", "u", "", "Owner whose goals are used")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output format: table or json")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Evaluate as of this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// app holds what every command needs once flags and config are resolved.
type app struct {
	cfg    config.Config
	logger *cli.Logger
	engine *goalplan.Engine
	src    source.Source
	store  *store.Store
	out    io.Writer
	now    time.Time
}

func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFrom(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}

	if flagSource != "" {
		cfg.Source.Kind = flagSource
	}
	if flagPath != "" {
		cfg.Source.Path = flagPath
	}
	if flagOutput != "" {
		cfg.Output.Format = flagOutput
	}
	return cfg, cfg.Validate()
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: cli.NewLogger(cmd.ErrOrStderr(), flagVerbose),
		out:    cmd.OutOrStdout(),
	}

	if flagAsOf != "" {
		d, err := goalplan.ParseDate(flagAsOf)
		if err != nil {
			return nil, fmt.Errorf("invalid --as-of: %w", err)
		}
		a.now = d.Time
	}

	opts := &goalplan.Options{
		Logger:                  a.logger,
		AlwaysGenerateScenarios: cfg.Engine.AlwaysGenerateScenarios,
		MaxAlternatives:         cfg.Engine.MaxAlternatives,
	}
	if dsn := config.GetSentryDSN(cfg); dsn != "" {
		opts.SentryDSN = dsn
		opts.SentryOptions = &sentry.ClientOptions{Environment: cfg.Sentry.Environment}
	}
	a.engine, err = goalplan.NewEngine(opts)
	if err != nil {
		return nil, err
	}

	if err := a.openSource(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) openSource() error {
	switch a.cfg.Source.Kind {
	case config.SourceFile:
		src, err := source.NewFileSource(a.cfg.Source.Path)
		if err != nil {
			return err
		}
		a.src = src

	case config.SourceSQLite:
		db, err := store.Open(config.DatabasePath(a.cfg))
		if err != nil {
			return err
		}
		a.store = db
		a.src = db

	case config.SourceRemote:
		a.src = source.NewRemoteSource(&source.RemoteOptions{
			BaseURL: a.cfg.Source.BaseURL,
			Token:   config.GetToken(a.cfg),
			RetryConfig: &types.RetryConfig{
				MaxRetries: a.cfg.Retry.MaxRetries,
				RetryWait:  a.cfg.Retry.RetryWait.Duration,
				MaxWait:    a.cfg.Retry.MaxWait.Duration,
			},
			Logger: a.logger,
		})

	default:
		return fmt.Errorf("unknown source kind %q", a.cfg.Source.Kind)
	}

	a.logger.Debug("Opened record source", "kind", a.cfg.Source.Kind)
	return nil
}

// Close releases the database and flushes error reports.
func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("Failed to close database", "error", err)
		}
	}
	if a.engine != nil {
		a.engine.Close()
	}
}

func (a *app) jsonOutput() bool {
	return a.cfg.Output.Format == "json"
}

func (a *app) writeJSON(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// withApp runs fn with a ready app and always closes it.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
