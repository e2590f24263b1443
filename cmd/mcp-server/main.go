package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/eshaffer321/goalplan-go/internal/cli"
	"github.com/eshaffer321/goalplan-go/internal/config"
	"github.com/eshaffer321/goalplan-go/internal/source"
	"github.com/eshaffer321/goalplan-go/internal/store"
	"github.com/eshaffer321/goalplan-go/internal/types"
	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	// Same config file as the goalplan CLI
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if plan := os.Getenv("GOALPLAN_PLAN"); plan != "" {
		cfg.Source.Kind = config.SourceFile
		cfg.Source.Path = plan
	}

	// stdout carries the protocol, logs go to stderr
	logger := cli.NewJSONLogger(os.Stderr, os.Getenv("GOALPLAN_DEBUG") != "")

	src, closeSource, err := openSource(cfg, logger)
	if err != nil {
		log.Fatalf("failed to open record source: %v", err)
	}
	defer closeSource()

	engine, err := goalplan.NewEngine(&goalplan.Options{
		Logger:                  logger,
		AlwaysGenerateScenarios: cfg.Engine.AlwaysGenerateScenarios,
		MaxAlternatives:         cfg.Engine.MaxAlternatives,
		SentryDSN:               config.GetSentryDSN(cfg),
	})
	if err != nil {
		log.Fatalf("failed to initialize engine: %v", err)
	}
	defer engine.Close()

	impl := &mcp.Implementation{
		Name:    "goalplan",
		Version: "1.0.0",
	}

	server := mcp.NewServer(impl, nil)

	registerTools(server, &goalTools{engine: engine, src: src})

	// Run server over stdio transport
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Error("Server stopped", "error", err)
	}
}

func openSource(cfg config.Config, logger *cli.Logger) (source.Source, func(), error) {
	switch cfg.Source.Kind {
	case config.SourceFile:
		src, err := source.NewFileSource(cfg.Source.Path)
		return src, func() {}, err
	case config.SourceSQLite:
		db, err := store.Open(config.DatabasePath(cfg))
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	case config.SourceRemote:
		return source.NewRemoteSource(&source.RemoteOptions{
			BaseURL: cfg.Source.BaseURL,
			Token:   config.GetToken(cfg),
			RetryConfig: &types.RetryConfig{
				MaxRetries: cfg.Retry.MaxRetries,
				RetryWait:  cfg.Retry.RetryWait.Duration,
				MaxWait:    cfg.Retry.MaxWait.Duration,
			},
			Logger: logger,
		}), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

func registerTools(server *mcp.Server, tools *goalTools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "evaluate_goal",
		Description: "Evaluate whether a savings goal can be reached by its deadline. Returns the feasibility status, a summary message, the recommended change (higher savings percentage, removing low priority expenses, or both) and alternatives.",
	}, tools.EvaluateGoal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_allocation",
		Description: "Check whether a proposed savings percentage fits next to the owner's other goals without exceeding 100 percent of available money.",
	}, tools.CheckAllocation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "goal_progress",
		Description: "Get the time progress and savings progress of a goal, as percentages of its period and target.",
	}, tools.GoalProgress)
}
