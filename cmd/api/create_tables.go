package main

import (
	"context"
	"fmt"
	"time"

	"trades_marketplace/internal/adapter/persistence/repository"
	"trades_marketplace/internal/infrastructure/config"
	"trades_marketplace/internal/infrastructure/database"
	"trades_marketplace/internal/infrastructure/logging"

	"github.com/spf13/cobra"
)

var createTablesTimeout time.Duration

func init() {
	createTablesCmd.Flags().DurationVar(&createTablesTimeout, "timeout", 5*time.Minute, "Maximum time to wait for every table to become active")
}

var createTablesCmd = &cobra.Command{
	Use:   "create-tables",
	Short: "Create the DynamoDB tables and indexes",
	Long: `Create every DynamoDB table the API uses, with its secondary indexes,
and enable TTL on the sessions and login code tables. Existing tables are
left untouched, so the command is safe to run on every deploy.

Examples:
  # Provision DynamoDB Local
  DYNAMODB_ENDPOINT=http://localhost:8000 marketplace create-tables`,
	RunE: runCreateTables,
}

func runCreateTables(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), createTablesTimeout)
	defer cancel()

	ddb, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		return err
	}

	if err := repository.EnsureTables(ctx, ddb, tablesFromConfig(cfg), logger); err != nil {
		return err
	}
	logger.Info("tables ready")
	return nil
}
