package main

import (
	"testing"

	"trades_marketplace/internal/adapter/persistence/repository"
	"trades_marketplace/internal/infrastructure/config"
	"trades_marketplace/internal/infrastructure/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTablesFromConfig(t *testing.T) {
	tables := tablesFromConfig(&config.Config{QuotesTable: "prod_quotes"})

	assert.Equal(t, "prod_quotes", tables.Quotes)
	assert.Equal(t, repository.DefaultJobRequestsTableName, tables.JobRequests)
	assert.Equal(t, repository.DefaultLoginCodesTableName, tables.LoginCodes)
}

func TestNewNotifier_FallsBackToLog(t *testing.T) {
	n, closeFn, err := newNotifier(&config.Config{}, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &notification.LogNotifier{}, n)
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["create-tables"])
}
