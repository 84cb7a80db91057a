// Package main is the trades marketplace API entry point.
package main

import (
	"os"

	_ "trades_marketplace/docs"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

// @title           Trades Marketplace API
// @version         1.0
// @description     Job requests, quotes and settlement for a trades marketplace, backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "marketplace",
	Short: "Trades marketplace API",
	Long: `marketplace serves the trades marketplace HTTP API.

Configuration is read from the environment (and a .env file when present).`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(createTablesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
