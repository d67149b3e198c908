package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jortega/tlmkt-assign/cmd/cli/commands"
	"github.com/jortega/tlmkt-assign/internal/config"
	"github.com/jortega/tlmkt-assign/pkg/clients/sheetsclient"
	"github.com/jortega/tlmkt-assign/pkg/postgres"
	"github.com/jortega/tlmkt-assign/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Telemarketing assignment CLI - Distribute daily leads to operators",
		Long:  `A CLI tool for running the daily telemarketing lead assignment batch, previewing quotas, and inspecting stored assignments.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.RunAssignmentCmd(app))
	rootCmd.AddCommand(commands.PreviewQuotasCmd(app))
	rootCmd.AddCommand(commands.ListOperatorsCmd(app))
	rootCmd.AddCommand(commands.ViewAssignmentsCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, sheets client, and the warehouse
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	app.Logger.Debug("OAuth configuration loaded successfully")

	app.Logger.Info("Initializing sheets client")
	app.SheetsClient, err = sheetsclient.NewClient(app.Ctx, oauthCfg, env)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully")

	app.Logger.Info("Connecting to lead warehouse")
	warehouse, err := postgres.NewDB(app.Ctx, app.Cfg.WarehouseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}

	app.Logger.Info("Running database migrations")
	if err := warehouse.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Warehouse = warehouse
	app.Logger.Info("Warehouse initialized successfully")

	return nil
}
