package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fantaelite/draftmaster/cmd/cli/commands"
	"github.com/fantaelite/draftmaster/internal/config"
	"github.com/fantaelite/draftmaster/pkg/utils/logging"
)

var (
	env        string
	configPath string
	app        = &commands.AppContext{}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	app.Ctx = ctx

	rootCmd := &cobra.Command{
		Use:   "draftmaster",
		Short: "Draftmaster CLI - Generate fantacalcio rosters within budget",
		Long:  `A CLI tool for generating fantacalcio auction rosters that fill every role quota and spend inside a budget band.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default draftmaster_config.<env>.yaml)")
	_ = rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.ListStrategiesCmd(app))
	rootCmd.AddCommand(commands.ListPlayersCmd(app))
	rootCmd.AddCommand(commands.ImportCatalogCmd(app))
	rootCmd.AddCommand(commands.ViewHistoryCmd(app))
	rootCmd.AddCommand(commands.PublishRosterCmd(app))
	rootCmd.AddCommand(commands.ExportRosterCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and config; clients and the database are opened on demand
func initApp() error {
	var err error
	app.Env = env

	app.Cfg, err = loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var logPath string
	app.Logger, logPath, err = logging.InitLogger(env, app.Cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application",
		zap.String("environment", env),
		zap.String("log_file", logPath),
		zap.String("catalog_source", app.Cfg.Catalog.Source))

	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.LoadWithEnv(env)
}
