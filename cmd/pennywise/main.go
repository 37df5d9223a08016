package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// app carries the state shared by every command of one invocation.
type app struct {
	viper   *viper.Viper
	cfg     *config.Config
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{viper: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "pennywise",
		Short: "💰 Keyword categorization for personal finances",
		Long: `pennywise: categorizes bank transactions by keyword, suggests alternatives,
reclassifies whole histories in one go and serves the same operations over HTTP.`,
		PersistentPreRunE: a.initConfig,
		SilenceUsage:      true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/pennywise/config.yaml)")
	flags.String("db", "", "database path (default: $HOME/.local/share/pennywise/pennywise.db)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = a.viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	// Add commands
	rootCmd.AddCommand(a.serveCmd())
	rootCmd.AddCommand(a.suggestCmd())
	rootCmd.AddCommand(a.categorizeCmd())
	rootCmd.AddCommand(a.batchCmd())
	rootCmd.AddCommand(a.ruleCmd())
	rootCmd.AddCommand(a.categoriesCmd())
	rootCmd.AddCommand(a.importCmd())
	rootCmd.AddCommand(a.analyzeCmd())
	rootCmd.AddCommand(a.reviewCmd())
	rootCmd.AddCommand(a.migrateCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	envFile, err := config.LoadDotEnv()
	if err != nil {
		return err
	}

	if db, _ := cmd.Flags().GetString("db"); db != "" {
		a.viper.Set(config.KeyDatabasePath, db)
	}

	cfg, err := config.Initialize(a.viper, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	// Set up logging
	if err := common.SetupLogger(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	if envFile != "" {
		slog.Debug("Loaded environment file", "path", envFile)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pennywise %s\n", version)
		},
	}
}
