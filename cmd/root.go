package cmd

import (
	"context"
	"os"

	"streambot/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cfg *config.Config

// NewRootCmd creates the root command. Running it without a subcommand starts the bot.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "streambot",
		Short: "Discord companion bot for the stream",
		Long: `streambot runs the Discord side of the stream: rock-paper-scissors duels
wagering chat points, balance lookups and the battle log sent to the visualizer.

Configuration is read from the environment and an optional .env file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			configureLogging(cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), cfg)
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newPointsCmd())

	return rootCmd
}

// Execute runs the root command until ctx is cancelled
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// configureLogging applies LOG_LEVEL and picks JSON output in production
func configureLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("Unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
