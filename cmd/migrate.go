package cmd

import (
	"fmt"
	"strconv"

	"streambot/config"
	"streambot/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres points schema",
	}

	cmd.AddCommand(newMigrateUpCmd())
	cmd.AddCommand(newMigrateDownCmd())
	cmd.AddCommand(newMigrateStatusCmd())

	return cmd
}

func newMigrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := requireDatabaseURL(cfg)
			if err != nil {
				return err
			}
			return database.MigrateUp(url)
		},
	}
}

func newMigrateDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid steps %q: %w", args[0], err)
				}
				steps = n
			}

			url, err := requireDatabaseURL(cfg)
			if err != nil {
				return err
			}
			return database.MigrateDown(url, steps)
		},
	}
}

func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := requireDatabaseURL(cfg)
			if err != nil {
				return err
			}

			version, dirty, err := database.MigrateStatus(url)
			if err != nil {
				return err
			}
			if version == 0 {
				cmd.Println("No migrations applied")
				return nil
			}
			cmd.Printf("Version: %d, dirty: %t\n", version, dirty)
			return nil
		},
	}
}

func requireDatabaseURL(cfg *config.Config) (string, error) {
	url := cfg.GetDatabaseURL()
	if url == "" {
		return "", fmt.Errorf("DATABASE_URL or DATABASE_HOST and DATABASE_NAME must be set")
	}
	return url, nil
}
