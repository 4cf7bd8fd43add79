package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Guardian/internal/config"
	"github.com/MikeSquared-Agency/Guardian/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

var (
	configPath   string
	migrateDBURL string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	migrateCmd.Flags().StringVar(&migrateDBURL, "database-url", "", "Database URL (overrides config and GUARDIAN_DATABASE_URL)")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	url := cfg.Database.URL
	if migrateDBURL != "" {
		url = migrateDBURL
	}

	ctx := context.Background()
	db, err := store.NewPostgresStore(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}
