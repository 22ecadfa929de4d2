package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ifly-videos-bot/internal/config"
	"ifly-videos-bot/internal/database"
)

var initDBCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the database file and apply migrations",
	RunE:  runInitDB,
}

// runInitDB needs only DATABASE_PATH, so the config is not validated.
func runInitDB(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	fmt.Printf("Database initialized at %s\n", cfg.DatabasePath)
	return nil
}
