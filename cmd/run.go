package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ifly-videos-bot/internal/bot"
	"ifly-videos-bot/internal/config"
	"ifly-videos-bot/internal/database"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bot (long polling)",
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.BuildLogger()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	b, err := bot.New(cfg, db, logger)
	if err != nil {
		return fmt.Errorf("bot: %w", err)
	}

	logger.Info("starting bot",
		zap.String("database", cfg.DatabasePath),
		zap.Duration("session_length", cfg.SessionLength))
	return b.Start()
}
