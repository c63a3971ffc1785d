package cmd

import (
	"triage_queue/internal/config"
	"triage_queue/internal/logger"
	"triage_queue/internal/storage"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Создать или обновить таблицу пациентов",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateDatabase(); err != nil {
				return err
			}
			log := logger.New(cfg.Env, cfg.LogLevel)

			db, err := storage.ConnectDatabase(cfg, log)
			if err != nil {
				return err
			}
			if err := storage.Migrate(db); err != nil {
				return err
			}

			log.Info().Msg("миграция выполнена")
			return nil
		},
	}
}
