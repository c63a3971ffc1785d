package storage

import (
	"errors"
	"fmt"

	"triage_queue/internal/config"
	"triage_queue/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrNotFound возвращается, когда запись с заданным ключом отсутствует.
var ErrNotFound = errors.New("record not found")

// Order задаёт направление сортировки по времени регистрации.
type Order int

const (
	OldestFirst Order = iota
	NewestFirst
)

// ConnectDatabase открывает подключение к PostgreSQL через gorm.
func ConnectDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("подключение к базе данных успешно")
	return db, nil
}

// Migrate создаёт или обновляет таблицу пациентов.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Patient{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// InitRedis возвращает клиент Redis или nil, если адрес не задан.
func InitRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}
