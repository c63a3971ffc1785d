package queue

import (
	"context"
	"time"

	"triage_queue/internal/models"
	"triage_queue/internal/storage"
)

// Store хранит пациентов.
type Store interface {
	CreatePatient(ctx context.Context, p *models.Patient) error
	UpdateStatus(ctx context.Context, id uint, status models.Status) (*models.Patient, error)
	ListByStatus(ctx context.Context, status models.Status, order storage.Order, limit int) ([]models.Patient, error)
	FindByCodeAndName(ctx context.Context, code, name string) (*models.Patient, error)
}

// Notifier рассылает сигнал подключённым клиентам.
type Notifier interface {
	Broadcast(message []byte)
	ClientCount() int
}

// Cache хранит сериализованный снимок очереди ожидания.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
