package storage

import (
	"context"
	"errors"
	"fmt"

	"triage_queue/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore хранит пациентов в PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// CreatePatient вставляет запись в транзакции и заполняет ID.
func (s *GormStore) CreatePatient(ctx context.Context, p *models.Patient) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(p).Error
	})
	if err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}

// UpdateStatus меняет статус и возвращает обновлённую запись.
// При отсутствии пациента транзакция откатывается и возвращается ErrNotFound.
func (s *GormStore) UpdateStatus(ctx context.Context, id uint, status models.Status) (*models.Patient, error) {
	var updated models.Patient
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&updated).
			Clauses(clause.Returning{}).
			Where("id = ?", id).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update patient %d status: %w", id, err)
	}
	return &updated, nil
}

// ListByStatus возвращает пациентов с заданным статусом, упорядоченных по времени регистрации.
// limit <= 0 означает без ограничения.
func (s *GormStore) ListByStatus(ctx context.Context, status models.Status, order Order, limit int) ([]models.Patient, error) {
	q := s.db.WithContext(ctx).Where("status = ?", status)
	if order == NewestFirst {
		q = q.Order("check_in_time DESC, id DESC")
	} else {
		q = q.Order("check_in_time ASC, id ASC")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	patients := make([]models.Patient, 0)
	if err := q.Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("list %s patients: %w", status, err)
	}
	return patients, nil
}

func (s *GormStore) FindByCodeAndName(ctx context.Context, code, name string) (*models.Patient, error) {
	var p models.Patient
	err := s.db.WithContext(ctx).Where("code = ? AND name = ?", code, name).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find patient by code: %w", err)
	}
	return &p, nil
}
