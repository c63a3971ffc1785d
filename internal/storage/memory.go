package storage

import (
	"context"
	"sort"
	"sync"

	"triage_queue/internal/models"
)

// MemoryStore хранит пациентов в памяти процесса, контракт как у GormStore.
// Используется в режиме serve --memory и в тестах.
type MemoryStore struct {
	mu       sync.RWMutex
	patients []models.Patient
	nextID   uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) CreatePatient(_ context.Context, p *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID
	s.nextID++
	s.patients = append(s.patients, *p)
	return nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id uint, status models.Status) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.patients {
		if s.patients[i].ID == id {
			s.patients[i].Status = status
			updated := s.patients[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListByStatus(_ context.Context, status models.Status, order Order, limit int) ([]models.Patient, error) {
	s.mu.RLock()
	out := make([]models.Patient, 0)
	for _, p := range s.patients {
		if p.Status == status {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()

	// Равные отметки времени упорядочиваются по ID, как в GormStore.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if order == NewestFirst {
			a, b = b, a
		}
		if !a.CheckInTime.Equal(b.CheckInTime) {
			return a.CheckInTime.Before(b.CheckInTime)
		}
		return a.ID < b.ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) FindByCodeAndName(_ context.Context, code, name string) (*models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.patients {
		if p.Code == code && p.Name == name {
			found := p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
