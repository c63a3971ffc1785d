package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"triage_queue/internal/models"
	"triage_queue/internal/storage"

	"github.com/rs/zerolog"
)

// UpdateToken не несёт данных: получатель заново запрашивает состояние.
const UpdateToken = "update"

// TreatedListLimit ограничивает выдачу RecentlyTreated.
const TreatedListLimit = 10

const waitingQueueKey = "triage:queue:waiting"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrInvalidStatus   = errors.New("invalid patient status")
	ErrInvalidPatient  = errors.New("invalid patient data")
)

type Service struct {
	store    Store
	notifier Notifier
	log      zerolog.Logger

	cache    Cache
	cacheTTL time.Duration
	// generation растёт при каждой мутации; снимок, прочитанный до неё, в кэш не пишется.
	cacheMu    sync.Mutex
	generation uint64
	// cacheDirty выставляется, если сбросить кэш не удалось; до успешной записи свежего снимка кэш не читается.
	cacheDirty bool

	now  func() time.Time
	code func() string
}

func NewService(store Store, notifier Notifier, log zerolog.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		code:     GenerateCode,
	}
}

// SetCache подключает кэш снимка очереди ожидания.
func (s *Service) SetCache(cache Cache, ttl time.Duration) {
	s.cache = cache
	s.cacheTTL = ttl
}

// CheckIn регистрирует пациента: статус waiting, новый код, серверное время.
func (s *Service) CheckIn(ctx context.Context, name string, severity int) (*models.Patient, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPatient)
	}
	if severity < 0 {
		return nil, fmt.Errorf("%w: severity must not be negative", ErrInvalidPatient)
	}

	p := &models.Patient{
		Name:        name,
		Code:        s.code(),
		Severity:    severity,
		CheckInTime: s.now(),
		Status:      models.StatusWaiting,
	}
	if err := s.store.CreatePatient(ctx, p); err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("не удалось добавить пациента")
		return nil, err
	}

	s.log.Info().Uint("patient_id", p.ID).Str("code", p.Code).Int("severity", p.Severity).Msg("пациент добавлен")
	s.notify(ctx)
	return p, nil
}

// UpdateStatus выставляет новый статус. Допустим любой переход между тремя статусами.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status models.Status) (*models.Patient, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	p, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		s.log.Error().Err(err).Uint("patient_id", id).Msg("не удалось обновить статус пациента")
		return nil, err
	}

	s.log.Info().Uint("patient_id", p.ID).Str("status", string(p.Status)).Msg("статус пациента обновлён")
	s.notify(ctx)
	return p, nil
}

// WaitingQueue возвращает очередь ожидания с позицией и оценкой ожидания каждого пациента.
func (s *Service) WaitingQueue(ctx context.Context) ([]models.PatientWithWaitTime, error) {
	if cached, ok := s.cachedQueue(ctx); ok {
		return cached, nil
	}
	gen := s.currentGeneration()

	patients, err := s.store.ListByStatus(ctx, models.StatusWaiting, storage.OldestFirst, 0)
	if err != nil {
		return nil, err
	}

	placements := Annotate(EntriesOf(patients))
	out := make([]models.PatientWithWaitTime, 0, len(patients))
	for _, p := range patients {
		pl := placements[p.ID]
		out = append(out, models.PatientWithWaitTime{
			Patient:        p,
			WaitTime:       pl.WaitTime,
			PositionInLine: pl.Position,
		})
	}

	s.storeQueue(ctx, gen, out)
	return out, nil
}

func (s *Service) InTreatment(ctx context.Context) ([]models.Patient, error) {
	return s.store.ListByStatus(ctx, models.StatusInTreatment, storage.OldestFirst, 0)
}

// RecentlyTreated возвращает последних вылеченных пациентов, новые первыми.
func (s *Service) RecentlyTreated(ctx context.Context) ([]models.Patient, error) {
	return s.store.ListByStatus(ctx, models.StatusTreated, storage.NewestFirst, TreatedListLimit)
}

// Lookup ищет пациента по коду и имени. Для пациента не в статусе waiting
// позиция и ожидание равны нулю.
func (s *Service) Lookup(ctx context.Context, code, name string) (*models.PatientWithWaitTime, error) {
	p, err := s.store.FindByCodeAndName(ctx, code, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	waiting, err := s.WaitingQueue(ctx)
	if err != nil {
		return nil, err
	}

	pl := Locate(entriesOfAnnotated(waiting), p.ID)
	return &models.PatientWithWaitTime{
		Patient:        *p,
		WaitTime:       pl.WaitTime,
		PositionInLine: pl.Position,
	}, nil
}

// Summary используется периодическим отчётом о нагрузке.
type Summary struct {
	Waiting        int `json:"waiting"`
	InTreatment    int `json:"in_treatment"`
	NewArrivalWait int `json:"new_arrival_wait"`
	Subscribers    int `json:"subscribers"`
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	waiting, err := s.WaitingQueue(ctx)
	if err != nil {
		return Summary{}, err
	}
	treating, err := s.InTreatment(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Waiting:        len(waiting),
		InTreatment:    len(treating),
		NewArrivalWait: TotalWait(entriesOfAnnotated(waiting)),
		Subscribers:    s.notifier.ClientCount(),
	}, nil
}

// notify сбрасывает кэш и рассылает сигнал. Вызывается только после успешной записи.
func (s *Service) notify(ctx context.Context) {
	s.cacheMu.Lock()
	s.generation++
	if s.cache != nil {
		if err := s.cache.Delete(ctx, waitingQueueKey); err != nil {
			s.cacheDirty = true
			s.log.Warn().Err(err).Msg("не удалось сбросить кэш очереди, чтение из кэша приостановлено")
		} else {
			s.cacheDirty = false
		}
	}
	s.cacheMu.Unlock()

	s.log.Debug().Int("subscribers", s.notifier.ClientCount()).Msg("рассылка обновления клиентам")
	s.notifier.Broadcast([]byte(UpdateToken))
}

func (s *Service) cachedQueue(ctx context.Context) ([]models.PatientWithWaitTime, bool) {
	if s.cache == nil {
		return nil, false
	}
	s.cacheMu.Lock()
	dirty := s.cacheDirty
	s.cacheMu.Unlock()
	if dirty {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, waitingQueueKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("ошибка чтения кэша очереди")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var out []models.PatientWithWaitTime
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn().Err(err).Msg("повреждённый снимок очереди в кэше")
		return nil, false
	}
	return out, true
}

func (s *Service) currentGeneration() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.generation
}

func (s *Service) storeQueue(ctx context.Context, gen uint64, queue []models.PatientWithWaitTime) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(queue)
	if err != nil {
		s.log.Warn().Err(err).Msg("не удалось сериализовать очередь")
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if gen != s.generation {
		return
	}
	if err := s.cache.Set(ctx, waitingQueueKey, raw, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("не удалось записать очередь в кэш")
		return
	}
	s.cacheDirty = false
}

func entriesOfAnnotated(queue []models.PatientWithWaitTime) []Entry {
	entries := make([]Entry, len(queue))
	for i, p := range queue {
		entries[i] = Entry{ID: p.ID, Severity: p.Severity}
	}
	return entries
}
