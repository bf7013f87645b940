// Package memory keeps reservations, rules and property policies in process memory.
// It mirrors the postgres repositories method for method and returns the same sentinel errors,
// so usecases run unchanged on top of it. Cross-call atomicity comes from the resource locker.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
)

// Store общее хранилище всех сущностей сервиса
type Store struct {
	mu  sync.RWMutex
	loc *time.Location
	now func() time.Time

	seq int64

	stays        map[int64]*domain.StayRequest
	appointments map[int64]*domain.Appointment
	rules        map[int64][]*domain.AvailabilityRule
	constraints  map[int64]*domain.StayConstraints
	periods      map[int64]*domain.BlockedPeriod
}

// NewStore создает пустое хранилище. loc нужен для перевода визитов в интервалы
func NewStore(loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{
		loc:          loc,
		now:          time.Now,
		stays:        make(map[int64]*domain.StayRequest),
		appointments: make(map[int64]*domain.Appointment),
		rules:        make(map[int64][]*domain.AvailabilityRule),
		constraints:  make(map[int64]*domain.StayConstraints),
		periods:      make(map[int64]*domain.BlockedPeriod),
	}
}

// StayRequests возвращает репозиторий заявок на проживание
func (s *Store) StayRequests() *StayRequests {
	return &StayRequests{s: s}
}

// Appointments возвращает репозиторий визитов
func (s *Store) Appointments() *Appointments {
	return &Appointments{s: s}
}

// Rules возвращает репозиторий правил доступности
func (s *Store) Rules() *Rules {
	return &Rules{s: s}
}

// Properties возвращает репозиторий условий проживания и периодов
func (s *Store) Properties() *Properties {
	return &Properties{s: s}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// TransactionManager выполняет функцию без транзакции.
// В памяти нет отката, поэтому записи должны идти последним шагом функции.
type TransactionManager struct{}

// NewTransactionManager создает менеджер транзакций для хранилища в памяти
func NewTransactionManager() *TransactionManager {
	return &TransactionManager{}
}

// Do выполняет fn
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// DoReadOnly выполняет fn
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// DoSerializable выполняет fn
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
