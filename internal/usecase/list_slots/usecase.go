package list_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain/slots"
)

// UseCase use case для получения слотов визитов ресурса на дату
type UseCase struct {
	ruleRepo           RuleRepository
	appointmentRepo    AppointmentRepository
	generator          SlotGenerator
	metrics            Metrics
	advanceBookingDays int
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ruleRepo RuleRepository,
	appointmentRepo AppointmentRepository,
	generator SlotGenerator,
	metrics Metrics,
	advanceBookingDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		ruleRepo:           ruleRepo,
		appointmentRepo:    appointmentRepo,
		generator:          generator,
		metrics:            metrics,
		advanceBookingDays: advanceBookingDays,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListSlots: resource=%d, date=%s", req.ResourceID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время один раз на весь расчет
	now := uc.timeProvider.Now()

	// 3. Проверяем горизонт записи
	if err := validateHorizon(req.Date, now, uc.generator.Location(), uc.advanceBookingDays); err != nil {
		uc.logger.Warn("ListSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем правила доступности ресурса
	rules, err := uc.ruleRepo.ListByResource(ctx, req.ResourceID)
	if err != nil {
		uc.logger.Error("ListSlots: failed to get rules for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	// 5. Получаем активные визиты на дату (pending и confirmed занимают слот)
	appointments, err := uc.appointmentRepo.ListActiveByDate(ctx, req.ResourceID, req.Date)
	if err != nil {
		uc.logger.Error("ListSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	occupied, err := slots.OccupiedByAll(appointments, uc.generator.Location())
	if err != nil {
		uc.logger.Error("ListSlots: malformed appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to build occupancy: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты
	daySlots, err := uc.generator.GenerateDay(req.Date, rules, occupied, now)
	if err != nil {
		uc.logger.Error("ListSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	available := slots.CountAvailable(daySlots)
	uc.metrics.RecordSlots(available, len(daySlots)-available)

	result := make([]Slot, 0, len(daySlots))
	for _, s := range daySlots {
		result = append(result, Slot{
			Time:      s.Time,
			Available: s.Available,
			Priority:  s.Priority,
		})
	}

	uc.logger.Info("ListSlots: generated %d slots (%d available) for resource=%d, date=%s",
		len(result), available, req.ResourceID, req.Date)

	return &Response{
		ResourceID: req.ResourceID,
		Date:       req.Date,
		Slots:      result,
	}, nil
}
