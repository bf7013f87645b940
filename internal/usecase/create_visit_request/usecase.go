package create_visit_request

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/slots"
)

// UseCase use case для записи на визит
type UseCase struct {
	appointmentRepo    AppointmentRepository
	ruleRepo           RuleRepository
	generator          SlotGenerator
	locker             Locker
	txManager          TransactionManager
	advanceBookingDays int
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	ruleRepo RuleRepository,
	generator SlotGenerator,
	locker Locker,
	txManager TransactionManager,
	advanceBookingDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:    appointmentRepo,
		ruleRepo:           ruleRepo,
		generator:          generator,
		locker:             locker,
		txManager:          txManager,
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

// Execute выполняет use case записи на визит.
// Слоты дня пересчитываются из текущей занятости под блокировкой ресурса,
// выбранный слот должен быть доступен, иначе возвращается domain.ErrSlotUnavailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateVisitRequest: resource=%d, date=%s, time=%s", req.ResourceID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateVisitRequest: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем дату визита
	if err := validateDate(req.Date, now, uc.generator.Location(), uc.advanceBookingDays); err != nil {
		uc.logger.Warn("CreateVisitRequest: date validation failed: %v", err)
		return nil, err
	}

	// 4. Блокируем ресурс: параллельные записи на один ресурс идут по очереди
	key := domain.ResourceKey(domain.KindVisit, req.ResourceID)
	unlock, err := uc.locker.Lock(ctx, key)
	if err != nil {
		uc.logger.Error("CreateVisitRequest: failed to lock %s: %v", key, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrLock, key, err)
	}
	defer unlock()

	var result *domain.Appointment

	// 5. Пересчет слотов и сохранение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Правила доступности ресурса
		rules, err := uc.ruleRepo.ListByResource(txCtx, req.ResourceID)
		if err != nil {
			uc.logger.Error("CreateVisitRequest: failed to get rules: %v", err)
			return fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
		}

		// 5.2. Активные визиты на дату с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.ListActiveByDate(txCtx, req.ResourceID, req.Date)
		if err != nil {
			uc.logger.Error("CreateVisitRequest: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		occupied, err := slots.OccupiedByAll(appointments, uc.generator.Location())
		if err != nil {
			uc.logger.Error("CreateVisitRequest: malformed appointment: %v", err)
			return fmt.Errorf("%w: failed to build occupancy: %v", ErrInternal, err)
		}

		// 5.3. Ищем правило, которое предлагает выбранный слот свободным
		var rule *domain.AvailabilityRule
		for _, candidate := range rules {
			ruleSlots, err := uc.generator.Generate(req.Date, candidate, occupied, now)
			if err != nil {
				uc.logger.Error("CreateVisitRequest: failed to generate slots for rule id=%d: %v", candidate.ID, err)
				return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
			}
			if slot, ok := slots.FindSlot(ruleSlots, req.StartTime); ok && slot.Available {
				rule = candidate
				break
			}
		}

		if rule == nil {
			uc.logger.Warn("CreateVisitRequest: slot %s %s is not available on resource=%d",
				req.Date, req.StartTime, req.ResourceID)
			return fmt.Errorf("%w: %s %s", domain.ErrSlotUnavailable, req.Date, req.StartTime)
		}

		// 5.4. Сохраняем визит. Длительность и отступ фиксируются из правила
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ResourceID:          req.ResourceID,
			PropertyID:          req.PropertyID,
			Date:                req.Date,
			StartTime:           req.StartTime,
			DurationMinutes:     rule.VisitDurationMinutes,
			SafetyMarginMinutes: rule.SafetyMarginMinutes,
			Status:              domain.StatusPending,
			Visitor: domain.Contact{
				Name:  strings.TrimSpace(req.VisitorName),
				Email: strings.TrimSpace(req.VisitorEmail),
				Phone: req.VisitorPhone,
			},
		})
		if err != nil {
			uc.logger.Error("CreateVisitRequest: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateVisitRequest: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:                  result.ID,
		ResourceID:          result.ResourceID,
		PropertyID:          result.PropertyID,
		Date:                result.Date,
		StartTime:           result.StartTime,
		DurationMinutes:     result.DurationMinutes,
		SafetyMarginMinutes: result.SafetyMarginMinutes,
		Status:              string(result.Status),
		VisitorName:         result.Visitor.Name,
		VisitorEmail:        result.Visitor.Email,
		VisitorPhone:        result.Visitor.Phone,
		CreatedAt:           result.CreatedAt,
		UpdatedAt:           result.UpdatedAt,
	}, nil
}
