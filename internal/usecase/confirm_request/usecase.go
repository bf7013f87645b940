package confirm_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/slots"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/staywindow"
	appointmentRepo "github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/appointment"
	propertyRepo "github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/property"
	stayRepo "github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/stayrequest"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/guard"
)

// UseCase use case подтверждения заявки.
// Заявка заново проверяется внутри транзакции guard, после чего guard решает: confirmed или refused.
type UseCase struct {
	stayRepo        StayRequestRepository
	appointmentRepo AppointmentRepository
	propertyRepo    PropertyRepository
	ruleRepo        RuleRepository
	generator       SlotGenerator
	stayGuard       ConflictGuard
	visitGuard      ConflictGuard
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	stayRepo StayRequestRepository,
	appointmentRepo AppointmentRepository,
	propertyRepo PropertyRepository,
	ruleRepo RuleRepository,
	generator SlotGenerator,
	stayGuard ConflictGuard,
	visitGuard ConflictGuard,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		stayRepo:        stayRepo,
		appointmentRepo: appointmentRepo,
		propertyRepo:    propertyRepo,
		ruleRepo:        ruleRepo,
		generator:       generator,
		stayGuard:       stayGuard,
		visitGuard:      visitGuard,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case подтверждения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmRequest: kind=%s, id=%d", req.Kind, req.ID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmRequest: validation failed: %v", err)
		return nil, err
	}

	// 2. Готовим кандидата и проверку для guard
	var (
		candidate  guard.Candidate
		revalidate guard.RevalidateFunc
		confirmer  ConflictGuard
		err        error
	)
	switch req.Kind {
	case domain.KindStay:
		candidate, revalidate, err = uc.prepareStay(ctx, req.ID)
		confirmer = uc.stayGuard
	case domain.KindVisit:
		candidate, revalidate, err = uc.prepareVisit(ctx, req.ID)
		confirmer = uc.visitGuard
	}
	if err != nil {
		return nil, err
	}

	// 3. Подтверждение через guard
	decision, err := confirmer.TryConfirm(ctx, candidate, revalidate)
	if err != nil {
		return nil, uc.mapGuardError(req, err)
	}

	resp := &Response{Kind: req.Kind, ID: req.ID, Status: domain.StatusConfirmed}
	if !decision.Confirmed() {
		resp.Status = domain.StatusRefused
		reason := decision.Reason
		resp.Reason = &reason
	}

	// 4. Уведомление не влияет на результат подтверждения
	change := domain.StatusChange{
		Ref:        domain.ReservationRef{Kind: req.Kind, ID: req.ID},
		ResourceID: candidate.ResourceID,
		From:       domain.StatusPending,
		To:         resp.Status,
		Reason:     resp.Reason,
		ChangedAt:  uc.timeProvider.Now(),
	}
	if err := uc.notifier.NotifyStatusChange(ctx, change); err != nil {
		uc.logger.Warn("ConfirmRequest: failed to notify about %s id=%d: %v", req.Kind, req.ID, err)
	}

	uc.logger.Info("ConfirmRequest: %s id=%d is %s", req.Kind, req.ID, resp.Status)

	return resp, nil
}

// prepareStay загружает заявку на проживание и строит проверку правил проживания
func (uc *UseCase) prepareStay(ctx context.Context, id int64) (guard.Candidate, guard.RevalidateFunc, error) {
	stay, err := uc.stayRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, stayRepo.ErrRequestNotFound) {
			uc.logger.Warn("ConfirmRequest: stay request id=%d not found", id)
			return guard.Candidate{}, nil, ErrRequestNotFound
		}
		uc.logger.Error("ConfirmRequest: failed to get stay request id=%d: %v", id, err)
		return guard.Candidate{}, nil, fmt.Errorf("%w: failed to get stay request: %v", ErrInternal, err)
	}

	if err := checkPending(domain.KindStay, id, stay.Status); err != nil {
		uc.logger.Warn("ConfirmRequest: %v", err)
		return guard.Candidate{}, nil, err
	}

	nights, err := interval.FromDates(stay.CheckIn, stay.CheckOut)
	if err != nil {
		uc.logger.Error("ConfirmRequest: stored stay request id=%d is malformed: %v", id, err)
		return guard.Candidate{}, nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	revalidate := func(txCtx context.Context) error {
		constraints, err := uc.propertyRepo.GetConstraints(txCtx, stay.PropertyID)
		if err != nil {
			if !errors.Is(err, propertyRepo.ErrConstraintsNotFound) {
				return fmt.Errorf("%w: failed to get constraints: %v", ErrInternal, err)
			}
			constraints = domain.DefaultStayConstraints(stay.PropertyID)
		}

		periods, err := uc.propertyRepo.ListPeriods(txCtx, stay.PropertyID, &stay.CheckIn, &stay.CheckOut)
		if err != nil {
			return fmt.Errorf("%w: failed to get periods: %v", ErrInternal, err)
		}

		return staywindow.Validate(staywindow.Request{
			CheckIn:   stay.CheckIn,
			CheckOut:  stay.CheckOut,
			NumGuests: stay.NumGuests,
		}, constraints, periods)
	}

	return guard.Candidate{ResourceID: stay.PropertyID, ID: stay.ID, Interval: nights}, revalidate, nil
}

// prepareVisit загружает визит и строит проверку, что его слот всё ещё предлагается правилами.
// Пересечение с подтвержденными визитами проверяет guard.
func (uc *UseCase) prepareVisit(ctx context.Context, id int64) (guard.Candidate, guard.RevalidateFunc, error) {
	appt, err := uc.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("ConfirmRequest: appointment id=%d not found", id)
			return guard.Candidate{}, nil, ErrRequestNotFound
		}
		uc.logger.Error("ConfirmRequest: failed to get appointment id=%d: %v", id, err)
		return guard.Candidate{}, nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if err := checkPending(domain.KindVisit, id, appt.Status); err != nil {
		uc.logger.Warn("ConfirmRequest: %v", err)
		return guard.Candidate{}, nil, err
	}

	occupied, err := slots.OccupiedBy(appt, uc.generator.Location())
	if err != nil {
		uc.logger.Error("ConfirmRequest: stored appointment id=%d is malformed: %v", id, err)
		return guard.Candidate{}, nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	revalidate := func(txCtx context.Context) error {
		rules, err := uc.ruleRepo.ListByResource(txCtx, appt.ResourceID)
		if err != nil {
			return fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
		}

		for _, rule := range rules {
			ruleSlots, err := uc.generator.Generate(appt.Date, rule, nil, now)
			if err != nil {
				return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
			}
			if slot, ok := slots.FindSlot(ruleSlots, appt.StartTime); ok && slot.Available {
				return nil
			}
		}

		return fmt.Errorf("%w: %s %s is no longer offered", domain.ErrSlotUnavailable, appt.Date, appt.StartTime)
	}

	return guard.Candidate{ResourceID: appt.ResourceID, ID: appt.ID, Interval: occupied}, revalidate, nil
}

func (uc *UseCase) mapGuardError(req *Request, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		uc.logger.Warn("ConfirmRequest: %s id=%d changed status concurrently: %v", req.Kind, req.ID, err)
		return err
	case errors.Is(err, stayRepo.ErrRequestNotFound), errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		return ErrRequestNotFound
	default:
		uc.logger.Error("ConfirmRequest: guard failed for %s id=%d: %v", req.Kind, req.ID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
