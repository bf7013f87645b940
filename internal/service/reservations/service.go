package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/appointment"
	stayRepo "github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/stayrequest"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/reservations/models"
)

// Service сервис чтения заявок и их отказа/отмены.
// Подтверждение живет в usecase confirm_request, так как требует guard'а.
type Service struct {
	stayRepo        StayRequestRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifier        Notifier
	logger          Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	stayRepo StayRequestRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		stayRepo:        stayRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		notifier:        notifier,
		logger:          logger,
	}
}

// GetStay получает заявку на проживание по ID
func (s *Service) GetStay(ctx context.Context, id int64) (*models.StayRequestResponse, error) {
	s.logger.Info("GetStay: fetching stay request id=%d", id)

	req, err := s.stayRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetStay", domain.KindStay, id, err)
	}

	return models.FromDomainStayRequest(req), nil
}

// GetVisit получает визит по ID
func (s *Service) GetVisit(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetVisit: fetching appointment id=%d", id)

	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetVisit", domain.KindVisit, id, err)
	}

	return models.FromDomainAppointment(a), nil
}

// ListStays получает заявки на проживание объекта.
// Опционально фильтрует по периоду и статусу
func (s *Service) ListStays(ctx context.Context, req *models.ListStaysRequest) (*models.StayRequestListResponse, error) {
	s.logger.Info("ListStays: fetching stay requests for property=%d, status=%v", req.PropertyID, req.Status)

	if req.PropertyID <= 0 {
		return nil, fmt.Errorf("%w: property id must be positive", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}

	status, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("ListStays: invalid status=%s for property=%d", *req.Status, req.PropertyID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	requests, err := s.stayRepo.List(ctx, domain.StayRequestFilter{
		PropertyID: req.PropertyID,
		From:       req.From,
		To:         req.To,
		Status:     status,
	})
	if err != nil {
		s.logger.Error("ListStays: repository error for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: ListStays - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListStays: found %d stay requests for property=%d", len(requests), req.PropertyID)
	return models.FromDomainStayRequestList(requests), nil
}

// ListVisits получает визиты ресурса.
// Опционально фильтрует по датам и статусу
func (s *Service) ListVisits(ctx context.Context, req *models.ListVisitsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListVisits: fetching appointments for resource=%d, status=%v", req.ResourceID, req.Status)

	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resource id must be positive", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}

	status, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("ListVisits: invalid status=%s for resource=%d", *req.Status, req.ResourceID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{
		ResourceID: req.ResourceID,
		From:       req.From,
		To:         req.To,
		Status:     status,
	})
	if err != nil {
		s.logger.Error("ListVisits: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: ListVisits - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListVisits: found %d appointments for resource=%d", len(appointments), req.ResourceID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Refuse отказывает по заявке в статусе pending. Причина обязательна
func (s *Service) Refuse(ctx context.Context, kind domain.ReservationKind, id int64, req *models.RefuseRequest) (*models.StatusResponse, error) {
	s.logger.Info("Refuse: refusing %s request id=%d", kind, id)

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxRefusalReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxRefusalReasonLength)
	}

	return s.changeStatus(ctx, "Refuse", kind, id, domain.StatusRefused, &reason)
}

// Cancel отменяет заявку в статусе pending или confirmed.
// Отмена подтвержденной заявки освобождает интервал
func (s *Service) Cancel(ctx context.Context, kind domain.ReservationKind, id int64, req *models.CancelRequest) (*models.StatusResponse, error) {
	s.logger.Info("Cancel: cancelling %s request id=%d", kind, id)

	var reason *string
	if req != nil && req.Reason != nil {
		trimmed := strings.TrimSpace(*req.Reason)
		if len(trimmed) > domain.MaxRefusalReasonLength {
			return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxRefusalReasonLength)
		}
		if trimmed != "" {
			reason = &trimmed
		}
	}

	return s.changeStatus(ctx, "Cancel", kind, id, domain.StatusCancelled, reason)
}

func (s *Service) changeStatus(
	ctx context.Context,
	op string,
	kind domain.ReservationKind,
	id int64,
	to domain.ReservationStatus,
	reason *string,
) (*models.StatusResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	var change domain.StatusChange

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Читаем текущее состояние (внутри транзакции строка блокируется)
		from, resourceID, err := s.current(ctx, kind, id)
		if err != nil {
			return err
		}

		// 2. Проверяем допустимость перехода
		if err := domain.Transition(from, to); err != nil {
			return err
		}

		// 3. Меняем статус с условием на текущий
		switch kind {
		case domain.KindStay:
			err = s.stayRepo.SetStatus(ctx, id, from, to, reason)
		default:
			err = s.appointmentRepo.SetStatus(ctx, id, from, to, reason)
		}
		if err != nil {
			return err
		}

		change = domain.StatusChange{
			Ref:        domain.ReservationRef{Kind: kind, ID: id},
			ResourceID: resourceID,
			From:       from,
			To:         to,
			Reason:     reason,
			ChangedAt:  time.Now().UTC(),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			s.logger.Warn("%s: %s request id=%d: %v", op, kind, id, err)
			return nil, err
		}
		return nil, s.mapRepoError(op, kind, id, err)
	}

	// 4. Уведомляем внешнюю систему. Ошибка уведомления не откатывает переход
	if err := s.notifier.NotifyStatusChange(ctx, change); err != nil {
		s.logger.Warn("%s: failed to notify about %s request id=%d: %v", op, kind, id, err)
	}

	s.logger.Info("%s: %s request id=%d moved %s -> %s", op, kind, id, change.From, change.To)
	return &models.StatusResponse{
		Kind:   string(kind),
		ID:     id,
		Status: string(to),
		Reason: reason,
	}, nil
}

func (s *Service) current(ctx context.Context, kind domain.ReservationKind, id int64) (domain.ReservationStatus, int64, error) {
	switch kind {
	case domain.KindStay:
		req, err := s.stayRepo.GetByID(ctx, id)
		if err != nil {
			return "", 0, err
		}
		return req.Status, req.PropertyID, nil
	case domain.KindVisit:
		a, err := s.appointmentRepo.GetByID(ctx, id)
		if err != nil {
			return "", 0, err
		}
		return a.Status, a.ResourceID, nil
	}
	return "", 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
}

func (s *Service) mapRepoError(op string, kind domain.ReservationKind, id int64, err error) error {
	switch {
	case errors.Is(err, stayRepo.ErrRequestNotFound), errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		s.logger.Warn("%s: %s request id=%d not found", op, kind, id)
		return ErrRequestNotFound
	case errors.Is(err, ErrInvalidInput):
		return err
	}
	s.logger.Error("%s: repository error for %s request id=%d: %v", op, kind, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
