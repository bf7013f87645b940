package create_stay_request

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/staywindow"
	propertyRepo "github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/property"
)

// Options параметры бронирования проживания
type Options struct {
	Location           *time.Location // Часовой пояс объектов, определяет "сегодня"
	AdvanceBookingDays int            // 0 = без ограничения
}

// UseCase use case для создания заявки на проживание
type UseCase struct {
	stayRepo     StayRequestRepository
	propertyRepo PropertyRepository
	txManager    TransactionManager
	metrics      Metrics
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	stayRepo StayRequestRepository,
	propertyRepo PropertyRepository,
	txManager TransactionManager,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &UseCase{
		stayRepo:     stayRepo,
		propertyRepo: propertyRepo,
		txManager:    txManager,
		metrics:      metrics,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания заявки.
// При нарушении правила проживания возвращается ошибка из domain и ничего не сохраняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateStayRequest: property=%d, checkIn=%s, checkOut=%s, guests=%d",
		req.PropertyID, req.CheckIn, req.CheckOut, req.NumGuests)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateStayRequest: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем дату заезда
	if err := validateDate(req.CheckIn, uc.timeProvider.Now(), uc.opts.Location, uc.opts.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateStayRequest: date validation failed: %v", err)
		return nil, err
	}

	var result *domain.StayRequest

	// 3. Проверка правил и сохранение в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Условия проживания объекта
		constraints, err := uc.propertyRepo.GetConstraints(txCtx, req.PropertyID)
		if err != nil {
			if !errors.Is(err, propertyRepo.ErrConstraintsNotFound) {
				uc.logger.Error("CreateStayRequest: failed to get constraints: %v", err)
				return fmt.Errorf("%w: failed to get constraints: %v", ErrInternal, err)
			}
			constraints = domain.DefaultStayConstraints(req.PropertyID)
			uc.logger.Info("CreateStayRequest: using default constraints for property=%d", req.PropertyID)
		}

		// 3.2. Периоды объекта на даты проживания
		periods, err := uc.propertyRepo.ListPeriods(txCtx, req.PropertyID, &req.CheckIn, &req.CheckOut)
		if err != nil {
			uc.logger.Error("CreateStayRequest: failed to get periods: %v", err)
			return fmt.Errorf("%w: failed to get periods: %v", ErrInternal, err)
		}

		// 3.3. Правила проживания
		err = staywindow.Validate(staywindow.Request{
			CheckIn:   req.CheckIn,
			CheckOut:  req.CheckOut,
			NumGuests: req.NumGuests,
		}, constraints, periods)
		if err != nil {
			if domain.IsRuleViolation(err) {
				uc.metrics.RecordValidationFailure(domain.ReasonCode(err))
				uc.logger.Warn("CreateStayRequest: property=%d rejected: %v", req.PropertyID, err)
				return err
			}
			uc.logger.Error("CreateStayRequest: failed to validate stay: %v", err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		// 3.4. Сохраняем заявку в статусе pending
		created, err := uc.stayRepo.Create(txCtx, &domain.StayRequest{
			PropertyID: req.PropertyID,
			CheckIn:    req.CheckIn,
			CheckOut:   req.CheckOut,
			NumGuests:  req.NumGuests,
			Status:     domain.StatusPending,
			Guest: domain.Contact{
				Name:  strings.TrimSpace(req.GuestName),
				Email: strings.TrimSpace(req.GuestEmail),
				Phone: req.GuestPhone,
			},
			Message: req.Message,
		})
		if err != nil {
			uc.logger.Error("CreateStayRequest: failed to create stay request: %v", err)
			return fmt.Errorf("%w: failed to create stay request: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateStayRequest: successfully created stay request id=%d", result.ID)

	return &Response{
		ID:         result.ID,
		PropertyID: result.PropertyID,
		CheckIn:    result.CheckIn,
		CheckOut:   result.CheckOut,
		Nights:     result.Nights(),
		NumGuests:  result.NumGuests,
		Status:     string(result.Status),
		GuestName:  result.Guest.Name,
		GuestEmail: result.Guest.Email,
		GuestPhone: result.Guest.Phone,
		Message:    result.Message,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}
