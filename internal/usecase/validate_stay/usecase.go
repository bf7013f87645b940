package validate_stay

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/staywindow"
	propertyRepo "github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/property"
)

// UseCase use case проверки дат проживания без создания заявки
type UseCase struct {
	propertyRepo PropertyRepository
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(propertyRepo PropertyRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		propertyRepo: propertyRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет проверку. Нарушение правила не является ошибкой: оно возвращается в Response
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateStay: property=%d, checkIn=%s, checkOut=%s, guests=%d",
		req.PropertyID, req.CheckIn, req.CheckOut, req.NumGuests)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateStay: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем условия проживания (по умолчанию, если не заданы)
	constraints, err := uc.propertyRepo.GetConstraints(ctx, req.PropertyID)
	if err != nil {
		if !errors.Is(err, propertyRepo.ErrConstraintsNotFound) {
			uc.logger.Error("ValidateStay: failed to get constraints for property=%d: %v", req.PropertyID, err)
			return nil, fmt.Errorf("%w: failed to get constraints: %v", ErrInternal, err)
		}
		constraints = domain.DefaultStayConstraints(req.PropertyID)
	}

	// 3. Получаем периоды, затрагивающие даты проживания
	periods, err := uc.propertyRepo.ListPeriods(ctx, req.PropertyID, &req.CheckIn, &req.CheckOut)
	if err != nil {
		uc.logger.Error("ValidateStay: failed to get periods for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get periods: %v", ErrInternal, err)
	}

	// 4. Проверяем правила
	err = staywindow.Validate(staywindow.Request{
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		NumGuests: req.NumGuests,
	}, constraints, periods)
	if err != nil {
		if !domain.IsRuleViolation(err) {
			uc.logger.Error("ValidateStay: failed to validate stay: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		reason := domain.ReasonCode(err)
		uc.metrics.RecordValidationFailure(reason)
		uc.logger.Info("ValidateStay: property=%d rejected: %v", req.PropertyID, err)

		return &Response{
			Valid:   false,
			Reason:  reason,
			Message: err.Error(),
		}, nil
	}

	return &Response{
		Valid:  true,
		Nights: req.CheckIn.DaysUntil(req.CheckOut),
	}, nil
}
