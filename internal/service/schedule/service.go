package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	propertyRepo "github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/property"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/schedule/models"
)

// maxRulesPerResource ограничивает число окон в недельном расписании ресурса
const maxRulesPerResource = 50

// Service сервис операторских данных расписания:
// правила доступности визитов, условия проживания и периоды объектов
type Service struct {
	ruleRepo     RuleRepository
	propertyRepo PropertyRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	ruleRepo RuleRepository,
	propertyRepo PropertyRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:     ruleRepo,
		propertyRepo: propertyRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetRules получает недельные правила доступности ресурса
func (s *Service) GetRules(ctx context.Context, resourceID int64) (*models.RuleListResponse, error) {
	s.logger.Info("GetRules: fetching rules for resource=%d", resourceID)

	if resourceID <= 0 {
		return nil, fmt.Errorf("%w: resource id must be positive", ErrInvalidInput)
	}

	rules, err := s.ruleRepo.ListByResource(ctx, resourceID)
	if err != nil {
		s.logger.Error("GetRules: repository error for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: GetRules - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRuleList(resourceID, rules), nil
}

// ReplaceRules заменяет недельные правила ресурса целиком.
// Существующие визиты не меняются: длительность и отступ в них скопированы при создании
func (s *Service) ReplaceRules(ctx context.Context, req *models.ReplaceRulesRequest) (*models.RuleListResponse, error) {
	s.logger.Info("ReplaceRules: replacing %d rules for resource=%d", len(req.Rules), req.ResourceID)

	// 1. Валидируем входные данные
	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resource id must be positive", ErrInvalidInput)
	}
	if len(req.Rules) > maxRulesPerResource {
		return nil, fmt.Errorf("%w: at most %d rules per resource", ErrInvalidInput, maxRulesPerResource)
	}

	rules := make([]*domain.AvailabilityRule, 0, len(req.Rules))
	for i, input := range req.Rules {
		rule := input.ToDomainRule(req.ResourceID)
		if err := validateRule(rule); err != nil {
			s.logger.Warn("ReplaceRules: rule #%d for resource=%d is invalid: %v", i, req.ResourceID, err)
			return nil, fmt.Errorf("%w: rule #%d: %v", ErrInvalidInput, i, err)
		}
		if !rule.FitsOneVisit() {
			s.logger.Warn("ReplaceRules: rule #%d for resource=%d fits no visit and will yield no slots", i, req.ResourceID)
		}
		rules = append(rules, rule)
	}

	// 2. Заменяем набор в одной транзакции
	var saved []*domain.AvailabilityRule
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.ruleRepo.ReplaceForResource(ctx, req.ResourceID, rules)
		return err
	})
	if err != nil {
		s.logger.Error("ReplaceRules: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: ReplaceRules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceRules: saved %d rules for resource=%d", len(saved), req.ResourceID)
	return models.FromDomainRuleList(req.ResourceID, saved), nil
}

// GetConstraints получает условия проживания объекта.
// Если условия не настроены, возвращаются значения по умолчанию
func (s *Service) GetConstraints(ctx context.Context, propertyID int64) (*models.ConstraintsResponse, error) {
	s.logger.Info("GetConstraints: fetching constraints for property=%d", propertyID)

	if propertyID <= 0 {
		return nil, fmt.Errorf("%w: property id must be positive", ErrInvalidInput)
	}

	c, err := s.propertyRepo.GetConstraints(ctx, propertyID)
	if errors.Is(err, propertyRepo.ErrConstraintsNotFound) {
		return models.FromDomainConstraints(domain.DefaultStayConstraints(propertyID), true), nil
	}
	if err != nil {
		s.logger.Error("GetConstraints: repository error for property=%d: %v", propertyID, err)
		return nil, fmt.Errorf("%w: GetConstraints - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConstraints(c, false), nil
}

// PutConstraints сохраняет условия проживания объекта
func (s *Service) PutConstraints(ctx context.Context, req *models.ConstraintsRequest) (*models.ConstraintsResponse, error) {
	s.logger.Info("PutConstraints: saving constraints for property=%d", req.PropertyID)

	if req.PropertyID <= 0 {
		return nil, fmt.Errorf("%w: property id must be positive", ErrInvalidInput)
	}

	c := req.ToDomainConstraints()
	if err := validateConstraints(c); err != nil {
		s.logger.Warn("PutConstraints: invalid constraints for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.propertyRepo.UpsertConstraints(ctx, c)
	if err != nil {
		s.logger.Error("PutConstraints: repository error for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: PutConstraints - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("PutConstraints: saved constraints for property=%d", req.PropertyID)
	return models.FromDomainConstraints(saved, false), nil
}

// ListPeriods получает закрытые и открытые периоды объекта
func (s *Service) ListPeriods(ctx context.Context, req *models.ListPeriodsRequest) (*models.PeriodListResponse, error) {
	s.logger.Info("ListPeriods: fetching periods for property=%d", req.PropertyID)

	if req.PropertyID <= 0 {
		return nil, fmt.Errorf("%w: property id must be positive", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}

	periods, err := s.propertyRepo.ListPeriods(ctx, req.PropertyID, req.From, req.To)
	if err != nil {
		s.logger.Error("ListPeriods: repository error for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: ListPeriods - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPeriodList(req.PropertyID, periods), nil
}

// AddPeriod добавляет период объекту.
// Уже подтвержденные заявки не пересматриваются, период учитывается при следующих проверках
func (s *Service) AddPeriod(ctx context.Context, req *models.PeriodRequest) (*models.PeriodResponse, error) {
	s.logger.Info("AddPeriod: adding period %s..%s for property=%d", req.StartDate, req.EndDate, req.PropertyID)

	if req.PropertyID <= 0 {
		return nil, fmt.Errorf("%w: property id must be positive", ErrInvalidInput)
	}

	p := req.ToDomainPeriod()
	if err := validatePeriod(p); err != nil {
		s.logger.Warn("AddPeriod: invalid period for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.propertyRepo.CreatePeriod(ctx, p)
	if err != nil {
		s.logger.Error("AddPeriod: repository error for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: AddPeriod - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddPeriod: created period id=%d for property=%d", created.ID, req.PropertyID)
	return models.FromDomainPeriod(created), nil
}

// DeletePeriod удаляет период объекта
func (s *Service) DeletePeriod(ctx context.Context, propertyID, periodID int64) error {
	s.logger.Info("DeletePeriod: deleting period id=%d of property=%d", periodID, propertyID)

	if propertyID <= 0 || periodID <= 0 {
		return fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}

	if err := s.propertyRepo.DeletePeriod(ctx, propertyID, periodID); err != nil {
		if errors.Is(err, propertyRepo.ErrPeriodNotFound) {
			s.logger.Warn("DeletePeriod: period id=%d of property=%d not found", periodID, propertyID)
			return ErrPeriodNotFound
		}
		s.logger.Error("DeletePeriod: repository error for period id=%d: %v", periodID, err)
		return fmt.Errorf("%w: DeletePeriod - repository error: %v", ErrInternal, err)
	}

	return nil
}
