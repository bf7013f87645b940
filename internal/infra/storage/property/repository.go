package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-EstateBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

const (
	constraintsTable = "stay_constraints"
	periodsTable     = "blocked_periods"
)

var periodColumns = []string{
	"id",
	"property_id",
	"start_date",
	"end_date",
	"blocked",
	"reason",
	"created_at",
}

// Repository репозиторий условий проживания и закрытых/открытых периодов объектов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetConstraints возвращает условия проживания объекта
func (r *Repository) GetConstraints(ctx context.Context, propertyID int64) (*domain.StayConstraints, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"property_id",
		"min_stay_nights",
		"allowed_arrival_weekdays",
		"allowed_departure_weekdays",
		"max_guests",
		"use_allow_list",
		"updated_at",
	).
		From(constraintsTable).
		Where(squirrel.Eq{"property_id": propertyID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConstraints - build select query: %v", ErrBuildQuery, err)
	}

	var (
		c                  domain.StayConstraints
		arrival, departure pq.Int64Array
		updatedAt          sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.PropertyID,
		&c.MinStayNights,
		&arrival,
		&departure,
		&c.MaxGuests,
		&c.UseAllowList,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConstraintsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConstraints - scan constraints: %v", ErrScanRow, err)
	}

	c.AllowedArrivalWeekdays = toWeekdays(arrival)
	c.AllowedDepartureWeekdays = toWeekdays(departure)
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

// UpsertConstraints создает или заменяет условия проживания объекта
func (r *Repository) UpsertConstraints(ctx context.Context, c *domain.StayConstraints) (*domain.StayConstraints, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(constraintsTable).
		Columns(
			"property_id",
			"min_stay_nights",
			"allowed_arrival_weekdays",
			"allowed_departure_weekdays",
			"max_guests",
			"use_allow_list",
		).
		Values(
			c.PropertyID,
			c.MinStayNights,
			fromWeekdays(c.AllowedArrivalWeekdays),
			fromWeekdays(c.AllowedDepartureWeekdays),
			c.MaxGuests,
			c.UseAllowList,
		).
		Suffix(`ON CONFLICT (property_id) DO UPDATE SET
			min_stay_nights = EXCLUDED.min_stay_nights,
			allowed_arrival_weekdays = EXCLUDED.allowed_arrival_weekdays,
			allowed_departure_weekdays = EXCLUDED.allowed_departure_weekdays,
			max_guests = EXCLUDED.max_guests,
			use_allow_list = EXCLUDED.use_allow_list,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertConstraints - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertConstraints - execute upsert: %v", ErrExecQuery, err)
	}
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// ListPeriods возвращает периоды объекта, пересекающиеся с [from, to] (границы опциональны)
func (r *Repository) ListPeriods(ctx context.Context, propertyID int64, from, to *types.Date) ([]*domain.BlockedPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(periodColumns...).
		From(periodsTable).
		Where(squirrel.Eq{"property_id": propertyID}).
		OrderBy("start_date ASC", "id ASC")

	if from != nil {
		builder = builder.Where(squirrel.GtOrEq{"end_date": *from})
	}
	if to != nil {
		builder = builder.Where(squirrel.LtOrEq{"start_date": *to})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPeriods - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPeriods - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BlockedPeriod, 0)
	for rows.Next() {
		var (
			p         domain.BlockedPeriod
			createdAt sql.NullTime
		)
		err := rows.Scan(&p.ID, &p.PropertyID, &p.StartDate, &p.EndDate, &p.Blocked, &p.Reason, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPeriods - scan period: %v", ErrScanRow, err)
		}
		p.CreatedAt = createdAt.Time
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPeriods - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// CreatePeriod сохраняет новый период
func (r *Repository) CreatePeriod(ctx context.Context, p *domain.BlockedPeriod) (*domain.BlockedPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(periodsTable).
		Columns("property_id", "start_date", "end_date", "blocked", "reason").
		Values(p.PropertyID, p.StartDate, p.EndDate, p.Blocked, p.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePeriod - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreatePeriod - execute insert: %v", ErrExecQuery, err)
	}
	p.CreatedAt = createdAt.Time

	return p, nil
}

// DeletePeriod удаляет период объекта
func (r *Repository) DeletePeriod(ctx context.Context, propertyID, periodID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(periodsTable).
		Where(squirrel.Eq{"id": periodID, "property_id": propertyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeletePeriod - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeletePeriod - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeletePeriod - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrPeriodNotFound
	}

	return nil
}

func toWeekdays(values pq.Int64Array) []domain.Weekday {
	result := make([]domain.Weekday, 0, len(values))
	for _, v := range values {
		result = append(result, domain.Weekday(v))
	}
	return result
}

func fromWeekdays(days []domain.Weekday) pq.Int64Array {
	result := make(pq.Int64Array, 0, len(days))
	for _, d := range days {
		result = append(result, int64(d))
	}
	return result
}
