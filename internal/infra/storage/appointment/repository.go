package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/slots"
	"github.com/m04kA/SMC-EstateBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-EstateBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

const table = "appointments"

var columns = []string{
	"id",
	"resource_id",
	"property_id",
	"visit_date",
	"start_time",
	"duration_minutes",
	"safety_margin_minutes",
	"status",
	"visitor_name",
	"visitor_email",
	"visitor_phone",
	"refusal_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий визитов
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает репозиторий. loc нужен для перевода даты и времени визита в интервалы
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

// Create сохраняет новый визит
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"resource_id",
			"property_id",
			"visit_date",
			"start_time",
			"duration_minutes",
			"safety_margin_minutes",
			"status",
			"visitor_name",
			"visitor_email",
			"visitor_phone",
		).
		Values(
			a.ResourceID,
			a.PropertyID,
			a.Date,
			a.StartTime,
			a.DurationMinutes,
			a.SafetyMarginMinutes,
			a.Status,
			a.Visitor.Name,
			a.Visitor.Email,
			a.Visitor.Phone,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает визит по ID. Внутри транзакции строка блокируется
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// ListActiveByDate возвращает визиты ресурса на дату в статусах pending и confirmed.
// Внутри транзакции строки блокируются, чтобы слот не заняли дважды.
func (r *Repository) ListActiveByDate(ctx context.Context, resourceID int64, date types.Date) ([]*domain.Appointment, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"resource_id": resourceID,
			"visit_date":  date,
			"status":      domain.ActiveStatuses,
		}).
		OrderBy("start_time ASC")

	return r.query(ctx, "ListActiveByDate", builder)
}

// List получает визиты ресурса с фильтрацией
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"resource_id": filter.ResourceID}).
		OrderBy("visit_date ASC", "start_time ASC")

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"visit_date": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"visit_date": *filter.To})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}

	return r.query(ctx, "List", builder)
}

// ConfirmedIntervals возвращает занятые интервалы (с отступами) подтвержденных визитов ресурса,
// пересекающиеся с window. Отступ может переходить через полночь, поэтому берутся соседние даты.
func (r *Repository) ConfirmedIntervals(ctx context.Context, resourceID int64, window interval.Interval, excludeID int64) ([]interval.Interval, error) {
	from := types.DateOf(window.Start.In(r.loc)).AddDays(-1)
	to := types.DateOf(window.End.In(r.loc)).AddDays(1)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"resource_id": resourceID, "status": domain.StatusConfirmed}).
		Where(squirrel.NotEq{"id": excludeID}).
		Where(squirrel.GtOrEq{"visit_date": from}).
		Where(squirrel.LtOrEq{"visit_date": to}).
		OrderBy("visit_date ASC", "start_time ASC")

	appointments, err := r.query(ctx, "ConfirmedIntervals", builder)
	if err != nil {
		return nil, err
	}

	result := make([]interval.Interval, 0, len(appointments))
	for _, a := range appointments {
		iv, err := slots.OccupiedBy(a, r.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: ConfirmedIntervals - appointment id=%d: %v", ErrScanRow, a.ID, err)
		}
		overlap, err := interval.Overlaps(iv, window)
		if err != nil {
			return nil, err
		}
		if overlap {
			result = append(result, iv)
		}
	}

	return result, nil
}

// SetStatus переводит визит из статуса from в to
func (r *Repository) SetStatus(ctx context.Context, id int64, from, to domain.ReservationStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("refusal_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected > 0 {
		return nil
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: appointment id=%d is %s, expected %s", domain.ErrInvalidTransition, id, current.Status, from)
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, op, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrScanRow, op, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a                    domain.Appointment
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.ResourceID,
		&a.PropertyID,
		&a.Date,
		&a.StartTime,
		&a.DurationMinutes,
		&a.SafetyMarginMinutes,
		&a.Status,
		&a.Visitor.Name,
		&a.Visitor.Email,
		&a.Visitor.Phone,
		&a.RefusalReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
