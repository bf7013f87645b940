package stayrequest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-EstateBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-EstateBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

const table = "stay_requests"

var columns = []string{
	"id",
	"property_id",
	"check_in",
	"check_out",
	"num_guests",
	"status",
	"guest_name",
	"guest_email",
	"guest_phone",
	"message",
	"refusal_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий заявок на проживание
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую заявку
func (r *Repository) Create(ctx context.Context, req *domain.StayRequest) (*domain.StayRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"property_id",
			"check_in",
			"check_out",
			"num_guests",
			"status",
			"guest_name",
			"guest_email",
			"guest_phone",
			"message",
		).
		Values(
			req.PropertyID,
			req.CheckIn,
			req.CheckOut,
			req.NumGuests,
			req.Status,
			req.Guest.Name,
			req.Guest.Email,
			req.Guest.Phone,
			req.Message,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает заявку по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.StayRequest, error) {
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

	req, err := scanStayRequest(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan stay request: %v", ErrScanRow, err)
	}

	return req, nil
}

// List получает заявки объекта с фильтрацией по периоду и статусу
func (r *Repository) List(ctx context.Context, filter domain.StayRequestFilter) ([]*domain.StayRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"property_id": filter.PropertyID}).
		OrderBy("check_in ASC", "id ASC")

	if filter.From != nil {
		builder = builder.Where(squirrel.Gt{"check_out": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"check_in": *filter.To})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.StayRequest, 0)
	for rows.Next() {
		req, err := scanStayRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan stay request: %v", ErrScanRow, err)
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// ConfirmedIntervals возвращает ночи [check_in, check_out) подтвержденных заявок объекта,
// пересекающиеся с window. Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) ConfirmedIntervals(ctx context.Context, propertyID int64, window interval.Interval, excludeID int64) ([]interval.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("check_in", "check_out").
		From(table).
		Where(squirrel.Eq{"property_id": propertyID, "status": domain.StatusConfirmed}).
		Where(squirrel.NotEq{"id": excludeID}).
		Where(squirrel.Lt{"check_in": types.DateOf(window.End)}).
		Where(squirrel.Gt{"check_out": types.DateOf(window.Start)}).
		OrderBy("check_in ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ConfirmedIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ConfirmedIntervals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]interval.Interval, 0)
	for rows.Next() {
		var checkIn, checkOut types.Date
		if err := rows.Scan(&checkIn, &checkOut); err != nil {
			return nil, fmt.Errorf("%w: ConfirmedIntervals - scan: %v", ErrScanRow, err)
		}
		iv, err := interval.FromDates(checkIn, checkOut)
		if err != nil {
			return nil, fmt.Errorf("%w: ConfirmedIntervals - stored range: %v", ErrScanRow, err)
		}
		result = append(result, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ConfirmedIntervals - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// SetStatus переводит заявку из статуса from в to.
// Условие по текущему статусу защищает от параллельной отмены.
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
		if storage.IsExclusionViolation(err) {
			return fmt.Errorf("%w: SetStatus - stay request id=%d: %v", domain.ErrOverlapAtConfirmation, id, err)
		}
		return fmt.Errorf("%w: SetStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected > 0 {
		return nil
	}

	// Ни одна строка не обновилась: заявки нет или статус уже другой
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: stay request id=%d is %s, expected %s", domain.ErrInvalidTransition, id, current.Status, from)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStayRequest(row rowScanner) (*domain.StayRequest, error) {
	var (
		req                  domain.StayRequest
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&req.ID,
		&req.PropertyID,
		&req.CheckIn,
		&req.CheckOut,
		&req.NumGuests,
		&req.Status,
		&req.Guest.Name,
		&req.Guest.Email,
		&req.Guest.Phone,
		&req.Message,
		&req.RefusalReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}
