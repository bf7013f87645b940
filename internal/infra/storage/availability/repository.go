package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-EstateBookingService/pkg/psqlbuilder"
)

const table = "availability_rules"

var columns = []string{
	"id",
	"resource_id",
	"weekday",
	"window_start",
	"window_end",
	"visit_duration_minutes",
	"safety_margin_minutes",
	"slot_interval_minutes",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий недельных правил доступности визитов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByResource возвращает все правила ресурса, упорядоченные по дню недели и началу окна
func (r *Repository) ListByResource(ctx context.Context, resourceID int64) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("weekday ASC", "window_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByResource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		var (
			rule                 domain.AvailabilityRule
			weekday              int
			createdAt, updatedAt sql.NullTime
		)
		err := rows.Scan(
			&rule.ID,
			&rule.ResourceID,
			&weekday,
			&rule.WindowStart,
			&rule.WindowEnd,
			&rule.VisitDurationMinutes,
			&rule.SafetyMarginMinutes,
			&rule.SlotIntervalMinutes,
			&rule.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByResource - scan rule: %v", ErrScanRow, err)
		}
		rule.Weekday = domain.Weekday(weekday)
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		result = append(result, &rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByResource - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// ReplaceForResource заменяет набор правил ресурса целиком.
// Вызывать внутри транзакции, иначе читатели могут увидеть пустой набор.
func (r *Repository) ReplaceForResource(ctx context.Context, resourceID int64, rules []*domain.AvailabilityRule) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"resource_id": resourceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceForResource - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceForResource - execute delete: %v", ErrExecQuery, err)
	}

	if len(rules) == 0 {
		return []*domain.AvailabilityRule{}, nil
	}

	insert := psqlbuilder.Insert(table).
		Columns(
			"resource_id",
			"weekday",
			"window_start",
			"window_end",
			"visit_duration_minutes",
			"safety_margin_minutes",
			"slot_interval_minutes",
			"active",
		)
	for _, rule := range rules {
		insert = insert.Values(
			resourceID,
			int(rule.Weekday),
			rule.WindowStart,
			rule.WindowEnd,
			rule.VisitDurationMinutes,
			rule.SafetyMarginMinutes,
			rule.SlotIntervalMinutes,
			rule.Active,
		)
	}

	insertQuery, insertArgs, err := insert.Suffix("RETURNING id, created_at, updated_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceForResource - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, insertQuery, insertArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceForResource - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// RETURNING отдает строки в порядке VALUES
	i := 0
	for rows.Next() {
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&rules[i].ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ReplaceForResource - scan returning: %v", ErrScanRow, err)
		}
		rules[i].ResourceID = resourceID
		rules[i].CreatedAt = createdAt.Time
		rules[i].UpdatedAt = updatedAt.Time
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ReplaceForResource - rows iteration: %v", ErrScanRow, err)
	}

	return rules, nil
}
