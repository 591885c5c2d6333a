package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	"github.com/m04kA/MedicalBookingService/pkg/dbmetrics"
	"github.com/m04kA/MedicalBookingService/pkg/psqlbuilder"
)

const tableName = "doctor_availability"

var columns = []string{
	"id",
	"doctor_id",
	"day_of_week",
	"start_time",
	"end_time",
	"slot_duration_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с еженедельным расписанием врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое правило расписания
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"doctor_id",
			"day_of_week",
			"start_time",
			"end_time",
			"slot_duration_minutes",
			"is_active",
		).
		Values(
			rule.DoctorID,
			rule.DayOfWeek,
			rule.StartTime.String(),
			rule.EndTime.String(),
			rule.SlotDurationMinutes,
			rule.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// Update обновляет правило расписания по ID
func (r *Repository) Update(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("doctor_id", rule.DoctorID).
		Set("day_of_week", rule.DayOfWeek).
		Set("start_time", rule.StartTime.String()).
		Set("end_time", rule.EndTime.String()).
		Set("slot_duration_minutes", rule.SlotDurationMinutes).
		Set("is_active", rule.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rule.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetByID получает правило расписания по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %w", ErrScanRow, err)
	}

	return rule, nil
}

// ListActiveByDoctor получает активные правила врача, отсортированные по дню недели и времени начала
func (r *Repository) ListActiveByDoctor(ctx context.Context, doctorID int64) ([]*domain.AvailabilityRule, error) {
	return r.list(ctx, "ListActiveByDoctor", squirrel.Eq{"doctor_id": doctorID, "is_active": true})
}

// ListActiveByDoctorAndDay получает активные правила врача на день недели (1..7)
func (r *Repository) ListActiveByDoctorAndDay(ctx context.Context, doctorID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error) {
	return r.list(ctx, "ListActiveByDoctorAndDay", squirrel.Eq{
		"doctor_id":   doctorID,
		"day_of_week": dayOfWeek,
		"is_active":   true,
	})
}

// DeactivateAllByDoctor снимает флаг активности со всех правил врача
// Возвращает количество деактивированных правил
func (r *Repository) DeactivateAllByDoctor(ctx context.Context, doctorID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"doctor_id": doctorID, "is_active": true}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateAllByDoctor - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateAllByDoctor - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateAllByDoctor - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Delete физически удаляет правило расписания
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		OrderBy("day_of_week ASC", "start_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return rules, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.AvailabilityRule, error) {
	var rule domain.AvailabilityRule
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.DoctorID,
		&rule.DayOfWeek,
		&rule.StartTime,
		&rule.EndTime,
		&rule.SlotDurationMinutes,
		&rule.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}
