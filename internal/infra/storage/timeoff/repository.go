package timeoff

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	"github.com/m04kA/MedicalBookingService/pkg/dbmetrics"
	"github.com/m04kA/MedicalBookingService/pkg/psqlbuilder"
)

const tableName = "doctor_time_off"

var columns = []string{
	"id",
	"doctor_id",
	"start_date",
	"end_date",
	"reason",
	"created_at",
}

// Repository репозиторий для работы с периодами отсутствия врачей
// Колонки start_date/end_date имеют тип date, поэтому даты передаются строками
// и при чтении переносятся в часовой пояс клиники
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает новый экземпляр репозитория периодов отсутствия
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

// Create создает период отсутствия
func (r *Repository) Create(ctx context.Context, period *domain.TimeOffPeriod) (*domain.TimeOffPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("doctor_id", "start_date", "end_date", "reason").
		Values(
			period.DoctorID,
			period.StartDate.Format(domain.DateFormat),
			period.EndDate.Format(domain.DateFormat),
			period.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&period.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	period.CreatedAt = createdAt.Time

	return period, nil
}

// GetByID получает период отсутствия по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeOffPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	period, err := r.scanPeriod(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTimeOffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan period: %w", ErrScanRow, err)
	}

	return period, nil
}

// Delete удаляет период отсутствия
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
		return ErrTimeOffNotFound
	}

	return nil
}

// ExistsOnDate проверяет, что дата попадает в какой-либо период отсутствия врача
func (r *Repository) ExistsOnDate(ctx context.Context, doctorID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := date.Format(domain.DateFormat)
	query, args, err := psqlbuilder.Select("1").
		From(tableName).
		Where(squirrel.Eq{"doctor_id": doctorID}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsOnDate - build select query: %w", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsOnDate - scan result: %w", ErrScanRow, err)
	}

	return exists, nil
}

// ListOverlapping получает периоды, пересекающиеся с диапазоном [from, to]
func (r *Repository) ListOverlapping(ctx context.Context, doctorID int64, from, to time.Time) ([]*domain.TimeOffPeriod, error) {
	return r.list(ctx, "ListOverlapping", squirrel.And{
		squirrel.Eq{"doctor_id": doctorID},
		squirrel.LtOrEq{"start_date": to.Format(domain.DateFormat)},
		squirrel.GtOrEq{"end_date": from.Format(domain.DateFormat)},
	})
}

// ListUpcoming получает периоды, которые ещё не закончились к дате from
func (r *Repository) ListUpcoming(ctx context.Context, doctorID int64, from time.Time) ([]*domain.TimeOffPeriod, error) {
	return r.list(ctx, "ListUpcoming", squirrel.And{
		squirrel.Eq{"doctor_id": doctorID},
		squirrel.GtOrEq{"end_date": from.Format(domain.DateFormat)},
	})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.TimeOffPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		OrderBy("start_date ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	periods := make([]*domain.TimeOffPeriod, 0)
	for rows.Next() {
		period, err := r.scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		periods = append(periods, period)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return periods, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanPeriod(row rowScanner) (*domain.TimeOffPeriod, error) {
	var period domain.TimeOffPeriod
	var startDate, endDate time.Time
	var createdAt sql.NullTime

	err := row.Scan(
		&period.ID,
		&period.DoctorID,
		&startDate,
		&endDate,
		&period.Reason,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	period.StartDate = r.inLocation(startDate)
	period.EndDate = r.inLocation(endDate)
	period.CreatedAt = createdAt.Time

	return &period, nil
}

// inLocation переносит календарную дату из БД в часовой пояс клиники
func (r *Repository) inLocation(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, r.loc)
}
