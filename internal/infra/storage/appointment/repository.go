package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	"github.com/m04kA/MedicalBookingService/pkg/dbmetrics"
	"github.com/m04kA/MedicalBookingService/pkg/psqlbuilder"
)

const (
	tableName = "appointments"

	// pgUniqueViolation SQLSTATE 23505
	pgUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"doctor_id",
	"patient_id",
	"appointment_date",
	"duration_minutes",
	"status",
	"reason",
	"notes",
	"is_cancelled",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на приём
// appointment_date хранится как timestamptz, при чтении время переводится в часовой пояс клиники
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

// LockDoctor берёт транзакционную advisory-блокировку по врачу
// Блокировка снимается при завершении транзакции, вне транзакции вызов не имеет смысла
func (r *Repository) LockDoctor(ctx context.Context, doctorID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", doctorID); err != nil {
		return fmt.Errorf("%w: LockDoctor - doctor=%d: %w", ErrLockDoctor, doctorID, err)
	}

	return nil
}

// Create создает новую запись
// Если в контексте передана активная транзакция, использует её.
// Нарушение частичного уникального индекса (doctor_id, appointment_date) возвращается как ErrDuplicateSlot
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"doctor_id",
			"patient_id",
			"appointment_date",
			"duration_minutes",
			"status",
			"reason",
			"notes",
			"is_cancelled",
		).
		Values(
			appointment.DoctorID,
			appointment.PatientID,
			appointment.AppointmentDate,
			appointment.DurationMinutes,
			string(appointment.Status),
			appointment.Reason,
			appointment.Notes,
			appointment.IsCancelled,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: Create - doctor=%d, date=%s: %w",
			ErrDuplicateSlot, appointment.DoctorID, appointment.AppointmentDate.Format(domain.DateTimeFormat), err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// Update сохраняет изменяемые поля записи (дата, длительность, статус, заметки, флаг отмены)
func (r *Repository) Update(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("appointment_date", appointment.AppointmentDate).
		Set("duration_minutes", appointment.DurationMinutes).
		Set("status", string(appointment.Status)).
		Set("notes", appointment.Notes).
		Set("is_cancelled", appointment.IsCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appointment.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: Update - id=%d, date=%s: %w",
			ErrDuplicateSlot, appointment.ID, appointment.AppointmentDate.Format(domain.DateTimeFormat), err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает запись по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	appointment, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appointment, nil
}

// List получает записи с гибкой фильтрацией, отсортированные по дате приёма (ASC)
//
// Примеры использования:
//
// 1. Активные записи врача за день:
//    filter := domain.AppointmentFilter{DoctorID: &doctorID, From: &dayStart, To: &dayEnd}
//
// 2. Все записи пациента, включая отменённые:
//    filter := domain.AppointmentFilter{PatientID: &patientID, IncludeCancelled: true}
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName)

	if filter.DoctorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"doctor_id": *filter.DoctorID})
	}
	if filter.PatientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"patient_id": *filter.PatientID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.To})
	}
	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_cancelled": false})
	}
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	query, args, err := selectBuilder.
		OrderBy("appointment_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment, err := r.scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var status string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.DoctorID,
		&appointment.PatientID,
		&appointment.AppointmentDate,
		&appointment.DurationMinutes,
		&status,
		&appointment.Reason,
		&appointment.Notes,
		&appointment.IsCancelled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.Status = domain.AppointmentStatus(status)
	appointment.AppointmentDate = appointment.AppointmentDate.In(r.loc)
	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}

// isUniqueViolation проверяет, что ошибка является нарушением уникального индекса
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	return false
}
