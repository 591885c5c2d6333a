package doctorpatient

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MedicalBookingService/pkg/dbmetrics"
	"github.com/m04kA/MedicalBookingService/pkg/psqlbuilder"
)

const tableName = "doctor_patients"

// Repository репозиторий связей врач-пациент
// Пара (doctor_id, patient_id) уникальна, связь создаётся при первой записи
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория связей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Ensure создаёт связь, если её ещё нет
// Повторный вызов с той же парой ничего не меняет
func (r *Repository) Ensure(ctx context.Context, doctorID, patientID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("doctor_id", "patient_id").
		Values(doctorID, patientID).
		Suffix("ON CONFLICT (doctor_id, patient_id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Ensure - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Ensure - execute insert doctor=%d, patient=%d: %w", ErrExecQuery, doctorID, patientID, err)
	}

	return nil
}

// ListPatientIDs получает список пациентов, которые когда-либо записывались к врачу
func (r *Repository) ListPatientIDs(ctx context.Context, doctorID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("patient_id").
		From(tableName).
		Where(squirrel.Eq{"doctor_id": doctorID}).
		OrderBy("patient_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPatientIDs - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPatientIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	patientIDs := make([]int64, 0)
	for rows.Next() {
		var patientID int64
		if err := rows.Scan(&patientID); err != nil {
			return nil, fmt.Errorf("%w: ListPatientIDs - scan patient_id: %w", ErrScanRow, err)
		}
		patientIDs = append(patientIDs, patientID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPatientIDs - rows error: %w", ErrScanRow, err)
	}

	return patientIDs, nil
}
