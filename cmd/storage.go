package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/MedicalBookingService/internal/config"
	"github.com/m04kA/MedicalBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/MedicalBookingService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/MedicalBookingService/internal/infra/storage/availability"
	doctorPatientRepo "github.com/m04kA/MedicalBookingService/internal/infra/storage/doctorpatient"
	"github.com/m04kA/MedicalBookingService/internal/infra/storage/memory"
	timeOffRepo "github.com/m04kA/MedicalBookingService/internal/infra/storage/timeoff"
	"github.com/m04kA/MedicalBookingService/pkg/dbmetrics"
	"github.com/m04kA/MedicalBookingService/pkg/logger"
	"github.com/m04kA/MedicalBookingService/pkg/metrics"
	"github.com/m04kA/MedicalBookingService/pkg/txmanager"
)

type availabilityStore interface {
	Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	Update(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error)
	ListActiveByDoctor(ctx context.Context, doctorID int64) ([]*domain.AvailabilityRule, error)
	ListActiveByDoctorAndDay(ctx context.Context, doctorID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error)
	DeactivateAllByDoctor(ctx context.Context, doctorID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type timeOffStore interface {
	Create(ctx context.Context, period *domain.TimeOffPeriod) (*domain.TimeOffPeriod, error)
	Delete(ctx context.Context, id int64) error
	ExistsOnDate(ctx context.Context, doctorID int64, date time.Time) (bool, error)
	ListOverlapping(ctx context.Context, doctorID int64, from, to time.Time) ([]*domain.TimeOffPeriod, error)
	ListUpcoming(ctx context.Context, doctorID int64, from time.Time) ([]*domain.TimeOffPeriod, error)
}

type appointmentStore interface {
	LockDoctor(ctx context.Context, doctorID int64) error
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	Update(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

type doctorPatientStore interface {
	Ensure(ctx context.Context, doctorID, patientID int64) error
	ListPatientIDs(ctx context.Context, doctorID int64) ([]int64, error)
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage набор репозиториев выбранного драйвера
type storage struct {
	availability   availabilityStore
	timeOff        timeOffStore
	appointments   appointmentStore
	doctorPatients doctorPatientStore
	txManager      txManager
	close          func() error
}

func openMemoryStorage() *storage {
	store := memory.NewStore()
	return &storage{
		availability:   store.Availability(),
		timeOff:        store.TimeOff(),
		appointments:   store.Appointments(),
		doctorPatients: store.DoctorPatients(),
		txManager:      store.TxManager(),
		close:          func() error { return nil },
	}
}

func openPostgresStorage(
	cfg *config.Config,
	loc *time.Location,
	metricsCollector *metrics.Metrics,
	stopCh <-chan struct{},
	log *logger.Logger,
) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if metricsCollector != nil {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	return &storage{
		availability:   availabilityRepo.NewRepository(wrappedDB),
		timeOff:        timeOffRepo.NewRepository(wrappedDB, loc),
		appointments:   appointmentRepo.NewRepository(wrappedDB, loc),
		doctorPatients: doctorPatientRepo.NewRepository(wrappedDB),
		txManager:      txmanager.NewTransactionManager(wrappedDB),
		close:          db.Close,
	}, nil
}
