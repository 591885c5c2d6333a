package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/MedicalBookingService/internal/infra/storage/appointment"
)

// AppointmentRepository in-memory реализация репозитория записей
// Повторяет частичный уникальный индекс (doctor_id, appointment_date) WHERE NOT is_cancelled
type AppointmentRepository struct {
	store *Store
}

// LockDoctor ничего не делает: транзакции хранилища и так выполняются последовательно
func (r *AppointmentRepository) LockDoctor(_ context.Context, _ int64) error {
	return nil
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	err := r.store.write(ctx, func() error {
		if err := r.checkUnique(appointment); err != nil {
			return err
		}

		r.store.nextAppointmentID++
		now := r.store.now()

		appointment.ID = r.store.nextAppointmentID
		appointment.CreatedAt = now
		appointment.UpdatedAt = now
		r.store.appointments[appointment.ID] = copyAppointment(*appointment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	err := r.store.write(ctx, func() error {
		existing, ok := r.store.appointments[appointment.ID]
		if !ok {
			return appointmentRepo.ErrAppointmentNotFound
		}
		if err := r.checkUnique(appointment); err != nil {
			return err
		}

		existing.AppointmentDate = appointment.AppointmentDate
		existing.DurationMinutes = appointment.DurationMinutes
		existing.Status = appointment.Status
		existing.Notes = appointment.Notes
		existing.IsCancelled = appointment.IsCancelled
		existing.UpdatedAt = r.store.now()

		r.store.appointments[appointment.ID] = copyAppointment(existing)
		appointment.UpdatedAt = existing.UpdatedAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var (
		appointment domain.Appointment
		ok          bool
	)
	r.store.read(ctx, func() {
		appointment, ok = r.store.appointments[id]
	})
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	appointment = copyAppointment(appointment)
	return &appointment, nil
}

func (r *AppointmentRepository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)
	r.store.read(ctx, func() {
		for _, a := range r.store.appointments {
			if matches(a, filter) {
				a = copyAppointment(a)
				appointments = append(appointments, &a)
			}
		}
	})

	sort.Slice(appointments, func(i, j int) bool {
		if !appointments[i].AppointmentDate.Equal(appointments[j].AppointmentDate) {
			return appointments[i].AppointmentDate.Before(appointments[j].AppointmentDate)
		}
		return appointments[i].ID < appointments[j].ID
	})

	return appointments, nil
}

// checkUnique вызывается под s.mu
func (r *AppointmentRepository) checkUnique(appointment *domain.Appointment) error {
	if appointment.IsCancelled {
		return nil
	}
	for _, other := range r.store.appointments {
		if other.ID == appointment.ID || other.IsCancelled {
			continue
		}
		if other.DoctorID == appointment.DoctorID && other.AppointmentDate.Equal(appointment.AppointmentDate) {
			return fmt.Errorf("%w: doctor=%d, date=%s", appointmentRepo.ErrDuplicateSlot,
				appointment.DoctorID, appointment.AppointmentDate.Format(domain.DateTimeFormat))
		}
	}
	return nil
}

func matches(a domain.Appointment, filter domain.AppointmentFilter) bool {
	if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
		return false
	}
	if filter.PatientID != nil && a.PatientID != *filter.PatientID {
		return false
	}
	if filter.From != nil && a.AppointmentDate.Before(*filter.From) {
		return false
	}
	if filter.To != nil && a.AppointmentDate.After(*filter.To) {
		return false
	}
	if !filter.IncludeCancelled && a.IsCancelled {
		return false
	}
	if filter.ExcludeID != nil && a.ID == *filter.ExcludeID {
		return false
	}
	return true
}

// copyAppointment копирует указатели на строки, чтобы вызывающий код не менял хранилище
func copyAppointment(a domain.Appointment) domain.Appointment {
	if a.Reason != nil {
		reason := *a.Reason
		a.Reason = &reason
	}
	if a.Notes != nil {
		notes := *a.Notes
		a.Notes = &notes
	}
	return a
}
