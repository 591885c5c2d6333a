package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	timeoffRepo "github.com/m04kA/MedicalBookingService/internal/infra/storage/timeoff"
)

// TimeOffRepository in-memory реализация репозитория периодов отсутствия
type TimeOffRepository struct {
	store *Store
}

func (r *TimeOffRepository) Create(ctx context.Context, period *domain.TimeOffPeriod) (*domain.TimeOffPeriod, error) {
	err := r.store.write(ctx, func() error {
		r.store.nextTimeOffID++
		period.ID = r.store.nextTimeOffID
		period.StartDate = domain.DateOnly(period.StartDate)
		period.EndDate = domain.DateOnly(period.EndDate)
		period.CreatedAt = r.store.now()
		r.store.timeOff[period.ID] = *period
		return nil
	})
	if err != nil {
		return nil, err
	}
	return period, nil
}

func (r *TimeOffRepository) GetByID(ctx context.Context, id int64) (*domain.TimeOffPeriod, error) {
	var (
		period domain.TimeOffPeriod
		ok     bool
	)
	r.store.read(ctx, func() {
		period, ok = r.store.timeOff[id]
	})
	if !ok {
		return nil, timeoffRepo.ErrTimeOffNotFound
	}
	return &period, nil
}

func (r *TimeOffRepository) Delete(ctx context.Context, id int64) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.timeOff[id]; !ok {
			return timeoffRepo.ErrTimeOffNotFound
		}
		delete(r.store.timeOff, id)
		return nil
	})
}

func (r *TimeOffRepository) ExistsOnDate(ctx context.Context, doctorID int64, date time.Time) (bool, error) {
	var exists bool
	r.store.read(ctx, func() {
		for _, period := range r.store.timeOff {
			if period.DoctorID == doctorID && period.Covers(date) {
				exists = true
				return
			}
		}
	})
	return exists, nil
}

func (r *TimeOffRepository) ListOverlapping(ctx context.Context, doctorID int64, from, to time.Time) ([]*domain.TimeOffPeriod, error) {
	return r.list(ctx, func(p domain.TimeOffPeriod) bool {
		return p.DoctorID == doctorID && p.Overlaps(from, to)
	}), nil
}

func (r *TimeOffRepository) ListUpcoming(ctx context.Context, doctorID int64, from time.Time) ([]*domain.TimeOffPeriod, error) {
	day := domain.DateOnly(from)
	return r.list(ctx, func(p domain.TimeOffPeriod) bool {
		return p.DoctorID == doctorID && !domain.DateOnly(p.EndDate).Before(day)
	}), nil
}

func (r *TimeOffRepository) list(ctx context.Context, match func(domain.TimeOffPeriod) bool) []*domain.TimeOffPeriod {
	periods := make([]*domain.TimeOffPeriod, 0)
	r.store.read(ctx, func() {
		for _, period := range r.store.timeOff {
			if match(period) {
				period := period
				periods = append(periods, &period)
			}
		}
	})

	sort.Slice(periods, func(i, j int) bool {
		if !periods[i].StartDate.Equal(periods[j].StartDate) {
			return periods[i].StartDate.Before(periods[j].StartDate)
		}
		return periods[i].ID < periods[j].ID
	})

	return periods
}
