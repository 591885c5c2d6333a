package memory

import (
	"context"
	"sort"

	"github.com/m04kA/MedicalBookingService/internal/domain"
	availabilityRepo "github.com/m04kA/MedicalBookingService/internal/infra/storage/availability"
)

// AvailabilityRepository in-memory реализация репозитория расписания
type AvailabilityRepository struct {
	store *Store
}

func (r *AvailabilityRepository) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	err := r.store.write(ctx, func() error {
		r.store.nextRuleID++
		now := r.store.now()

		rule.ID = r.store.nextRuleID
		rule.CreatedAt = now
		rule.UpdatedAt = now
		r.store.rules[rule.ID] = *rule
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *AvailabilityRepository) Update(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	err := r.store.write(ctx, func() error {
		existing, ok := r.store.rules[rule.ID]
		if !ok {
			return availabilityRepo.ErrAvailabilityNotFound
		}

		rule.CreatedAt = existing.CreatedAt
		rule.UpdatedAt = r.store.now()
		r.store.rules[rule.ID] = *rule
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	var (
		rule domain.AvailabilityRule
		ok   bool
	)
	r.store.read(ctx, func() {
		rule, ok = r.store.rules[id]
	})
	if !ok {
		return nil, availabilityRepo.ErrAvailabilityNotFound
	}
	return &rule, nil
}

func (r *AvailabilityRepository) ListActiveByDoctor(ctx context.Context, doctorID int64) ([]*domain.AvailabilityRule, error) {
	return r.list(ctx, func(rule domain.AvailabilityRule) bool {
		return rule.DoctorID == doctorID && rule.IsActive
	}), nil
}

func (r *AvailabilityRepository) ListActiveByDoctorAndDay(ctx context.Context, doctorID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error) {
	return r.list(ctx, func(rule domain.AvailabilityRule) bool {
		return rule.DoctorID == doctorID && rule.DayOfWeek == dayOfWeek && rule.IsActive
	}), nil
}

func (r *AvailabilityRepository) DeactivateAllByDoctor(ctx context.Context, doctorID int64) (int64, error) {
	var count int64
	err := r.store.write(ctx, func() error {
		now := r.store.now()
		for id, rule := range r.store.rules {
			if rule.DoctorID != doctorID || !rule.IsActive {
				continue
			}
			rule.IsActive = false
			rule.UpdatedAt = now
			r.store.rules[id] = rule
			count++
		}
		return nil
	})
	return count, err
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id int64) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.rules[id]; !ok {
			return availabilityRepo.ErrAvailabilityNotFound
		}
		delete(r.store.rules, id)
		return nil
	})
}

func (r *AvailabilityRepository) list(ctx context.Context, match func(domain.AvailabilityRule) bool) []*domain.AvailabilityRule {
	rules := make([]*domain.AvailabilityRule, 0)
	r.store.read(ctx, func() {
		for _, rule := range r.store.rules {
			if match(rule) {
				rule := rule
				rules = append(rules, &rule)
			}
		}
	})

	sort.Slice(rules, func(i, j int) bool {
		if rules[i].DayOfWeek != rules[j].DayOfWeek {
			return rules[i].DayOfWeek < rules[j].DayOfWeek
		}
		if rules[i].StartTime != rules[j].StartTime {
			return rules[i].StartTime.IsBefore(rules[j].StartTime)
		}
		return rules[i].ID < rules[j].ID
	})

	return rules
}
