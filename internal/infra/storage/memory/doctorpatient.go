package memory

import (
	"context"
	"sort"
)

// DoctorPatientRepository in-memory реализация репозитория связей врач-пациент
type DoctorPatientRepository struct {
	store *Store
}

func (r *DoctorPatientRepository) Ensure(ctx context.Context, doctorID, patientID int64) error {
	return r.store.write(ctx, func() error {
		key := doctorPatientKey{doctorID: doctorID, patientID: patientID}
		if _, ok := r.store.doctorPatients[key]; !ok {
			r.store.doctorPatients[key] = r.store.now()
		}
		return nil
	})
}

func (r *DoctorPatientRepository) ListPatientIDs(ctx context.Context, doctorID int64) ([]int64, error) {
	patientIDs := make([]int64, 0)
	r.store.read(ctx, func() {
		for key := range r.store.doctorPatients {
			if key.doctorID == doctorID {
				patientIDs = append(patientIDs, key.patientID)
			}
		}
	})

	sort.Slice(patientIDs, func(i, j int) bool { return patientIDs[i] < patientIDs[j] })

	return patientIDs, nil
}
