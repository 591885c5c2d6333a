package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/MedicalBookingService/internal/domain"
)

// Store in-memory хранилище для локального запуска (database.driver = "memory") и тестов
// Транзакции выполняются строго последовательно, откат восстанавливает снимок данных
// Чтение вне транзакции ждёт её завершения и видит только зафиксированное состояние
type Store struct {
	txMu sync.RWMutex
	mu   sync.RWMutex

	rules          map[int64]domain.AvailabilityRule
	timeOff        map[int64]domain.TimeOffPeriod
	appointments   map[int64]domain.Appointment
	doctorPatients map[doctorPatientKey]time.Time

	nextRuleID        int64
	nextTimeOffID     int64
	nextAppointmentID int64

	now func() time.Time
}

type doctorPatientKey struct {
	doctorID  int64
	patientID int64
}

type snapshot struct {
	rules             map[int64]domain.AvailabilityRule
	timeOff           map[int64]domain.TimeOffPeriod
	appointments      map[int64]domain.Appointment
	doctorPatients    map[doctorPatientKey]time.Time
	nextRuleID        int64
	nextTimeOffID     int64
	nextAppointmentID int64
}

type txKey struct{}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		rules:          make(map[int64]domain.AvailabilityRule),
		timeOff:        make(map[int64]domain.TimeOffPeriod),
		appointments:   make(map[int64]domain.Appointment),
		doctorPatients: make(map[doctorPatientKey]time.Time),
		now:            time.Now,
	}
}

// Availability возвращает репозиторий расписания
func (s *Store) Availability() *AvailabilityRepository {
	return &AvailabilityRepository{store: s}
}

// TimeOff возвращает репозиторий периодов отсутствия
func (s *Store) TimeOff() *TimeOffRepository {
	return &TimeOffRepository{store: s}
}

// Appointments возвращает репозиторий записей
func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{store: s}
}

// DoctorPatients возвращает репозиторий связей врач-пациент
func (s *Store) DoctorPatients() *DoctorPatientRepository {
	return &DoctorPatientRepository{store: s}
}

// TxManager возвращает менеджер транзакций хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// write выполняет изменение данных; вне транзакции ждёт завершения текущей
func (s *Store) write(ctx context.Context, fn func() error) error {
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn()
}

// read выполняет чтение; вне транзакции не пересекается с открытой транзакцией
func (s *Store) read(ctx context.Context, fn func()) {
	if !inTx(ctx) {
		s.txMu.RLock()
		defer s.txMu.RUnlock()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	fn()
}

func (s *Store) takeSnapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		rules:             make(map[int64]domain.AvailabilityRule, len(s.rules)),
		timeOff:           make(map[int64]domain.TimeOffPeriod, len(s.timeOff)),
		appointments:      make(map[int64]domain.Appointment, len(s.appointments)),
		doctorPatients:    make(map[doctorPatientKey]time.Time, len(s.doctorPatients)),
		nextRuleID:        s.nextRuleID,
		nextTimeOffID:     s.nextTimeOffID,
		nextAppointmentID: s.nextAppointmentID,
	}
	for k, v := range s.rules {
		snap.rules[k] = v
	}
	for k, v := range s.timeOff {
		snap.timeOff[k] = v
	}
	for k, v := range s.appointments {
		snap.appointments[k] = v
	}
	for k, v := range s.doctorPatients {
		snap.doctorPatients[k] = v
	}

	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rules = snap.rules
	s.timeOff = snap.timeOff
	s.appointments = snap.appointments
	s.doctorPatients = snap.doctorPatients
	s.nextRuleID = snap.nextRuleID
	s.nextTimeOffID = snap.nextTimeOffID
	s.nextAppointmentID = snap.nextAppointmentID
}
