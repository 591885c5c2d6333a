package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/MedicalBookingService/internal/api"
	addTimeOffHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/add_time_off"
	cancelBookingHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/cancel_booking"
	checkSlotHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/check_slot"
	confirmBookingHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/create_booking"
	deleteAvailabilityHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/delete_availability"
	getAvailableSlotsHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/get_booking"
	getDoctorBookingsHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/get_doctor_bookings"
	getDoctorPatientsHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/get_doctor_patients"
	getPatientBookingsHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/get_patient_bookings"
	getScheduleHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/get_schedule"
	getSlotsRangeHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/get_slots_range"
	getTimeOffHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/get_time_off"
	removeTimeOffHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/remove_time_off"
	rescheduleBookingHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/reschedule_booking"
	setAvailabilityHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/set_availability"
	setWeeklyScheduleHandler "github.com/m04kA/MedicalBookingService/internal/api/handlers/set_weekly_schedule"
	"github.com/m04kA/MedicalBookingService/internal/api/middleware"
	"github.com/m04kA/MedicalBookingService/internal/config"
	"github.com/m04kA/MedicalBookingService/internal/integrations/identityservice"
	"github.com/m04kA/MedicalBookingService/internal/integrations/notifier"
	appointmentsService "github.com/m04kA/MedicalBookingService/internal/service/appointments"
	availabilityService "github.com/m04kA/MedicalBookingService/internal/service/availability"
	timeOffService "github.com/m04kA/MedicalBookingService/internal/service/timeoff"
	checkSlotUC "github.com/m04kA/MedicalBookingService/internal/usecase/check_slot_availability"
	createBookingUC "github.com/m04kA/MedicalBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/MedicalBookingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/MedicalBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/MedicalBookingService/pkg/logger"
	"github.com/m04kA/MedicalBookingService/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting MedicalBookingService...")
	log.Info("Configuration loaded (storage driver=%s)", cfg.Database.Driver)

	loc := cfg.Location()
	log.Info("Clinic timezone: %s", loc.String())

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var store *storage
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store = openMemoryStorage()
		log.Warn("Using in-memory storage, data will be lost on restart")
	default:
		store, err = openPostgresStorage(cfg, loc, metricsCollector, stopMetricsCh, log)
		if err != nil {
			log.Fatal("Failed to initialize storage: %v", err)
		}
	}
	defer store.close()

	// Инициализируем интеграционных клиентов
	identityClient := identityservice.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		identityservice.BreakerConfig{
			MaxRequests:      cfg.IdentityService.Breaker.MaxRequests,
			Interval:         time.Duration(cfg.IdentityService.Breaker.Interval) * time.Second,
			Timeout:          time.Duration(cfg.IdentityService.Breaker.Timeout) * time.Second,
			FailureThreshold: cfg.IdentityService.Breaker.FailureThreshold,
		},
		log,
	)
	log.Info("Integration clients initialized (IdentityService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Уведомления
	var publisher notifier.Publisher
	if cfg.Notifications.Enabled {
		rabbitPublisher, err := notifier.NewRabbitMQPublisher(cfg.Notifications.AMQPURL, cfg.Notifications.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		publisher = rabbitPublisher
		log.Info("Notifications enabled (exchange=%s)", cfg.Notifications.Exchange)
	} else {
		publisher = notifier.NewNoopPublisher(log)
		log.Info("Notifications disabled, events will only be logged")
	}

	dispatcher := notifier.NewDispatcher(
		publisher,
		identityClient,
		time.Duration(cfg.Notifications.PublishTimeout)*time.Second,
		metricsCollector,
		log,
	)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		store.availability,
		identityClient,
		store.txManager,
		cfg.Booking.DefaultSlotMinutes,
		log,
	)
	timeOffSvc := timeOffService.NewService(
		store.timeOff,
		identityClient,
		loc,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		store.appointments,
		store.doctorPatients,
		store.txManager,
		dispatcher,
		metricsCollector,
		loc,
		cfg.Booking.MaxRangeDays,
		log,
	)

	// Инициализируем use cases
	checkSlotUseCase := checkSlotUC.NewUseCase(
		store.availability,
		store.appointments,
		timeOffSvc,
		loc,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.availability,
		store.appointments,
		timeOffSvc,
		loc,
		cfg.Booking.MaxRangeDays,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		store.appointments,
		store.doctorPatients,
		checkSlotUseCase,
		identityClient,
		store.txManager,
		dispatcher,
		metricsCollector,
		loc,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		store.appointments,
		checkSlotUseCase,
		store.txManager,
		dispatcher,
		metricsCollector,
		loc,
		log,
	)

	// Инициализируем handlers
	h := &api.Handlers{
		GetSchedule:        getScheduleHandler.NewHandler(availabilitySvc, log),
		SetAvailability:    setAvailabilityHandler.NewHandler(availabilitySvc, log),
		SetWeeklySchedule:  setWeeklyScheduleHandler.NewHandler(availabilitySvc, log),
		DeleteAvailability: deleteAvailabilityHandler.NewHandler(availabilitySvc, log),

		GetAvailableSlots: getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, loc, log),
		GetSlotsRange:     getSlotsRangeHandler.NewHandler(getAvailableSlotsUseCase, loc, log),
		CheckSlot:         checkSlotHandler.NewHandler(checkSlotUseCase, loc, log),

		CreateBooking:     createBookingHandler.NewHandler(createBookingUseCase, loc, log),
		RescheduleBooking: rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, loc, log),
		CancelBooking:     cancelBookingHandler.NewHandler(appointmentsSvc, log),
		ConfirmBooking:    confirmBookingHandler.NewHandler(appointmentsSvc, log),
		GetBooking:        getBookingHandler.NewHandler(appointmentsSvc, log),

		GetPatientBookings: getPatientBookingsHandler.NewHandler(appointmentsSvc, log),
		GetDoctorBookings:  getDoctorBookingsHandler.NewHandler(appointmentsSvc, log),
		GetDoctorPatients:  getDoctorPatientsHandler.NewHandler(appointmentsSvc, log),

		AddTimeOff:    addTimeOffHandler.NewHandler(timeOffSvc, log),
		RemoveTimeOff: removeTimeOffHandler.NewHandler(timeOffSvc, log),
		GetTimeOff:    getTimeOffHandler.NewHandler(timeOffSvc, log),
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api.RegisterRoutes(r, h)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки уведомлений и закрываем соединение с брокером
	if err := dispatcher.Close(); err != nil {
		log.Error("Failed to close notifier: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
