package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	convertAppointmentHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/convert_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_appointment"
	getBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_booking"
	getTripQuoteHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_trip_quote"
	listAppointmentsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_appointments"
	listBookingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_bookings"
	recordPaymentHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/record_payment"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_appointment_status"
	updateBookingStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/appointment"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	tripCatalogClient "github.com/m04kA/SMC-ReservationService/internal/integrations/tripcatalog"
	appointmentsService "github.com/m04kA/SMC-ReservationService/internal/service/appointments"
	bookingsService "github.com/m04kA/SMC-ReservationService/internal/service/bookings"
	convertAppointmentUC "github.com/m04kA/SMC-ReservationService/internal/usecase/convert_appointment"
	quoteTripUC "github.com/m04kA/SMC-ReservationService/internal/usecase/quote_trip"
	recordPaymentUC "github.com/m04kA/SMC-ReservationService/internal/usecase/record_payment"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент каталога туров
	tripClient := tripCatalogClient.NewClient(
		cfg.TripCatalog.URL,
		time.Duration(cfg.TripCatalog.Timeout)*time.Second,
		log,
	)
	log.Info("Trip catalog client initialized (url=%s, timeout=%ds)",
		cfg.TripCatalog.URL, cfg.TripCatalog.Timeout)

	// Оборачиваем подключение: при выключенных метриках обёртка работает
	// как прозрачный passthrough
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	quoteTripUseCase := quoteTripUC.NewUseCase(tripClient, cfg.Pricing.ServiceFee, log)
	recordPaymentUseCase := recordPaymentUC.NewUseCase(bookingRepository, txMgr, log)
	convertAppointmentUseCase := convertAppointmentUC.NewUseCase(
		appointmentRepository,
		bookingRepository,
		txMgr,
		cfg.Pricing.DefaultCurrency,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	convertAppointment := convertAppointmentHandler.NewHandler(convertAppointmentUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	recordPayment := recordPaymentHandler.NewHandler(recordPaymentUseCase, log)
	getTripQuote := getTripQuoteHandler.NewHandler(quoteTripUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчёт стоимости тура
	api.HandleFunc("/trips/{tripRef}/quote", getTripQuote.Handle).Methods(http.MethodGet)

	// Создание заявки на консультацию
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки на консультацию ---
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{reference}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{reference}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{reference}/convert", convertAppointment.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{reference}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{reference}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{reference}/payments", recordPayment.Handle).Methods(http.MethodPost)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
