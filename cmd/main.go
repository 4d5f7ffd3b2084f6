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

	createBookingHandler "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers/get_booking"
	getContractHandler "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers/get_contract"
	getEarningsSummaryHandler "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers/get_earnings_summary"
	getInstructorBookingsHandler "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers/get_instructor_bookings"
	getStudentBookingsHandler "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers/get_student_bookings"
	recordPaymentStatusHandler "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers/record_payment_status"
	signContractHandler "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers/sign_contract"
	transitionBookingHandler "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers/transition_booking"
	updateAvailabilityHandler "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers/update_availability"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/middleware"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/config"
	availabilityRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/availability"
	bookingRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/booking"
	contractRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/contract"
	instructorRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/instructor"
	ledgerRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/ledger"
	identityServiceClient "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/integrations/identityservice"
	paymentServiceClient "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/integrations/paymentservice"
	availabilityService "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/availability"
	bookingsService "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/bookings"
	contractsService "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/contracts"
	ledgerService "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/ledger"
	createBookingUC "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/usecase/get_available_slots"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/dbmetrics"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/logger"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/metrics"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/simpletxmanager"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/txmanager"
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

	log.Info("Starting Vrumi-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (IdentityService=%s timeout=%ds, PaymentService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout, cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		instructorRepository   *instructorRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		contractRepository     *contractRepo.Repository
		ledgerRepository       *ledgerRepo.Repository
		txMgr                  TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		instructorRepository = instructorRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		contractRepository = contractRepo.NewRepository(wrappedDB)
		ledgerRepository = ledgerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		instructorRepository = instructorRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		contractRepository = contractRepo.NewRepository(db)
		ledgerRepository = ledgerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		instructorRepository,
		txMgr,
		log,
	)
	contractsSvc, err := contractsService.NewService(
		contractRepository,
		bookingRepository,
		txMgr,
		cfg.Booking.ContractTemplatePath,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize contracts service: %v", err)
	}
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		instructorRepository,
		ledgerRepository,
		paymentClient,
		txMgr,
		cfg.Booking.CancellationWindowHours,
		log,
	)
	ledgerSvc := ledgerService.NewService(
		ledgerRepository,
		bookingRepository,
		instructorRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		instructorRepository,
		contractRepository,
		contractsSvc,
		identityClient,
		txMgr,
		createBookingUC.Config{
			FeeRateBasisPoints:      cfg.Booking.FeeRateBasisPoints,
			AdvanceBookingDays:      cfg.Booking.AdvanceBookingDays,
			CancellationWindowHours: cfg.Booking.CancellationWindowHours,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		bookingRepository,
		instructorRepository,
		cfg.Booking.AdvanceBookingDays,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	transitionBooking := transitionBookingHandler.NewHandler(bookingsSvc, log)
	signContract := signContractHandler.NewHandler(contractsSvc, log)
	getContract := getContractHandler.NewHandler(contractsSvc, log)
	getStudentBookings := getStudentBookingsHandler.NewHandler(bookingsSvc, log)
	getInstructorBookings := getInstructorBookingsHandler.NewHandler(bookingsSvc, log)
	recordPaymentStatus := recordPaymentStatusHandler.NewHandler(bookingsSvc, log)
	getEarningsSummary := getEarningsSummaryHandler.NewHandler(ledgerSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Внутренний маршрут для платёжного шлюза (не проходит через Auth,
	// закрывается сетевым периметром)
	r.HandleFunc("/internal/bookings/{bookingId}/payment-status",
		recordPaymentStatus.Handle).Methods(http.MethodPost)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты инструктора на дату
	api.HandleFunc("/instructors/{instructorId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание инструктора
	api.HandleFunc("/instructors/{instructorId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования (резервирование слота + договор)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Переход жизненного цикла (accept/cancel/complete/dispute)
	protected.HandleFunc("/bookings/{bookingId}/transition", transitionBooking.Handle).Methods(http.MethodPatch)

	// --- Договор ---
	protected.HandleFunc("/bookings/{bookingId}/contract", getContract.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/contract/sign", signContract.Handle).Methods(http.MethodPost)

	// --- Списки бронирований ---
	protected.HandleFunc("/students/{studentId}/bookings", getStudentBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/instructors/{instructorId}/bookings", getInstructorBookings.Handle).Methods(http.MethodGet)

	// --- Управление расписанием и заработком инструктора ---
	protected.HandleFunc("/instructors/{instructorId}/availability", updateAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/instructors/{instructorId}/earnings", getEarningsSummary.Handle).Methods(http.MethodGet)

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
