package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/cancel_booking"
	confirmPaymentHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/create_booking"
	createFieldHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/create_field"
	createFinanceRecordHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/create_finance_record"
	deleteFieldHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/delete_field"
	getBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_booking"
	getFieldHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_field"
	getFieldAvailabilityHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_field_availability"
	getUserBookingsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/list_bookings"
	listFieldsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/list_fields"
	listFinanceHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/list_finance"
	updateFieldHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/update_field"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/config"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	financeRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/finance"
	outboxRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/outbox"
	userServiceClient "github.com/m04kA/SMC-FieldBookingService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
	fieldsService "github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
	financeService "github.com/m04kA/SMC-FieldBookingService/internal/service/finance"
	confirmPaymentUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
	getFieldAvailabilityUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/get_field_availability"
	"github.com/m04kA/SMC-FieldBookingService/internal/worker/financeconsumer"
	outboxWorker "github.com/m04kA/SMC-FieldBookingService/internal/worker/outbox"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/mq"
	"github.com/m04kA/SMC-FieldBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

func main() {
	// Переменные окружения из .env, если файл есть
	_ = godotenv.Load(".env")

	configPath := os.Getenv("FIELDBOOKING_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-FieldBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Validate уже проверил таймзону и цены
	location, _ := cfg.Booking.Location()
	prices, _ := cfg.PriceTable()

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

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Исполнитель запросов и менеджер транзакций (с метриками или без)
	var (
		executor dbmetrics.DBExecutor
		txMgr    *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		executor = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(executor)
	fieldRepository := fieldRepo.NewRepository(executor)
	financeRepository := financeRepo.NewRepository(executor)
	outboxRepository := outboxRepo.NewRepository(executor)

	timeProvider := &createBookingUC.RealTimeProvider{Location: location}

	// Инициализируем сервисы
	fieldSvc := fieldsService.NewService(fieldRepository, txMgr, prices, log)
	financeSvc := financeService.NewService(financeRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		fieldRepository,
		userClient,
		txMgr,
		log,
		bookingsService.WithTimeProvider(timeProvider),
		bookingsService.WithCancellationPolicy(domain.CancellationPolicyFromMinutes(cfg.Booking.CancelMinNoticeMinutes)),
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		fieldRepository,
		userClient,
		txMgr,
		timeProvider,
		cfg.Booking.AdvanceBookingDays,
		log,
	)
	getFieldAvailabilityUseCase := getFieldAvailabilityUC.NewUseCase(
		bookingRepository,
		fieldRepository,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		fieldRepository,
		outboxRepository,
		txMgr,
		&confirmPaymentUC.RealTimeProvider{},
		log,
	)

	// Фоновые воркеры
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	var dispatcher outboxWorker.Dispatcher = outboxWorker.NewDirectDispatcher(financeSvc)

	if cfg.Broker.Enabled {
		publisher, err := mq.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to broker: %v", err)
		}
		defer publisher.Close()
		dispatcher = outboxWorker.NewBrokerDispatcher(publisher)

		consumer, err := mq.NewConsumer(cfg.Broker.URL, cfg.Broker.Exchange, cfg.Broker.Queue, []string{domain.EventBookingPaid})
		if err != nil {
			log.Fatal("Failed to start broker consumer: %v", err)
		}
		defer consumer.Close()

		financeConsumer := financeconsumer.NewConsumer(consumer, financeSvc, log)
		workers.Add(1)
		go func() {
			defer workers.Done()
			if err := financeConsumer.Run(workerCtx); err != nil {
				log.Error("Finance consumer stopped: %v", err)
			}
		}()
		log.Info("Broker enabled (exchange=%s, queue=%s)", cfg.Broker.Exchange, cfg.Broker.Queue)
	}

	if cfg.Outbox.Enabled {
		var relayMetrics outboxWorker.Metrics
		if metricsCollector != nil {
			relayMetrics = metricsCollector
		}

		relay := outboxWorker.NewRelay(
			outboxRepository,
			dispatcher,
			txMgr,
			relayMetrics,
			outboxWorker.Config{
				PollInterval: time.Duration(cfg.Outbox.PollInterval) * time.Second,
				BatchSize:    cfg.Outbox.BatchSize,
				MaxAttempts:  cfg.Outbox.MaxAttempts,
			},
			log,
		)
		workers.Add(1)
		go func() {
			defer workers.Done()
			relay.Run(workerCtx)
		}()
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getFieldAvailability := getFieldAvailabilityHandler.NewHandler(getFieldAvailabilityUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	listFields := listFieldsHandler.NewHandler(fieldSvc, log)
	getField := getFieldHandler.NewHandler(fieldSvc, log)
	createField := createFieldHandler.NewHandler(fieldSvc, log)
	updateField := updateFieldHandler.NewHandler(fieldSvc, log)
	deleteField := deleteFieldHandler.NewHandler(fieldSvc, log)
	listFinance := listFinanceHandler.NewHandler(financeSvc, log)
	createFinanceRecord := createFinanceRecordHandler.NewHandler(financeSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/fields", listFields.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields/{fieldId}", getField.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields/{fieldId}/availability", getFieldAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (X-User-Role: admin)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/payment", confirmPayment.Handle).Methods(http.MethodPatch)

	// --- Поля ---
	admin.HandleFunc("/fields", createField.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/fields/{fieldId}", updateField.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/fields/{fieldId}", deleteField.Handle).Methods(http.MethodDelete)

	// --- Финансы ---
	admin.HandleFunc("/finance", listFinance.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/finance", createFinanceRecord.Handle).Methods(http.MethodPost)

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

	// Останавливаем воркеры
	stopWorkers()
	workers.Wait()
	log.Info("Background workers stopped")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
