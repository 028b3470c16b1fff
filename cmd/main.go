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

	acceptReservationHandler "github.com/m04kA/SMC-RoomReservations/internal/api/handlers/accept_reservation"
	checkAvailabilityHandler "github.com/m04kA/SMC-RoomReservations/internal/api/handlers/check_availability"
	createReservationHandler "github.com/m04kA/SMC-RoomReservations/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/SMC-RoomReservations/internal/api/handlers/delete_reservation"
	editReservationHandler "github.com/m04kA/SMC-RoomReservations/internal/api/handlers/edit_reservation"
	getMonthlyReportHandler "github.com/m04kA/SMC-RoomReservations/internal/api/handlers/get_monthly_report"
	getReservationHandler "github.com/m04kA/SMC-RoomReservations/internal/api/handlers/get_reservation"
	getRoomReservationsHandler "github.com/m04kA/SMC-RoomReservations/internal/api/handlers/get_room_reservations"
	rejectReservationHandler "github.com/m04kA/SMC-RoomReservations/internal/api/handlers/reject_reservation"
	"github.com/m04kA/SMC-RoomReservations/internal/api/middleware"
	"github.com/m04kA/SMC-RoomReservations/internal/config"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/internal/infra/migrator"
	personRepo "github.com/m04kA/SMC-RoomReservations/internal/infra/storage/person"
	reservationRepo "github.com/m04kA/SMC-RoomReservations/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RoomReservations/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomReservations/internal/integrations/events"
	"github.com/m04kA/SMC-RoomReservations/internal/report"
	reservationsService "github.com/m04kA/SMC-RoomReservations/internal/service/reservations"
	buildMonthlyReportUC "github.com/m04kA/SMC-RoomReservations/internal/usecase/build_monthly_report"
	checkAvailabilityUC "github.com/m04kA/SMC-RoomReservations/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/SMC-RoomReservations/internal/usecase/create_reservation"
	editReservationUC "github.com/m04kA/SMC-RoomReservations/internal/usecase/edit_reservation"
	"github.com/m04kA/SMC-RoomReservations/migrations"
	"github.com/m04kA/SMC-RoomReservations/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomReservations/pkg/logger"
	"github.com/m04kA/SMC-RoomReservations/pkg/metrics"
	"github.com/m04kA/SMC-RoomReservations/pkg/txmanager"
)

// publisher общий интерфейс Kafka и no-op publisher'а
type publisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}

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

	log.Info("Starting SMC-RoomReservations...")
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

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		m, err := migrator.New(db, migrations.FS, log)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := m.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Без метрик обёртка работает как прозрачный прокси
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	roomRepository := roomRepo.NewRepository(wrappedDB)
	personRepository := personRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Публикация событий
	var eventPublisher publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(events.Config{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			BatchTimeout: time.Duration(cfg.Kafka.BatchTimeout) * time.Millisecond,
			MaxAttempts:  cfg.Kafka.MaxAttempts,
			Compression:  cfg.Kafka.Compression,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize kafka publisher: %v", err)
		}
		eventPublisher = kafkaPublisher
		log.Info("Kafka publisher initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer eventPublisher.Close()

	policy := domain.IntervalPolicy{
		MinDurationMinutes: cfg.Reservations.MinDurationMinutes,
		MaxDurationMinutes: cfg.Reservations.MaxDurationMinutes,
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		roomRepository,
		txMgr,
		eventPublisher,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		roomRepository,
		personRepository,
		txMgr,
		eventPublisher,
		metricsCollector,
		policy,
		log,
	)

	editReservationUseCase := editReservationUC.NewUseCase(
		reservationRepository,
		roomRepository,
		personRepository,
		txMgr,
		eventPublisher,
		metricsCollector,
		policy,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservationRepository,
		roomRepository,
		policy,
		metricsCollector,
		log,
	)

	buildMonthlyReportUseCase := buildMonthlyReportUC.NewUseCase(
		reservationRepository,
		roomRepository,
		personRepository,
		txMgr,
		metricsCollector,
		report.Options{IncludeNonBillableHours: cfg.Reports.IncludeNonBillableHours},
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	editReservation := editReservationHandler.NewHandler(editReservationUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getRoomReservations := getRoomReservationsHandler.NewHandler(reservationsSvc, log)
	acceptReservation := acceptReservationHandler.NewHandler(reservationsSvc, log)
	rejectReservation := rejectReservationHandler.NewHandler(reservationsSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationsSvc, log)
	getMonthlyReport := getMonthlyReportHandler.NewHandler(buildMonthlyReportUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Живая проверка занятости слота из формы бронирования
	api.HandleFunc("/reservations/availability", checkAvailability.Handle).Methods(http.MethodPost)

	// Расписание комнаты на день
	api.HandleFunc("/rooms/{roomId}/reservations", getRoomReservations.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Брони ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", editReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// --- Решения согласующего (X-User-Capabilities: approve) ---
	protected.HandleFunc("/reservations/{reservationId}/accept", acceptReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}/reject", rejectReservation.Handle).Methods(http.MethodPost)

	// --- Отчёты ---
	protected.HandleFunc("/reports/rooms/monthly", getMonthlyReport.Handle).Methods(http.MethodGet)

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
	close(stopMetricsCh)

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
