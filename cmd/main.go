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

	cancelBookingHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/create_booking"
	getAnalyticsHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_analytics"
	getBookingHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/list_bookings"
	listResourcesHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/list_resources"
	reviewBookingHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/review_booking"
	upsertResourceHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/upsert_resource"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/config"
	bookingRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/resource"
	bookingsService "github.com/m04kA/SMC-FacilityService/internal/service/bookings"
	resourcesService "github.com/m04kA/SMC-FacilityService/internal/service/resources"
	cancelBookingUC "github.com/m04kA/SMC-FacilityService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-FacilityService/internal/usecase/create_booking"
	getAnalyticsUC "github.com/m04kA/SMC-FacilityService/internal/usecase/get_analytics"
	reviewBookingUC "github.com/m04kA/SMC-FacilityService/internal/usecase/review_booking"
	"github.com/m04kA/SMC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityService/pkg/logger"
	"github.com/m04kA/SMC-FacilityService/pkg/metrics"
	"github.com/m04kA/SMC-FacilityService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-FacilityService/pkg/txmanager"
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

	log.Info("Starting SMC-FacilityService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		resourceRepository *resourceRepo.Repository
	)

	// Интерфейс transaction manager, используемый в usecases
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		resourceRepository = resourceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	resourceSvc := resourcesService.NewService(resourceRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		txMgr,
		log,
	)
	reviewBookingUseCase := reviewBookingUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		log,
	)
	getAnalyticsUseCase := getAnalyticsUC.NewUseCase(
		resourceRepository,
		bookingRepository,
		cfg.Analytics.DefaultDailyHours,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	reviewBooking := reviewBookingHandler.NewHandler(reviewBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	listResources := listResourcesHandler.NewHandler(resourceSvc, log)
	upsertResource := upsertResourceHandler.NewHandler(resourceSvc, log)
	getAnalytics := getAnalyticsHandler.NewHandler(getAnalyticsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Реестр ресурсов
	api.HandleFunc("/resources", listResources.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources", upsertResource.Handle).Methods(http.MethodPut)

	// Аналитика загрузки
	api.HandleFunc("/analytics/utilisation", getAnalytics.Handle).Methods(http.MethodGet)

	// Чтение бронирований
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Рассмотрение заявки на бронирование
	protected.HandleFunc("/bookings/{bookingId}/review", reviewBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

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
