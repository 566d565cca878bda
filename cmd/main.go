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

	cancelBookingHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/create_booking"
	createExceptionHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/create_exception"
	createPageHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/create_page"
	deleteExceptionHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/delete_exception"
	getAvailabilityHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/get_available_slots"
	getPageHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/get_page"
	getPageBookingsHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/get_page_bookings"
	getPageDetailsHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/get_page_details"
	listExceptionsHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/list_exceptions"
	listPagesHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/list_pages"
	updateAvailabilityHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/update_availability"
	updateBookingStatusHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/update_booking_status"
	updatePageHandler "github.com/v0ronc/CRM-SchedulingService/internal/api/handlers/update_page"
	"github.com/v0ronc/CRM-SchedulingService/internal/api/middleware"
	"github.com/v0ronc/CRM-SchedulingService/internal/config"
	bookingRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/booking"
	pageRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/page"
	scheduleRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/schedule"
	accountServiceClient "github.com/v0ronc/CRM-SchedulingService/internal/integrations/accountservice"
	bookingsService "github.com/v0ronc/CRM-SchedulingService/internal/service/bookings"
	pagesService "github.com/v0ronc/CRM-SchedulingService/internal/service/pages"
	scheduleService "github.com/v0ronc/CRM-SchedulingService/internal/service/schedule"
	createBookingUC "github.com/v0ronc/CRM-SchedulingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/v0ronc/CRM-SchedulingService/internal/usecase/get_available_slots"
	"github.com/v0ronc/CRM-SchedulingService/pkg/dbmetrics"
	"github.com/v0ronc/CRM-SchedulingService/pkg/logger"
	"github.com/v0ronc/CRM-SchedulingService/pkg/metrics"
	"github.com/v0ronc/CRM-SchedulingService/pkg/simpletxmanager"
	"github.com/v0ronc/CRM-SchedulingService/pkg/txmanager"
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

	log.Info("Starting CRM-SchedulingService...")
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

	// Инициализируем клиента AccountService
	accountClient := accountServiceClient.NewClient(
		cfg.AccountService.URL,
		time.Duration(cfg.AccountService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (AccountService=%s timeout=%ds)",
		cfg.AccountService.URL, cfg.AccountService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		pageRepository     *pageRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		bookingRepository  *bookingRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		pageRepository = pageRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		pageRepository = pageRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	pagesSvc := pagesService.NewService(
		pageRepository,
		accountClient,
		txMgr,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		pageRepository,
		scheduleRepository,
		accountClient,
		txMgr,
		log,
	)
	bookingsSvc := bookingsService.NewService(
		pageRepository,
		bookingRepository,
		accountClient,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		pageRepository,
		scheduleRepository,
		bookingRepository,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		pageRepository,
		scheduleRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getPage := getPageHandler.NewHandler(pagesSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createPage := createPageHandler.NewHandler(pagesSvc, log)
	listPages := listPagesHandler.NewHandler(pagesSvc, log)
	getPageDetails := getPageDetailsHandler.NewHandler(pagesSvc, log)
	updatePage := updatePageHandler.NewHandler(pagesSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(scheduleSvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(scheduleSvc, log)
	createException := createExceptionHandler.NewHandler(scheduleSvc, log)
	listExceptions := listExceptionsHandler.NewHandler(scheduleSvc, log)
	deleteException := deleteExceptionHandler.NewHandler(scheduleSvc, log)
	getPageBookings := getPageBookingsHandler.NewHandler(bookingsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)

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

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Страницы бронирования ---
	// Создание страницы
	protected.HandleFunc("/pages", createPage.Handle).Methods(http.MethodPost)

	// Список страниц владельца
	protected.HandleFunc("/pages", listPages.Handle).Methods(http.MethodGet)

	// Получение страницы по ID (маршрут /pages/id/{pageId} не пересекается с публичным /pages/{slug})
	protected.HandleFunc("/pages/id/{pageId}", getPageDetails.Handle).Methods(http.MethodGet)

	// Обновление страницы
	protected.HandleFunc("/pages/{pageId}", updatePage.Handle).Methods(http.MethodPatch)

	// --- Расписание ---
	// Недельное расписание страницы
	protected.HandleFunc("/pages/{pageId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Замена недельного расписания
	protected.HandleFunc("/pages/{pageId}/availability", updateAvailability.Handle).Methods(http.MethodPut)

	// Исключения (выходные дни)
	protected.HandleFunc("/pages/{pageId}/exceptions", createException.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/pages/{pageId}/exceptions", listExceptions.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/exceptions/{exceptionId}", deleteException.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	// Список бронирований страницы
	protected.HandleFunc("/pages/{pageId}/bookings", getPageBookings.Handle).Methods(http.MethodGet)

	// Обновление статуса бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Отмена бронирования владельцем
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Публичная страница бронирования
	api.HandleFunc("/pages/{slug}", getPage.Handle).Methods(http.MethodGet)

	// Доступные слоты на дату
	api.HandleFunc("/pages/{slug}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования посетителем
	api.HandleFunc("/pages/{slug}/bookings", createBooking.Handle).Methods(http.MethodPost)

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
