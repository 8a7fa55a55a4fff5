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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/intunemindset/IM-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/intunemindset/IM-BookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/intunemindset/IM-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/intunemindset/IM-BookingService/internal/api/handlers/get_booking"
	getPractitionerBookingsHandler "github.com/intunemindset/IM-BookingService/internal/api/handlers/get_practitioner_bookings"
	paymentReturnHandler "github.com/intunemindset/IM-BookingService/internal/api/handlers/payment_return"
	"github.com/intunemindset/IM-BookingService/internal/api/middleware"
	"github.com/intunemindset/IM-BookingService/internal/config"
	bookingRepo "github.com/intunemindset/IM-BookingService/internal/infra/storage/booking"
	"github.com/intunemindset/IM-BookingService/internal/integrations/paypal"
	bookingsService "github.com/intunemindset/IM-BookingService/internal/service/bookings"
	confirmBookingUC "github.com/intunemindset/IM-BookingService/internal/usecase/confirm_booking"
	getAvailabilityUC "github.com/intunemindset/IM-BookingService/internal/usecase/get_availability"
	"github.com/intunemindset/IM-BookingService/pkg/dbmetrics"
	"github.com/intunemindset/IM-BookingService/pkg/logger"
	"github.com/intunemindset/IM-BookingService/pkg/metrics"
	"github.com/intunemindset/IM-BookingService/pkg/simpletxmanager"
	"github.com/intunemindset/IM-BookingService/pkg/txmanager"
)

// paypalCredentials отдает креденшелы процессора на момент вызова
// Отсутствие креденшелов - валидное состояние (fallback-подтверждение)
type paypalCredentials struct {
	cfg *config.Config
}

func (p paypalCredentials) Credentials(_ context.Context) paypal.Credentials {
	return paypal.Credentials{
		ClientID: p.cfg.PayPalClientID(),
		Secret:   p.cfg.PayPalSecret(),
		Mode:     p.cfg.PayPalMode(),
	}
}

func main() {
	// Переменные окружения из .env (если файл есть)
	_ = godotenv.Load()

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

	log.Info("Starting IM-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона практики: выходные и прошедшие даты определяются в ней
	location, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Server.Timezone, err)
	}

	practitioners := cfg.DomainPractitioners()
	log.Info("Loaded %d practitioner(s), timezone=%s", len(practitioners), cfg.Server.Timezone)

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

	// Инициализируем платежный клиент
	paypalClient := paypal.NewClient(
		paypalCredentials{cfg: cfg},
		time.Duration(cfg.PayPal.Timeout)*time.Second,
		cfg.Server.PublicURL,
		cfg.PayPal.BrandName,
		log,
	)
	log.Info("Payment client initialized (mode=%s, timeout=%ds)", cfg.PayPalMode(), cfg.PayPal.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var bookingRepository *bookingRepo.Repository

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		practitioners,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		practitioners,
		location,
		log,
	)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		paypalClient,
		practitioners,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(confirmBookingUseCase, log)
	paymentReturn := paymentReturnHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getPractitionerBookings := getPractitionerBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность слотов на дату
	api.HandleFunc("/practitioners/{practitionerId}/available-slots",
		getAvailability.Handle).Methods(http.MethodGet)

	// Создание записи и запуск оплаты
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Возврат от платежного процессора (booking_success / booking_cancelled)
	api.HandleFunc("/payments/return", paymentReturn.Handle).Methods(http.MethodGet)

	// ============================================================
	// OPERATOR ROUTES (требуют X-Admin-Token header)
	// ============================================================

	operator := api.PathPrefix("").Subrouter()
	operator.Use(middleware.AdminAuth(cfg.Server.AdminToken))

	// Получение записи по ID
	operator.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Записи практикующего с фильтрацией
	operator.HandleFunc("/practitioners/{practitionerId}/bookings",
		getPractitionerBookings.Handle).Methods(http.MethodGet)

	// Отмена записи (освобождает ячейку)
	operator.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

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
