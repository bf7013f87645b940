package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	availabilityRulesHandler "github.com/m04kA/SMC-EstateBookingService/internal/api/handlers/availability_rules"
	blockedPeriodsHandler "github.com/m04kA/SMC-EstateBookingService/internal/api/handlers/blocked_periods"
	cancelRequestHandler "github.com/m04kA/SMC-EstateBookingService/internal/api/handlers/cancel_request"
	confirmRequestHandler "github.com/m04kA/SMC-EstateBookingService/internal/api/handlers/confirm_request"
	createStayRequestHandler "github.com/m04kA/SMC-EstateBookingService/internal/api/handlers/create_stay_request"
	createVisitRequestHandler "github.com/m04kA/SMC-EstateBookingService/internal/api/handlers/create_visit_request"
	getRequestHandler "github.com/m04kA/SMC-EstateBookingService/internal/api/handlers/get_request"
	healthHandler "github.com/m04kA/SMC-EstateBookingService/internal/api/handlers/health"
	listRequestsHandler "github.com/m04kA/SMC-EstateBookingService/internal/api/handlers/list_requests"
	listSlotsHandler "github.com/m04kA/SMC-EstateBookingService/internal/api/handlers/list_slots"
	refuseRequestHandler "github.com/m04kA/SMC-EstateBookingService/internal/api/handlers/refuse_request"
	stayConstraintsHandler "github.com/m04kA/SMC-EstateBookingService/internal/api/handlers/stay_constraints"
	validateStayHandler "github.com/m04kA/SMC-EstateBookingService/internal/api/handlers/validate_stay"
	"github.com/m04kA/SMC-EstateBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-EstateBookingService/internal/config"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/slots"
	"github.com/m04kA/SMC-EstateBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-EstateBookingService/internal/service/guard"
	reservationsService "github.com/m04kA/SMC-EstateBookingService/internal/service/reservations"
	scheduleService "github.com/m04kA/SMC-EstateBookingService/internal/service/schedule"
	confirmRequestUC "github.com/m04kA/SMC-EstateBookingService/internal/usecase/confirm_request"
	createStayRequestUC "github.com/m04kA/SMC-EstateBookingService/internal/usecase/create_stay_request"
	createVisitRequestUC "github.com/m04kA/SMC-EstateBookingService/internal/usecase/create_visit_request"
	listSlotsUC "github.com/m04kA/SMC-EstateBookingService/internal/usecase/list_slots"
	validateStayUC "github.com/m04kA/SMC-EstateBookingService/internal/usecase/validate_stay"
	"github.com/m04kA/SMC-EstateBookingService/pkg/locker"
	"github.com/m04kA/SMC-EstateBookingService/pkg/logger"
	"github.com/m04kA/SMC-EstateBookingService/pkg/metrics"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(cfg, *configPath)
		},
	}
}

// resourceLocker блокировка ресурса, общая для guard и создания визитов
type resourceLocker interface {
	Lock(ctx context.Context, key string) (locker.UnlockFunc, error)
}

func serve(cfg *config.Config, configPath string) error {
	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-EstateBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Engine.Location()
	if err != nil {
		return fmt.Errorf("invalid engine timezone: %w", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var store *backend
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store = newMemoryBackend(loc)
		log.Warn("Using in-memory storage, data is lost on restart")
	default:
		store, err = newPostgresBackend(cfg.Database, loc, metricsCollector, stopMetricsCh, log)
		if err != nil {
			return err
		}
	}
	defer store.close()

	checkers := make([]healthHandler.Checker, 0, 2)
	if store.ping != nil {
		checkers = append(checkers, healthHandler.CheckFunc{CheckName: "postgres", Fn: store.ping})
	}

	// Блокировка подтверждений по ресурсу
	var resLocker resourceLocker
	switch cfg.Redis.Locker {
	case config.LockerRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
		}

		resLocker = locker.NewRedisLocker(client, locker.RedisOptions{
			KeyPrefix: cfg.Redis.Prefix,
			TTL:       time.Duration(cfg.Redis.LockTTL) * time.Second,
		})
		checkers = append(checkers, healthHandler.CheckFunc{
			CheckName: "redis",
			Fn:        func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
		log.Info("Using redis locker (addr=%s)", cfg.Redis.Addr)
	default:
		resLocker = locker.NewKeyedMutex()
		log.Info("Using in-process locker")
	}

	// Интеграция с внешней системой
	notifierClient := notifier.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	if notifierClient.Enabled() {
		log.Info("Status change notifications enabled (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	}

	generator := slots.NewGenerator(slots.Options{
		Location:         loc,
		MinNoticeMinutes: cfg.Engine.MinNoticeMinutes,
		Recommend:        slots.EveryMinutes(cfg.Engine.RecommendEveryMinutes),
	})

	stayGuard := guard.NewGuard(domain.KindStay, store.stays, store.txManager, resLocker, metricsCollector, log)
	visitGuard := guard.NewGuard(domain.KindVisit, store.appointments, store.txManager, resLocker, metricsCollector, log)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		store.stays,
		store.appointments,
		store.txManager,
		notifierClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		store.rules,
		store.properties,
		store.txManager,
		log,
	)

	// Инициализируем use cases
	listSlotsUseCase := listSlotsUC.NewUseCase(
		store.rules,
		store.appointments,
		generator,
		metricsCollector,
		cfg.Engine.AdvanceBookingDays,
		log,
	)
	validateStayUseCase := validateStayUC.NewUseCase(store.properties, metricsCollector, log)
	createStayRequestUseCase := createStayRequestUC.NewUseCase(
		store.stays,
		store.properties,
		store.txManager,
		metricsCollector,
		createStayRequestUC.Options{
			Location:           loc,
			AdvanceBookingDays: cfg.Engine.AdvanceBookingDays,
		},
		log,
	)
	createVisitRequestUseCase := createVisitRequestUC.NewUseCase(
		store.appointments,
		store.rules,
		generator,
		resLocker,
		store.txManager,
		cfg.Engine.AdvanceBookingDays,
		log,
	)
	confirmRequestUseCase := confirmRequestUC.NewUseCase(
		store.stays,
		store.appointments,
		store.properties,
		store.rules,
		generator,
		stayGuard,
		visitGuard,
		notifierClient,
		log,
	)

	// Инициализируем handlers
	listSlots := listSlotsHandler.NewHandler(listSlotsUseCase, log)
	validateStay := validateStayHandler.NewHandler(validateStayUseCase, log)
	createStayRequest := createStayRequestHandler.NewHandler(createStayRequestUseCase, log)
	createVisitRequest := createVisitRequestHandler.NewHandler(createVisitRequestUseCase, log)
	getRequest := getRequestHandler.NewHandler(reservationsSvc, log)
	confirmRequest := confirmRequestHandler.NewHandler(confirmRequestUseCase, log)
	refuseRequest := refuseRequestHandler.NewHandler(reservationsSvc, log)
	cancelRequest := cancelRequestHandler.NewHandler(reservationsSvc, log)
	listRequests := listRequestsHandler.NewHandler(reservationsSvc, log)
	availabilityRules := availabilityRulesHandler.NewHandler(scheduleSvc, log)
	blockedPeriods := blockedPeriodsHandler.NewHandler(scheduleSvc, log)
	stayConstraints := stayConstraintsHandler.NewHandler(scheduleSvc, log)
	health := healthHandler.NewHandler(log, checkers...)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// Публичные маршруты ограничиваются по частоте запросов с одного IP
	public := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		public = func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
		log.Info("Rate limiting enabled for public routes (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (сайт)
	// ============================================================

	// Слоты визитов на дату
	api.Handle("/resources/{resourceId}/slots", public(listSlots.Handle)).Methods(http.MethodGet)

	// Проверка дат проживания без создания заявки
	api.Handle("/properties/{propertyId}/stay-validation", public(validateStay.Handle)).Methods(http.MethodGet)

	// Создание заявок
	api.Handle("/stay-requests", public(createStayRequest.Handle)).Methods(http.MethodPost)
	api.Handle("/visit-requests", public(createVisitRequest.Handle)).Methods(http.MethodPost)

	// ============================================================
	// OPERATOR ROUTES
	// ============================================================

	// --- Заявки ---
	const requestPath = "/{kind:stay|visit}-requests/{id:[0-9]+}"
	api.HandleFunc(requestPath, getRequest.Handle).Methods(http.MethodGet)
	api.HandleFunc(requestPath+"/confirm", confirmRequest.Handle).Methods(http.MethodPost)
	api.HandleFunc(requestPath+"/refuse", refuseRequest.Handle).Methods(http.MethodPost)
	api.HandleFunc(requestPath+"/cancel", cancelRequest.Handle).Methods(http.MethodPost)

	api.HandleFunc("/properties/{propertyId}/stay-requests", listRequests.HandleStays).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/visit-requests", listRequests.HandleVisits).Methods(http.MethodGet)

	// --- Расписание и условия ---
	api.HandleFunc("/resources/{resourceId}/availability-rules", availabilityRules.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/availability-rules", availabilityRules.HandlePut).Methods(http.MethodPut)

	api.HandleFunc("/properties/{propertyId}/blocked-periods", blockedPeriods.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/properties/{propertyId}/blocked-periods", blockedPeriods.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/properties/{propertyId}/blocked-periods/{periodId}", blockedPeriods.HandleDelete).Methods(http.MethodDelete)

	api.HandleFunc("/properties/{propertyId}/stay-constraints", stayConstraints.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/properties/{propertyId}/stay-constraints", stayConstraints.HandlePut).Methods(http.MethodPut)

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
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения или падение сервера
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
