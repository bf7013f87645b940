package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-EstateBookingService/internal/config"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	appointmentRepo "github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/memory"
	propertyRepo "github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/property"
	stayRequestRepo "github.com/m04kA/SMC-EstateBookingService/internal/infra/storage/stayrequest"
	"github.com/m04kA/SMC-EstateBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-EstateBookingService/pkg/logger"
	"github.com/m04kA/SMC-EstateBookingService/pkg/metrics"
	"github.com/m04kA/SMC-EstateBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// Общие наборы методов postgres и memory репозиториев

type stayRepository interface {
	Create(ctx context.Context, req *domain.StayRequest) (*domain.StayRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.StayRequest, error)
	List(ctx context.Context, filter domain.StayRequestFilter) ([]*domain.StayRequest, error)
	ConfirmedIntervals(ctx context.Context, propertyID int64, window interval.Interval, excludeID int64) ([]interval.Interval, error)
	SetStatus(ctx context.Context, id int64, from, to domain.ReservationStatus, reason *string) error
}

type appointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListActiveByDate(ctx context.Context, resourceID int64, date types.Date) ([]*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	ConfirmedIntervals(ctx context.Context, resourceID int64, window interval.Interval, excludeID int64) ([]interval.Interval, error)
	SetStatus(ctx context.Context, id int64, from, to domain.ReservationStatus, reason *string) error
}

type ruleRepository interface {
	ListByResource(ctx context.Context, resourceID int64) ([]*domain.AvailabilityRule, error)
	ReplaceForResource(ctx context.Context, resourceID int64, rules []*domain.AvailabilityRule) ([]*domain.AvailabilityRule, error)
}

type propertyRepository interface {
	GetConstraints(ctx context.Context, propertyID int64) (*domain.StayConstraints, error)
	UpsertConstraints(ctx context.Context, c *domain.StayConstraints) (*domain.StayConstraints, error)
	ListPeriods(ctx context.Context, propertyID int64, from, to *types.Date) ([]*domain.BlockedPeriod, error)
	CreatePeriod(ctx context.Context, p *domain.BlockedPeriod) (*domain.BlockedPeriod, error)
	DeletePeriod(ctx context.Context, propertyID, periodID int64) error
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// backend репозитории и менеджер транзакций выбранного хранилища
type backend struct {
	stays        stayRepository
	appointments appointmentRepository
	rules        ruleRepository
	properties   propertyRepository
	txManager    transactionManager

	// ping nil для хранилища в памяти
	ping  func(ctx context.Context) error
	close func() error
}

func newMemoryBackend(loc *time.Location) *backend {
	store := memory.NewStore(loc)
	return &backend{
		stays:        store.StayRequests(),
		appointments: store.Appointments(),
		rules:        store.Rules(),
		properties:   store.Properties(),
		txManager:    memory.NewTransactionManager(),
		close:        func() error { return nil },
	}
}

// openPostgres открывает пул соединений и проверяет доступность БД
func openPostgres(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// newPostgresBackend собирает репозитории на БД. С метриками запросы идут через dbmetrics
func newPostgresBackend(
	cfg config.DatabaseConfig,
	loc *time.Location,
	m *metrics.Metrics,
	stopCh <-chan struct{},
	log *logger.Logger,
) (*backend, error) {
	db, err := openPostgres(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	var (
		executor dbmetrics.DBExecutor
		tm       *txmanager.TransactionManager
	)
	if m != nil {
		wrapped := dbmetrics.WrapWithDefault(db, m, stopCh)
		executor = wrapped
		tm = txmanager.NewTransactionManager(wrapped)
		log.Info("Database metrics collection started")
	} else {
		executor = db
		tm = txmanager.NewTransactionManager(dbmetrics.SqlTxWrapper{DB: db})
	}
	tm.WithMaxRetries(cfg.SerializeRetries)

	return &backend{
		stays:        stayRequestRepo.NewRepository(executor),
		appointments: appointmentRepo.NewRepository(executor, loc),
		rules:        availabilityRepo.NewRepository(executor),
		properties:   propertyRepo.NewRepository(executor),
		txManager:    tm,
		ping:         db.PingContext,
		close:        db.Close,
	}, nil
}
