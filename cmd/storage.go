package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/memory"
	refreshmentRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/refreshment"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

// bookingStore объединение методов, которые нужны сервисам и use cases
type bookingStore interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	ToggleRoomClean(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	LockRoom(ctx context.Context, room string) error
	FindOverlapping(ctx context.Context, room string, start, end time.Time, excludeID *int64) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

type orderStore interface {
	Save(ctx context.Context, order *domain.RefreshmentOrder) (*domain.RefreshmentOrder, error)
	GetByID(ctx context.Context, id int64) (*domain.RefreshmentOrder, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.RefreshmentOrder, error)
	GetByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64]*domain.RefreshmentOrder, error)
	DeleteByBookingID(ctx context.Context, bookingID int64) error
	ToggleDeliveryStatus(ctx context.Context, id int64) (domain.DeliveryStatus, error)
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type storage struct {
	bookings bookingStore
	orders   orderStore
	tx       txManager
	close    func()
}

// openStorage выбирает хранилище по [database].driver
func openStorage(cfg config.DatabaseConfig, collector *metrics.Metrics, log *logger.Logger) (*storage, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn("Using in-memory storage: data is lost on restart")
		store := memory.NewStore()
		return &storage{
			bookings: store.Bookings(),
			orders:   store.Orders(),
			tx:       store.TxManager(),
			close:    func() {},
		}, nil
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	stopCh := make(chan struct{})
	wrapped := dbmetrics.WrapWithDefault(db, collector, stopCh)

	return &storage{
		bookings: bookingRepo.NewRepository(wrapped),
		orders:   refreshmentRepo.NewRepository(wrapped),
		tx:       txmanager.NewTransactionManager(wrapped),
		close: func() {
			close(stopCh)
			if err := db.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		},
	}, nil
}
