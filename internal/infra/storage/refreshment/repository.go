package refreshment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

const table = "refreshment_orders"

var columns = []string{
	"id",
	"booking_id",
	"items",
	"delivery_status",
	"created_at",
	"updated_at",
}

// Repository репозиторий заказов кофе-брейка (1:1 с бронированием)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Save создаёт заказ бронирования или заменяет его позиции.
// Статус доставки существующего заказа не меняется
func (r *Repository) Save(ctx context.Context, order *domain.RefreshmentOrder) (*domain.RefreshmentOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: Save - booking_id=%d: %v", ErrEncodeItems, order.BookingID, err)
	}

	status := order.DeliveryStatus
	if status == "" {
		status = domain.DeliveryPending
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("booking_id", "items", "delivery_status").
		Values(order.BookingID, string(items), status).
		Suffix("ON CONFLICT (booking_id) DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()").
		Suffix("RETURNING id, delivery_status, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&order.DeliveryStatus,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %w", ErrExecQuery, err)
	}

	return order, nil
}

// GetByID получает заказ по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RefreshmentOrder, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByBookingID получает заказ бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.RefreshmentOrder, error) {
	return r.getOne(ctx, "GetByBookingID", squirrel.Eq{"booking_id": bookingID})
}

// GetByBookingIDs получает заказы нескольких бронирований, ключ - ID бронирования
func (r *Repository) GetByBookingIDs(ctx context.Context, bookingIDs []int64) (map[int64]*domain.RefreshmentOrder, error) {
	orders := make(map[int64]*domain.RefreshmentOrder, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return orders, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBookingIDs - scan row: %w", ErrScanRow, err)
		}
		orders[order.BookingID] = order
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBookingIDs - rows error: %w", ErrScanRow, err)
	}

	return orders, nil
}

// DeleteByBookingID удаляет заказ бронирования, если он есть
func (r *Repository) DeleteByBookingID(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - execute delete: %w", ErrExecQuery, err)
	}
	return nil
}

// ToggleDeliveryStatus переключает статус доставки одним запросом
func (r *Repository) ToggleDeliveryStatus(ctx context.Context, id int64) (domain.DeliveryStatus, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	toggle := squirrel.Expr(
		"CASE WHEN delivery_status = ? THEN ? ELSE ? END",
		domain.DeliveryDelivered, domain.DeliveryPending, domain.DeliveryDelivered,
	)

	query, args, err := psqlbuilder.Update(table).
		Set("delivery_status", toggle).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING delivery_status").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: ToggleDeliveryStatus - build update query: %v", ErrBuildQuery, err)
	}

	var status domain.DeliveryStatus
	err = executor.QueryRowContext(ctx, query, args...).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: id=%d", domain.ErrOrderNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("%w: ToggleDeliveryStatus - execute update: %w", ErrExecQuery, err)
	}

	return status, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.RefreshmentOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %v", domain.ErrOrderNotFound, op, where)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan order: %w", ErrScanRow, op, err)
	}

	return order, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.RefreshmentOrder, error) {
	var (
		order domain.RefreshmentOrder
		items []byte
	)

	if err := row.Scan(
		&order.ID,
		&order.BookingID,
		&items,
		&order.DeliveryStatus,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %d: %w", order.ID, err)
	}
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}

	return &order, nil
}
