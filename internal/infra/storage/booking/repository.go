package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"store_id",
	"responsible_id",
	"client_id",
	"specifier_id",
	"room",
	"start_at",
	"end_at",
	"guest_count",
	"reason",
	"status",
	"room_clean",
	"wants_refreshments",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований переговорных
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование.
// Нарушение exclusion constraint (параллельная вставка пересекающегося интервала)
// возвращается как domain.ErrConflictDetected
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"store_id",
			"responsible_id",
			"client_id",
			"specifier_id",
			"room",
			"start_at",
			"end_at",
			"guest_count",
			"reason",
			"status",
			"room_clean",
			"wants_refreshments",
			"created_by",
		).
		Values(
			b.StoreID,
			b.ResponsibleID,
			b.ClientID,
			b.SpecifierID,
			b.Room,
			b.Start,
			b.End,
			b.GuestCount,
			b.Reason,
			b.Status,
			b.RoomClean,
			b.WantsRefreshments,
			b.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, wrapWriteError("Create", err)
	}

	return b, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", domain.ErrBookingNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return b, nil
}

// Update сохраняет изменяемые поля бронирования.
// store_id и created_by не меняются никогда
func (r *Repository) Update(ctx context.Context, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("responsible_id", b.ResponsibleID).
		Set("client_id", b.ClientID).
		Set("specifier_id", b.SpecifierID).
		Set("room", b.Room).
		Set("start_at", b.Start).
		Set("end_at", b.End).
		Set("guest_count", b.GuestCount).
		Set("reason", b.Reason).
		Set("wants_refreshments", b.WantsRefreshments).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: id=%d", domain.ErrBookingNotFound, b.ID)
	}
	if err != nil {
		return wrapWriteError("Update", err)
	}

	return nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", id, query, args)
}

// ToggleRoomClean инвертирует флаг уборки одним запросом и возвращает новое значение
func (r *Repository) ToggleRoomClean(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("room_clean", squirrel.Expr("NOT room_clean")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING room_clean").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ToggleRoomClean - build update query: %v", ErrBuildQuery, err)
	}

	var clean bool
	err = executor.QueryRowContext(ctx, query, args...).Scan(&clean)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%w: id=%d", domain.ErrBookingNotFound, id)
	}
	if err != nil {
		return false, fmt.Errorf("%w: ToggleRoomClean - execute update: %w", ErrExecQuery, err)
	}

	return clean, nil
}

// Delete удаляет бронирование. Заказ удаляется каскадно (FK ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", id, query, args)
}

// LockRoom берёт транзакционную advisory-блокировку переговорной.
// Писатели в одну переговорную выстраиваются в очередь до конца транзакции
func (r *Repository) LockRoom(ctx context.Context, room string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockRoom - must be called inside a transaction", ErrLockRoom)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", room); err != nil {
		return fmt.Errorf("%w: LockRoom - room=%s: %w", ErrLockRoom, room, err)
	}
	return nil
}

// FindOverlapping возвращает все активные бронирования переговорной,
// пересекающиеся с [start, end). excludeID исключает само редактируемое бронирование
func (r *Repository) FindOverlapping(ctx context.Context, room string, start, end time.Time, excludeID *int64) ([]*domain.Booking, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"room": room}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start}).
		OrderBy("start_at ASC")

	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeID})
	}
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.query(ctx, "FindOverlapping", builder)
}

// List возвращает бронирования по фильтру, упорядоченные по началу
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return r.query(ctx, "List", listQuery(filter))
}

func listQuery(filter domain.BookingsFilter) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(columns...).From(table)

	if filter.Room != nil {
		builder = builder.Where(squirrel.Eq{"room": *filter.Room})
	}

	// Пересечение с окном по полуоткрытым интервалам
	if filter.WindowStart != nil {
		builder = builder.Where(squirrel.Gt{"end_at": *filter.WindowStart})
	}
	if filter.WindowEnd != nil {
		builder = builder.Where(squirrel.Lt{"start_at": *filter.WindowEnd})
	}

	if filter.StartFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"start_at": *filter.StartFrom})
	}
	if filter.StartBefore != nil {
		builder = builder.Where(squirrel.Lt{"start_at": *filter.StartBefore})
	}

	if filter.WantsRefreshments != nil {
		builder = builder.Where(squirrel.Eq{"wants_refreshments": *filter.WantsRefreshments})
	}

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		builder = builder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	return builder.OrderBy("start_at ASC", "id ASC")
}

func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return bookings, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op string, id int64, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", domain.ErrBookingNotFound, id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                     domain.Booking
		clientID, specifierID sql.NullInt64
		createdAt, updatedAt  sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.StoreID,
		&b.ResponsibleID,
		&clientID,
		&specifierID,
		&b.Room,
		&b.Start,
		&b.End,
		&b.GuestCount,
		&b.Reason,
		&b.Status,
		&b.RoomClean,
		&b.WantsRefreshments,
		&b.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if clientID.Valid {
		b.ClientID = &clientID.Int64
	}
	if specifierID.Valid {
		b.SpecifierID = &specifierID.Int64
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// wrapWriteError сохраняет исходную ошибку драйвера в цепочке:
// txmanager распознаёт по ней 40001, а 23P01 становится конфликтом бронирования
func wrapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeExclusionViolation {
		return fmt.Errorf("%w: %s - %s", domain.ErrConflictDetected, op, pqErr.Constraint)
	}
	return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
