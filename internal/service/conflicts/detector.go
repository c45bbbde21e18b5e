// Package conflicts проверяет пересечение интервала с активными бронированиями переговорной.
package conflicts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

// ErrInternal возвращается при ошибках хранилища
var ErrInternal = errors.New("conflicts: internal error")

// Repository источник активных бронирований
type Repository interface {
	LockRoom(ctx context.Context, room string) error
	FindOverlapping(ctx context.Context, room string, start, end time.Time, excludeID *int64) ([]*domain.Booking, error)
}

// Detector детектор конфликтов бронирований
type Detector struct {
	repo Repository
}

// NewDetector создает детектор конфликтов
func NewDetector(repo Repository) *Detector {
	return &Detector{repo: repo}
}

// FindConflicts возвращает все активные бронирования room, пересекающиеся с [start, end).
// excludeID исключает редактируемое бронирование
func (d *Detector) FindConflicts(ctx context.Context, room string, start, end time.Time, excludeID *int64) ([]*domain.Booking, error) {
	conflicts, err := d.repo.FindOverlapping(ctx, room, start, end, excludeID)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicts - room=%s: %w", ErrInternal, room, err)
	}
	return conflicts, nil
}

// EnsureFree блокирует переговорную и проверяет, что интервал свободен.
// Вызывается внутри той же транзакции, что и последующая запись
func (d *Detector) EnsureFree(ctx context.Context, room string, start, end time.Time, excludeID *int64) error {
	if err := d.repo.LockRoom(ctx, room); err != nil {
		return fmt.Errorf("%w: EnsureFree - lock room=%s: %w", ErrInternal, room, err)
	}

	conflicts, err := d.FindConflicts(ctx, room, start, end, excludeID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &domain.ConflictError{Conflicts: conflicts}
	}
	return nil
}

// AsConflict приводит проигрыш конкурентной транзакции и срабатывание
// ограничения БД к *domain.ConflictError. Остальные ошибки возвращаются как есть
func AsConflict(err error) error {
	if err == nil {
		return nil
	}

	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		return ce
	}
	if errors.Is(err, txmanager.ErrSerialization) || errors.Is(err, domain.ErrConflictDetected) {
		return &domain.ConflictError{}
	}
	return err
}
