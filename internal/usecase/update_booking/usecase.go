package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/events"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/directory"
	"github.com/m04kA/SMC-RoomBookingService/internal/policy"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/conflicts"
)

// UseCase use case для изменения бронирования
type UseCase struct {
	bookingRepo BookingRepository
	orderRepo   OrderRepository
	detector    ConflictDetector
	catalog     domain.Catalog
	directory   DirectoryClient
	txManager   TransactionManager
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	orderRepo OrderRepository,
	detector ConflictDetector,
	catalog domain.Catalog,
	directory DirectoryClient,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		orderRepo:   orderRepo,
		detector:    detector,
		catalog:     catalog,
		directory:   directory,
		txManager:   txManager,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case изменения бронирования.
// Менять время, переговорную и ответственного можно только у scheduled бронирования;
// проверка конфликтов исключает само бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: actor=%d role=%s id=%d room=%s start=%s end=%s",
		req.Actor.UserID, req.Actor.Role, req.ID, req.Room, req.Start, req.End)

	var items []domain.OrderItem
	if req.WantsRefreshments {
		parsed, err := domain.ParseOrderItems(req.Items)
		if err != nil {
			uc.logger.Warn("UpdateBooking: malformed refreshment order for id=%d: %v", req.ID, err)
			return nil, err
		}
		items = parsed
	}

	// Справочник опрашиваем до транзакции, чтобы не держать блокировку на время HTTP-запроса
	current, err := uc.bookingRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, uc.storageError("get booking", req.ID, err)
	}

	var responsible *domain.Staff
	if req.ResponsibleID != current.ResponsibleID && policy.RequiresStaffLookup(req.Actor, req.ResponsibleID) {
		responsible, err = uc.lookupResponsible(ctx, req.ResponsibleID)
		if err != nil {
			return nil, err
		}
	}

	var (
		booking *domain.Booking
		order   *domain.RefreshmentOrder
	)
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.bookingRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if decision := policy.CanManage(req.Actor, existing); !decision.Allowed {
			uc.logger.Warn("UpdateBooking: actor=%d denied for id=%d: %s", req.Actor.UserID, req.ID, decision.Reason)
			return decision.Err()
		}

		if !existing.CanBeModified() {
			uc.logger.Warn("UpdateBooking: id=%d is %s and cannot be modified", req.ID, existing.Status)
			return fmt.Errorf("%w: booking %d is %s", domain.ErrInvalidTransition, existing.ID, existing.Status)
		}

		candidate := &domain.BookingCandidate{
			StoreID:           existing.StoreID,
			ResponsibleID:     req.ResponsibleID,
			ClientID:          req.ClientID,
			SpecifierID:       req.SpecifierID,
			Room:              req.Room,
			Reason:            req.Reason,
			Start:             req.Start,
			End:               req.End,
			GuestCount:        req.GuestCount,
			Status:            existing.Status,
			WantsRefreshments: req.WantsRefreshments,
			Items:             items,
		}
		if err := domain.ValidateBooking(candidate, uc.catalog); err != nil {
			uc.logger.Warn("UpdateBooking: validation failed for id=%d: %v", req.ID, err)
			return err
		}

		if req.ResponsibleID != existing.ResponsibleID {
			if decision := policy.CanReassign(req.Actor, existing, req.ResponsibleID, responsible); !decision.Allowed {
				uc.logger.Warn("UpdateBooking: actor=%d may not reassign id=%d: %s", req.Actor.UserID, req.ID, decision.Reason)
				return decision.Err()
			}
		}

		if err := uc.detector.EnsureFree(txCtx, req.Room, req.Start, req.End, &existing.ID); err != nil {
			return err
		}

		hadRefreshments := existing.WantsRefreshments
		existing.ResponsibleID = req.ResponsibleID
		existing.ClientID = req.ClientID
		existing.SpecifierID = req.SpecifierID
		existing.Room = req.Room
		existing.Reason = req.Reason
		existing.Start = req.Start
		existing.End = req.End
		existing.GuestCount = req.GuestCount
		existing.WantsRefreshments = req.WantsRefreshments

		if err := uc.bookingRepo.Update(txCtx, existing); err != nil {
			return err
		}
		booking = existing

		switch {
		case req.WantsRefreshments:
			saved, err := uc.orderRepo.Save(txCtx, &domain.RefreshmentOrder{
				BookingID:      existing.ID,
				Items:          items,
				DeliveryStatus: domain.DeliveryPending,
			})
			if err != nil {
				return err
			}
			order = saved
		case hadRefreshments:
			if err := uc.orderRepo.DeleteByBookingID(txCtx, existing.ID); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, uc.mapError(req.ID, err)
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d", booking.ID)

	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.BookingUpdated, booking, req.Actor.UserID)); err != nil {
		uc.logger.Warn("UpdateBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	return &Response{Booking: booking, Order: order}, nil
}

func (uc *UseCase) mapError(id int64, err error) error {
	if mapped := conflicts.AsConflict(err); errors.Is(mapped, domain.ErrConflictDetected) {
		uc.metrics.IncBookingConflict()
		uc.logger.Warn("UpdateBooking: id=%d conflicts: %v", id, mapped)
		return mapped
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTransition):
		return err
	}
	return uc.storageError("update booking", id, err)
}

func (uc *UseCase) storageError(op string, id int64, err error) error {
	if errors.Is(err, domain.ErrBookingNotFound) {
		uc.logger.Warn("UpdateBooking: booking id=%d not found", id)
		return err
	}
	uc.logger.Error("UpdateBooking: failed to %s id=%d: %v", op, id, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, op, err)
}

func (uc *UseCase) lookupResponsible(ctx context.Context, userID int64) (*domain.Staff, error) {
	user, err := uc.directory.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			uc.logger.Warn("UpdateBooking: responsible id=%d not found", userID)
			return nil, ErrResponsibleNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get responsible id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get responsible: %v", ErrInternal, err)
	}
	return user.ToStaff(), nil
}
