package create_booking

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

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и запись выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%d role=%s room=%s start=%s end=%s responsible=%d",
		req.Actor.UserID, req.Actor.Role, req.Room, req.Start, req.End, req.ResponsibleID)

	// 1. Нормализуем заказ кофе-брейка
	var items []domain.OrderItem
	if req.WantsRefreshments {
		parsed, err := domain.ParseOrderItems(req.Items)
		if err != nil {
			uc.logger.Warn("CreateBooking: malformed refreshment order: %v", err)
			return nil, err
		}
		items = parsed
	}

	// 2. Валидация полей
	candidate := &domain.BookingCandidate{
		StoreID:           req.StoreID,
		ResponsibleID:     req.ResponsibleID,
		ClientID:          req.ClientID,
		SpecifierID:       req.SpecifierID,
		Room:              req.Room,
		Reason:            req.Reason,
		Start:             req.Start,
		End:               req.End,
		GuestCount:        req.GuestCount,
		Status:            domain.StatusScheduled,
		WantsRefreshments: req.WantsRefreshments,
		Items:             items,
	}
	if err := domain.ValidateBooking(candidate, uc.catalog); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	booking := &domain.Booking{
		StoreID:           candidate.StoreID,
		ResponsibleID:     candidate.ResponsibleID,
		ClientID:          candidate.ClientID,
		SpecifierID:       candidate.SpecifierID,
		Room:              candidate.Room,
		Start:             candidate.Start,
		End:               candidate.End,
		GuestCount:        candidate.GuestCount,
		Reason:            candidate.Reason,
		Status:            domain.StatusScheduled,
		WantsRefreshments: candidate.WantsRefreshments,
		CreatedBy:         req.Actor.UserID,
	}

	// 3. Проверка прав
	var responsible *domain.Staff
	if policy.RequiresStaffLookup(req.Actor, booking.ResponsibleID) {
		staff, err := uc.lookupResponsible(ctx, booking.ResponsibleID)
		if err != nil {
			return nil, err
		}
		responsible = staff
	}

	if decision := policy.CanCreate(req.Actor, booking, responsible); !decision.Allowed {
		uc.logger.Warn("CreateBooking: actor=%d denied: %s", req.Actor.UserID, decision.Reason)
		return nil, decision.Err()
	}

	// 4. Проверка конфликтов и запись в одной транзакции
	var order *domain.RefreshmentOrder
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.detector.EnsureFree(txCtx, booking.Room, booking.Start, booking.End, nil); err != nil {
			return err
		}

		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			return err
		}

		if booking.WantsRefreshments {
			saved, err := uc.orderRepo.Save(txCtx, &domain.RefreshmentOrder{
				BookingID:      booking.ID,
				Items:          items,
				DeliveryStatus: domain.DeliveryPending,
			})
			if err != nil {
				return err
			}
			order = saved
		}

		return nil
	})

	if err != nil {
		if mapped := conflicts.AsConflict(err); errors.Is(mapped, domain.ErrConflictDetected) {
			uc.metrics.IncBookingConflict()
			uc.logger.Warn("CreateBooking: room=%s is busy: %v", booking.Room, mapped)
			return nil, mapped
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d", booking.ID)

	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.BookingCreated, booking, req.Actor.UserID)); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	return &Response{Booking: booking, Order: order}, nil
}

func (uc *UseCase) lookupResponsible(ctx context.Context, userID int64) (*domain.Staff, error) {
	user, err := uc.directory.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: responsible id=%d not found", userID)
			return nil, ErrResponsibleNotFound
		}
		uc.logger.Error("CreateBooking: failed to get responsible id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get responsible: %v", ErrInternal, err)
	}
	return user.ToStaff(), nil
}
