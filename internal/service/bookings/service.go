package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/events"
	"github.com/m04kA/SMC-RoomBookingService/internal/policy"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

// Service сервис жизненного цикла бронирований: просмотр, удаление,
// смена статуса и операционные флаги
type Service struct {
	bookingRepo BookingRepository
	orderRepo   OrderRepository
	txManager   TransactionManager
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	orderRepo OrderRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		orderRepo:   orderRepo,
		txManager:   txManager,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование вместе с заказом.
// Доступно тем, кто может управлять бронированием
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d", id, actor.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError("GetByID", id, err)
	}

	if decision := policy.CanManage(actor, booking); !decision.Allowed {
		s.logger.Warn("GetByID: actor=%d denied for booking id=%d: %s", actor.UserID, id, decision.Reason)
		return nil, decision.Err()
	}

	var order *domain.RefreshmentOrder
	if booking.WantsRefreshments {
		order, err = s.orderRepo.GetByBookingID(ctx, id)
		if err != nil && !errors.Is(err, domain.ErrOrderNotFound) {
			return nil, s.repoError("GetByID", id, err)
		}
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, order), nil
}

// Delete удаляет бронирование; заказ удаляется вместе с ним
func (s *Service) Delete(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("Delete: deleting booking id=%d by actor=%d", id, actor.UserID)

	var deleted *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if decision := policy.CanManage(actor, booking); !decision.Allowed {
			s.logger.Warn("Delete: actor=%d denied for booking id=%d: %s", actor.UserID, id, decision.Reason)
			return decision.Err()
		}

		if err := s.bookingRepo.Delete(txCtx, id); err != nil {
			return err
		}
		deleted = booking
		return nil
	})
	if err != nil {
		return s.repoError("Delete", id, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	s.publish(ctx, events.NewBookingEvent(events.BookingDeleted, deleted, actor.UserID))
	return nil
}

// ChangeStatus переводит бронирование в новый статус.
// Права проверяются до проверки перехода: чужому бронированию отказывают
// независимо от его статуса
func (s *Service) ChangeStatus(ctx context.Context, id int64, req *models.ChangeStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("ChangeStatus: booking id=%d to status=%s by actor=%d", id, req.Status, req.Actor.UserID)

	var (
		booking *domain.Booking
		from    domain.BookingStatus
	)
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if decision := policy.CanManage(req.Actor, b); !decision.Allowed {
			s.logger.Warn("ChangeStatus: actor=%d denied for booking id=%d: %s", req.Actor.UserID, id, decision.Reason)
			return decision.Err()
		}

		from = b.Status
		if err := domain.Transition(b, domain.BookingStatus(req.Status)); err != nil {
			s.logger.Warn("ChangeStatus: booking id=%d: %v", id, err)
			return err
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, b.Status); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, s.repoError("ChangeStatus", id, err)
	}

	s.metrics.IncStatusTransition(from.String(), booking.Status.String())
	s.logger.Info("ChangeStatus: booking id=%d moved %s -> %s", id, from, booking.Status)
	s.publish(ctx, events.NewBookingEvent(events.BookingStatusChanged, booking, req.Actor.UserID))

	return models.FromDomainBooking(booking, nil), nil
}

// ToggleRoomClean переключает флаг уборки переговорной в любом статусе бронирования
func (s *Service) ToggleRoomClean(ctx context.Context, id int64, actor domain.Actor) (*models.RoomCleanResponse, error) {
	s.logger.Info("ToggleRoomClean: booking id=%d by actor=%d", id, actor.UserID)

	var booking *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if decision := policy.CanManage(actor, b); !decision.Allowed {
			s.logger.Warn("ToggleRoomClean: actor=%d denied for booking id=%d: %s", actor.UserID, id, decision.Reason)
			return decision.Err()
		}

		clean, err := s.bookingRepo.ToggleRoomClean(txCtx, id)
		if err != nil {
			return err
		}
		b.RoomClean = clean
		booking = b
		return nil
	})
	if err != nil {
		return nil, s.repoError("ToggleRoomClean", id, err)
	}

	s.logger.Info("ToggleRoomClean: booking id=%d room_clean=%t", id, booking.RoomClean)

	event := events.NewBookingEvent(events.RoomCleanToggled, booking, actor.UserID)
	event.RoomClean = ptr.Ptr(booking.RoomClean)
	s.publish(ctx, event)

	return &models.RoomCleanResponse{BookingID: id, RoomClean: booking.RoomClean}, nil
}

// ToggleDeliveryStatus переключает статус доставки заказа.
// Права проверяются по бронированию, к которому привязан заказ
func (s *Service) ToggleDeliveryStatus(ctx context.Context, orderID int64, actor domain.Actor) (*models.DeliveryStatusResponse, error) {
	s.logger.Info("ToggleDeliveryStatus: order id=%d by actor=%d", orderID, actor.UserID)

	var (
		booking *domain.Booking
		status  domain.DeliveryStatus
	)
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.GetByID(txCtx, orderID)
		if err != nil {
			return err
		}

		b, err := s.bookingRepo.GetByID(txCtx, order.BookingID)
		if err != nil {
			return err
		}

		if decision := policy.CanManage(actor, b); !decision.Allowed {
			s.logger.Warn("ToggleDeliveryStatus: actor=%d denied for order id=%d: %s", actor.UserID, orderID, decision.Reason)
			return decision.Err()
		}

		status, err = s.orderRepo.ToggleDeliveryStatus(txCtx, orderID)
		if err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, s.repoError("ToggleDeliveryStatus", orderID, err)
	}

	s.logger.Info("ToggleDeliveryStatus: order id=%d delivery_status=%s", orderID, status)

	event := events.NewBookingEvent(events.DeliveryToggled, booking, actor.UserID)
	event.DeliveryStatus = ptr.Ptr(string(status))
	s.publish(ctx, event)

	return &models.DeliveryStatusResponse{
		OrderID:        orderID,
		BookingID:      booking.ID,
		DeliveryStatus: string(status),
	}, nil
}

// Вспомогательные методы

// repoError пропускает доменные ошибки как есть, остальные оборачивает в ErrInternal
func (s *Service) repoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrBookingNotFound), errors.Is(err, domain.ErrOrderNotFound):
		s.logger.Warn("%s: id=%d not found", op, id)
		return err
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrValidation):
		return err
	}

	s.logger.Error("%s: repository error for id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) publish(ctx context.Context, event *events.BookingEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish %s for booking id=%d: %v", event.Type, event.BookingID, err)
	}
}
