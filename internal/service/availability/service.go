// Package availability отвечает на вопросы календаря: что занято в окне,
// за день, неделю или месяц, и какие кофе-брейки нужно подать сегодня.
// Авторизация на этом уровне не применяется.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/directory"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

// Service сервис календаря
type Service struct {
	bookingRepo BookingRepository
	orderRepo   OrderRepository
	directory   DirectoryClient
	rooms       RoomCatalog
	location    *time.Location
	logger      Logger

	now func() time.Time
}

// NewService создает сервис календаря. location задаёт границы календарных дат
func NewService(
	bookingRepo BookingRepository,
	orderRepo OrderRepository,
	directory DirectoryClient,
	rooms RoomCatalog,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		orderRepo:   orderRepo,
		directory:   directory,
		rooms:       rooms,
		location:    location,
		logger:      logger,
		now:         time.Now,
	}
}

// Location часовой пояс календаря
func (s *Service) Location() *time.Location {
	return s.location
}

// Query возвращает бронирования, пересекающиеся с окном [start, end)
func (s *Service) Query(ctx context.Context, req *models.QueryRequest) ([]*domain.Booking, error) {
	if !req.Start.Before(req.End) {
		return nil, domain.NewValidationError(domain.FieldError{
			Field:   "end",
			Kind:    domain.KindInvalidInterval,
			Message: "end must be after start",
		})
	}

	filter := domain.BookingsFilter{
		Room:            req.Room,
		WindowStart:     ptr.Ptr(req.Start),
		WindowEnd:       ptr.Ptr(req.End),
		IncludeInactive: req.IncludeInactive,
	}
	return s.list(ctx, "Query", filter)
}

// QueryDay возвращает бронирования, начинающиеся в календарную дату date
func (s *Service) QueryDay(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Booking, error) {
	bookings, _, _, err := s.QueryPeriod(ctx, PeriodDay, date, includeInactive)
	return bookings, err
}

// QueryPeriod возвращает бронирования, начинающиеся в периоде, содержащем ref,
// и границы этого периода
func (s *Service) QueryPeriod(ctx context.Context, period Period, ref time.Time, includeInactive bool) ([]*domain.Booking, time.Time, time.Time, error) {
	start, end, err := PeriodBounds(period, ref, s.location)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}

	filter := domain.BookingsFilter{
		StartFrom:       ptr.Ptr(start),
		StartBefore:     ptr.Ptr(end),
		IncludeInactive: includeInactive,
	}
	bookings, err := s.list(ctx, "QueryPeriod", filter)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}

	s.logger.Info("QueryPeriod: period=%s from=%s to=%s found=%d", period, start.Format(time.RFC3339), end.Format(time.RFC3339), len(bookings))
	return bookings, start, end, nil
}

// QueryAvailability возвращает сводки для календаря с именами ответственного и клиента.
// Недоступность справочника не ломает выборку: имя остаётся пустым
func (s *Service) QueryAvailability(ctx context.Context, req *models.QueryRequest) (*models.AvailabilityResponse, error) {
	bookings, err := s.Query(ctx, req)
	if err != nil {
		return nil, err
	}

	return &models.AvailabilityResponse{
		Start:    req.Start,
		End:      req.End,
		Bookings: s.Summarize(ctx, bookings),
	}, nil
}

// Summarize собирает сводки календаря; каждое имя запрашивается один раз
func (s *Service) Summarize(ctx context.Context, bookings []*domain.Booking) []models.BookingSummary {
	users := make(map[int64]string)
	customers := make(map[int64]string)

	summaries := make([]models.BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		summary := models.BookingSummary{
			ID:            b.ID,
			Room:          b.Room,
			RoomName:      s.rooms.RoomName(b.Room),
			Start:         b.Start,
			End:           b.End,
			ResponsibleID: b.ResponsibleID,
			ClientID:      b.ClientID,
			Reason:        b.Reason,
			Status:        string(b.Status),
		}

		name, ok := users[b.ResponsibleID]
		if !ok {
			name = s.userName(ctx, b.ResponsibleID)
			users[b.ResponsibleID] = name
		}
		summary.ResponsibleName = name

		if b.ClientID != nil {
			name, ok := customers[*b.ClientID]
			if !ok {
				name = s.customerName(ctx, *b.ClientID)
				customers[*b.ClientID] = name
			}
			summary.ClientName = name
		}

		summaries = append(summaries, summary)
	}
	return summaries
}

// TodayOrders возвращает сегодняшние бронирования с кофе-брейком по времени начала
func (s *Service) TodayOrders(ctx context.Context) (*models.TodayOrdersResponse, error) {
	start, end, err := PeriodBounds(PeriodDay, s.now(), s.location)
	if err != nil {
		return nil, err
	}

	filter := domain.BookingsFilter{
		StartFrom:         ptr.Ptr(start),
		StartBefore:       ptr.Ptr(end),
		WantsRefreshments: ptr.Ptr(true),
	}
	bookings, err := s.list(ctx, "TodayOrders", filter)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}

	orders, err := s.orderRepo.GetByBookingIDs(ctx, ids)
	if err != nil {
		s.logger.Error("TodayOrders: failed to get orders: %v", err)
		return nil, fmt.Errorf("%w: TodayOrders - repository error: %v", ErrInternal, err)
	}

	resp := &models.TodayOrdersResponse{
		Date:   start.Format(domain.DateFormat),
		Orders: make([]models.TodayOrder, 0, len(orders)),
	}
	for _, b := range bookings {
		order, ok := orders[b.ID]
		if !ok {
			s.logger.Warn("TodayOrders: booking id=%d wants refreshments but has no order", b.ID)
			continue
		}
		resp.Orders = append(resp.Orders, models.FromDomainOrder(b, order))
	}

	s.logger.Info("TodayOrders: date=%s orders=%d", resp.Date, len(resp.Orders))
	return resp, nil
}

// Вспомогательные методы

func (s *Service) list(ctx context.Context, op string, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return bookings, nil
}

func (s *Service) userName(ctx context.Context, id int64) string {
	user, err := s.directory.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			s.logger.Warn("Summarize: user id=%d not found in directory", id)
		} else {
			s.logger.Error("Summarize: failed to get user id=%d: %v", id, err)
		}
		return ""
	}
	return user.FullName
}

func (s *Service) customerName(ctx context.Context, id int64) string {
	customer, err := s.directory.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, directory.ErrCustomerNotFound) {
			s.logger.Warn("Summarize: customer id=%d not found in directory", id)
		} else {
			s.logger.Error("Summarize: failed to get customer id=%d: %v", id, err)
		}
		return ""
	}
	return customer.Name
}
