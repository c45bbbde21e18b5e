package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// UseCase use case для получения сетки свободных слотов переговорной
type UseCase struct {
	bookingRepo  BookingRepository
	rooms        RoomCatalog
	config       domain.SlotsConfig
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rooms RoomCatalog,
	config domain.SlotsConfig,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		rooms:        rooms,
		config:       config,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: room=%s, date=%s", req.Room, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.rooms); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата считается в часовом поясе магазинов
	now := uc.timeProvider.Now().In(uc.location)
	day := startOfDay(req.Date, uc.location)

	if err := validateDate(day, startOfDay(now, uc.location), uc.config.HorizonDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Генерируем сетку рабочего дня
	slots := generateSlots(day, uc.config, now)

	// 4. Активные бронирования переговорной в рабочие часы
	open, closeAt := uc.config.Hours.On(day)
	room := req.Room
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		Room:        &room,
		WindowStart: &open,
		WindowEnd:   &closeAt,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: room=%s, error=%v", req.Room, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Помечаем занятые слоты
	markBusy(slots, bookings)

	resp := &Response{
		Room:        req.Room,
		Date:        day,
		SlotMinutes: uc.config.SlotMinutes,
		Slots:       slots,
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d free) for room=%s, date=%s",
		len(slots), resp.FreeCount(), req.Room, day.Format(domain.DateFormat))

	return resp, nil
}
