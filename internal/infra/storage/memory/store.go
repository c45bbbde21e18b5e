// Package memory хранит бронирования и заказы в памяти процесса.
// Используется для локального запуска (database.driver = "memory") и в тестах.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Store общее состояние репозиториев
type Store struct {
	mu       sync.RWMutex
	bookings map[int64]*domain.Booking
	orders   map[int64]*domain.RefreshmentOrder

	nextBookingID int64
	nextOrderID   int64

	// txMu сериализует транзакции целиком
	txMu sync.Mutex

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		bookings: make(map[int64]*domain.Booking),
		orders:   make(map[int64]*domain.RefreshmentOrder),
		now:      time.Now,
	}
}

// Bookings репозиторий бронирований поверх хранилища
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{s: s}
}

// Orders репозиторий заказов поверх хранилища
func (s *Store) Orders() *OrderRepository {
	return &OrderRepository{s: s}
}

// TxManager менеджер транзакций поверх хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{s: s}
}

type snapshot struct {
	bookings      map[int64]*domain.Booking
	orders        map[int64]*domain.RefreshmentOrder
	nextBookingID int64
	nextOrderID   int64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		bookings:      make(map[int64]*domain.Booking, len(s.bookings)),
		orders:        make(map[int64]*domain.RefreshmentOrder, len(s.orders)),
		nextBookingID: s.nextBookingID,
		nextOrderID:   s.nextOrderID,
	}
	for id, b := range s.bookings {
		snap.bookings[id] = copyBooking(b)
	}
	for id, o := range s.orders {
		snap.orders[id] = copyOrder(o)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = snap.bookings
	s.orders = snap.orders
	s.nextBookingID = snap.nextBookingID
	s.nextOrderID = snap.nextOrderID
}

type txKey struct{}

// TxManager выполняет функции атомарно: транзакции идут строго по одной,
// при ошибке состояние откатывается к снимку
type TxManager struct {
	s *Store
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable выполняет fn в транзакции
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	snap := m.s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			m.s.restore(snap)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.ClientID != nil {
		v := *b.ClientID
		c.ClientID = &v
	}
	if b.SpecifierID != nil {
		v := *b.SpecifierID
		c.SpecifierID = &v
	}
	return &c
}

func copyOrder(o *domain.RefreshmentOrder) *domain.RefreshmentOrder {
	c := *o
	c.Items = append([]domain.OrderItem(nil), o.Items...)
	if c.Items == nil {
		c.Items = []domain.OrderItem{}
	}
	return &c
}
