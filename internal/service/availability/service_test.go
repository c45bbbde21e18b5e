package availability

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/catalog"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/directory"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

type fakeDirectory struct {
	down      bool
	userCalls int
}

func (f *fakeDirectory) GetUser(_ context.Context, id int64) (*directory.User, error) {
	f.userCalls++
	if f.down {
		return nil, directory.ErrInternal
	}
	if id == 201 {
		return &directory.User{ID: 201, FullName: "Ana Souza", Role: "consultant"}, nil
	}
	return nil, directory.ErrUserNotFound
}

func (f *fakeDirectory) GetCustomer(_ context.Context, id int64) (*directory.Customer, error) {
	if f.down {
		return nil, directory.ErrInternal
	}
	return &directory.Customer{ID: id, Name: "Construtora Rio Negro"}, nil
}

type fixture struct {
	svc       *Service
	store     *memory.Store
	directory *fakeDirectory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cat, err := catalog.Parse([]byte("rooms:\n  - code: sala-1\n    name: Sala Amazonas\n  - code: sala-2\nreasons:\n  - code: reuniao\n"))
	require.NoError(t, err)

	store := memory.NewStore()
	dir := &fakeDirectory{}
	svc := NewService(
		store.Bookings(),
		store.Orders(),
		dir,
		catalog.NewStaticStore(cat),
		time.UTC,
		logger.NewWithWriter(io.Discard, zerolog.Disabled),
	)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC) }

	return &fixture{svc: svc, store: store, directory: dir}
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 3, day, hour, minute, 0, 0, time.UTC)
}

func (f *fixture) seed(t *testing.T, room string, start, end time.Time, status domain.BookingStatus, wants bool) *domain.Booking {
	t.Helper()
	ctx := context.Background()

	b, err := f.store.Bookings().Create(ctx, &domain.Booking{
		StoreID:           1,
		ResponsibleID:     201,
		ClientID:          ptr.Ptr(int64(7)),
		Room:              room,
		Reason:            "reuniao",
		Start:             start,
		End:               end,
		Status:            domain.StatusScheduled,
		WantsRefreshments: wants,
		CreatedBy:         201,
	})
	require.NoError(t, err)

	if wants {
		_, err := f.store.Orders().Save(ctx, &domain.RefreshmentOrder{
			BookingID: b.ID,
			Items:     []domain.OrderItem{{Name: "Água", Quantity: 6}},
		})
		require.NoError(t, err)
	}
	if status != domain.StatusScheduled {
		require.NoError(t, f.store.Bookings().UpdateStatus(ctx, b.ID, status))
	}
	return b
}

func ids(bookings []*domain.Booking) []int64 {
	out := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}

func TestService_QueryWindowOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before := f.seed(t, "sala-1", at(10, 8, 0), at(10, 9, 0), domain.StatusScheduled, false)
	inside := f.seed(t, "sala-1", at(10, 9, 30), at(10, 10, 30), domain.StatusScheduled, false)
	straddles := f.seed(t, "sala-2", at(10, 10, 45), at(10, 12, 0), domain.StatusScheduled, false)
	cancelled := f.seed(t, "sala-2", at(10, 9, 0), at(10, 10, 0), domain.StatusCancelled, false)

	window := &models.QueryRequest{Start: at(10, 9, 0), End: at(10, 11, 0)}

	got, err := f.svc.Query(ctx, window)
	require.NoError(t, err)
	assert.Equal(t, []int64{inside.ID, straddles.ID}, ids(got))
	assert.NotContains(t, ids(got), before.ID)

	window.IncludeInactive = true
	got, err = f.svc.Query(ctx, window)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{inside.ID, straddles.ID, cancelled.ID}, ids(got))

	window.Room = ptr.Ptr("sala-1")
	got, err = f.svc.Query(ctx, window)
	require.NoError(t, err)
	assert.Equal(t, []int64{inside.ID}, ids(got))
}

func TestService_QueryRejectsEmptyWindow(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Query(context.Background(), &models.QueryRequest{Start: at(10, 9, 0), End: at(10, 9, 0)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_QueryDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	overnight := f.seed(t, "sala-1", at(9, 23, 0), at(10, 1, 0), domain.StatusScheduled, false)
	morning := f.seed(t, "sala-1", at(10, 9, 0), at(10, 10, 0), domain.StatusScheduled, false)
	f.seed(t, "sala-1", at(11, 0, 0), at(11, 1, 0), domain.StatusScheduled, false)

	got, err := f.svc.QueryDay(ctx, at(10, 15, 0), false)
	require.NoError(t, err)
	assert.Equal(t, []int64{morning.ID}, ids(got))
	assert.NotContains(t, ids(got), overnight.ID)
}

func TestService_QueryPeriodWeek(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	monday := f.seed(t, "sala-1", at(10, 9, 0), at(10, 10, 0), domain.StatusScheduled, false)
	sunday := f.seed(t, "sala-1", at(16, 9, 0), at(16, 10, 0), domain.StatusScheduled, false)
	f.seed(t, "sala-1", at(17, 9, 0), at(17, 10, 0), domain.StatusScheduled, false)

	got, start, end, err := f.svc.QueryPeriod(ctx, PeriodWeek, at(12, 12, 0), false)
	require.NoError(t, err)
	assert.Equal(t, at(10, 0, 0), start)
	assert.Equal(t, at(17, 0, 0), end)
	assert.Equal(t, []int64{monday.ID, sunday.ID}, ids(got))
}

func TestService_QueryAvailabilityNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seed(t, "sala-1", at(10, 9, 0), at(10, 10, 0), domain.StatusScheduled, false)
	f.seed(t, "sala-2", at(10, 11, 0), at(10, 12, 0), domain.StatusScheduled, false)

	resp, err := f.svc.QueryAvailability(ctx, &models.QueryRequest{Start: at(10, 0, 0), End: at(11, 0, 0)})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)

	first := resp.Bookings[0]
	assert.Equal(t, "Ana Souza", first.ResponsibleName)
	assert.Equal(t, "Construtora Rio Negro", first.ClientName)
	assert.Equal(t, "Sala Amazonas", first.RoomName)
	assert.Equal(t, "scheduled", first.Status)
	assert.Equal(t, "sala-2", resp.Bookings[1].RoomName)

	assert.Equal(t, 1, f.directory.userCalls)
}

func TestService_QueryAvailabilityDirectoryDown(t *testing.T) {
	f := newFixture(t)
	f.directory.down = true

	f.seed(t, "sala-1", at(10, 9, 0), at(10, 10, 0), domain.StatusScheduled, false)

	resp, err := f.svc.QueryAvailability(context.Background(), &models.QueryRequest{Start: at(10, 0, 0), End: at(11, 0, 0)})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Empty(t, resp.Bookings[0].ResponsibleName)
	assert.Empty(t, resp.Bookings[0].ClientName)
}

func TestService_TodayOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	late := f.seed(t, "sala-1", at(10, 15, 0), at(10, 16, 0), domain.StatusScheduled, true)
	early := f.seed(t, "sala-2", at(10, 9, 0), at(10, 10, 0), domain.StatusCompleted, true)
	f.seed(t, "sala-1", at(10, 11, 0), at(10, 12, 0), domain.StatusScheduled, false)
	f.seed(t, "sala-2", at(10, 13, 0), at(10, 14, 0), domain.StatusCancelled, true)
	f.seed(t, "sala-1", at(11, 9, 0), at(11, 10, 0), domain.StatusScheduled, true)

	resp, err := f.svc.TodayOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", resp.Date)
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, early.ID, resp.Orders[0].BookingID)
	assert.Equal(t, late.ID, resp.Orders[1].BookingID)
	assert.Equal(t, "pending", resp.Orders[0].DeliveryStatus)
	assert.Equal(t, []models.OrderItem{{Name: "Água", Quantity: 6}}, resp.Orders[0].Items)
}
