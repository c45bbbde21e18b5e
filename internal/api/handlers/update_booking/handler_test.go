package update_booking_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	updateBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/update_booking"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *updateBooking.Request) (*updateBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*updateBooking.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const body = `{
	"responsibleId": 201,
	"room": "sala-2",
	"reason": "reuniao",
	"start": "2025-03-10T14:00:00-04:00",
	"end": "2025-03-10T15:00:00-04:00",
	"guestCount": 4
}`

func router(uc *mockUseCase) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}", update_booking.NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPut)
	return r
}

func put(h http.Handler, path, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(payload))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 201, Role: domain.RoleConsultant}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Updated(t *testing.T) {
	uc := &mockUseCase{}
	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *updateBooking.Request) bool {
		return req.ID == 7 && req.Room == "sala-2" && req.Actor.UserID == 201 && req.Start.Equal(start)
	})).Return(&updateBooking.Response{Booking: &domain.Booking{
		ID: 7, Room: "sala-2", Status: domain.StatusScheduled, Start: start, End: start.Add(time.Hour),
	}}, nil).Once()

	rec := put(router(uc), "/api/v1/bookings/7", body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"room":"sala-2"`)
	uc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"conflict", &domain.ConflictError{Conflicts: []*domain.Booking{{ID: 3, Room: "sala-2"}}}, http.StatusConflict},
		{"not scheduled", &domain.TransitionError{From: domain.StatusCancelled, To: domain.StatusScheduled}, http.StatusConflict},
		{"forbidden", &domain.UnauthorizedError{Reason: "consultant may manage only own bookings"}, http.StatusForbidden},
		{"not found", domain.ErrBookingNotFound, http.StatusNotFound},
		{"responsible not found", updateBooking.ErrResponsibleNotFound, http.StatusBadRequest},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := put(router(uc), "/api/v1/bookings/7", body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandler_BadInput(t *testing.T) {
	uc := &mockUseCase{}

	assert.Equal(t, http.StatusBadRequest, put(router(uc), "/api/v1/bookings/0", body).Code)
	assert.Equal(t, http.StatusBadRequest, put(router(uc), "/api/v1/bookings/7", `{"storeId": 2}`).Code)
	assert.Equal(t, http.StatusBadRequest, put(router(uc), "/api/v1/bookings/7", ``).Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
