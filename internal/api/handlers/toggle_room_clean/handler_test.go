package toggle_room_clean_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/toggle_room_clean"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ToggleRoomClean(ctx context.Context, id int64, actor domain.Actor) (*models.RoomCleanResponse, error) {
	args := m.Called(ctx, id, actor)
	resp, _ := args.Get(0).(*models.RoomCleanResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var facilities = domain.Actor{UserID: 2, Role: domain.RoleFacilities}

func patch(svc *mockService, path string, withActor bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/room-clean", toggle_room_clean.NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, nil)
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), facilities))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Toggle(t *testing.T) {
	svc := &mockService{}
	svc.On("ToggleRoomClean", mock.Anything, int64(9), facilities).
		Return(&models.RoomCleanResponse{BookingID: 9, RoomClean: true}, nil).Once()

	rec := patch(svc, "/api/v1/bookings/9/room-clean", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"bookingId":9,"roomClean":true}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", domain.ErrBookingNotFound, http.StatusNotFound},
		{"forbidden", &domain.UnauthorizedError{Reason: "role is not allowed to manage bookings"}, http.StatusForbidden},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("ToggleRoomClean", mock.Anything, int64(9), mock.Anything).Return(nil, tt.err).Once()

			assert.Equal(t, tt.status, patch(svc, "/api/v1/bookings/9/room-clean", true).Code)
		})
	}
}

func TestHandler_BadInput(t *testing.T) {
	svc := &mockService{}

	assert.Equal(t, http.StatusBadRequest, patch(svc, "/api/v1/bookings/x/room-clean", true).Code)
	assert.Equal(t, http.StatusUnauthorized, patch(svc, "/api/v1/bookings/9/room-clean", false).Code)
	svc.AssertNotCalled(t, "ToggleRoomClean", mock.Anything, mock.Anything, mock.Anything)
}
