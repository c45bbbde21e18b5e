package toggle_delivery_status_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/toggle_delivery_status"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ToggleDeliveryStatus(ctx context.Context, orderID int64, actor domain.Actor) (*models.DeliveryStatusResponse, error) {
	args := m.Called(ctx, orderID, actor)
	resp, _ := args.Get(0).(*models.DeliveryStatusResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var facilities = domain.Actor{UserID: 2, Role: domain.RoleFacilities}

func patch(svc *mockService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/orders/{orderId}/delivery", toggle_delivery_status.NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, nil)
	req = req.WithContext(middleware.WithActor(req.Context(), facilities))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Toggle(t *testing.T) {
	svc := &mockService{}
	svc.On("ToggleDeliveryStatus", mock.Anything, int64(4), facilities).Return(&models.DeliveryStatusResponse{
		OrderID: 4, BookingID: 9, DeliveryStatus: string(domain.DeliveryDelivered),
	}, nil).Once()

	rec := patch(svc, "/api/v1/orders/4/delivery")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"orderId":4,"bookingId":9,"deliveryStatus":"delivered"}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"order not found", domain.ErrOrderNotFound, http.StatusNotFound},
		{"forbidden", &domain.UnauthorizedError{Reason: "consultant may manage only own bookings"}, http.StatusForbidden},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("ToggleDeliveryStatus", mock.Anything, int64(4), mock.Anything).Return(nil, tt.err).Once()

			assert.Equal(t, tt.status, patch(svc, "/api/v1/orders/4/delivery").Code)
		})
	}
}

func TestHandler_InvalidID(t *testing.T) {
	svc := &mockService{}

	assert.Equal(t, http.StatusBadRequest, patch(svc, "/api/v1/orders/-1/delivery").Code)
	svc.AssertNotCalled(t, "ToggleDeliveryStatus", mock.Anything, mock.Anything, mock.Anything)
}
