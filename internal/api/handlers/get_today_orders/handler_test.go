package get_today_orders_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_today_orders"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) TodayOrders(ctx context.Context) (*models.TodayOrdersResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*models.TodayOrdersResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func get(svc *mockService) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/today", nil)
	rec := httptest.NewRecorder()
	get_today_orders.NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler_Orders(t *testing.T) {
	svc := &mockService{}
	svc.On("TodayOrders", mock.Anything).Return(&models.TodayOrdersResponse{
		Date: "2025-03-10",
		Orders: []models.TodayOrder{{
			BookingID:      9,
			OrderID:        4,
			Room:           "sala-1",
			Items:          []models.OrderItem{{Name: "Café", Quantity: 3}},
			DeliveryStatus: "pending",
		}},
	}, nil).Once()

	rec := get(svc)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"date":"2025-03-10"`)
	assert.Contains(t, rec.Body.String(), `{"name":"Café","quantity":3}`)
	svc.AssertExpectations(t)
}

func TestHandler_Failure(t *testing.T) {
	svc := &mockService{}
	svc.On("TodayOrders", mock.Anything).Return(nil, errors.New("db down")).Once()

	assert.Equal(t, http.StatusInternalServerError, get(svc).Code)
}
