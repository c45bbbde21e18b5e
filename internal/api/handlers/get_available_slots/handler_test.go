package get_available_slots_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_available_slots"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_available_slots"
)

var manaus = time.FixedZone("AMT", -4*3600)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailableSlots.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *mockUseCase, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/rooms/{room}/slots", get_available_slots.NewHandler(uc, manaus, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Slots(t *testing.T) {
	uc := &mockUseCase{}
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, manaus)
	busy := int64(7)

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailableSlots.Request) bool {
		return req.Room == "sala-1" && req.Date.Equal(day)
	})).Return(&getAvailableSlots.Response{
		Room:        "sala-1",
		Date:        day,
		SlotMinutes: 60,
		Slots: []domain.RoomSlot{
			{Start: day.Add(8 * time.Hour), End: day.Add(9 * time.Hour)},
			{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour), BookingID: &busy},
		},
	}, nil).Once()

	rec := serve(uc, "/api/v1/rooms/sala-1/slots?date=2025-03-10")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp get_available_slots.AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, 1, resp.FreeCount)
	require.Len(t, resp.Slots, 2)
	assert.True(t, resp.Slots[0].Free)
	assert.False(t, resp.Slots[1].Free)
	assert.Equal(t, &busy, resp.Slots[1].BookingID)
	uc.AssertExpectations(t)
}

func TestHandler_BadDate(t *testing.T) {
	uc := &mockUseCase{}

	assert.Equal(t, http.StatusBadRequest, serve(uc, "/api/v1/rooms/sala-1/slots").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "/api/v1/rooms/sala-1/slots?date=10.03.2025").Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandler_UnknownRoom(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, domain.NewValidationError(domain.FieldError{Field: "room", Kind: domain.KindInvalidEnumValue})).Once()

	rec := serve(uc, "/api/v1/rooms/auditorio/slots?date=2025-03-10")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_enum_value")
}
