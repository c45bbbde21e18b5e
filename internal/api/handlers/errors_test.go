package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

func TestRespondDomainError(t *testing.T) {
	conflict := &domain.ConflictError{Conflicts: []*domain.Booking{{
		ID:    7,
		Room:  "sala-1",
		Start: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
	}}}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		domainErr  bool
	}{
		{"validation", domain.NewValidationError(domain.FieldError{Field: "room", Kind: domain.KindFieldRequired}), http.StatusBadRequest, true},
		{"malformed order", fmt.Errorf("%w: item 0", domain.ErrMalformedOrderPayload), http.StatusBadRequest, true},
		{"unauthorized", &domain.UnauthorizedError{Reason: "booking belongs to another store"}, http.StatusForbidden, true},
		{"booking not found", fmt.Errorf("%w: id=1", domain.ErrBookingNotFound), http.StatusNotFound, true},
		{"order not found", fmt.Errorf("%w: id=1", domain.ErrOrderNotFound), http.StatusNotFound, true},
		{"conflict", conflict, http.StatusConflict, true},
		{"serialization conflict", &domain.ConflictError{}, http.StatusConflict, true},
		{"invalid transition", &domain.TransitionError{From: domain.StatusCompleted, To: domain.StatusScheduled}, http.StatusConflict, true},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.domainErr, handlers.IsDomainError(tt.err))

			rec := httptest.NewRecorder()
			handlers.RespondDomainError(rec, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestRespondDomainError_ConflictListsBookings(t *testing.T) {
	err := &domain.ConflictError{Conflicts: []*domain.Booking{{
		ID:    7,
		Room:  "sala-1",
		Start: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
	}}}

	rec := httptest.NewRecorder()
	handlers.RespondDomainError(rec, err)

	var body struct {
		Error   string                 `json:"error"`
		Details []handlers.ConflictDTO `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Details, 1)
	assert.Equal(t, int64(7), body.Details[0].ID)
	assert.Equal(t, "sala-1", body.Details[0].Room)
	assert.True(t, body.Details[0].End.Equal(err.Conflicts[0].End))
}

func TestRespondDomainError_ValidationFields(t *testing.T) {
	err := domain.NewValidationError(
		domain.FieldError{Field: "room", Kind: domain.KindInvalidEnumValue},
		domain.FieldError{Field: "end", Kind: domain.KindInvalidInterval},
	)

	rec := httptest.NewRecorder()
	handlers.RespondDomainError(rec, err)

	var body struct {
		Details []handlers.FieldErrorDTO `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []handlers.FieldErrorDTO{
		{Field: "room", Kind: "invalid_enum_value"},
		{Field: "end", Kind: "invalid_interval"},
	}, body.Details)
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Room string `json:"room"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Body = http.NoBody
	assert.ErrorIs(t, handlers.DecodeJSON(req, &v), handlers.ErrEmptyBody)

	req = httptest.NewRequest(http.MethodPost, "/", jsonBody(`{"room": "sala-1", "extra": 1}`))
	assert.Error(t, handlers.DecodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", jsonBody(`{"room": "sala-1"}`))
	require.NoError(t, handlers.DecodeJSON(req, &v))
	assert.Equal(t, "sala-1", v.Room)
}
