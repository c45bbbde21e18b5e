package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

type stubCatalog struct{}

func (stubCatalog) HasRoom(code string) bool   { return code == "sala-1" || code == "sala-2" }
func (stubCatalog) HasReason(code string) bool { return code == "apresentacao" }

func validCandidate() *domain.BookingCandidate {
	return &domain.BookingCandidate{
		StoreID:       1,
		ResponsibleID: 10,
		Room:          "sala-1",
		Reason:        "apresentacao",
		Start:         at(9, 0),
		End:           at(10, 0),
		GuestCount:    4,
	}
}

func TestValidateBooking_OK(t *testing.T) {
	c := validCandidate()
	require.NoError(t, domain.ValidateBooking(c, stubCatalog{}))
	assert.Empty(t, c.Status)

	c.Status = domain.StatusCompleted
	require.NoError(t, domain.ValidateBooking(c, stubCatalog{}))
	assert.Equal(t, domain.StatusCompleted, c.Status)
}

func TestValidateBooking_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *domain.BookingCandidate)
		field  string
		kind   domain.ValidationKind
	}{
		{"missing room", func(c *domain.BookingCandidate) { c.Room = "" }, "room", domain.KindFieldRequired},
		{"missing reason", func(c *domain.BookingCandidate) { c.Reason = "" }, "reason", domain.KindFieldRequired},
		{"missing store", func(c *domain.BookingCandidate) { c.StoreID = 0 }, "store", domain.KindFieldRequired},
		{"missing responsible", func(c *domain.BookingCandidate) { c.ResponsibleID = 0 }, "responsible", domain.KindFieldRequired},
		{"missing start", func(c *domain.BookingCandidate) { c.Start = time.Time{} }, "start", domain.KindFieldRequired},
		{"equal interval", func(c *domain.BookingCandidate) { c.End = c.Start }, "end", domain.KindInvalidInterval},
		{"inverted interval", func(c *domain.BookingCandidate) { c.End = at(8, 0) }, "end", domain.KindInvalidInterval},
		{"unknown room", func(c *domain.BookingCandidate) { c.Room = "sala-9" }, "room", domain.KindInvalidEnumValue},
		{"unknown reason", func(c *domain.BookingCandidate) { c.Reason = "festa" }, "reason", domain.KindInvalidEnumValue},
		{"unknown status", func(c *domain.BookingCandidate) { c.Status = "archived" }, "status", domain.KindInvalidEnumValue},
		{"negative guests", func(c *domain.BookingCandidate) { c.GuestCount = -1 }, "guest_count", domain.KindOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.mutate(c)

			err := domain.ValidateBooking(c, stubCatalog{})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.True(t, ve.Has(tt.field, tt.kind), "expected %s/%s in %v", tt.field, tt.kind, ve.Fields)
		})
	}
}

func TestValidateBooking_CollectsAllFields(t *testing.T) {
	err := domain.ValidateBooking(&domain.BookingCandidate{}, stubCatalog{})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	for _, field := range []string{"room", "reason", "store", "responsible", "start", "end"} {
		assert.True(t, ve.Has(field, domain.KindFieldRequired), field)
	}
}
