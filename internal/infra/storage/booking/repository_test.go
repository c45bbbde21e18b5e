package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

func TestListQuery(t *testing.T) {
	room := "sala-1"
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	query, args, err := listQuery(domain.BookingsFilter{
		Room:        &room,
		WindowStart: &from,
		WindowEnd:   &to,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM bookings")
	assert.Contains(t, query, "room = $1")
	assert.Contains(t, query, "end_at > $2")
	assert.Contains(t, query, "start_at < $3")
	assert.Contains(t, query, "status NOT IN ($4,$5)")
	assert.Contains(t, query, "ORDER BY start_at ASC, id ASC")
	assert.Equal(t, []interface{}{room, from, to, "cancelled", "no_show"}, args)
}

func TestListQuery_IncludeInactiveAndStatus(t *testing.T) {
	query, _, err := listQuery(domain.BookingsFilter{IncludeInactive: true}).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.NotContains(t, query, "status NOT IN")

	status := domain.StatusCompleted
	query, args, err := listQuery(domain.BookingsFilter{Status: &status}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "status = $1")
	assert.Equal(t, []interface{}{domain.StatusCompleted}, args)
}

func TestWrapWriteError(t *testing.T) {
	exclusion := &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"}
	err := wrapWriteError("Create", exclusion)
	assert.ErrorIs(t, err, domain.ErrConflictDetected)

	serialization := &pq.Error{Code: "40001"}
	err = wrapWriteError("Create", serialization)
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, txmanager.IsSerializationFailure(err))

	err = wrapWriteError("Update", errors.New("connection reset"))
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.False(t, errors.Is(err, domain.ErrConflictDetected))
}
