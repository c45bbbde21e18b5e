package directory_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/directory"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/users/7", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "full_name": "Ana Souza", "role": "consultant", "store_id": 3}`))
	})
	mux.HandleFunc("/internal/users/8", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 8, "full_name": "Bruno Lima", "role": "manager", "store_id": null}`))
	})
	mux.HandleFunc("/internal/clients/5", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 5, "name": "Construtora Norte"}`))
	})
	mux.HandleFunc("/internal/users/500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetUser(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	client := directory.NewClient(srv.URL, time.Second, nopLogger{})

	user, err := client.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", user.FullName)

	staff := user.ToStaff()
	assert.Equal(t, domain.RoleConsultant, staff.Role)
	assert.True(t, staff.InStore(3))

	storeless, err := client.GetUser(context.Background(), 8)
	require.NoError(t, err)
	assert.Nil(t, storeless.StoreID)
}

func TestClient_Errors(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	client := directory.NewClient(srv.URL, time.Second, nopLogger{})

	_, err := client.GetUser(context.Background(), 404)
	assert.True(t, errors.Is(err, directory.ErrUserNotFound))

	_, err = client.GetCustomer(context.Background(), 404)
	assert.True(t, errors.Is(err, directory.ErrCustomerNotFound))

	_, err = client.GetUser(context.Background(), 500)
	assert.True(t, errors.Is(err, directory.ErrInvalidResponse))

	down := directory.NewClient("http://127.0.0.1:1", 200*time.Millisecond, nopLogger{})
	_, err = down.GetUser(context.Background(), 7)
	assert.True(t, errors.Is(err, directory.ErrInternal))
}

func TestClient_GetCustomer(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	client := directory.NewClient(srv.URL, time.Second, nopLogger{})

	customer, err := client.GetCustomer(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Construtora Norte", customer.Name)
}

func TestClient_RedisCache(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	client := directory.NewClient(srv.URL, time.Second, nopLogger{})
	client.UseRedisCache(rdb, time.Minute)

	for i := 0; i < 3; i++ {
		user, err := client.GetUser(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "Ana Souza", user.FullName)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.True(t, mr.Exists("directory:user:7"))

	mr.FastForward(2 * time.Minute)
	_, err := client.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
