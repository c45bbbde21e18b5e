package authtoken

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse(t *testing.T) {
	s := New("secret", time.Hour)

	token, err := s.Generate(201, "consultant", 1, "Ana")
	require.NoError(t, err)

	claims, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(201), claims.UserID)
	assert.Equal(t, "consultant", claims.Role)
	assert.Equal(t, int64(1), claims.StoreID)
	assert.Equal(t, "Ana", claims.Name)
}

func TestParse_Rejects(t *testing.T) {
	s := New("secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		token, err := New("other", time.Hour).Generate(201, "consultant", 1, "")
		require.NoError(t, err)
		_, err = s.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		issued := New("secret", time.Minute)
		issued.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := issued.Generate(201, "consultant", 1, "")
		require.NoError(t, err)
		_, err = s.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing role", func(t *testing.T) {
		token, err := s.Generate(201, "", 1, "")
		require.NoError(t, err)
		_, err = s.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("unsigned", func(t *testing.T) {
		token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, &Claims{UserID: 1, Role: "administrator"}).
			SignedString(jwtlib.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = s.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
