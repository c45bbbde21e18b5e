// Package authtoken выпускает и проверяет JWT с данными сотрудника (id, роль, магазин).
package authtoken

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken возвращается при невалидной или просроченной подписи
	ErrInvalidToken = errors.New("authtoken: invalid token")

	// ErrInvalidClaims возвращается, если в токене нет обязательных полей
	ErrInvalidClaims = errors.New("authtoken: invalid claims")
)

// Claims содержимое токена
type Claims struct {
	UserID  int64  `json:"user_id"`
	Role    string `json:"role"`
	StoreID int64  `json:"store_id,omitempty"` // 0 - сотрудник не привязан к магазину
	Name    string `json:"name,omitempty"`
	jwtlib.RegisteredClaims
}

// Service подписывает и проверяет токены HS256
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New создает сервис токенов
func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Generate выпускает токен для сотрудника
func (s *Service) Generate(userID int64, role string, storeID int64, name string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:  userID,
		Role:    role,
		StoreID: storeID,
		Name:    name,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse проверяет подпись и срок действия токена
func (s *Service) Parse(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}), jwtlib.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	if claims.UserID <= 0 || claims.Role == "" {
		return nil, fmt.Errorf("%w: user_id and role are required", ErrInvalidClaims)
	}

	return claims, nil
}
