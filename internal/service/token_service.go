package service

import (
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/config"
	"github.com/snc99/Pay-Wise-BE/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the custom claims embedded in every session token.
type Claims struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens. Pure function of
// secret + claims + clock; no I/O.
type TokenService interface {
	Issue(admin *model.Admin) (string, error)
	Verify(token string) (*Claims, error)
	// DecodeUnsafe extracts claims without verifying the signature. Used only
	// for cache TTL bookkeeping on logout — never for authorization.
	DecodeUnsafe(token string) (*Claims, bool)
	// Lifetime is the configured validity window of issued tokens.
	Lifetime() time.Duration
}

type tokenService struct {
	secret   []byte
	lifetime time.Duration
}

func NewTokenService(cfg *config.Config) TokenService {
	return &tokenService{
		secret:   []byte(cfg.JWTSecret),
		lifetime: time.Duration(cfg.JWTExpirationMinutes) * time.Minute,
	}
}

func (s *tokenService) Lifetime() time.Duration { return s.lifetime }

func (s *tokenService) Issue(admin *model.Admin) (string, error) {
	now := time.Now()
	claims := &Claims{
		ID:       admin.ID.String(),
		Username: admin.Username,
		Role:     admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

func (s *tokenService) DecodeUnsafe(tokenStr string) (*Claims, bool) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, false
	}
	return claims, true
}
