package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers signature mismatch, malformed input, and expiry.
var ErrInvalidToken = errors.New("invalid token")

// Principal is the authenticated identity decoded from a verified token.
// It is request-scoped and never persisted.
type Principal struct {
	UserID   int64
	Username string
}

type claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// TokenService issues and verifies HS256-signed bearer tokens. It holds no
// state beyond the signing secret, which is fixed at construction.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service. A zero ttl issues tokens without
// an expiry claim.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue signs a token carrying both the numeric user id and the username, so
// ownership checks can compare ids without a per-request user lookup.
func (s *TokenService) Issue(userID int64, username string) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  username,
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: userID,
	}
	if s.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and decodes the principal.
func (s *TokenService) Verify(tokenString string) (*Principal, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if c.UserID == 0 || c.Subject == "" {
		return nil, fmt.Errorf("%w: missing identity claims", ErrInvalidToken)
	}

	return &Principal{UserID: c.UserID, Username: c.Subject}, nil
}
