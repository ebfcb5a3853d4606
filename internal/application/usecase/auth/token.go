// internal/application/usecase/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTypeAccess = "access"

var (
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrEmptySecret  = errors.New("auth: jwt secret is empty")
)

// Token is a signed access token and its expiry.
type Token struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Tokens is the response shape for register/login.
type Tokens struct {
	Access Token `json:"access"`
}

// Claims carries the user id in "sub".
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// TokenMaker issues and verifies HS256 access tokens.
type TokenMaker struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenMaker(secret string, ttl time.Duration) (*TokenMaker, error) {
	s := strings.TrimSpace(secret)
	if s == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = 240 * time.Minute
	}
	return &TokenMaker{secret: []byte(s), ttl: ttl}, nil
}

// Issue signs an access token for userID.
func (m *TokenMaker) Issue(userID string, now time.Time) (Token, error) {
	if m == nil {
		return Token{}, ErrEmptySecret
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return Token{}, errors.New("auth: userID is empty")
	}

	now = now.UTC()
	exp := now.Add(m.ttl)
	claims := Claims{
		Type: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Token{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return Token{Token: signed, Expires: exp}, nil
}

// Verify parses raw and returns the user id it was issued for.
func (m *TokenMaker) Verify(raw string) (string, error) {
	if m == nil {
		return "", ErrInvalidToken
	}
	var claims Claims
	tok, err := jwt.ParseWithClaims(
		strings.TrimSpace(raw),
		&claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !tok.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Type != tokenTypeAccess || strings.TrimSpace(claims.Subject) == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
