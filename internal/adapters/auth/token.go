package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"portfoliocms/internal/domain"
)

// adminSubject is the subject claim carried by every capability token. The
// site has a single operator, so there is no per-user identity to encode.
const adminSubject = "admin"

type jwtCapability struct {
	secret []byte
}

// NewJWTCapability returns a TokenIssuer/TokenVerifier pair backed by HS256
// JWTs signed with the given secret.
func NewJWTCapability(secret string) interface {
	domain.TokenIssuer
	domain.TokenVerifier
} {
	return &jwtCapability{secret: []byte(secret)}
}

func (c *jwtCapability) Issue(expiry time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiry)
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (c *jwtCapability) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != adminSubject {
		return domain.ErrUnauthorized
	}
	return nil
}
