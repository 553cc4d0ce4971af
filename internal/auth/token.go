package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/clinicare/clinic-backend/internal/domain"
)

// TokenCodec issues and verifies signed, time-bound bearer tokens. It holds
// no secrets itself; the caller passes the signing key appropriate for the
// context (access vs refresh) on every call.
type TokenCodec struct {
	method jwt.SigningMethod
}

// NewTokenCodec builds a codec for the given HMAC algorithm identifier
// (HS256, HS384 or HS512).
func NewTokenCodec(algorithm string) (*TokenCodec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}
	return &TokenCodec{method: method}, nil
}

// Issue signs a token carrying subject with an absolute expiry of now+ttl.
// The random jti makes consecutive issuances distinct even within the same
// second, so a rotated pair never collides with its predecessor.
func (c *TokenCodec) Issue(subject string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}

	return jwt.NewWithClaims(c.method, claims).SignedString(secret)
}

// Verify checks signature and expiry against secret and returns the subject.
// Tampering, a wrong secret and expiry all surface as the same
// domain.ErrInvalidToken so callers cannot distinguish the failure reason.
func (c *TokenCodec) Verify(tokenString string, secret []byte) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{c.method.Alg()}),
	)
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}

	return claims.Subject, nil
}
