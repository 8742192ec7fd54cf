// Package token implements the session token codec: a signed, time-bound
// assertion of a user id. The codec is a pure cryptographic transform plus a
// clock check; it knows nothing about users beyond their id.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformed = errors.New("token malformed")
var ErrSignatureInvalid = errors.New("token signature invalid")
var ErrExpired = errors.New("token expired")

// Codec issues and verifies HS256 tokens. Secret, TTL and clock are injected
// at construction so tests can pin them.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration, now func() time.Time) *Codec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: now}
}

// Issue produces a signed token asserting userID until the TTL elapses.
func (c *Codec) Issue(userID string) (string, error) {
	issued := c.now()
	claims := jwt.RegisteredClaims{
		// Random jti guarantees two issuances never collide, even within
		// the same second. The equality check against the stored token
		// depends on this.
		ID:        tokenID(issued),
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(c.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

func tokenID(issued time.Time) string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%x", issued.UnixNano())
	}
	return hex.EncodeToString(b)
}

// Verify checks the signature and expiry of tokenString and returns the
// embedded user id. Failures are one of ErrMalformed, ErrSignatureInvalid,
// or ErrExpired.
func (c *Codec) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrSignatureInvalid
		default:
			return "", ErrMalformed
		}
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", ErrMalformed
	}
	return claims.Subject, nil
}
