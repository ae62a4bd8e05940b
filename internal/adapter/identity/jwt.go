// Package identity turns bearer tokens into owner identifiers.
// Tokens are HS256 JWTs carrying the owner in the user_id claim.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrTokenNotValid is returned for malformed, expired or wrongly signed tokens.
	ErrTokenNotValid = errors.New("token is not valid")
	// ErrNoUserInToken is returned when a valid token carries no owner.
	ErrNoUserInToken = errors.New("no user data in token")
)

type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token for ownerID.
func (j *JWT) Issue(ownerID string) (string, error) {
	const op = "adapter.identity.JWT.Issue"

	if ownerID == "" {
		return "", fmt.Errorf("%s: %w", op, ErrNoUserInToken)
	}

	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserID: ownerID,
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("%s: failed to sign token: %w", op, err)
	}

	return signed, nil
}

// Verify checks the token signature and expiry and returns the owner it was issued for.
func (j *JWT) Verify(tokenString string) (string, error) {
	const op = "adapter.identity.JWT.Verify"

	var c claims

	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%s: %w", op, ErrTokenNotValid)
	}

	if c.UserID == "" {
		return "", fmt.Errorf("%s: %w", op, ErrNoUserInToken)
	}

	return c.UserID, nil
}
