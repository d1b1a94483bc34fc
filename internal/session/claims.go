package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what the console can read out of a token without the
// server's key. None of it is trusted for access decisions.
type TokenClaims struct {
	Subject   string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// InspectToken decodes a JWT's claims without verifying its signature.
// Opaque (non-JWT) tokens return an error.
func InspectToken(token string) (TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, fmt.Errorf("session.InspectToken: %w", err)
	}

	var tc TokenClaims
	tc.Subject, _ = claims.GetSubject() //nolint:errcheck // zero value on a malformed claim is fine
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		tc.ExpiresAt = exp.Time
	}
	if v, ok := claims["email"].(string); ok {
		tc.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		tc.Role = v
	}
	return tc, nil
}

// Expired reports whether the token carries an expiry that has passed.
// Informational only: the server decides whether a token is still good.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
