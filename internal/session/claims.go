package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the display-only view of an access token's payload.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// ParseClaims decodes a JWT access token WITHOUT verifying its signature.
// Use it for display (who, until when); never for access decisions.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("session.ParseClaims: %w", err)
	}
	return claims, nil
}

// ExpiresIn returns how long until the token expires, relative to now.
// ok is false when the token carries no expiry.
func (c *Claims) ExpiresIn(now time.Time) (d time.Duration, ok bool) {
	if c == nil || c.ExpiresAt == nil {
		return 0, false
	}
	return c.ExpiresAt.Sub(now), true
}
