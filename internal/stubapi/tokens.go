package stubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/naveenspark/folio/pkg/client"
)

const (
	tokenAccess  = "access"
	tokenRefresh = "refresh"
)

var errRevoked = errors.New("token revoked")

// tokenClaims carries the user fields clients display without a lookup.
type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Type     string `json:"typ"`
}

type ctxKey struct{}

func claimsFromContext(ctx context.Context) *tokenClaims {
	c, _ := ctx.Value(ctxKey{}).(*tokenClaims)
	return c
}

func (s *Server) mint(typ string) (string, error) {
	ttl := s.cfg.AccessTTL
	if typ == tokenRefresh {
		ttl = s.cfg.RefreshTTL
	}
	now := s.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   s.admin.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: s.admin.Username,
		Role:     s.admin.Role,
		Type:     typ,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
}

func (s *Server) issuePair() (client.LoginData, error) {
	access, err := s.mint(tokenAccess)
	if err != nil {
		return client.LoginData{}, fmt.Errorf("mint access token: %w", err)
	}
	refresh, err := s.mint(tokenRefresh)
	if err != nil {
		return client.LoginData{}, fmt.Errorf("mint refresh token: %w", err)
	}
	user := s.admin
	return client.LoginData{AccessToken: access, RefreshToken: refresh, User: &user}, nil
}

// parse verifies a token's signature, expiry, type and revocation.
func (s *Server) parse(raw, typ string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if claims.Type != typ {
		return nil, fmt.Errorf("want %s token, got %q", typ, claims.Type)
	}
	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, errRevoked
	}
	return claims, nil
}

func (s *Server) revoke(id string) {
	s.mu.Lock()
	s.revoked[id] = struct{}{}
	s.mu.Unlock()
}

// requireAuth rejects requests without a valid access token.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeFailure(w, http.StatusUnauthorized, "Access token required", nil)
			return
		}
		claims, err := s.parse(raw, tokenAccess)
		if err != nil {
			writeFailure(w, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
	})
}
