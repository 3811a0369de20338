// Package session is the single source of truth for whether a user is signed in.
//
// A Store keeps three entries in a durable Storage: the access token, the
// refresh token and the cached user record. A Store without a Storage is the
// "no storage context" case: every operation is a no-op that reports nothing
// stored, so callers may use it before a medium is available.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/naveenspark/folio/pkg/domain"
)

// Keys under which the session is persisted.
const (
	KeyAccessToken  = "folio.access_token"
	KeyRefreshToken = "folio.refresh_token"
	KeyUser         = "folio.user"
)

// Store reads and writes the session through a Storage.
type Store struct {
	storage Storage
	log     *zap.Logger
}

// NewStore returns a Store over storage. A nil storage makes every operation a no-op.
func NewStore(storage Storage, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{storage: storage, log: log}
}

func (s *Store) available() bool {
	return s != nil && s.storage != nil
}

// SetAuthToken persists both tokens. Their format and expiry are not checked.
func (s *Store) SetAuthToken(ctx context.Context, accessToken, refreshToken string) error {
	if !s.available() {
		return nil
	}
	if err := s.storage.Set(ctx, KeyAccessToken, accessToken); err != nil {
		return fmt.Errorf("session.SetAuthToken: %w", err)
	}
	if err := s.storage.Set(ctx, KeyRefreshToken, refreshToken); err != nil {
		return fmt.Errorf("session.SetAuthToken: %w", err)
	}
	return nil
}

// AuthToken returns the access token, or "" when none is stored.
// A storage read failure is logged and treated as no token.
func (s *Store) AuthToken(ctx context.Context) string {
	return s.read(ctx, KeyAccessToken)
}

// RefreshToken returns the refresh token, or "" when none is stored.
func (s *Store) RefreshToken(ctx context.Context) string {
	return s.read(ctx, KeyRefreshToken)
}

func (s *Store) read(ctx context.Context, key string) string {
	if !s.available() {
		return ""
	}
	v, ok, err := s.storage.Get(ctx, key)
	if err != nil {
		s.log.Warn("session read failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

// RemoveAuthToken deletes the access token, the refresh token and the cached
// user. Each delete is attempted even if an earlier one fails; removing
// nothing is not an error.
func (s *Store) RemoveAuthToken(ctx context.Context) error {
	if !s.available() {
		return nil
	}
	var errs []error
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUser} {
		if err := s.storage.Remove(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("session.RemoveAuthToken: %w", err)
	}
	return nil
}

// SetUser caches the user record as JSON. A nil user removes it.
func (s *Store) SetUser(ctx context.Context, user *domain.User) error {
	if !s.available() {
		return nil
	}
	if user == nil {
		if err := s.storage.Remove(ctx, KeyUser); err != nil {
			return fmt.Errorf("session.SetUser: %w", err)
		}
		return nil
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session.SetUser: marshal: %w", err)
	}
	if err := s.storage.Set(ctx, KeyUser, string(data)); err != nil {
		return fmt.Errorf("session.SetUser: %w", err)
	}
	return nil
}

// User returns the cached user, or nil when none is stored.
// Corrupt stored JSON is logged and reported as no user.
func (s *Store) User(ctx context.Context) *domain.User {
	raw := s.read(ctx, KeyUser)
	if raw == "" {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.log.Warn("discarding corrupt cached user", zap.Error(err))
		return nil
	}
	return &u
}

// IsAuthenticated reports whether an access token is stored.
// The token is not validated; the backend rejects stale ones.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.AuthToken(ctx) != ""
}
