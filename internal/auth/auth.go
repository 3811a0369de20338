// Package auth defines login and logout as user-facing operations.
//
// A Service sits between the UI and the session store / API client. Login
// collapses the client's two failure channels (returned error and a
// success=false envelope) into one Result. Logout clears local state and
// navigates away first; the backend call runs afterwards as a detached task
// whose outcome is only logged.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/naveenspark/folio/internal/router"
	"github.com/naveenspark/folio/internal/session"
	"github.com/naveenspark/folio/pkg/client"
	"github.com/naveenspark/folio/pkg/domain"
)

// DefaultLogoutTimeout bounds the detached backend logout call.
const DefaultLogoutTimeout = 10 * time.Second

// Messages shown when the backend gives no better explanation.
const (
	msgLoginFailed  = "Login failed"
	msgLoginNoToken = "Login response did not include a token"
)

// API is the subset of the client the Service needs.
type API interface {
	Login(ctx context.Context, req client.LoginRequest) (*client.Response[client.LoginData], error)
	Logout(ctx context.Context, accessToken string) (*client.Response[client.Ack], error)
}

// Result is the outcome of Login as the UI sees it.
type Result struct {
	Success bool
	Message string
}

// Option configures a Service.
type Option func(*Service)

// WithLogoutTimeout overrides DefaultLogoutTimeout.
func WithLogoutTimeout(d time.Duration) Option {
	return func(s *Service) { s.logoutTimeout = d }
}

// Service holds the current user in memory. The snapshot is taken from the
// store at construction and changes only through Login and Logout.
type Service struct {
	api           API
	store         *session.Store
	nav           router.Navigator
	log           *zap.Logger
	logoutTimeout time.Duration

	mu     sync.RWMutex
	user   *domain.User
	authed bool

	detached sync.WaitGroup
}

// New reads the session once and returns a Service.
func New(ctx context.Context, api API, store *session.Store, nav router.Navigator, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if nav == nil {
		nav = router.NavigatorFunc(func(router.Route) {})
	}
	s := &Service{
		api:           api,
		store:         store,
		nav:           nav,
		log:           log,
		logoutTimeout: DefaultLogoutTimeout,
		user:          store.User(ctx),
		authed:        store.IsAuthenticated(ctx),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login authenticates and, on success, persists the tokens and user.
// Nothing is stored when the login fails.
func (s *Service) Login(ctx context.Context, username, password string) Result {
	resp, err := s.api.Login(ctx, client.LoginRequest{Username: username, Password: password})
	if err != nil {
		s.log.Info("login failed", zap.String("username", username), zap.Error(err))
		return Result{Message: errorMessage(err)}
	}
	data, ok := resp.Value()
	if !ok {
		msg := resp.Message
		if msg == "" && len(resp.Errors) > 0 {
			msg = resp.Errors[0].Message
		}
		if msg == "" {
			msg = msgLoginFailed
		}
		s.log.Info("login rejected", zap.String("username", username), zap.String("message", msg))
		return Result{Message: msg}
	}
	if data.AccessToken == "" {
		return Result{Message: msgLoginNoToken}
	}

	if err := s.store.SetAuthToken(ctx, data.AccessToken, data.RefreshToken); err != nil {
		s.log.Error("persist tokens", zap.Error(err))
		_ = s.store.RemoveAuthToken(ctx)
		return Result{Message: "Could not save session"}
	}
	if err := s.store.SetUser(ctx, data.User); err != nil {
		// The token is stored; a missing cached user only affects display.
		s.log.Warn("persist user", zap.Error(err))
	}

	s.mu.Lock()
	s.user = data.User
	s.authed = true
	s.mu.Unlock()

	s.log.Info("logged in", zap.String("username", username))
	return Result{Success: true, Message: resp.Message}
}

// Logout clears the session and navigates to the login screen before
// returning. The server-side invalidation is started afterwards and never
// waited on; its result cannot change local state.
func (s *Service) Logout(ctx context.Context) {
	token := s.store.AuthToken(ctx)

	if err := s.store.RemoveAuthToken(ctx); err != nil {
		s.log.Warn("clear session", zap.Error(err))
	}
	s.mu.Lock()
	s.user = nil
	s.authed = false
	s.mu.Unlock()

	s.nav.Navigate(router.Login)

	if token == "" {
		return
	}
	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.logoutTimeout)
	s.detached.Add(1)
	go func() {
		defer s.detached.Done()
		defer cancel()
		resp, err := s.api.Logout(bg, token)
		switch {
		case err != nil:
			s.log.Warn("backend logout failed", zap.Error(err))
		case !resp.Success:
			s.log.Warn("backend logout rejected", zap.String("message", resp.Message))
		default:
			s.log.Debug("backend logout done")
		}
	}()
}

// Wait blocks until every detached backend call has finished.
func (s *Service) Wait() {
	s.detached.Wait()
}

// User returns the in-memory user, or nil.
func (s *Service) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated returns the in-memory flag.
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authed
}

func errorMessage(err error) string {
	var httpErr *client.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Message
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Login cancelled"
	default:
		return "Could not reach the server"
	}
}
