// Package stubapi is an in-memory portfolio backend for local development and tests.
//
// It serves the same routes and response envelope as the real backend:
// login and logout with JWT bearer tokens, CRUD over every content
// collection, the contact inbox, the newsletter, settings, dashboard stats
// and multipart uploads. Nothing is persisted.
package stubapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/naveenspark/folio/pkg/client"
	"github.com/naveenspark/folio/pkg/domain"
)

// Config configures a Server.
type Config struct {
	Username string
	Password string
	// Secret signs tokens. A random one is generated when empty.
	Secret         []byte
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	AllowedOrigins []string
	// Seed fills the collections with a few sample records.
	Seed bool
}

// Collections served with CRUD routes, by path segment.
var Collections = []string{
	"blogs", "projects", "categories", "skills", "experience",
	"education", "achievements", "volunteers", "contacts", "subscribers",
}

// private collections need a session even to read.
var private = map[string]bool{"contacts": true, "subscribers": true}

// Server holds the backend state.
type Server struct {
	cfg          Config
	log          *zap.Logger
	admin        domain.User
	passwordHash []byte
	now          func() time.Time

	mu          sync.Mutex
	collections map[string]*collection
	settings    domain.Settings
	revoked     map[string]struct{} // token IDs
}

// New returns a Server. Zero durations fall back to 15 minutes for access
// tokens and 7 days for refresh tokens.
func New(cfg Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if len(cfg.Secret) == 0 {
		cfg.Secret = []byte(uuid.NewString())
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}
	s := &Server{
		cfg:         cfg,
		log:         log,
		admin:       domain.User{ID: uuid.NewString(), Username: cfg.Username, Role: domain.RoleAdmin},
		now:         time.Now,
		collections: make(map[string]*collection, len(Collections)),
		revoked:     make(map[string]struct{}),
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.MinCost)
	if err != nil {
		log.Error("hash stub password, logins will fail", zap.Error(err))
	}
	s.passwordHash = hash
	for _, name := range Collections {
		s.collections[name] = newCollection()
	}
	if cfg.Seed {
		s.seed()
	}
	return s
}

// Handler returns the routed HTTP handler wrapped in CORS.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Use(withRequestLogging(s.log))
	r.Use(chiMiddleware.AllowContentType("application/json", "multipart/form-data"))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	r.Route(client.DefaultAPIPrefix, func(r chi.Router) {
		r.Post("/auth/login", s.login)
		r.Post("/auth/refresh", s.refresh)
		r.Post("/newsletter/subscribe", s.subscribe)
		r.Post("/newsletter/unsubscribe", s.unsubscribe)
		r.Get("/settings", s.getSettings)
		r.Get("/blogs/slug/{slug}", s.blogBySlug)
		r.Post("/contacts", s.submitContact)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/auth/logout", s.logout)
			r.Get("/auth/me", s.me)
			r.Put("/settings", s.putSettings)
			r.Get("/dashboard/stats", s.dashboardStats)
			r.Post("/upload", s.upload)
			r.Patch("/contacts/{id}/status", s.contactStatus)
		})

		for _, name := range Collections {
			read := r
			if private[name] {
				read = r.With(s.requireAuth)
			}
			read.Get("/"+name, s.list(name))
			read.Get("/"+name+"/{id}", s.get(name))

			write := r.With(s.requireAuth)
			if name != "contacts" {
				write.Post("/"+name, s.create(name))
			}
			write.Put("/"+name+"/{id}", s.update(name))
			write.Delete("/"+name+"/{id}", s.remove(name))
		}
	})

	return cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(r)
}
