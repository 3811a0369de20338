package stubapi

import (
	"net/http"
	"net/mail"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/naveenspark/folio/pkg/client"
	"github.com/naveenspark/folio/pkg/domain"
)

const maxUploadSize = 10 << 20

func (s *Server) stamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// --- Auth ---

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req client.LoginRequest
	if !decode(r, &req) {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	var errs []client.FieldError
	if req.Username == "" {
		errs = append(errs, client.FieldError{Field: "username", Message: "Username is required"})
	}
	if req.Password == "" {
		errs = append(errs, client.FieldError{Field: "password", Message: "Password is required"})
	}
	if len(errs) > 0 {
		writeFailure(w, http.StatusBadRequest, "Validation failed", errs)
		return
	}
	if req.Username != s.cfg.Username ||
		bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)) != nil {
		writeFailure(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}
	data, err := s.issuePair()
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "Could not issue token", nil)
		return
	}
	writeData(w, http.StatusOK, data, "Login successful")
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.revoke(claimsFromContext(r.Context()).ID)
	writeData(w, http.StatusOK, nil, "Logged out successfully")
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if !decode(r, &req) || req.RefreshToken == "" {
		writeFailure(w, http.StatusBadRequest, "Refresh token required", nil)
		return
	}
	claims, err := s.parse(req.RefreshToken, tokenRefresh)
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "Invalid refresh token", nil)
		return
	}
	s.revoke(claims.ID)
	data, err := s.issuePair()
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "Could not issue token", nil)
		return
	}
	writeData(w, http.StatusOK, data, "")
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, s.admin, "")
}

// --- Collections ---

func (s *Server) list(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		items := s.collections[name].list(r.URL.Query())
		s.mu.Unlock()
		writeData(w, http.StatusOK, items, "")
	}
}

func (s *Server) get(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		rec, ok := s.collections[name].get(chi.URLParam(r, "id"))
		if ok {
			rec = rec.clone()
		}
		s.mu.Unlock()
		if !ok {
			writeFailure(w, http.StatusNotFound, "Not found", nil)
			return
		}
		writeData(w, http.StatusOK, rec, "")
	}
}

func (s *Server) create(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := record{}
		if !decode(r, &rec) {
			writeFailure(w, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		if name == "blogs" && rec.str("slug") == "" {
			rec["slug"] = slugify(rec.str("title"))
		}
		s.mu.Lock()
		rec = s.collections[name].insert(rec, s.stamp()).clone()
		s.mu.Unlock()
		writeData(w, http.StatusCreated, rec, "Created successfully")
	}
}

func (s *Server) update(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := record{}
		if !decode(r, &rec) {
			writeFailure(w, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		s.mu.Lock()
		rec, ok := s.collections[name].replace(chi.URLParam(r, "id"), rec, s.stamp())
		if ok {
			rec = rec.clone()
		}
		s.mu.Unlock()
		if !ok {
			writeFailure(w, http.StatusNotFound, "Not found", nil)
			return
		}
		writeData(w, http.StatusOK, rec, "Updated successfully")
	}
}

func (s *Server) remove(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		ok := s.collections[name].delete(chi.URLParam(r, "id"))
		s.mu.Unlock()
		if !ok {
			writeFailure(w, http.StatusNotFound, "Not found", nil)
			return
		}
		writeData(w, http.StatusOK, nil, "Deleted successfully")
	}
}

func (s *Server) blogBySlug(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rec, ok := s.collections["blogs"].find("slug", chi.URLParam(r, "slug"))
	if ok {
		rec = rec.clone()
	}
	s.mu.Unlock()
	if !ok {
		writeFailure(w, http.StatusNotFound, "Blog not found", nil)
		return
	}
	writeData(w, http.StatusOK, rec, "")
}

// --- Contacts ---

func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	var req client.ContactRequest
	if !decode(r, &req) {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	var errs []client.FieldError
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, client.FieldError{Field: "name", Message: "Name is required"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, client.FieldError{Field: "email", Message: "A valid email is required"})
	}
	if strings.TrimSpace(req.Message) == "" {
		errs = append(errs, client.FieldError{Field: "message", Message: "Message is required"})
	}
	if len(errs) > 0 {
		writeFailure(w, http.StatusBadRequest, "Validation failed", errs)
		return
	}
	rec := record{
		"name":    req.Name,
		"email":   req.Email,
		"subject": req.Subject,
		"message": req.Message,
		"status":  domain.ContactNew,
	}
	s.mu.Lock()
	rec = s.collections["contacts"].insert(rec, s.stamp()).clone()
	s.mu.Unlock()
	writeData(w, http.StatusCreated, rec, "Message sent successfully")
}

func (s *Server) contactStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decode(r, &req) || !domain.ValidContactStatus(req.Status) {
		writeFailure(w, http.StatusBadRequest, "Invalid status", []client.FieldError{
			{Field: "status", Message: "Status must be one of " + strings.Join(domain.ContactStatuses, ", ")},
		})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.collections["contacts"].get(chi.URLParam(r, "id"))
	if !ok {
		writeFailure(w, http.StatusNotFound, "Contact not found", nil)
		return
	}
	rec["status"] = req.Status
	writeData(w, http.StatusOK, rec, "Status updated")
}

// --- Newsletter ---

// subscribe reports an existing active subscription as success=false on a
// 200, the way the production backend does.
func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if !decode(r, &req) {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeFailure(w, http.StatusBadRequest, "Validation failed", []client.FieldError{
			{Field: "email", Message: "A valid email is required"},
		})
		return
	}
	email := strings.ToLower(req.Email)

	s.mu.Lock()
	defer s.mu.Unlock()
	subs := s.collections["subscribers"]
	if rec, ok := subs.find("email", email); ok {
		if rec.str("status") == "active" {
			writeJSON(w, http.StatusOK, envelope{Message: "Email is already subscribed"})
			return
		}
		rec["status"] = "active"
		writeData(w, http.StatusOK, rec, "Subscribed successfully")
		return
	}
	rec := subs.insert(record{
		"email":        email,
		"name":         req.Name,
		"status":       "active",
		"subscribedAt": s.stamp(),
	}, s.stamp())
	writeData(w, http.StatusCreated, rec, "Subscribed successfully")
}

func (s *Server) unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decode(r, &req) || req.Email == "" {
		writeFailure(w, http.StatusBadRequest, "Email is required", nil)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.collections["subscribers"].find("email", strings.ToLower(req.Email))
	if !ok {
		writeFailure(w, http.StatusNotFound, "Subscriber not found", nil)
		return
	}
	rec["status"] = "unsubscribed"
	writeData(w, http.StatusOK, nil, "Unsubscribed successfully")
}

// --- Settings, stats, uploads ---

func (s *Server) getSettings(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	settings := s.settings
	s.mu.Unlock()
	writeData(w, http.StatusOK, settings, "")
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if !decode(r, &settings) {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	writeData(w, http.StatusOK, settings, "Settings updated")
}

func (s *Server) dashboardStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st domain.DashboardStats
	for _, b := range s.collections["blogs"].all() {
		st.TotalBlogs++
		if b.str("status") == domain.BlogPublished {
			st.PublishedBlogs++
		}
		if v, ok := b["views"].(float64); ok {
			st.TotalViews += int(v)
		}
	}
	st.TotalProjects = s.collections["projects"].len()
	for _, c := range s.collections["contacts"].all() {
		st.TotalContacts++
		if c.str("status") == domain.ContactNew {
			st.UnreadContacts++
		}
	}
	for _, sub := range s.collections["subscribers"].all() {
		st.TotalSubscribers++
		if sub.str("status") == "active" {
			st.ActiveSubscribers++
		}
	}
	writeData(w, http.StatusOK, st, "")
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeFailure(w, http.StatusBadRequest, "Expected a multipart form", nil)
		return
	}
	for _, files := range r.MultipartForm.File {
		if len(files) == 0 {
			continue
		}
		fh := files[0]
		name := path.Base(fh.Filename)
		writeData(w, http.StatusCreated, domain.Upload{
			URL:      "/uploads/" + uuid.NewString() + "-" + name,
			Filename: name,
			Size:     fh.Size,
			MimeType: fh.Header.Get("Content-Type"),
		}, "File uploaded successfully")
		return
	}
	writeFailure(w, http.StatusBadRequest, "No file uploaded", nil)
}
