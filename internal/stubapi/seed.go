package stubapi

import "github.com/naveenspark/folio/pkg/domain"

func (s *Server) seed() {
	now := s.stamp()
	s.settings = domain.Settings{
		SiteTitle:    "Folio",
		HeroTitle:    "Hi, I build things for the web",
		HeroSubtitle: "Backend engineer",
		Email:        "hello@example.com",
		SocialLinks:  map[string]string{"github": "https://github.com/example"},
	}
	s.collections["blogs"].insert(record{
		"title": "Shipping a Go API client", "slug": "shipping-a-go-api-client",
		"status": domain.BlogPublished, "views": float64(42), "readTime": float64(6),
	}, now)
	s.collections["blogs"].insert(record{
		"title": "Notes on sessions", "slug": "notes-on-sessions", "status": domain.BlogDraft,
	}, now)
	s.collections["projects"].insert(record{
		"title": "folio", "slug": "folio", "technologies": []any{"Go", "SQLite"}, "featured": true,
	}, now)
	s.collections["categories"].insert(record{"name": "Engineering", "slug": "engineering", "type": "blog"}, now)
	s.collections["skills"].insert(record{"name": "Go", "category": "Backend", "level": float64(90)}, now)
	s.collections["experience"].insert(record{
		"title": "Software Engineer", "company": "Acme", "startDate": "2021-03", "current": true,
	}, now)
	s.collections["education"].insert(record{"institution": "State University", "degree": "BSc"}, now)
	s.collections["achievements"].insert(record{"title": "Conference talk", "issuer": "GopherCon"}, now)
	s.collections["volunteers"].insert(record{"organization": "Code Club", "role": "Mentor"}, now)
	s.collections["contacts"].insert(record{
		"name": "Ada", "email": "ada@example.com", "subject": "Hello",
		"message": "Loved the blog post.", "status": domain.ContactNew,
	}, now)
	s.collections["subscribers"].insert(record{
		"email": "reader@example.com", "status": "active", "subscribedAt": now,
	}, now)
}
