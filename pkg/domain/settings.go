package domain

// Settings is the site-wide configuration edited from the back office.
type Settings struct {
	SiteTitle       string            `json:"siteTitle,omitempty"`
	SiteDescription string            `json:"siteDescription,omitempty"`
	HeroTitle       string            `json:"heroTitle,omitempty"`
	HeroSubtitle    string            `json:"heroSubtitle,omitempty"`
	About           string            `json:"about,omitempty"`
	Email           string            `json:"email,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	Location        string            `json:"location,omitempty"`
	ResumeURL       string            `json:"resumeUrl,omitempty"`
	Avatar          string            `json:"avatar,omitempty"`
	SocialLinks     map[string]string `json:"socialLinks,omitempty"`
	MaintenanceMode bool              `json:"maintenanceMode,omitempty"`
}

// DashboardStats are the counters shown on the back-office landing screen.
type DashboardStats struct {
	TotalBlogs        int `json:"totalBlogs"`
	PublishedBlogs    int `json:"publishedBlogs"`
	TotalProjects     int `json:"totalProjects"`
	TotalContacts     int `json:"totalContacts"`
	UnreadContacts    int `json:"unreadContacts"`
	TotalSubscribers  int `json:"totalSubscribers"`
	ActiveSubscribers int `json:"activeSubscribers"`
	TotalViews        int `json:"totalViews"`
}

// Upload is the backend's description of a stored file.
type Upload struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
	Size     int64  `json:"size,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}
