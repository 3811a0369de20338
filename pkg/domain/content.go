package domain

// Blog post statuses.
const (
	BlogDraft     = "draft"
	BlogPublished = "published"
)

// Blog is a blog post. All fields are optional; unknown fields are ignored.
type Blog struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title,omitempty"`
	Slug        string   `json:"slug,omitempty"`
	Excerpt     string   `json:"excerpt,omitempty"`
	Content     string   `json:"content,omitempty"`
	CoverImage  string   `json:"coverImage,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Status      string   `json:"status,omitempty"` // "draft", "published"
	Featured    bool     `json:"featured,omitempty"`
	Views       int      `json:"views,omitempty"`
	ReadTime    int      `json:"readTime,omitempty"` // minutes
	PublishedAt string   `json:"publishedAt,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// Project is a portfolio project.
type Project struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title,omitempty"`
	Slug         string   `json:"slug,omitempty"`
	Description  string   `json:"description,omitempty"`
	Content      string   `json:"content,omitempty"`
	Image        string   `json:"image,omitempty"`
	Images       []string `json:"images,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Category     string   `json:"category,omitempty"`
	GitHubURL    string   `json:"githubUrl,omitempty"`
	LiveURL      string   `json:"liveUrl,omitempty"`
	Featured     bool     `json:"featured,omitempty"`
	Order        int      `json:"order,omitempty"`
	Status       string   `json:"status,omitempty"`
	CreatedAt    string   `json:"createdAt,omitempty"`
	UpdatedAt    string   `json:"updatedAt,omitempty"`
}

// Category groups blogs and projects.
type Category struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"` // "blog", "project"
	Color       string `json:"color,omitempty"`
}

// Skill is a single entry in the skills section.
type Skill struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Category    string `json:"category,omitempty"`
	Level       int    `json:"level,omitempty"` // 0-100
	Icon        string `json:"icon,omitempty"`
	Order       int    `json:"order,omitempty"`
	Description string `json:"description,omitempty"`
}
