package domain

// Experience is a work history entry. Dates are passed through as the backend sends them.
type Experience struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title,omitempty"`
	Company      string   `json:"company,omitempty"`
	Location     string   `json:"location,omitempty"`
	Type         string   `json:"type,omitempty"` // "full-time", "contract", ...
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Order        int      `json:"order,omitempty"`
}

// Education is a degree or course entry.
type Education struct {
	ID          string `json:"id,omitempty"`
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current,omitempty"`
	Grade       string `json:"grade,omitempty"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order,omitempty"`
}

// Achievement is an award, certification or similar milestone.
type Achievement struct {
	ID            string `json:"id,omitempty"`
	Title         string `json:"title,omitempty"`
	Issuer        string `json:"issuer,omitempty"`
	Date          string `json:"date,omitempty"`
	Description   string `json:"description,omitempty"`
	Image         string `json:"image,omitempty"`
	CredentialURL string `json:"credentialUrl,omitempty"`
	Order         int    `json:"order,omitempty"`
}

// Volunteer is a volunteering entry.
type Volunteer struct {
	ID           string `json:"id,omitempty"`
	Role         string `json:"role,omitempty"`
	Organization string `json:"organization,omitempty"`
	Cause        string `json:"cause,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	Current      bool   `json:"current,omitempty"`
	Description  string `json:"description,omitempty"`
	Order        int    `json:"order,omitempty"`
}
