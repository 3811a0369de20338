package domain

// Contact message statuses.
const (
	ContactNew      = "new"
	ContactRead     = "read"
	ContactReplied  = "replied"
	ContactArchived = "archived"
)

// ContactStatuses lists the statuses in the order the back office cycles them.
var ContactStatuses = []string{ContactNew, ContactRead, ContactReplied, ContactArchived}

// ValidContactStatus reports whether s is a known contact status.
func ValidContactStatus(s string) bool {
	for _, v := range ContactStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message,omitempty"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Subscriber is a newsletter subscription.
type Subscriber struct {
	ID           string `json:"id,omitempty"`
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
	Status       string `json:"status,omitempty"` // "active", "unsubscribed"
	SubscribedAt string `json:"subscribedAt,omitempty"`
}
