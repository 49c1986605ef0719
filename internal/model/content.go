package model

// Content types
const (
	ContentTypeAnnouncement = "announcement"
	ContentTypeNews         = "news"
	ContentTypeScheme       = "scheme"
	ContentTypePage         = "page"
)

// Content statuses
const (
	ContentStatusActive   = "active"
	ContentStatusDraft    = "draft"
	ContentStatusArchived = "archived"
)

// ContentItem is an admin-managed piece of portal content.
type ContentItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	CreatedDate string `json:"createdDate"`
	Description string `json:"description,omitempty"`
}

// Scheme is an entry of the static government scheme catalog.
type Scheme struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	State       string `json:"state"`
	Description string `json:"description"`
}
