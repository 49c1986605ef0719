package model

// Feedback types.
const (
	FeedbackTypeQuery      = "query"
	FeedbackTypeComplaint  = "complaint"
	FeedbackTypeSuggestion = "suggestion"
)

// Feedback statuses.
const (
	FeedbackPending  = "pending"
	FeedbackApproved = "approved"
	FeedbackRejected = "rejected"
)

// GrievancePrefix is prepended to every grievance reference number.
const GrievancePrefix = "GRV"

// Feedback is a contact-form message or a grievance.
// UserID is nil for anonymous submissions.
type Feedback struct {
	ID              int64  `json:"id"`
	UserID          *int64 `json:"userId"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	Type            string `json:"type"`
	Subject         string `json:"subject"`
	Message         string `json:"message"`
	Status          string `json:"status"`
	Date            string `json:"date"`
	Department      string `json:"department,omitempty"`
	Category        string `json:"category,omitempty"`
	ReferenceNumber string `json:"referenceNumber,omitempty"`
}

// IsGrievance reports whether the entry was filed through the grievance form.
func (f Feedback) IsGrievance() bool {
	return f.ReferenceNumber != ""
}

// IsValidFeedbackType checks if a feedback type is known.
func IsValidFeedbackType(t string) bool {
	switch t {
	case FeedbackTypeQuery, FeedbackTypeComplaint, FeedbackTypeSuggestion:
		return true
	}
	return false
}

// IsValidFeedbackStatus checks if a feedback status is known.
func IsValidFeedbackStatus(s string) bool {
	switch s {
	case FeedbackPending, FeedbackApproved, FeedbackRejected:
		return true
	}
	return false
}
