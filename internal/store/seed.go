package store

import "github.com/olegiv/gov-portal/internal/model"

// SeedUsers returns the demo accounts installed when the user list is empty.
func SeedUsers() []model.User {
	return []model.User{
		{
			ID:               1,
			Name:             "John Doe",
			Email:            "john@example.com",
			Password:         "password123",
			Role:             model.RoleUser,
			Status:           model.StatusActive,
			RegistrationDate: "2023-01-15",
		},
		{
			ID:               2,
			Name:             "Admin User",
			Email:            "admin@gov.in",
			Password:         "admin123",
			Role:             model.RoleAdmin,
			Status:           model.StatusActive,
			RegistrationDate: "2023-01-10",
		},
	}
}

// SeedFeedback returns the sample feedback installed when the list is empty.
func SeedFeedback() []model.Feedback {
	john := int64(1)
	jane := int64(1)
	return []model.Feedback{
		{
			ID:      1,
			UserID:  &john,
			Name:    "John Doe",
			Email:   "john@example.com",
			Type:    model.FeedbackTypeComplaint,
			Subject: "Issue with scheme application",
			Message: "I am facing issues while applying for the PM-KISAN scheme. The form is not loading properly.",
			Status:  model.FeedbackPending,
			Date:    "2023-06-10",
		},
		{
			ID:      2,
			UserID:  &jane,
			Name:    "Jane Smith",
			Email:   "jane@example.com",
			Type:    model.FeedbackTypeSuggestion,
			Subject: "Improve website accessibility",
			Message: "The website could be more accessible for users with visual impairments. Please consider adding more contrast options.",
			Status:  model.FeedbackPending,
			Date:    "2023-06-12",
		},
	}
}

// SeedContent returns the announcements installed when no content was ever stored.
func SeedContent() []model.ContentItem {
	return []model.ContentItem{
		{ID: 1, Title: "New Agricultural Support Scheme launched", Type: model.ContentTypeAnnouncement, Category: "agriculture", Status: model.ContentStatusActive, CreatedDate: "2023-06-01"},
		{ID: 2, Title: "Digital Literacy Program extended", Type: model.ContentTypeAnnouncement, Category: "education", Status: model.ContentStatusActive, CreatedDate: "2023-06-05"},
		{ID: 3, Title: "Health Insurance coverage expanded", Type: model.ContentTypeAnnouncement, Category: "health", Status: model.ContentStatusActive, CreatedDate: "2023-06-08"},
	}
}
