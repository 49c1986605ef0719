package model

// TimestampLayout is the second-resolution layout of activity timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Activity actions recorded by the portal.
const (
	ActionLogin             = "Login"
	ActionAdminLogin        = "Admin Login"
	ActionLogout            = "Logout"
	ActionRegistration      = "Registration"
	ActionPageNavigation    = "Page Navigation"
	ActionSectionNavigation = "Section Navigation"
	ActionSubmitFeedback    = "Submit Feedback"
	ActionSubmitGrievance   = "Submit Grievance"
	ActionApproveFeedback   = "Approve Feedback"
	ActionRejectFeedback    = "Reject Feedback"
	ActionAddContent        = "Add Content"
	ActionEditContent       = "Edit Content"
	ActionDeleteContent     = "Delete Content"
	ActionEditUser          = "Edit User"
	ActionDeleteUser        = "Delete User"
	ActionApplyScheme       = "Apply Scheme"
	ActionDownloadForm      = "Download Form"
	ActionServiceClick      = "Service Click"
	ActionSearch            = "Search"
	ActionLanguageChange    = "Language Change"
)

// ActivityEntry is an immutable audit record tied to a user.
type ActivityEntry struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
	Details   string `json:"details"`
}

// Date returns the calendar-date prefix of the timestamp.
func (a ActivityEntry) Date() string {
	if len(a.Timestamp) < len(DateLayout) {
		return a.Timestamp
	}
	return a.Timestamp[:len(DateLayout)]
}
