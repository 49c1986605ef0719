package service

import (
	"github.com/olegiv/gov-portal/internal/model"
	"github.com/olegiv/gov-portal/internal/store"
)

// UserStats are the counters of the citizen dashboard.
type UserStats struct {
	Applications int `json:"applications"`
	Approved     int `json:"approved"`
	Pending      int `json:"pending"`
	Downloads    int `json:"downloads"`
}

// AdminStats are the counters of the admin dashboard.
type AdminStats struct {
	TotalUsers        int `json:"totalUsers"`
	ActiveUsers       int `json:"activeUsers"`
	TotalApplications int `json:"totalApplications"`
	PendingFeedback   int `json:"pendingFeedback"`
}

// ChartPoint is one bar of the activity chart.
type ChartPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// weeklyChart is the sample seven-day activity chart of the admin dashboard.
var weeklyChart = []ChartPoint{
	{"Mon", 65}, {"Tue", 78}, {"Wed", 90}, {"Thu", 81},
	{"Fri", 56}, {"Sat", 95}, {"Sun", 88},
}

// DashboardService computes dashboard statistics.
type DashboardService struct {
	store    *store.Store
	activity *ActivityService
	feedback *FeedbackService
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(st *store.Store, activity *ActivityService, feedback *FeedbackService) *DashboardService {
	return &DashboardService{store: st, activity: activity, feedback: feedback}
}

// UserStats returns the dashboard counters of one user.
// Approved and pending are fixed 60/40 shares of the applications.
func (s *DashboardService) UserStats(userID int64) UserStats {
	apps := s.activity.CountForUser(userID, model.ActionApplyScheme)
	return UserStats{
		Applications: apps,
		Approved:     apps * 6 / 10,
		Pending:      apps * 4 / 10,
		Downloads:    s.activity.CountForUser(userID, model.ActionDownloadForm),
	}
}

// AdminStats returns the portal-wide counters.
func (s *DashboardService) AdminStats() AdminStats {
	users := s.store.Users()
	active := 0
	for _, u := range users {
		if u.IsActive() {
			active++
		}
	}
	return AdminStats{
		TotalUsers:        len(users),
		ActiveUsers:       active,
		TotalApplications: s.activity.CountByAction(model.ActionApplyScheme),
		PendingFeedback:   s.feedback.PendingCount(),
	}
}

// WeeklyChart returns the seven-day activity chart.
func (s *DashboardService) WeeklyChart() []ChartPoint {
	return append([]ChartPoint(nil), weeklyChart...)
}
