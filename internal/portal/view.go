package portal

import (
	"html/template"

	"github.com/olegiv/gov-portal/internal/i18n"
	"github.com/olegiv/gov-portal/internal/model"
	"github.com/olegiv/gov-portal/internal/navigation"
	"github.com/olegiv/gov-portal/internal/service"
)

// NotificationType selects the styling of a notification.
type NotificationType string

// Notification types.
const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
	NotifyWarning NotificationType = "warning"
	NotifyInfo    NotificationType = "info"
)

// Notification is a transient, auto-dismissing message.
type Notification struct {
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
}

// ViewModel is everything the presentation layer needs to draw the portal.
// Notifications hold only the messages raised since the previous render.
type ViewModel struct {
	Page          string             `json:"page"`
	Section       string             `json:"section,omitempty"`
	BackVisible   bool               `json:"backVisible"`
	HistoryDepth  int                `json:"historyDepth"`
	Language      i18n.Language      `json:"language"`
	Languages     []i18n.Language    `json:"languages"`
	User          *UserView          `json:"user,omitempty"`
	Announcements []ContentView      `json:"announcements"`
	Schemes       *SchemesView       `json:"schemes,omitempty"`
	Search        *SearchView        `json:"search,omitempty"`
	Dashboard     *DashboardView     `json:"dashboard,omitempty"`
	Admin         *AdminView         `json:"admin,omitempty"`
	FieldErrors   []model.FieldError `json:"fieldErrors,omitempty"`
	Notifications []Notification     `json:"notifications,omitempty"`
}

// UserView is the signed-in user as shown in the header.
type UserView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Initial string `json:"initial"`
	IsAdmin bool   `json:"isAdmin"`
}

// ContentView is a content item with its rendered description.
type ContentView struct {
	model.ContentItem
	DescriptionHTML template.HTML `json:"descriptionHtml,omitempty"`
}

// SchemesView is the schemes page: the filter bar and its matches.
type SchemesView struct {
	Filter  service.SchemeFilter `json:"filter"`
	Results []model.Scheme       `json:"results"`
}

// SearchView is the outcome of the last site search.
type SearchView struct {
	Term    string         `json:"term"`
	Count   int            `json:"count"`
	Schemes []model.Scheme `json:"schemes"`
	Content []ContentView  `json:"content"`
}

// ActivityView is an activity entry with its user's name resolved.
type ActivityView struct {
	model.ActivityEntry
	UserName string `json:"userName"`
}

// DashboardView is the citizen dashboard.
type DashboardView struct {
	Stats    service.UserStats `json:"stats"`
	Activity []ActivityView    `json:"activity"`
}

// UserRow is a user account as listed in the admin panel.
type UserRow struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	Status           string `json:"status"`
	RegistrationDate string `json:"registrationDate"`
}

// ActivityFilterView echoes the activity filter bar.
type ActivityFilterView struct {
	UserID *int64 `json:"userId,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
}

// FeedbackFilterView echoes the feedback filter bar.
type FeedbackFilterView struct {
	Status string `json:"status"`
	Type   string `json:"type"`
}

// AdminView is the admin panel. Only the active section carries data.
type AdminView struct {
	Section        string               `json:"section"`
	Sections       []string             `json:"sections"`
	Welcome        string               `json:"welcome"`
	Stats          *service.AdminStats  `json:"stats,omitempty"`
	Chart          []service.ChartPoint `json:"chart,omitempty"`
	Users          []UserRow            `json:"users,omitempty"`
	Activity       []ActivityView       `json:"activity,omitempty"`
	ActivityFilter *ActivityFilterView  `json:"activityFilter,omitempty"`
	Content        []ContentView        `json:"content,omitempty"`
	Feedback       []model.Feedback     `json:"feedback,omitempty"`
	FeedbackFilter *FeedbackFilterView  `json:"feedbackFilter,omitempty"`
}

// Admin panel sections.
const (
	AdminDashboard = "dashboard"
	AdminUsers     = "users"
	AdminActivity  = "activity"
	AdminContent   = "content"
	AdminFeedback  = "feedback"
	AdminAnalytics = "analytics"
)

var adminSections = []string{
	AdminDashboard, AdminUsers, AdminActivity, AdminContent, AdminFeedback, AdminAnalytics,
}

// view builds the view model. The caller holds a.mu.
func (a *App) view() ViewModel {
	vm := ViewModel{
		Page:          a.nav.Current(),
		Section:       a.nav.Section(),
		BackVisible:   a.nav.BackVisible(),
		HistoryDepth:  a.nav.Depth(),
		Language:      a.language,
		Languages:     i18n.SupportedLanguages,
		Announcements: a.contentViews(a.content.Active()),
		FieldErrors:   a.fieldErrors,
		Notifications: a.notifications,
	}

	if u := a.auth.Current(); u != nil {
		vm.User = &UserView{
			ID:      u.ID,
			Name:    u.Name,
			Email:   u.Email,
			Role:    u.Role,
			Initial: u.Initial(),
			IsAdmin: u.IsAdmin(),
		}
	}

	if a.search != nil {
		vm.Search = &SearchView{
			Term:    a.search.Term,
			Count:   a.search.Count(),
			Schemes: a.search.Schemes,
			Content: a.contentViews(a.search.Content),
		}
	}

	switch vm.Page {
	case navigation.PageSchemes:
		vm.Schemes = &SchemesView{Filter: a.schemeFilter, Results: a.schemes.Filter(a.schemeFilter)}
	case navigation.PageDashboard:
		if id, ok := a.auth.CurrentID(); ok {
			vm.Dashboard = &DashboardView{
				Stats:    a.dashboard.UserStats(id),
				Activity: a.activityViews(a.activity.List(service.ActivityFilter{UserID: &id})),
			}
		}
	case navigation.PageAdmin:
		if a.auth.IsAdmin() {
			vm.Admin = a.adminView()
		}
	}

	return vm
}

func (a *App) adminView() *AdminView {
	av := &AdminView{
		Section:  a.adminSection,
		Sections: adminSections,
		Welcome:  "Welcome, " + a.auth.Current().Name,
	}

	switch a.adminSection {
	case AdminDashboard:
		stats := a.dashboard.AdminStats()
		av.Stats = &stats
		av.Chart = a.dashboard.WeeklyChart()
		av.Activity = a.activityViews(a.activity.List(service.ActivityFilter{}))
	case AdminUsers:
		for _, u := range a.users.List() {
			av.Users = append(av.Users, UserRow{
				ID:               u.ID,
				Name:             u.Name,
				Email:            u.Email,
				Role:             u.Role,
				Status:           u.Status,
				RegistrationDate: u.RegistrationDate,
			})
		}
	case AdminActivity:
		f := a.activityFilter
		av.ActivityFilter = &ActivityFilterView{UserID: f.UserID, From: f.From, To: f.To}
		av.Activity = a.activityViews(a.activity.List(f))
	case AdminContent:
		av.Content = a.contentViews(a.content.List())
	case AdminFeedback:
		av.FeedbackFilter = &FeedbackFilterView{Status: a.feedbackStatus, Type: a.feedbackType}
		av.Feedback = a.feedback.List(a.feedbackStatus, a.feedbackType)
	case AdminAnalytics:
		av.Chart = a.dashboard.WeeklyChart()
	}
	return av
}

func (a *App) activityViews(entries []model.ActivityEntry) []ActivityView {
	out := make([]ActivityView, 0, len(entries))
	for _, e := range entries {
		out = append(out, ActivityView{ActivityEntry: e, UserName: a.users.NameOf(e.UserID)})
	}
	return out
}

func (a *App) contentViews(items []model.ContentItem) []ContentView {
	out := make([]ContentView, 0, len(items))
	for _, c := range items {
		html, err := a.content.RenderDescription(c)
		if err != nil {
			a.logger.Error("failed to render content description", "content_id", c.ID, "error", err)
		}
		out = append(out, ContentView{ContentItem: c, DescriptionHTML: html})
	}
	return out
}
