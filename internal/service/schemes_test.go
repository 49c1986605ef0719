package service

import (
	"context"
	"errors"
	"testing"

	"github.com/olegiv/gov-portal/internal/model"
	"github.com/olegiv/gov-portal/internal/store"
)

func schemeIDs(schemes []model.Scheme) []string {
	ids := make([]string, 0, len(schemes))
	for _, sc := range schemes {
		ids = append(ids, sc.ID)
	}
	return ids
}

func TestSchemeFilter(t *testing.T) {
	s := newServices(t)

	tests := []struct {
		name   string
		filter SchemeFilter
		want   int
	}{
		{"no criteria", SchemeFilter{}, len(schemeCatalog)},
		{"all keyword", SchemeFilter{Category: "all", State: "all"}, len(schemeCatalog)},
		{"category", SchemeFilter{Category: "agriculture"}, 3},
		{"category and state", SchemeFilter{Category: "agriculture", State: "central"}, 2},
		{"term in name", SchemeFilter{Term: "kisan"}, 1},
		{"term in description", SchemeFilter{Term: "INSURANCE"}, 1},
		{"no match", SchemeFilter{Category: "health", Term: "farmer"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.schemes.Filter(tt.filter)
			if len(got) != tt.want {
				t.Errorf("Filter(%+v) = %v, want %d schemes", tt.filter, schemeIDs(got), tt.want)
			}
		})
	}
}

func TestApplyRequiresLogin(t *testing.T) {
	s := newServices(t)

	if err := s.schemes.Apply(context.Background(), "PM-KISAN"); !errors.Is(err, model.ErrLoginRequired) {
		t.Errorf("err = %v, want ErrLoginRequired", err)
	}
	if _, err := s.schemes.TrackApplications(); !errors.Is(err, model.ErrLoginRequired) {
		t.Errorf("TrackApplications err = %v, want ErrLoginRequired", err)
	}
	if got := len(s.store.Activities()); got != 0 {
		t.Errorf("activities = %d, want 0", got)
	}
}

func TestApplyAndTrack(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u := s.loginUser(t)

	for _, name := range []string{"PM-KISAN", "Skill India"} {
		if err := s.schemes.Apply(ctx, name); err != nil {
			t.Fatalf("Apply(%s): %v", name, err)
		}
	}
	s.citizen.DownloadForm(ctx, "income certificate")

	apps, err := s.schemes.TrackApplications()
	if err != nil {
		t.Fatalf("TrackApplications: %v", err)
	}
	if len(apps) != 2 || apps[0].Details != "Applied for PM-KISAN scheme" {
		t.Errorf("apps = %+v", apps)
	}

	stats := s.dashboard.UserStats(u.ID)
	want := UserStats{Applications: 2, Approved: 1, Pending: 0, Downloads: 1}
	if stats != want {
		t.Errorf("UserStats = %+v, want %+v", stats, want)
	}
}

func TestUserStatsShares(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.activity.Record(ctx, 1, model.ActionApplyScheme, "x")
	}

	got := s.dashboard.UserStats(1)
	if got.Approved != 3 || got.Pending != 2 {
		t.Errorf("UserStats = %+v, want approved 3 pending 2", got)
	}
}

func TestAdminStats(t *testing.T) {
	s := newServices(t)
	s.activity.Record(context.Background(), 1, model.ActionApplyScheme, "x")

	got := s.dashboard.AdminStats()
	want := AdminStats{TotalUsers: 2, ActiveUsers: 2, TotalApplications: 1, PendingFeedback: 2}
	if got != want {
		t.Errorf("AdminStats = %+v, want %+v", got, want)
	}
	if chart := s.dashboard.WeeklyChart(); len(chart) != 7 || chart[0] != (ChartPoint{"Mon", 65}) {
		t.Errorf("WeeklyChart = %+v", chart)
	}
}

func TestCitizenActionsAnonymous(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	s.citizen.DownloadForm(ctx, "ration card")
	s.citizen.ServiceClick(ctx, "health")
	if got := len(s.store.Activities()); got != 0 {
		t.Errorf("anonymous actions logged %d activities", got)
	}
}

func TestSearch(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	s.loginUser(t)

	if _, err := s.citizen.Search(ctx, "  "); !errors.Is(err, model.ErrValidationFailed) {
		t.Errorf("blank search err = %v, want ErrValidationFailed", err)
	}

	res, err := s.citizen.Search(ctx, "health")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Content) != 1 || len(res.Schemes) != 2 || res.Count() != 3 {
		t.Errorf("results = %+v", res)
	}
	if a := lastActivity(t, s.store); a.Action != model.ActionSearch || a.Details != "Searched for: health" {
		t.Errorf("activity = %+v", a)
	}
}

func TestChangeLanguage(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	if got := s.citizen.Language(ctx).Code; got != "en" {
		t.Errorf("default language = %q", got)
	}

	lang, err := s.citizen.ChangeLanguage(ctx, "hi-IN")
	if err != nil {
		t.Fatalf("ChangeLanguage: %v", err)
	}
	if lang.Code != "hi" {
		t.Errorf("Code = %q, want hi", lang.Code)
	}
	if got, _, _ := s.store.LoadPreference(ctx, store.KeyPreferredLanguage); got != "hi" {
		t.Errorf("stored preference = %q", got)
	}
	if got := s.citizen.Language(ctx).Code; got != "hi" {
		t.Errorf("Language = %q, want hi", got)
	}

	if _, err := s.citizen.ChangeLanguage(ctx, "xx-invalid-!"); !errors.Is(err, model.ErrValidationFailed) {
		t.Errorf("invalid tag err = %v, want ErrValidationFailed", err)
	}
}
