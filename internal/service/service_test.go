package service

import (
	"context"
	"testing"

	"github.com/olegiv/gov-portal/internal/model"
	"github.com/olegiv/gov-portal/internal/store"
	"github.com/olegiv/gov-portal/internal/testutil"
)

const testUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// services wires every service over one fresh store.
type services struct {
	store     *store.Store
	activity  *ActivityService
	auth      *AuthService
	users     *UserService
	feedback  *FeedbackService
	content   *ContentService
	schemes   *SchemeService
	citizen   *CitizenService
	dashboard *DashboardService
}

func newServices(t *testing.T) *services {
	t.Helper()

	st, _ := testutil.TestStore(t)
	logger := testutil.TestLoggerSilent()
	validate := NewValidator()

	s := &services{store: st}
	s.activity = NewActivityService(st, testutil.FixedClock(testutil.ReferenceTime), 0, logger)
	s.auth = NewAuthService(st, s.activity, "", logger)
	s.users = NewUserService(st, s.auth, s.activity, logger)
	s.feedback = NewFeedbackService(st, s.auth, s.activity, validate, logger)
	s.content = NewContentService(st, s.auth, s.activity, validate, logger)
	s.schemes = NewSchemeService(s.auth, s.activity, logger)
	s.citizen = NewCitizenService(st, s.auth, s.activity, s.schemes, logger)
	s.dashboard = NewDashboardService(st, s.activity, s.feedback)
	return s
}

func (s *services) loginAdmin(t *testing.T) model.User {
	t.Helper()

	u, err := s.auth.LoginAdmin(context.Background(), "admin@gov.in", "admin123", testUserAgent)
	if err != nil {
		t.Fatalf("LoginAdmin: %v", err)
	}
	return u
}

func (s *services) loginUser(t *testing.T) model.User {
	t.Helper()

	u, err := s.auth.LoginUser(context.Background(), "john@example.com", "password123", testUserAgent)
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	return u
}

func lastActivity(t *testing.T, st *store.Store) model.ActivityEntry {
	t.Helper()

	all := st.Activities()
	if len(all) == 0 {
		t.Fatal("no activity recorded")
	}
	return all[len(all)-1]
}
