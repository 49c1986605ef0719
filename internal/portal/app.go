// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package portal owns the state of one portal session: the record store,
// the services built over it, the navigation state machine and the
// presentation-only state (filters, search results, notifications).
//
// Every mutation goes through a Command. After each command the App renders
// a fresh ViewModel to its Presenter.
package portal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/olegiv/gov-portal/internal/i18n"
	"github.com/olegiv/gov-portal/internal/kvstore"
	"github.com/olegiv/gov-portal/internal/model"
	"github.com/olegiv/gov-portal/internal/navigation"
	"github.com/olegiv/gov-portal/internal/service"
	"github.com/olegiv/gov-portal/internal/store"
)

// Default delays of the simulated follow-up notifications.
const (
	DefaultDownloadDelay = 1500 * time.Millisecond
	DefaultResultDelay   = 1000 * time.Millisecond
)

// Scheduler runs f once after d. The default uses time.AfterFunc.
type Scheduler func(d time.Duration, f func())

func afterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Options configures an App.
type Options struct {
	AdminDomain   string
	IDPolicy      store.IDPolicy
	ActivityLimit int

	// Language is shown until the user picks one. Zero means English.
	Language i18n.Language

	// DownloadDelay precedes the "downloaded" notification of a form download.
	DownloadDelay time.Duration
	// ResultDelay precedes the follow-up notification of searches and scheme applications.
	ResultDelay time.Duration

	Clock     service.Clock
	Scheduler Scheduler
	Logger    *slog.Logger
}

// App is one portal session. Commands, timers and view reads are
// serialized by an internal mutex.
type App struct {
	mu sync.Mutex

	store     *store.Store
	activity  *service.ActivityService
	auth      *service.AuthService
	users     *service.UserService
	feedback  *service.FeedbackService
	content   *service.ContentService
	schemes   *service.SchemeService
	citizen   *service.CitizenService
	dashboard *service.DashboardService
	nav       *navigation.Machine

	opts      Options
	logger    *slog.Logger
	presenter Presenter
	closed    bool

	language       i18n.Language
	adminSection   string
	activityFilter service.ActivityFilter
	feedbackStatus string
	feedbackType   string
	schemeFilter   service.SchemeFilter
	search         *service.SearchResults
	fieldErrors    []model.FieldError
	notifications  []Notification
}

// New loads the records from kv, restores the persisted session and returns
// a portal displaying the home page, or the admin panel for a restored
// admin session.
func New(ctx context.Context, kv kvstore.Storage, opts Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = afterFunc
	}
	if opts.DownloadDelay <= 0 {
		opts.DownloadDelay = DefaultDownloadDelay
	}
	if opts.ResultDelay <= 0 {
		opts.ResultDelay = DefaultResultDelay
	}

	logger := opts.Logger
	st := store.New(kv, opts.IDPolicy, logger)
	if err := st.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}

	validate := service.NewValidator()
	a := &App{
		store:          st,
		opts:           opts,
		logger:         logger,
		nav:            navigation.New(),
		adminSection:   AdminDashboard,
		feedbackStatus: "all",
		feedbackType:   "all",
	}
	a.activity = service.NewActivityService(st, opts.Clock, opts.ActivityLimit, logger)
	a.auth = service.NewAuthService(st, a.activity, opts.AdminDomain, logger)
	a.users = service.NewUserService(st, a.auth, a.activity, logger)
	a.feedback = service.NewFeedbackService(st, a.auth, a.activity, validate, logger)
	a.content = service.NewContentService(st, a.auth, a.activity, validate, logger)
	a.schemes = service.NewSchemeService(a.auth, a.activity, logger)
	a.citizen = service.NewCitizenService(st, a.auth, a.activity, a.schemes, logger)
	a.dashboard = service.NewDashboardService(st, a.activity, a.feedback)

	if err := a.auth.Restore(ctx); err != nil {
		return nil, err
	}
	a.language = a.citizen.Language(ctx)
	if _, stored, _ := st.LoadPreference(ctx, store.KeyPreferredLanguage); !stored && opts.Language.Code != "" {
		a.language = opts.Language
	}

	if a.auth.IsAdmin() {
		a.show(ctx, navigation.PageAdmin)
	}
	return a, nil
}

// Attach connects the presenter: it registers Dispatch as the command
// handler and renders the current view.
func (a *App) Attach(p Presenter) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.presenter = p
	p.OnCommand(a.Dispatch)
	a.render()
}

// View returns the current view model without consuming notifications.
func (a *App) View() ViewModel {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view()
}

// Dispatch runs one command and renders the resulting view. It returns
// ErrUnknownCommand or ErrInvalidArguments for commands it cannot
// interpret; every other failure is reported as a notification.
func (a *App) Dispatch(ctx context.Context, cmd Command) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return fmt.Errorf("portal closed")
	}

	h, ok := commandHandlers[cmd.Name]
	if !ok {
		return fmt.Errorf("%w: %q", model.ErrUnknownCommand, cmd.Name)
	}

	a.fieldErrors = nil
	if err := h(a, ctx, cmd); err != nil {
		return err
	}
	a.render()
	return nil
}

// Close stops deferred notifications from rendering.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
}

// render sends the view to the presenter and drops the delivered
// notifications. The caller holds a.mu.
func (a *App) render() {
	if a.presenter == nil {
		return
	}
	a.presenter.Render(a.view())
	a.notifications = nil
}

// notify queues a notification for the next render. The caller holds a.mu.
func (a *App) notify(t NotificationType, msg string) {
	a.notifications = append(a.notifications, Notification{Type: t, Message: msg})
}

// notifyLater queues a notification after d and renders it.
func (a *App) notifyLater(d time.Duration, t NotificationType, msg string) {
	a.opts.Scheduler(d, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.closed {
			return
		}
		a.notify(t, msg)
		a.render()
	})
}

// logPage records a displayed page for signed-in users.
func (a *App) logPage(ctx context.Context, page string) {
	if id, ok := a.auth.CurrentID(); ok {
		a.activity.Record(ctx, id, model.ActionPageNavigation, "Navigated to "+page+" page")
	}
}

func (a *App) logSection(ctx context.Context, section string) {
	if id, ok := a.auth.CurrentID(); ok {
		a.activity.Record(ctx, id, model.ActionSectionNavigation, "Navigated to "+section+" section")
	}
}

// navigate pushes and displays a page, logging both the page and the section.
func (a *App) navigate(ctx context.Context, page, section string) {
	if !a.nav.NavigateTo(page, section) {
		a.logger.Debug("navigation to unknown page", "page", page)
		return
	}
	a.onPageShown(ctx, page)
	if section != "" {
		a.logSection(ctx, section)
	}
}

// show displays a page without touching the history.
func (a *App) show(ctx context.Context, page string) {
	if !a.nav.Show(page) {
		a.logger.Debug("show of unknown page", "page", page)
		return
	}
	a.onPageShown(ctx, page)
}

func (a *App) onPageShown(ctx context.Context, page string) {
	a.logPage(ctx, page)
	if page == navigation.PageAdmin && a.auth.IsAdmin() {
		a.adminSection = AdminDashboard
	}
}
