package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olegiv/gov-portal/internal/i18n"
	"github.com/olegiv/gov-portal/internal/model"
	"github.com/olegiv/gov-portal/internal/store"
)

// SearchResults groups the matches of a site search.
type SearchResults struct {
	Term    string              `json:"term"`
	Schemes []model.Scheme      `json:"schemes"`
	Content []model.ContentItem `json:"content"`
}

// Count returns the total number of matches.
func (r SearchResults) Count() int {
	return len(r.Schemes) + len(r.Content)
}

// CitizenService handles the citizen-facing actions that only leave an
// activity trace: downloads, service shortcuts, search and language choice.
type CitizenService struct {
	store    *store.Store
	auth     *AuthService
	activity *ActivityService
	schemes  *SchemeService
	logger   *slog.Logger
}

// NewCitizenService creates a new CitizenService.
func NewCitizenService(st *store.Store, auth *AuthService, activity *ActivityService, schemes *SchemeService, logger *slog.Logger) *CitizenService {
	return &CitizenService{
		store:    st,
		auth:     auth,
		activity: activity,
		schemes:  schemes,
		logger:   logger,
	}
}

// recordIfLoggedIn records the activity only for signed-in sessions.
func (s *CitizenService) recordIfLoggedIn(ctx context.Context, action, details string) {
	if id, ok := s.auth.CurrentID(); ok {
		s.activity.Record(ctx, id, action, details)
	}
}

// DownloadForm records a form download.
func (s *CitizenService) DownloadForm(ctx context.Context, formType string) {
	s.recordIfLoggedIn(ctx, model.ActionDownloadForm, "Downloaded "+formType+" form")
}

// ServiceClick records a click on a service card.
func (s *CitizenService) ServiceClick(ctx context.Context, serviceType string) {
	s.recordIfLoggedIn(ctx, model.ActionServiceClick, "Clicked on "+serviceType+" service")
}

// Search matches the term against the scheme catalog and content titles.
// A blank term fails with ErrValidationFailed.
func (s *CitizenService) Search(ctx context.Context, term string) (SearchResults, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return SearchResults{}, &model.ValidationError{Fields: []model.FieldError{
			{Field: "term", Message: "Please enter a search term"},
		}}
	}

	s.recordIfLoggedIn(ctx, model.ActionSearch, "Searched for: "+term)

	lower := strings.ToLower(term)
	results := SearchResults{
		Term:    term,
		Schemes: s.schemes.Filter(SchemeFilter{Term: term}),
	}
	for _, c := range s.store.ContentItems() {
		if strings.Contains(strings.ToLower(c.Title), lower) {
			results.Content = append(results.Content, c)
		}
	}
	return results, nil
}

// ChangeLanguage validates and stores the preferred language.
func (s *CitizenService) ChangeLanguage(ctx context.Context, tag string) (i18n.Language, error) {
	lang, ok := i18n.Match(tag)
	if !ok {
		return i18n.Language{}, &model.ValidationError{Fields: []model.FieldError{
			{Field: "language", Message: "Please select a supported language"},
		}}
	}

	if err := s.store.SavePreference(ctx, store.KeyPreferredLanguage, lang.Code); err != nil {
		return i18n.Language{}, fmt.Errorf("saving language preference: %w", err)
	}

	s.recordIfLoggedIn(ctx, model.ActionLanguageChange, "Changed language to "+lang.Code)
	return lang, nil
}

// Language returns the stored preferred language, or the default.
func (s *CitizenService) Language(ctx context.Context) i18n.Language {
	code, ok, err := s.store.LoadPreference(ctx, store.KeyPreferredLanguage)
	if err != nil {
		s.logger.Error("failed to load language preference", "error", err)
	}
	if lang, matched := i18n.Match(code); ok && matched {
		return lang
	}
	return i18n.SupportedLanguages[0]
}
