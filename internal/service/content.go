// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/olegiv/gov-portal/internal/model"
	"github.com/olegiv/gov-portal/internal/store"
)

// htmlSanitizer strips unsafe markup from rendered content descriptions.
var htmlSanitizer = bluemonday.UGCPolicy()

// ContentInput holds the fields of the content form.
type ContentInput struct {
	Title       string `json:"title" validate:"notblank"`
	Type        string `json:"type" validate:"oneof=announcement news scheme page"`
	Category    string `json:"category" validate:"required"`
	Status      string `json:"status" validate:"oneof=active draft archived"`
	Description string `json:"description"`
}

// ContentService lets admins manage portal content items.
type ContentService struct {
	store    *store.Store
	auth     *AuthService
	activity *ActivityService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewContentService creates a new ContentService.
func NewContentService(st *store.Store, auth *AuthService, activity *ActivityService, validate *validator.Validate, logger *slog.Logger) *ContentService {
	if validate == nil {
		validate = NewValidator()
	}
	return &ContentService{
		store:    st,
		auth:     auth,
		activity: activity,
		validate: validate,
		logger:   logger,
	}
}

// List returns every content item in insertion order.
func (s *ContentService) List() []model.ContentItem {
	return s.store.ContentItems()
}

// Active returns the items with active status, used by the announcement ticker.
func (s *ContentService) Active() []model.ContentItem {
	var out []model.ContentItem
	for _, c := range s.store.ContentItems() {
		if c.Status == model.ContentStatusActive {
			out = append(out, c)
		}
	}
	return out
}

// Get returns a content item by id.
func (s *ContentService) Get(id int64) (model.ContentItem, error) {
	c, ok := s.store.ContentByID(id)
	if !ok {
		return model.ContentItem{}, model.ErrNotFound
	}
	return c, nil
}

// Create adds a content item dated today.
func (s *ContentService) Create(ctx context.Context, in ContentInput) (model.ContentItem, error) {
	if err := s.auth.RequireAdmin(); err != nil {
		return model.ContentItem{}, err
	}
	if err := s.validate.Struct(in); err != nil {
		return model.ContentItem{}, validationError(err)
	}

	c, err := s.store.AddContent(ctx, model.ContentItem{
		Title:       in.Title,
		Type:        in.Type,
		Category:    in.Category,
		Status:      in.Status,
		Description: in.Description,
		CreatedDate: s.activity.Today(),
	})
	if err != nil {
		return model.ContentItem{}, fmt.Errorf("saving content: %w", err)
	}

	s.record(ctx, model.ActionAddContent, "Added", c)
	return c, nil
}

// Update replaces the editable fields of a content item.
func (s *ContentService) Update(ctx context.Context, id int64, in ContentInput) (model.ContentItem, error) {
	if err := s.auth.RequireAdmin(); err != nil {
		return model.ContentItem{}, err
	}
	c, ok := s.store.ContentByID(id)
	if !ok {
		return model.ContentItem{}, model.ErrNotFound
	}
	if err := s.validate.Struct(in); err != nil {
		return model.ContentItem{}, validationError(err)
	}

	c.Title = in.Title
	c.Type = in.Type
	c.Category = in.Category
	c.Status = in.Status
	c.Description = in.Description
	if err := s.store.UpdateContent(ctx, c); err != nil {
		return model.ContentItem{}, fmt.Errorf("saving content %d: %w", id, err)
	}

	s.record(ctx, model.ActionEditContent, "Edited", c)
	return c, nil
}

// Delete removes a content item.
func (s *ContentService) Delete(ctx context.Context, id int64) (model.ContentItem, error) {
	if err := s.auth.RequireAdmin(); err != nil {
		return model.ContentItem{}, err
	}
	if _, ok := s.store.ContentByID(id); !ok {
		return model.ContentItem{}, model.ErrNotFound
	}

	c, err := s.store.DeleteContent(ctx, id)
	if err != nil {
		return model.ContentItem{}, fmt.Errorf("deleting content %d: %w", id, err)
	}

	s.record(ctx, model.ActionDeleteContent, "Deleted", c)
	return c, nil
}

func (s *ContentService) record(ctx context.Context, action, verb string, c model.ContentItem) {
	adminID, _ := s.auth.CurrentID()
	s.activity.Record(ctx, adminID, action, fmt.Sprintf("%s %s: %s", verb, c.Type, c.Title))
}

// RenderDescription converts the markdown description to sanitized HTML.
func (s *ContentService) RenderDescription(c model.ContentItem) (template.HTML, error) {
	if c.Description == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(c.Description), &buf); err != nil {
		return "", fmt.Errorf("rendering description of content %d: %w", c.ID, err)
	}

	safe := htmlSanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil //nolint:gosec // sanitized by bluemonday
}
