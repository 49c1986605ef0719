// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/olegiv/gov-portal/internal/model"
	"github.com/olegiv/gov-portal/internal/store"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// fieldMessages are the user-facing messages for invalid form fields.
var fieldMessages = map[string]string{
	"name":    "Please enter your full name",
	"email":   "Please enter a valid email address",
	"phone":   "Please enter a valid 10-digit phone number",
	"subject": "Please select a subject",
	"message": "Please enter your message",
}

const defaultFieldMessage = "This field is required"

// ContactInput holds the fields of the contact form.
type ContactInput struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"contact_email"`
	Phone   string `json:"phone" validate:"omitempty,phone10"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"notblank"`
}

// GrievanceInput holds the fields of the grievance form. Every field is required.
type GrievanceInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Department  string `json:"department" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// NewValidator returns a validator with the portal's form rules registered.
// Field errors are reported under their json names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// validationError converts validator errors into a model.ValidationError.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = defaultFieldMessage
		}
		fields = append(fields, model.FieldError{Field: fe.Field(), Message: msg})
	}
	return &model.ValidationError{Fields: fields}
}

// FeedbackService handles contact messages and grievances.
type FeedbackService struct {
	store    *store.Store
	auth     *AuthService
	activity *ActivityService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(st *store.Store, auth *AuthService, activity *ActivityService, validate *validator.Validate, logger *slog.Logger) *FeedbackService {
	if validate == nil {
		validate = NewValidator()
	}
	return &FeedbackService{
		store:    st,
		auth:     auth,
		activity: activity,
		validate: validate,
		logger:   logger,
	}
}

// SubmitContact stores a contact-form message as a pending query.
func (s *FeedbackService) SubmitContact(ctx context.Context, in ContactInput) (model.Feedback, error) {
	if err := s.validate.Struct(in); err != nil {
		return model.Feedback{}, validationError(err)
	}

	f, err := s.add(ctx, model.Feedback{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Type:    model.FeedbackTypeQuery,
		Subject: in.Subject,
		Message: in.Message,
	})
	if err != nil {
		return model.Feedback{}, err
	}

	if id, ok := s.auth.CurrentID(); ok {
		s.activity.Record(ctx, id, model.ActionSubmitFeedback, "Submitted feedback: "+in.Subject)
	}
	return f, nil
}

// SubmitGrievance stores a grievance as a pending complaint with a reference number.
func (s *FeedbackService) SubmitGrievance(ctx context.Context, in GrievanceInput) (model.Feedback, error) {
	if err := s.validate.Struct(in); err != nil {
		return model.Feedback{}, validationError(err)
	}

	f, err := s.add(ctx, model.Feedback{
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		Department:      in.Department,
		Category:        in.Category,
		Type:            model.FeedbackTypeComplaint,
		Subject:         in.Subject,
		Message:         in.Description,
		ReferenceNumber: s.referenceNumber(),
	})
	if err != nil {
		return model.Feedback{}, err
	}

	if id, ok := s.auth.CurrentID(); ok {
		s.activity.Record(ctx, id, model.ActionSubmitGrievance, "Submitted grievance: "+in.Subject)
	}
	return f, nil
}

// referenceNumber derives a grievance reference from the millisecond clock.
// The first four digits are dropped to keep it short, so it is not unique.
func (s *FeedbackService) referenceNumber() string {
	ms := strconv.FormatInt(s.activity.Now().UnixMilli(), 10)
	if len(ms) > 4 {
		ms = ms[4:]
	}
	return model.GrievancePrefix + ms
}

func (s *FeedbackService) add(ctx context.Context, f model.Feedback) (model.Feedback, error) {
	if id, ok := s.auth.CurrentID(); ok {
		f.UserID = &id
	}
	f.Status = model.FeedbackPending
	f.Date = s.activity.Today()

	saved, err := s.store.AddFeedback(ctx, f)
	if err != nil {
		return model.Feedback{}, fmt.Errorf("saving feedback: %w", err)
	}
	return saved, nil
}

// List returns feedback filtered by status and type, newest date first.
// An empty filter or "all" matches everything.
func (s *FeedbackService) List(status, feedbackType string) []model.Feedback {
	entries := s.store.Feedbacks()
	entries = slices.DeleteFunc(entries, func(f model.Feedback) bool {
		return (!matchesAll(status) && f.Status != status) ||
			(!matchesAll(feedbackType) && f.Type != feedbackType)
	})

	slices.SortStableFunc(entries, func(a, b model.Feedback) int {
		return strings.Compare(b.Date, a.Date)
	})
	return entries
}

func matchesAll(filter string) bool {
	return filter == "" || filter == "all"
}

// PendingCount returns the number of feedback entries awaiting review.
func (s *FeedbackService) PendingCount() int {
	n := 0
	for _, f := range s.store.Feedbacks() {
		if f.Status == model.FeedbackPending {
			n++
		}
	}
	return n
}

// Approve marks a feedback entry approved.
func (s *FeedbackService) Approve(ctx context.Context, id int64) (model.Feedback, error) {
	return s.review(ctx, id, model.FeedbackApproved, model.ActionApproveFeedback, "Approved feedback from ")
}

// Reject marks a feedback entry rejected.
func (s *FeedbackService) Reject(ctx context.Context, id int64) (model.Feedback, error) {
	return s.review(ctx, id, model.FeedbackRejected, model.ActionRejectFeedback, "Rejected feedback from ")
}

func (s *FeedbackService) review(ctx context.Context, id int64, status, action, detailPrefix string) (model.Feedback, error) {
	if err := s.auth.RequireAdmin(); err != nil {
		return model.Feedback{}, err
	}
	if _, ok := s.store.FeedbackByID(id); !ok {
		return model.Feedback{}, model.ErrNotFound
	}

	f, err := s.store.SetFeedbackStatus(ctx, id, status)
	if err != nil {
		return model.Feedback{}, fmt.Errorf("saving feedback %d: %w", id, err)
	}

	adminID, _ := s.auth.CurrentID()
	s.activity.Record(ctx, adminID, action, detailPrefix+f.Name)
	return f, nil
}
