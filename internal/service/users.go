package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olegiv/gov-portal/internal/model"
	"github.com/olegiv/gov-portal/internal/store"
)

// UserUpdate holds the editable fields of a user account.
type UserUpdate struct {
	Name   string
	Email  string
	Role   string
	Status string
}

// UserService lets admins manage user accounts.
type UserService struct {
	store    *store.Store
	auth     *AuthService
	activity *ActivityService
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(st *store.Store, auth *AuthService, activity *ActivityService, logger *slog.Logger) *UserService {
	return &UserService{store: st, auth: auth, activity: activity, logger: logger}
}

// List returns every account in insertion order.
func (s *UserService) List() []model.User {
	return s.store.Users()
}

// NameOf returns the name of the user with the given id, or "Unknown User".
func (s *UserService) NameOf(id int64) string {
	if u, ok := s.store.UserByID(id); ok {
		return u.Name
	}
	return "Unknown User"
}

// Update edits a user account.
func (s *UserService) Update(ctx context.Context, id int64, in UserUpdate) (model.User, error) {
	if err := s.auth.RequireAdmin(); err != nil {
		return model.User{}, err
	}

	u, ok := s.store.UserByID(id)
	if !ok {
		return model.User{}, model.ErrNotFound
	}

	var fields []model.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, model.FieldError{Field: "name", Message: "Please enter your full name"})
	}
	if !emailPattern.MatchString(in.Email) {
		fields = append(fields, model.FieldError{Field: "email", Message: "Please enter a valid email address"})
	}
	if !model.IsValidRole(in.Role) {
		fields = append(fields, model.FieldError{Field: "role", Message: "Please select a valid role"})
	}
	if !model.IsValidUserStatus(in.Status) {
		fields = append(fields, model.FieldError{Field: "status", Message: "Please select a valid status"})
	}
	if len(fields) > 0 {
		return model.User{}, &model.ValidationError{Fields: fields}
	}

	if _, taken := s.store.FindUser(func(o model.User) bool { return o.Email == in.Email && o.ID != id }); taken {
		return model.User{}, model.ErrDuplicateEmail
	}

	u.Name = in.Name
	u.Email = in.Email
	u.Role = in.Role
	u.Status = in.Status
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return model.User{}, fmt.Errorf("saving user %d: %w", id, err)
	}

	adminID, _ := s.auth.CurrentID()
	s.activity.Record(ctx, adminID, model.ActionEditUser, "Edited user: "+u.Name)
	s.auth.userChanged(ctx, u)
	return u, nil
}

// Delete removes a user account. Deleting the signed-in account ends the session.
func (s *UserService) Delete(ctx context.Context, id int64) (model.User, error) {
	if err := s.auth.RequireAdmin(); err != nil {
		return model.User{}, err
	}

	if _, ok := s.store.UserByID(id); !ok {
		return model.User{}, model.ErrNotFound
	}

	adminID, _ := s.auth.CurrentID()
	u, err := s.store.DeleteUser(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("deleting user %d: %w", id, err)
	}

	s.activity.Record(ctx, adminID, model.ActionDeleteUser, "Deleted user: "+u.Name)
	s.auth.userDeleted(ctx, id)
	s.logger.Info("user deleted", "user_id", id, "by", adminID)
	return u, nil
}
