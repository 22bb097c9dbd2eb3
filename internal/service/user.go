// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/internal/validation"
)

// UserView is the externally-returned projection of a user.
type UserView struct {
	ID    int64
	Name  string
	Email string
}

// UserStatistics summarizes a user's task completion.
type UserStatistics struct {
	ID                   int64
	Name                 string
	TotalTasks           int
	CompletedTasks       int
	CompletionPercentage float64
}

// UserService handles user business logic.
type UserService struct {
	store repository.Store
}

// NewUserService creates a new UserService.
func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

// CreateUserInput defines input for creating or updating a user.
type CreateUserInput struct {
	Name  string
	Email string
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	views := make([]UserView, len(users))
	for i, user := range users {
		views[i] = userView(user)
	}
	return views, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*UserView, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.NotFoundf("user %d not found", id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	view := userView(user)
	return &view, nil
}

// CreateUser validates input, enforces email uniqueness and persists a
// new user with a store-assigned ID.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*UserView, error) {
	if err := validateUserInput(input.Name, input.Email); err != nil {
		return nil, err
	}

	if err := s.checkEmailAvailable(ctx, input.Email, 0); err != nil {
		return nil, err
	}

	user := &model.User{
		Name:  input.Name,
		Email: input.Email,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, apperr.Conflict("email already in use")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	view := userView(user)
	return &view, nil
}

// UpdateUser overwrites a user's name and email. The uniqueness check
// excludes the user being updated.
func (s *UserService) UpdateUser(ctx context.Context, id int64, input CreateUserInput) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	if err := validateUserInput(input.Name, input.Email); err != nil {
		return err
	}

	if err := s.checkEmailAvailable(ctx, input.Email, id); err != nil {
		return err
	}

	user := &model.User{
		ID:    id,
		Name:  input.Name,
		Email: input.Email,
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return apperr.NotFoundf("user %d not found", id)
		case errors.Is(err, repository.ErrEmailExists):
			return apperr.Conflict("email already in use")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// DeleteUser removes a user. A user owning tasks of any status cannot
// be deleted.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	count, err := s.store.CountTasksByOwner(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count tasks: %w", err)
	}
	if count > 0 {
		return apperr.Conflict("user has assigned tasks")
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperr.NotFoundf("user %d not found", id)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// GetUserStatistics computes per-user task counts and a completion
// percentage rounded half-to-even to two decimals.
func (s *UserService) GetUserStatistics(ctx context.Context, id int64) (*UserStatistics, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.NotFoundf("user %d not found", id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	total, err := s.store.CountTasksByOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	completed, err := s.store.CountCompletedTasksByOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	percentage := 0.0
	if total > 0 {
		percentage = roundTwoDecimals(float64(completed) / float64(total) * 100)
	}

	return &UserStatistics{
		ID:                   user.ID,
		Name:                 user.Name,
		TotalTasks:           total,
		CompletedTasks:       completed,
		CompletionPercentage: percentage,
	}, nil
}

// checkEmailAvailable fails with a conflict when another user holds the
// email. excludeID skips the user being updated; pass 0 on create.
func (s *UserService) checkEmailAvailable(ctx context.Context, email string, excludeID int64) error {
	_, err := s.store.GetUserByEmail(ctx, email, excludeID)
	if err == nil {
		return apperr.Conflict("email already in use")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}

// validateUserInput applies the user validation rules.
func validateUserInput(name, email string) error {
	if !validation.NonEmpty(name) {
		return apperr.Invalid("name is required")
	}
	if !validation.MaxLength(name, model.MaxNameLength) {
		return apperr.Invalid("name must be at most 100 characters")
	}
	if !validation.EmailSyntax(email) {
		return apperr.Invalid("invalid email format")
	}
	if !validation.MaxLength(email, model.MaxNameLength) {
		return apperr.Invalid("email must be at most 100 characters")
	}
	return nil
}

// roundTwoDecimals rounds half-to-even at two decimal places.
func roundTwoDecimals(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

func userView(user *model.User) UserView {
	return UserView{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
