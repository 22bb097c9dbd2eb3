// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/taskdeck/taskdeck/internal/service"
)

// CreateUserRequest represents the request body for creating or updating a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserStatisticsResponse represents a user's task completion summary.
type UserStatisticsResponse struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	TotalTasks           int     `json:"total_tasks"`
	CompletedTasks       int     `json:"completed_tasks"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToUserResponse converts a user view to a UserResponse DTO.
func ToUserResponse(u service.UserView) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// ToUserListResponse converts a slice of user views to response DTOs.
func ToUserListResponse(users []service.UserView) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = *ToUserResponse(u)
	}
	return responses
}

// ToUserStatisticsResponse converts user statistics to its response DTO.
func ToUserStatisticsResponse(s service.UserStatistics) *UserStatisticsResponse {
	return &UserStatisticsResponse{
		ID:                   s.ID,
		Name:                 s.Name,
		TotalTasks:           s.TotalTasks,
		CompletedTasks:       s.CompletedTasks,
		CompletionPercentage: s.CompletionPercentage,
	}
}
