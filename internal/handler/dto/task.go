package dto

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/service"
)

// CreateTaskRequest represents the request body for creating a task.
type CreateTaskRequest struct {
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	DueAt       time.Time `json:"due_at"`
	OwnerID     int64     `json:"owner_id"`
}

// UpdateTaskRequest represents the request body for updating a task.
type UpdateTaskRequest struct {
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	DueAt       time.Time `json:"due_at"`
}

// ChangeStatusRequest represents the request body for a status transition.
type ChangeStatusRequest struct {
	Status int `json:"status"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	DueAt       time.Time `json:"due_at"`
	Status      int       `json:"status"`
	StatusName  string    `json:"status_name"`
	OwnerID     int64     `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
}

// TaskPageResponse represents one page of a task listing.
type TaskPageResponse struct {
	Items       []TaskResponse `json:"items"`
	TotalCount  int            `json:"total_count"`
	CurrentPage int            `json:"current_page"`
	PageSize    int            `json:"page_size"`
	TotalPages  int            `json:"total_pages"`
}

// ToTaskResponse converts a task view to a TaskResponse DTO.
func ToTaskResponse(t service.TaskView) *TaskResponse {
	return &TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		DueAt:       t.DueAt,
		Status:      int(t.Status),
		StatusName:  t.Status.String(),
		OwnerID:     t.OwnerID,
		OwnerName:   t.OwnerName,
	}
}

// ToTaskListResponse converts a slice of task views to response DTOs.
func ToTaskListResponse(tasks []service.TaskView) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		responses[i] = *ToTaskResponse(t)
	}
	return responses
}

// ToTaskPageResponse converts a task page to its response DTO.
func ToTaskPageResponse(p service.TaskPage) *TaskPageResponse {
	return &TaskPageResponse{
		Items:       ToTaskListResponse(p.Items),
		TotalCount:  p.TotalCount,
		CurrentPage: p.CurrentPage,
		PageSize:    p.PageSize,
		TotalPages:  p.TotalPages,
	}
}
