package model

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus int

const (
	StatusPending    TaskStatus = 0
	StatusInProgress TaskStatus = 1
	StatusCompleted  TaskStatus = 2
)

// IsValid checks if the status is one of the known lifecycle states.
func (s TaskStatus) IsValid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// String returns a human-readable name for the status.
func (s TaskStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// PendingTaskLimit is the maximum number of tasks a user may own in
// Pending status at the same time.
const PendingTaskLimit = 5

// Task represents a unit of work assigned to a user.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	DueAt       time.Time  `json:"due_at"`
	Status      TaskStatus `json:"status"`
	OwnerID     int64      `json:"owner_id"`
}
