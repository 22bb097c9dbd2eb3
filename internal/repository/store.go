package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/taskdeck/taskdeck/internal/model"
)

// Common errors for repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrTaskNotFound = errors.New("task not found")
	ErrEmailExists  = errors.New("email already exists")
)

// TaskSort identifies a recognized ordering for task listings.
type TaskSort int

const (
	SortByID TaskSort = iota
	SortByTitle
	SortByTitleDesc
	SortByCreatedAt
	SortByCreatedAtDesc
	SortByDueDate
	SortByDueDateDesc
	SortByStatus
	SortByStatusDesc
)

// ParseTaskSort maps a sort key to a TaskSort. Keys are case-insensitive;
// unrecognized or empty keys fall back to ascending by ID.
func ParseTaskSort(key string) TaskSort {
	switch strings.ToLower(key) {
	case "title":
		return SortByTitle
	case "title_desc":
		return SortByTitleDesc
	case "createdat":
		return SortByCreatedAt
	case "createdat_desc":
		return SortByCreatedAtDesc
	case "duedate":
		return SortByDueDate
	case "duedate_desc":
		return SortByDueDateDesc
	case "status":
		return SortByStatus
	case "status_desc":
		return SortByStatusDesc
	default:
		return SortByID
	}
}

// TaskQuery defines filtering, ordering and slicing for a paged task listing.
// Search matches tasks whose title or description contains the text as a
// case-sensitive substring; a missing description never matches.
type TaskQuery struct {
	Search string
	Sort   TaskSort
	Offset int
	Limit  int
}

// TaskWithOwner pairs a task with its owner's name resolved at read time.
// OwnerName is empty when the owner row is missing.
type TaskWithOwner struct {
	model.Task
	OwnerName string
}

// Store is the persistence gateway consumed by the services.
// Implementations must assign IDs on creation and report missing rows
// and duplicate emails through the sentinel errors above.
type Store interface {
	Ping(ctx context.Context) error

	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	// GetUserByEmail looks up a user by email, skipping the row with
	// excludeID. Pass 0 to match any row.
	GetUserByEmail(ctx context.Context, email string, excludeID int64) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id int64) error
	UserExists(ctx context.Context, id int64) (bool, error)

	ListTasks(ctx context.Context) ([]TaskWithOwner, error)
	GetTask(ctx context.Context, id int64) (*TaskWithOwner, error)
	// ListTasksPaged returns one page of the filtered, sorted task set
	// along with the filtered total before slicing.
	ListTasksPaged(ctx context.Context, query TaskQuery) ([]TaskWithOwner, int, error)
	CreateTask(ctx context.Context, task *model.Task) error
	UpdateTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, id int64) error
	CountTasksByOwner(ctx context.Context, ownerID int64) (int, error)
	CountPendingTasksByOwner(ctx context.Context, ownerID int64) (int, error)
	CountCompletedTasksByOwner(ctx context.Context, ownerID int64) (int, error)
}
