package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskdeck/taskdeck/internal/apperr"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/internal/validation"
)

// unassignedOwnerName is the projected owner name when the owner lookup
// yields nothing.
const unassignedOwnerName = "Unassigned"

// Page size bounds for the paged task listing.
const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// TaskView is the externally-returned projection of a task, including
// the resolved owner name.
type TaskView struct {
	ID          int64
	Title       string
	Description *string
	CreatedAt   time.Time
	DueAt       time.Time
	Status      model.TaskStatus
	OwnerID     int64
	OwnerName   string
}

// TaskPage is one page of a filtered, sorted task listing.
type TaskPage struct {
	Items       []TaskView
	TotalCount  int
	CurrentPage int
	PageSize    int
	TotalPages  int
}

// TaskService handles task business logic, including the paged query
// engine over the task collection.
type TaskService struct {
	store repository.Store
}

// NewTaskService creates a new TaskService.
func NewTaskService(store repository.Store) *TaskService {
	return &TaskService{store: store}
}

// CreateTaskInput defines input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description *string
	DueAt       time.Time
	OwnerID     int64
}

// UpdateTaskInput defines input for updating a task. Status and owner
// are not touched by updates.
type UpdateTaskInput struct {
	Title       string
	Description *string
	DueAt       time.Time
}

// ListTasksPagedInput defines input for the paged task listing.
type ListTasksPagedInput struct {
	Page     int
	PageSize int
	SortKey  string
	Search   string
}

// ListTasks returns all tasks with owner names resolved.
func (s *TaskService) ListTasks(ctx context.Context) ([]TaskView, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	views := make([]TaskView, len(tasks))
	for i, task := range tasks {
		views[i] = taskView(task)
	}
	return views, nil
}

// GetTask retrieves a task by ID.
func (s *TaskService) GetTask(ctx context.Context, id int64) (*TaskView, error) {
	task, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}

	view := taskView(*task)
	return &view, nil
}

// CreateTask validates input, checks the owner's pending-task cap and
// persists a new Pending task with a store-assigned ID.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*TaskView, error) {
	now := time.Now().UTC()

	if err := validateTaskInput(input.Title, input.DueAt, now); err != nil {
		return nil, err
	}

	if err := s.checkOwner(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:       input.Title,
		Description: input.Description,
		CreatedAt:   now,
		DueAt:       input.DueAt,
		Status:      model.StatusPending,
		OwnerID:     input.OwnerID,
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.resolvedView(ctx, task)
}

// UpdateTask overwrites a task's title, description and due date.
// The pending cap is not re-checked: status and owner are untouched.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, input UpdateTaskInput) error {
	existing, err := s.getTask(ctx, id)
	if err != nil {
		return err
	}

	if err := validateTaskInput(input.Title, input.DueAt, time.Now().UTC()); err != nil {
		return err
	}

	task := existing.Task
	task.Title = input.Title
	task.Description = input.Description
	task.DueAt = input.DueAt

	if err := s.store.UpdateTask(ctx, &task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return apperr.NotFoundf("task %d not found", id)
		}
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// DeleteTask removes a task unconditionally.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if _, err := s.getTask(ctx, id); err != nil {
		return err
	}

	if err := s.store.DeleteTask(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return apperr.NotFoundf("task %d not found", id)
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ChangeStatus moves a task to any target state in one call. Entering
// Completed before the due date is blocked; no other transition is.
func (s *TaskService) ChangeStatus(ctx context.Context, id int64, newStatus model.TaskStatus) (*TaskView, error) {
	if !newStatus.IsValid() {
		return nil, apperr.Invalid("invalid task status")
	}

	existing, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if newStatus == model.StatusCompleted && time.Now().UTC().Before(existing.Task.DueAt) {
		return nil, apperr.Conflict("cannot complete a task before its due date")
	}

	task := existing.Task
	task.Status = newStatus

	if err := s.store.UpdateTask(ctx, &task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	existing.Task = task
	view := taskView(*existing)
	return &view, nil
}

// AssignOwner reassigns a task to another user. The target owner's
// pending cap applies regardless of the task's own status.
func (s *TaskService) AssignOwner(ctx context.Context, id, newOwnerID int64) (*TaskView, error) {
	existing, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwner(ctx, newOwnerID); err != nil {
		return nil, err
	}

	task := existing.Task
	task.OwnerID = newOwnerID

	if err := s.store.UpdateTask(ctx, &task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	return s.resolvedView(ctx, &task)
}

// ListTasksPaged runs the paged query engine: filter by search text,
// sort, then slice. Out-of-range paging input is clamped defensively
// even though the HTTP boundary clamps first.
func (s *TaskService) ListTasksPaged(ctx context.Context, input ListTasksPagedInput) (*TaskPage, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	query := repository.TaskQuery{
		Sort:   repository.ParseTaskSort(input.SortKey),
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	}
	if validation.NonEmpty(input.Search) {
		query.Search = input.Search
	}

	tasks, total, err := s.store.ListTasksPaged(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks paged: %w", err)
	}

	items := make([]TaskView, len(tasks))
	for i, task := range tasks {
		items[i] = taskView(task)
	}

	return &TaskPage{
		Items:       items,
		TotalCount:  total,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  (total + pageSize - 1) / pageSize,
	}, nil
}

// getTask fetches a task or fails with a classified not-found error.
func (s *TaskService) getTask(ctx context.Context, id int64) (*repository.TaskWithOwner, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperr.NotFoundf("task %d not found", id)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// checkOwner verifies the owner exists and is under the pending-task cap.
func (s *TaskService) checkOwner(ctx context.Context, ownerID int64) error {
	exists, err := s.store.UserExists(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to check owner: %w", err)
	}
	if !exists {
		return apperr.NotFoundf("user %d does not exist", ownerID)
	}

	pending, err := s.store.CountPendingTasksByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to count pending tasks: %w", err)
	}
	if pending >= model.PendingTaskLimit {
		return apperr.Conflict("user cannot have more than 5 pending tasks")
	}

	return nil
}

// resolvedView builds a view for a freshly written task, resolving the
// owner name with a direct lookup.
func (s *TaskService) resolvedView(ctx context.Context, task *model.Task) (*TaskView, error) {
	record := repository.TaskWithOwner{Task: *task}
	owner, err := s.store.GetUser(ctx, task.OwnerID)
	if err == nil {
		record.OwnerName = owner.Name
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}

	view := taskView(record)
	return &view, nil
}

// validateTaskInput applies the task validation rules.
func validateTaskInput(title string, dueAt, now time.Time) error {
	if !validation.NonEmpty(title) {
		return apperr.Invalid("title is required")
	}
	if !validation.MaxLength(title, model.MaxNameLength) {
		return apperr.Invalid("title must be at most 100 characters")
	}
	if !validation.FutureOrPresent(dueAt, now) {
		return apperr.Invalid("due date must be now or later")
	}
	return nil
}

// taskView projects a stored task to its view, substituting a
// placeholder when the owner join misses.
func taskView(record repository.TaskWithOwner) TaskView {
	ownerName := record.OwnerName
	if ownerName == "" {
		ownerName = unassignedOwnerName
	}
	return TaskView{
		ID:          record.Task.ID,
		Title:       record.Task.Title,
		Description: record.Task.Description,
		CreatedAt:   record.Task.CreatedAt,
		DueAt:       record.Task.DueAt,
		Status:      record.Task.Status,
		OwnerID:     record.Task.OwnerID,
		OwnerName:   ownerName,
	}
}
