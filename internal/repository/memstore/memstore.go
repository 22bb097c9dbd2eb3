// Package memstore provides an in-memory implementation of the
// persistence gateway. It backs the service and handler tests and can
// serve as a throwaway store for local development.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// Store holds users and tasks in memory. Safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	users      map[int64]model.User
	tasks      map[int64]model.Task
	nextUserID int64
	nextTaskID int64
}

var _ repository.Store = (*Store)(nil)

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:      make(map[int64]model.User),
		tasks:      make(map[int64]model.Task),
		nextUserID: 1,
		nextTaskID: 1,
	}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// ListUsers returns all users ordered by ID.
func (s *Store) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*model.User, 0, len(s.users))
	for _, user := range s.users {
		u := user
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email, skipping the row with excludeID.
func (s *Store) GetUserByEmail(ctx context.Context, email string, excludeID int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email && user.ID != excludeID {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// CreateUser inserts a new user and assigns its ID.
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrEmailExists
		}
	}

	user.ID = s.nextUserID
	s.nextUserID++
	s.users[user.ID] = *user
	return nil
}

// UpdateUser overwrites a user's name and email.
func (s *Store) UpdateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for _, existing := range s.users {
		if existing.Email == user.Email && existing.ID != user.ID {
			return repository.ErrEmailExists
		}
	}
	s.users[user.ID] = *user
	return nil
}

// DeleteUser removes a user.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// UserExists checks if a user with the given ID exists.
func (s *Store) UserExists(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.users[id]
	return ok, nil
}

// ListTasks returns all tasks ordered by ID with owner names resolved.
func (s *Store) ListTasks(ctx context.Context) ([]repository.TaskWithOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tasksLocked(), nil
}

// GetTask retrieves a task by ID with the owner name resolved.
func (s *Store) GetTask(ctx context.Context, id int64) (*repository.TaskWithOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, repository.ErrTaskNotFound
	}
	resolved := s.resolveLocked(task)
	return &resolved, nil
}

// ListTasksPaged returns one page of the filtered, sorted task set and the
// filtered total before slicing.
func (s *Store) ListTasksPaged(ctx context.Context, q repository.TaskQuery) ([]repository.TaskWithOwner, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.tasksLocked()

	if q.Search != "" {
		filtered := tasks[:0]
		for _, t := range tasks {
			if matchesSearch(t.Task, q.Search) {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	total := len(tasks)
	sortTasks(tasks, q.Sort)

	if q.Offset >= len(tasks) || q.Limit <= 0 {
		return nil, total, nil
	}
	end := q.Offset + q.Limit
	if end > len(tasks) {
		end = len(tasks)
	}
	page := make([]repository.TaskWithOwner, end-q.Offset)
	copy(page, tasks[q.Offset:end])
	return page, total, nil
}

// CreateTask inserts a new task and assigns its ID.
func (s *Store) CreateTask(ctx context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.nextTaskID
	s.nextTaskID++
	s.tasks[task.ID] = copyTask(*task)
	return nil
}

// UpdateTask overwrites a task's mutable fields.
func (s *Store) UpdateTask(ctx context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return repository.ErrTaskNotFound
	}
	s.tasks[task.ID] = copyTask(*task)
	return nil
}

// copyTask clones the description so stored tasks do not alias caller memory.
func copyTask(task model.Task) model.Task {
	if task.Description != nil {
		desc := *task.Description
		task.Description = &desc
	}
	return task
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// CountTasksByOwner counts all tasks owned by a user, regardless of status.
func (s *Store) CountTasksByOwner(ctx context.Context, ownerID int64) (int, error) {
	return s.countTasks(ownerID, nil), nil
}

// CountPendingTasksByOwner counts tasks owned by a user in Pending status.
func (s *Store) CountPendingTasksByOwner(ctx context.Context, ownerID int64) (int, error) {
	status := model.StatusPending
	return s.countTasks(ownerID, &status), nil
}

// CountCompletedTasksByOwner counts tasks owned by a user in Completed status.
func (s *Store) CountCompletedTasksByOwner(ctx context.Context, ownerID int64) (int, error) {
	status := model.StatusCompleted
	return s.countTasks(ownerID, &status), nil
}

func (s *Store) countTasks(ownerID int64, status *model.TaskStatus) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, task := range s.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if status != nil && task.Status != *status {
			continue
		}
		count++
	}
	return count
}

// tasksLocked returns all tasks ordered by ID with owner names resolved.
// Callers must hold the mutex.
func (s *Store) tasksLocked() []repository.TaskWithOwner {
	tasks := make([]repository.TaskWithOwner, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, s.resolveLocked(task))
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Task.ID < tasks[j].Task.ID })
	return tasks
}

// resolveLocked attaches the owner name to a task copy.
// Callers must hold the mutex.
func (s *Store) resolveLocked(task model.Task) repository.TaskWithOwner {
	resolved := repository.TaskWithOwner{Task: task}
	if task.Description != nil {
		desc := *task.Description
		resolved.Task.Description = &desc
	}
	if owner, ok := s.users[task.OwnerID]; ok {
		resolved.OwnerName = owner.Name
	}
	return resolved
}

// matchesSearch reports whether the task's title or description contains
// text as a case-sensitive substring. A nil description never matches.
func matchesSearch(task model.Task, text string) bool {
	if strings.Contains(task.Title, text) {
		return true
	}
	return task.Description != nil && strings.Contains(*task.Description, text)
}

// sortTasks orders tasks by the given sort key. The sort is stable, so
// equal keys keep their ID order from tasksLocked.
func sortTasks(tasks []repository.TaskWithOwner, key repository.TaskSort) {
	var less func(a, b model.Task) bool

	switch key {
	case repository.SortByTitle:
		less = func(a, b model.Task) bool { return a.Title < b.Title }
	case repository.SortByTitleDesc:
		less = func(a, b model.Task) bool { return a.Title > b.Title }
	case repository.SortByCreatedAt:
		less = func(a, b model.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case repository.SortByCreatedAtDesc:
		less = func(a, b model.Task) bool { return b.CreatedAt.Before(a.CreatedAt) }
	case repository.SortByDueDate:
		less = func(a, b model.Task) bool { return a.DueAt.Before(b.DueAt) }
	case repository.SortByDueDateDesc:
		less = func(a, b model.Task) bool { return b.DueAt.Before(a.DueAt) }
	case repository.SortByStatus:
		less = func(a, b model.Task) bool { return a.Status < b.Status }
	case repository.SortByStatusDesc:
		less = func(a, b model.Task) bool { return a.Status > b.Status }
	default:
		// tasksLocked already orders by ID.
		return
	}

	sort.SliceStable(tasks, func(i, j int) bool { return less(tasks[i].Task, tasks[j].Task) })
}
