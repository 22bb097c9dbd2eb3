package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taskdeck/taskdeck/internal/model"
)

// taskColumns selects task fields plus the owner name resolved via a
// left join, so a missing owner row yields an empty name instead of an error.
const taskColumns = `
	t.id, t.title, t.description, t.created_at, t.due_at, t.status, t.owner_id,
	COALESCE(u.name, '') AS owner_name
`

const taskFrom = ` FROM tasks t LEFT JOIN users u ON u.id = t.owner_id`

// ListTasks retrieves all tasks with owner names resolved.
func (r *Repository) ListTasks(ctx context.Context) ([]TaskWithOwner, error) {
	query := `SELECT` + taskColumns + taskFrom + ` ORDER BY t.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

// GetTask retrieves a task by its ID with the owner name resolved.
func (r *Repository) GetTask(ctx context.Context, id int64) (*TaskWithOwner, error) {
	query := `SELECT` + taskColumns + taskFrom + ` WHERE t.id = $1`

	task, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task by ID: %w", err)
	}

	return task, nil
}

// ListTasksPaged returns one page of the filtered, sorted task set and the
// filtered total. Search is a case-sensitive substring match over title and
// description; rows with NULL description only match on title.
func (r *Repository) ListTasksPaged(ctx context.Context, q TaskQuery) ([]TaskWithOwner, int, error) {
	where := ""
	var args []any
	if q.Search != "" {
		where = ` WHERE (t.title LIKE $1 ESCAPE '\' OR t.description LIKE $1 ESCAPE '\')`
		args = append(args, likePattern(q.Search))
	}

	countQuery := `SELECT COUNT(*) FROM tasks t` + where

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT%s%s%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		taskColumns, taskFrom, where, orderClause(q.Sort), len(args)+1, len(args)+2,
	)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks paged: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// CreateTask inserts a new task and assigns its ID.
func (r *Repository) CreateTask(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (title, description, created_at, due_at, status, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.CreatedAt,
		task.DueAt,
		int(task.Status),
		task.OwnerID,
	).Scan(&task.ID)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// UpdateTask overwrites a task's mutable fields.
func (r *Repository) UpdateTask(ctx context.Context, task *model.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, due_at = $4, status = $5, owner_id = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.DueAt,
		int(task.Status),
		task.OwnerID,
	)

	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// DeleteTask removes a task.
func (r *Repository) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// CountTasksByOwner counts all tasks owned by a user, regardless of status.
func (r *Repository) CountTasksByOwner(ctx context.Context, ownerID int64) (int, error) {
	return r.countTasks(ctx, `SELECT COUNT(*) FROM tasks WHERE owner_id = $1`, ownerID)
}

// CountPendingTasksByOwner counts tasks owned by a user in Pending status.
func (r *Repository) CountPendingTasksByOwner(ctx context.Context, ownerID int64) (int, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE owner_id = $1 AND status = ` + statusLiteral(model.StatusPending)
	return r.countTasks(ctx, query, ownerID)
}

// CountCompletedTasksByOwner counts tasks owned by a user in Completed status.
func (r *Repository) CountCompletedTasksByOwner(ctx context.Context, ownerID int64) (int, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE owner_id = $1 AND status = ` + statusLiteral(model.StatusCompleted)
	return r.countTasks(ctx, query, ownerID)
}

func (r *Repository) countTasks(ctx context.Context, query string, ownerID int64) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

func statusLiteral(s model.TaskStatus) string {
	return fmt.Sprintf("%d", int(s))
}

// likeEscaper neutralizes LIKE metacharacters so search text matches as
// a literal substring, like the in-memory store's strings.Contains.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a contains pattern for search text.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

// orderClause maps a TaskSort to a whitelisted ORDER BY clause.
// A trailing id tiebreaker keeps equal keys in insertion order, matching
// the stable sort of the in-memory store.
func orderClause(sort TaskSort) string {
	switch sort {
	case SortByTitle:
		return "t.title ASC, t.id ASC"
	case SortByTitleDesc:
		return "t.title DESC, t.id ASC"
	case SortByCreatedAt:
		return "t.created_at ASC, t.id ASC"
	case SortByCreatedAtDesc:
		return "t.created_at DESC, t.id ASC"
	case SortByDueDate:
		return "t.due_at ASC, t.id ASC"
	case SortByDueDateDesc:
		return "t.due_at DESC, t.id ASC"
	case SortByStatus:
		return "t.status ASC, t.id ASC"
	case SortByStatusDesc:
		return "t.status DESC, t.id ASC"
	default:
		return "t.id ASC"
	}
}

// scanTask scans a single row into a TaskWithOwner.
func scanTask(row pgx.Row) (*TaskWithOwner, error) {
	var (
		task   TaskWithOwner
		status int
	)
	err := row.Scan(
		&task.Task.ID,
		&task.Task.Title,
		&task.Task.Description,
		&task.Task.CreatedAt,
		&task.Task.DueAt,
		&status,
		&task.Task.OwnerID,
		&task.OwnerName,
	)
	if err != nil {
		return nil, err
	}
	task.Task.Status = model.TaskStatus(status)
	return &task, nil
}

// scanTasks scans all rows into TaskWithOwner values.
func scanTasks(rows pgx.Rows) ([]TaskWithOwner, error) {
	var tasks []TaskWithOwner
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}
