package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/db"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/dberrors"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

// ITaskRepository defines task storage
type ITaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListAssignedTo(ctx context.Context, menteeID string) ([]*models.Task, error)
	ListAssignedBy(ctx context.Context, assignerID string) ([]*models.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*models.Task, error)
}

// TaskRepository handles task database operations
type TaskRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(q db.Querier) *TaskRepository {
	return &TaskRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var taskFields = []string{"id", "title", "description", "due_date", "status", "assigned_by", "assigned_to", "created_at", "updated_at"}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		t      models.Task
		status string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &status, &t.AssignedBy, &t.AssignedTo, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseTaskStatus(status)
	if err != nil {
		parsed = domain.TaskPending
	}
	t.Status = parsed
	return &t, nil
}

// Create inserts a task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	sql, args, err := r.sb.Insert("tasks").
		Columns("id", "title", "description", "due_date", "status", "assigned_by", "assigned_to").
		Values(task.ID, task.Title, task.Description, task.DueDate, string(task.Status), task.AssignedBy, task.AssignedTo).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create task query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("assignedTo", task.AssignedTo).Msg("Error creating task")
		return fmt.Errorf("error creating task: %w", err)
	}
	return nil
}

// GetByID retrieves a task
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	sql, args, err := r.sb.Select(taskFields...).From("tasks").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get task query: %w", err)
	}

	task, err := scanTask(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("error retrieving task: %w", err)
	}
	return task, nil
}

// ListAssignedTo returns a mentee's tasks, soonest due first
func (r *TaskRepository) ListAssignedTo(ctx context.Context, menteeID string) ([]*models.Task, error) {
	return r.list(ctx, squirrel.Eq{"assigned_to": menteeID})
}

// ListAssignedBy returns the tasks a mentor or admin handed out, soonest due first
func (r *TaskRepository) ListAssignedBy(ctx context.Context, assignerID string) ([]*models.Task, error) {
	return r.list(ctx, squirrel.Eq{"assigned_by": assignerID})
}

func (r *TaskRepository) list(ctx context.Context, where squirrel.Eq) ([]*models.Task, error) {
	sql, args, err := r.sb.Select(taskFields...).
		From("tasks").
		Where(where).
		OrderBy("due_date ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list tasks query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing tasks")
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateStatus sets a task's status and returns the stored row
func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*models.Task, error) {
	sql, args, err := r.sb.Update("tasks").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, title, description, due_date, status, assigned_by, assigned_to, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update task query: %w", err)
	}

	task, err := scanTask(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTaskNotFound
		}
		logger.Error().Err(err).Str("taskID", id).Msg("Error updating task status")
		return nil, fmt.Errorf("error updating task: %w", err)
	}
	return task, nil
}
