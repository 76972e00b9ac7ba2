package services

import (
	"context"
	"fmt"
	"strings"

	appAuth "github.com/mentorhub/mentorhub/internal/app/auth"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/repositories"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/websocket"
	"github.com/rs/zerolog"
)

// TaskService defines the interface for task operations
type TaskService interface {
	Create(ctx context.Context, assignerID string, req *dto.CreateTaskRequest) (*models.Task, error)
	ListAssigned(ctx context.Context, userID string) ([]*models.Task, error)
	ListCreated(ctx context.Context, userID string) ([]*models.Task, error)
	UpdateStatus(ctx context.Context, callerID, taskID string, status domain.TaskStatus) (*models.Task, error)
}

// taskServiceImpl implements TaskService
type taskServiceImpl struct {
	taskRepo     repositories.ITaskRepository
	profileRepo  repositories.IProfileRepository
	authzService *appAuth.AuthorizationService
	publisher    EventPublisher
	logger       zerolog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repositories.ITaskRepository,
	profileRepo repositories.IProfileRepository,
	authzService *appAuth.AuthorizationService,
	publisher EventPublisher,
	logger zerolog.Logger,
) TaskService {
	return &taskServiceImpl{
		taskRepo:     taskRepo,
		profileRepo:  profileRepo,
		authzService: authzService,
		publisher:    publisherOrNop(publisher),
		logger:       logger,
	}
}

// Create assigns a new pending task to a mentee. Only mentors and admins assign tasks.
func (s *taskServiceImpl) Create(ctx context.Context, assignerID string, req *dto.CreateTaskRequest) (*models.Task, error) {
	if _, err := s.authzService.RequireRole(ctx, assignerID, domain.RoleMentor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewBadRequestError("Title is required")
	}
	if req.DueDate.IsZero() {
		return nil, apperrors.NewBadRequestError("Due date is required")
	}

	assignee, err := s.profileRepo.GetByID(ctx, req.AssignedTo)
	if err != nil {
		return nil, err
	}
	if assignee.Role != domain.RoleMentee {
		return nil, apperrors.NewBadRequestError("Tasks can only be assigned to mentees")
	}

	task := &models.Task{
		ID:          newID(),
		Title:       title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      domain.TaskPending,
		AssignedBy:  assignerID,
		AssignedTo:  assignee.ID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().Str("taskID", task.ID).Str("assignedTo", task.AssignedTo).Msg("Task assigned")
	s.publisher.Publish(task.AssignedTo, websocket.NewEvent(websocket.EventTasksChanged, dto.NewTaskResponse(task)).
		WithNotification("New Task", task.Title))
	return task, nil
}

// ListAssigned returns the tasks assigned to userID, earliest due first
func (s *taskServiceImpl) ListAssigned(ctx context.Context, userID string) ([]*models.Task, error) {
	tasks, err := s.taskRepo.ListAssignedTo(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing assigned tasks: %w", err)
	}
	return tasks, nil
}

// ListCreated returns the tasks userID has assigned
func (s *taskServiceImpl) ListCreated(ctx context.Context, userID string) ([]*models.Task, error) {
	tasks, err := s.taskRepo.ListAssignedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing created tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus lets the assignee or the assigner move a task between states
func (s *taskServiceImpl) UpdateStatus(ctx context.Context, callerID, taskID string, status domain.TaskStatus) (*models.Task, error) {
	if _, err := s.authzService.RequireActiveProfile(ctx, callerID); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if callerID != task.AssignedTo && callerID != task.AssignedBy {
		return nil, apperrors.NewForbiddenError("Only the assignee or the assigner can update this task")
	}

	updated, err := s.taskRepo.UpdateStatus(ctx, taskID, status)
	if err != nil {
		return nil, err
	}

	publishTo(s.publisher, websocket.NewEvent(websocket.EventTasksChanged, dto.NewTaskResponse(updated)), updated.AssignedTo, updated.AssignedBy)
	return updated, nil
}
