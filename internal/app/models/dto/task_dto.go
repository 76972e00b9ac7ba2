package dto

import (
	"time"

	"github.com/mentorhub/mentorhub/internal/app/models"
)

// CreateTaskRequest assigns a task to a mentee
type CreateTaskRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description *string   `json:"description" binding:"omitempty,max=5000"`
	DueDate     time.Time `json:"dueDate" binding:"required" example:"2025-06-01T17:00:00Z"`
	AssignedTo  string    `json:"assignedTo" binding:"required"`
}

// UpdateTaskStatusRequest moves a task along
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,taskstatus" enums:"pending,in_progress,completed"`
}

// TaskResponse represents a task
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`
	AssignedBy  string    `json:"assignedBy"`
	AssignedTo  string    `json:"assignedTo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewTaskResponse(t *models.Task) *TaskResponse {
	return &TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		AssignedBy:  t.AssignedBy,
		AssignedTo:  t.AssignedTo,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func NewTaskResponses(tasks []*models.Task) []*TaskResponse {
	out := make([]*TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t))
	}
	return out
}
